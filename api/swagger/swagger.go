package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Portal API",
        "description": "Course discovery, saved searches and student journey state",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Catalog", "description": "Course filtering, sorting, presets and export"},
        {"name": "Journey", "description": "Signed-in student's journey state"},
        {"name": "SavedSearches", "description": "Per-user saved filter states"}
    ],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Filter and sort the course catalog",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "categories", "in": "query", "type": "string", "description": "Comma separated"},
                    {"name": "difficulties", "in": "query", "type": "string", "description": "Beginner,Intermediate,Advanced"},
                    {"name": "modes", "in": "query", "type": "string", "description": "Online,Offline,Hybrid"},
                    {"name": "minPrice", "in": "query", "type": "number"},
                    {"name": "maxPrice", "in": "query", "type": "number"},
                    {"name": "minDuration", "in": "query", "type": "integer"},
                    {"name": "maxDuration", "in": "query", "type": "integer"},
                    {"name": "rating", "in": "query", "type": "number"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["title", "price", "duration", "rating", "enrollments", "createdAt"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/export": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Export the filtered catalog",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/courses/{id}/payment-options": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List payment options for a course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/filter-presets": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List filter presets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/filter-presets/{name}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get the filter state of a preset",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/journey": {
            "get": {
                "tags": ["Journey"],
                "summary": "Resolve the current student's journey state",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "enrollmentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/eligible-courses": {
            "get": {
                "tags": ["Journey"],
                "summary": "List courses the current student may still apply to",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/saved-searches": {
            "get": {
                "tags": ["SavedSearches"],
                "summary": "List saved searches",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["SavedSearches"],
                "summary": "Save a search",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveSearchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Limit reached", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/saved-searches/{index}": {
            "delete": {
                "tags": ["SavedSearches"],
                "summary": "Delete a saved search by position",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "index", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/catalog/cache": {
            "delete": {
                "tags": ["Catalog"],
                "summary": "Drop the cached course catalog",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/metrics/summary": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Metrics summary",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "FilterState": {
            "type": "object",
            "properties": {
                "search": {"type": "string"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "difficulties": {"type": "array", "items": {"type": "string"}},
                "modes": {"type": "array", "items": {"type": "string"}},
                "price_range": {"type": "array", "items": {"type": "number"}},
                "duration_range": {"type": "array", "items": {"type": "integer"}},
                "rating": {"type": "number"},
                "sort_by": {"type": "string"},
                "sort_order": {"type": "string"}
            }
        },
        "SaveSearchRequest": {
            "type": "object",
            "required": ["name", "filters"],
            "properties": {
                "name": {"type": "string"},
                "filters": {"$ref": "#/definitions/FilterState"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

package journey

import (
	"math"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// PaymentType distinguishes the payable options of an approved application.
type PaymentType string

// Supported payment types.
const (
	PaymentFull        PaymentType = "FULL"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

// PaymentOption describes one way the UI may offer to pay for a course. It
// does not initiate a payment.
type PaymentOption struct {
	Type           PaymentType `json:"type"`
	Amount         float64     `json:"amount"`
	UpfrontPercent float64     `json:"upfront_percent,omitempty"`
	UpfrontAmount  float64     `json:"upfront_amount,omitempty"`
	Installments   int         `json:"installments,omitempty"`
}

// PaymentOptions lists the payable options for a course. Full payment is
// always offered; installments only when enabled and a plan is configured.
func PaymentOptions(course models.Course) []PaymentOption {
	options := []PaymentOption{{Type: PaymentFull, Amount: course.Price}}
	if course.InstallmentEnabled && course.InstallmentPlan != nil {
		plan := course.InstallmentPlan
		options = append(options, PaymentOption{
			Type:           PaymentInstallment,
			Amount:         course.Price,
			UpfrontPercent: plan.Upfront,
			UpfrontAmount:  math.Round(course.Price*plan.Upfront) / 100,
			Installments:   plan.Installments,
		})
	}
	return options
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/cli/formatter"
	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
)

func newEligibleCmd(app *App) *cobra.Command {
	var coursesFile, enrollmentsFile, now string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List courses a student may still apply to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if coursesFile == "" {
				return fmt.Errorf("--courses is required")
			}
			at, err := app.resolveNow(now)
			if err != nil {
				return err
			}
			var courses []models.Course
			var enrollments []models.Enrollment
			if err := readJSONFile(coursesFile, &courses); err != nil {
				return err
			}
			if err := readJSONFile(enrollmentsFile, &enrollments); err != nil {
				return err
			}

			eligible, err := catalog.EligibleCourses(courses, enrollments, at)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), eligible)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderCourses(eligible))
			return nil
		},
	}
	cmd.Flags().StringVar(&coursesFile, "courses", "", "JSON file holding an array of courses")
	cmd.Flags().StringVar(&enrollmentsFile, "enrollments", "", "JSON file holding the student's enrollments")
	cmd.Flags().StringVar(&now, "now", "", "evaluation time, RFC3339 or YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newJourneyCmd(app *App) *cobra.Command {
	var coursesFile, applicationsFile, enrollmentsFile, now, enrollmentID string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "journey",
		Short: "Resolve the journey view for a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := app.resolveNow(now)
			if err != nil {
				return err
			}
			var courses []models.Course
			var applications []models.Application
			var enrollments []models.Enrollment
			if err := readJSONFile(coursesFile, &courses); err != nil {
				return err
			}
			if err := readJSONFile(applicationsFile, &applications); err != nil {
				return err
			}
			if err := readJSONFile(enrollmentsFile, &enrollments); err != nil {
				return err
			}

			state, err := journey.Resolve(courses, applications, enrollments, at)
			if err != nil {
				return err
			}
			state = journey.SelectEnrollment(state, enrollmentID)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), dto.NewJourneyResponse(state))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderJourney(state))
			return nil
		},
	}
	cmd.Flags().StringVar(&coursesFile, "courses", "", "JSON file holding an array of courses")
	cmd.Flags().StringVar(&applicationsFile, "applications", "", "JSON file holding the student's applications")
	cmd.Flags().StringVar(&enrollmentsFile, "enrollments", "", "JSON file holding the student's enrollments")
	cmd.Flags().StringVar(&now, "now", "", "evaluation time, RFC3339 or YYYY-MM-DD")
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment to select when several exist")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

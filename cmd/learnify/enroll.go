package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"learnify/internal/bootstrap"
)

// enrollFlags maps command line flags to enrollment form fields.
var enrollFlags = []struct {
	flag, field, usage string
}{
	{"full-name", "fullName", "full name"},
	{"email", "email", "email address"},
	{"phone", "phone", "phone number"},
	{"birth-date", "dateOfBirth", "date of birth (YYYY-MM-DD)"},
	{"document", "documentNumber", "document number"},
	{"zip", "zipCode", "ZIP code"},
	{"street", "street", "street"},
	{"number", "number", "street number"},
	{"complement", "complement", "address complement"},
	{"neighborhood", "neighborhood", "neighbourhood"},
	{"city", "city", "city"},
	{"state", "state", "state"},
	{"education", "educationLevel", "education level"},
	{"occupation", "occupation", "occupation"},
	{"referral", "hearAboutUs", "how you heard about us"},
	{"goals", "goals", "learning goals"},
	{"marketing-consent", "marketingConsent", "yes|no"},
}

func newEnrollCmd(flags *globalFlags) *cobra.Command {
	var courseID string
	values := make([]string, len(enrollFlags))

	cmd := &cobra.Command{
		Use:   "enroll --course-id <id> [form flags]",
		Short: "Fill the three enrollment steps and submit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(courseID) == "" {
				return fmt.Errorf("--course-id is required")
			}
			form := map[string]string{}
			for i, f := range enrollFlags {
				if cmd.Flags().Changed(f.flag) {
					form[f.field] = values[i]
				}
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.EnrollmentCLI.Enroll(cmd.Context(), courseID, form)
				for _, p := range out.Problems {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", p.Field, p.Message)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enrolled in %s (%s) progress=%d%%\n", out.CourseTitle, out.CourseID, out.Progress)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&courseID, "course-id", "", "course id")
	for i, f := range enrollFlags {
		cmd.Flags().StringVar(&values[i], f.flag, "", f.usage)
	}
	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"learnify/internal/bootstrap"
	resumedto "learnify/internal/modules/resume/dto"
	"learnify/internal/ui/components"
)

func newResumeCmd(flags *globalFlags) *cobra.Command {
	resume := &cobra.Command{Use: "resume", Short: "Edit and export the résumé"}

	resume.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show personal info and sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				r, err := app.ResumeCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				printResume(cmd, r)
				return nil
			})
		},
	})

	var personal resumedto.PersonalInput
	personalCmd := &cobra.Command{
		Use:   "personal",
		Short: "Update personal info (unset flags keep their value)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				current, err := app.ResumeCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				next := current.Personal
				for flag, dst := range map[string]*string{
					"full-name": &next.FullName,
					"email":     &next.Email,
					"phone":     &next.Phone,
					"location":  &next.Location,
					"summary":   &next.Summary,
				} {
					if cmd.Flags().Changed(flag) {
						v, _ := cmd.Flags().GetString(flag)
						*dst = v
					}
				}
				r, err := app.ResumeCLI.UpdatePersonal(cmd.Context(), next)
				if err != nil {
					return err
				}
				printResume(cmd, r)
				return nil
			})
		},
	}
	personalCmd.Flags().StringVar(&personal.FullName, "full-name", "", "full name")
	personalCmd.Flags().StringVar(&personal.Email, "email", "", "email")
	personalCmd.Flags().StringVar(&personal.Phone, "phone", "", "phone")
	personalCmd.Flags().StringVar(&personal.Location, "location", "", "location")
	personalCmd.Flags().StringVar(&personal.Summary, "summary", "", "professional summary")
	resume.AddCommand(personalCmd)

	resume.AddCommand(&cobra.Command{
		Use:   "add <education|experience|skill>",
		Short: "Append an empty section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				s, err := app.ResumeCLI.Add(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s section %s\n", s.Kind, s.ID)
				return nil
			})
		},
	})

	resume.AddCommand(&cobra.Command{
		Use:   "update <section-id> field=value...",
		Short: "Set section fields; skills take a comma separated list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := components.Assignments(args[1:])
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				r, err := app.ResumeCLI.Update(cmd.Context(), args[0], fields)
				if err != nil {
					return err
				}
				printResume(cmd, r)
				return nil
			})
		},
	})

	resume.AddCommand(&cobra.Command{
		Use:   "delete <section-id>",
		Short: "Remove a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if _, err := app.ResumeCLI.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted section %s\n", args[0])
				return nil
			})
		},
	})

	var out string
	export := &cobra.Command{
		Use:   "export [--out file.md]",
		Short: "Export as markdown with YAML frontmatter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				doc, err := app.ResumeCLI.Export(cmd.Context())
				if err != nil {
					return err
				}
				if strings.TrimSpace(out) == "" {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), doc)
					return nil
				}
				if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", out)
				return nil
			})
		},
	}
	export.Flags().StringVar(&out, "out", "", "write to file instead of stdout")
	resume.AddCommand(export)
	return resume
}

func printResume(cmd *cobra.Command, r resumedto.ResumeOutput) {
	w := cmd.OutOrStdout()
	p := r.Personal
	_, _ = fmt.Fprintf(w, "name: %s\nemail: %s\nphone: %s\nlocation: %s\nsummary: %s\n", p.FullName, p.Email, p.Phone, p.Location, p.Summary)
	for _, s := range r.Sections {
		_, _ = fmt.Fprintf(w, "\n[%s] %s %s\n", s.ID, s.Kind, s.Title)
		for _, f := range s.Fields {
			if f.Value != "" {
				_, _ = fmt.Fprintf(w, "  %s: %s\n", f.Name, f.Value)
			}
		}
	}
}

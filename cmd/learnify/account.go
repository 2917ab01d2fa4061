package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"learnify/internal/bootstrap"
	catalogdto "learnify/internal/modules/catalog/dto"
)

func newProgressCmd(flags *globalFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Per course progress"}

	progress.AddCommand(&cobra.Command{
		Use:   "set <course-id> <percent>",
		Short: "Record progress (clamped to 0..100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("percent must be an integer: %w", err)
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Set(cmd.Context(), args[0], percent)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%%\n", out.CourseID, out.Percent)
				return nil
			})
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "get <course-id>",
		Short: "Show progress for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%%\n", out.CourseID, out.Percent)
				return nil
			})
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				entries, err := app.ProgressCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no progress recorded")
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%%\n", e.CourseID, e.Percent)
				}
				return nil
			})
		},
	})
	return progress
}

func newProfileCmd(flags *globalFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Current user profile"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				u, err := app.CatalogCLI.Profile(cmd.Context())
				if err != nil {
					return err
				}
				printUser(cmd, u)
				return nil
			})
		},
	})

	var name, email, avatar string
	update := &cobra.Command{
		Use:   "update [--name] [--email] [--avatar]",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pick := func(flag string, v *string) *string {
				if cmd.Flags().Changed(flag) {
					return v
				}
				return nil
			}
			return withApp(flags, func(app *bootstrap.App) error {
				u, err := app.CatalogCLI.UpdateProfile(cmd.Context(), pick("name", &name), pick("email", &email), pick("avatar", &avatar))
				if err != nil {
					return err
				}
				printUser(cmd, u)
				return nil
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "display name")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&avatar, "avatar", "", "avatar url")
	profile.AddCommand(update)

	profile.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				s, err := app.CatalogCLI.Stats(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed: %d\ncertificates: %d\nstudy hours: %.1f\nstreak: %d days\n", s.CoursesCompleted, s.CertificatesEarned, s.StudyHours, s.CurrentStreak)
				return nil
			})
		},
	})
	return profile
}

func printUser(cmd *cobra.Command, u catalogdto.UserOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nemail: %s\nenrolled: %v\ncompleted: %v\ncertificates: %d\nstudy hours: %.1f\n",
		u.ID, u.Name, u.Email, u.EnrolledCourses, u.CompletedCourses, u.Certificates, u.StudyHours)
}

func newActivityCmd(flags *globalFlags) *cobra.Command {
	activity := &cobra.Command{Use: "activity", Short: "Learning activity feed"}

	activity.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				items, err := app.CatalogCLI.RecentActivities(cmd.Context())
				if err != nil {
					return err
				}
				for _, a := range items {
					line := fmt.Sprintf("%s\t%s\t%s\t%s", a.Date.Format("2006-01-02T15:04:05Z07:00"), a.Type, a.CourseID, a.CourseTitle)
					if a.Progress != nil {
						line += fmt.Sprintf("\t%d%%", *a.Progress)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	})

	var kind, courseID, timeSpent string
	var progress int
	logCmd := &cobra.Command{
		Use:   "log --type <type> --course-id <id>",
		Short: "Record an activity for the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				user, err := app.CatalogCLI.Profile(cmd.Context())
				if err != nil {
					return err
				}
				course, err := app.CatalogCLI.ShowCourse(cmd.Context(), courseID)
				if err != nil {
					return err
				}
				input := catalogdto.LogActivityInput{Type: kind, CourseID: course.ID, CourseTitle: course.Title, UserID: user.ID, TimeSpent: timeSpent}
				if cmd.Flags().Changed("progress") {
					input.Progress = &progress
				}
				out, err := app.CatalogCLI.LogActivity(cmd.Context(), input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s (%s)\n", out.Type, out.CourseTitle, out.ID)
				return nil
			})
		},
	}
	logCmd.Flags().StringVar(&kind, "type", "started", "enrolled|completed|certificate|started|progress_update")
	logCmd.Flags().StringVar(&courseID, "course-id", "", "course id")
	logCmd.Flags().IntVar(&progress, "progress", 0, "progress percent for progress_update")
	logCmd.Flags().StringVar(&timeSpent, "time-spent", "", "free form time spent, e.g. 45min")
	activity.AddCommand(logCmd)
	return activity
}

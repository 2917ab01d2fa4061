package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"learnify/internal/bootstrap"
	appstatedto "learnify/internal/modules/appstate/dto"
)

func newPrefsCmd(flags *globalFlags) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Stored preferences"}

	stateCmd := func(use, short string, args cobra.PositionalArgs, run func(cmd *cobra.Command, app *bootstrap.App, args []string) (appstatedto.StateOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(flags, func(app *bootstrap.App) error {
					st, err := run(cmd, app, args)
					if err != nil {
						return err
					}
					printState(cmd, st)
					return nil
				})
			},
		}
	}

	prefs.AddCommand(stateCmd("show", "Show preferences", cobra.NoArgs, func(cmd *cobra.Command, app *bootstrap.App, _ []string) (appstatedto.StateOutput, error) {
		if st, err := app.AppStateCLI.SyncStreak(cmd.Context()); err == nil {
			return st, nil
		}
		return app.AppStateCLI.Show(cmd.Context())
	}))
	prefs.AddCommand(stateCmd("theme <light|dark|system>", "Set the theme", cobra.ExactArgs(1), func(cmd *cobra.Command, app *bootstrap.App, args []string) (appstatedto.StateOutput, error) {
		return app.AppStateCLI.SetTheme(cmd.Context(), args[0])
	}))
	prefs.AddCommand(stateCmd("language <pt|en>", "Set the language", cobra.ExactArgs(1), func(cmd *cobra.Command, app *bootstrap.App, args []string) (appstatedto.StateOutput, error) {
		return app.AppStateCLI.SetLanguage(cmd.Context(), args[0])
	}))
	prefs.AddCommand(stateCmd("sidebar <collapsed:true|false>", "Collapse or expand the TUI sidebar", cobra.ExactArgs(1), func(cmd *cobra.Command, app *bootstrap.App, args []string) (appstatedto.StateOutput, error) {
		collapsed, err := strconv.ParseBool(args[0])
		if err != nil {
			return appstatedto.StateOutput{}, fmt.Errorf("sidebar expects true or false: %w", err)
		}
		return app.AppStateCLI.SetSidebarCollapsed(cmd.Context(), collapsed)
	}))
	prefs.AddCommand(stateCmd("study <minutes>", "Add study time", cobra.ExactArgs(1), func(cmd *cobra.Command, app *bootstrap.App, args []string) (appstatedto.StateOutput, error) {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return appstatedto.StateOutput{}, fmt.Errorf("minutes must be an integer: %w", err)
		}
		return app.AppStateCLI.LogStudy(cmd.Context(), minutes)
	}))

	prefs.AddCommand(&cobra.Command{
		Use:   "favorite <course-id>",
		Short: "Toggle a favourite course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if _, err := app.CatalogCLI.ShowCourse(cmd.Context(), args[0]); err != nil {
					return err
				}
				out, err := app.AppStateCLI.ToggleFavorite(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				verb := "removed from"
				if out.Favorite {
					verb = "added to"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s favourites\n", out.CourseID, verb)
				return nil
			})
		},
	})
	return prefs
}

func printState(cmd *cobra.Command, st appstatedto.StateOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\nlanguage: %s\nsidebar collapsed: %t\nfavourites: %v\nstudy time: %dmin\nstreak: %d days\n",
		st.Theme, st.Language, st.SidebarCollapsed, st.FavoriteCourses, st.TotalStudyTime, st.StudyStreak)
}

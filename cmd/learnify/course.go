package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"learnify/internal/bootstrap"
	catalogdto "learnify/internal/modules/catalog/dto"
)

func newCourseCmd(flags *globalFlags) *cobra.Command {
	course := &cobra.Command{Use: "course", Short: "Browse the course catalogue"}

	listing := func(use, short string, args cobra.PositionalArgs, fetch func(cmd *cobra.Command, app *bootstrap.App, args []string) ([]catalogdto.CourseOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(flags, func(app *bootstrap.App) error {
					courses, err := fetch(cmd, app, args)
					if err != nil {
						return err
					}
					printCourses(cmd.OutOrStdout(), courses)
					return nil
				})
			},
		}
	}

	course.AddCommand(listing("list", "List every course", cobra.NoArgs, func(cmd *cobra.Command, app *bootstrap.App, _ []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.ListCourses(cmd.Context())
	}))
	course.AddCommand(listing("search <query>", "Search titles, descriptions and instructors", cobra.MinimumNArgs(1), func(cmd *cobra.Command, app *bootstrap.App, args []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.Search(cmd.Context(), strings.Join(args, " "))
	}))
	course.AddCommand(listing("category <name>", "List courses in a category", cobra.ExactArgs(1), func(cmd *cobra.Command, app *bootstrap.App, args []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.ByCategory(cmd.Context(), args[0])
	}))
	course.AddCommand(listing("recommended", "Top rated courses for the current user", cobra.NoArgs, func(cmd *cobra.Command, app *bootstrap.App, _ []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.Recommended(cmd.Context(), "")
	}))
	course.AddCommand(listing("enrolled", "Courses the current user is enrolled in", cobra.NoArgs, func(cmd *cobra.Command, app *bootstrap.App, _ []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.Enrolled(cmd.Context())
	}))
	course.AddCommand(listing("completed", "Courses the current user completed", cobra.NoArgs, func(cmd *cobra.Command, app *bootstrap.App, _ []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.Completed(cmd.Context())
	}))

	var category, level, price, duration string
	filter := listing("filter", "Filter by category, level, price and duration", cobra.NoArgs, func(cmd *cobra.Command, app *bootstrap.App, _ []string) ([]catalogdto.CourseOutput, error) {
		return app.CatalogCLI.Filter(cmd.Context(), category, level, price, duration)
	})
	filter.Flags().StringVar(&category, "category", "all", "category name or all")
	filter.Flags().StringVar(&level, "level", "all", "beginner|intermediate|advanced|all")
	filter.Flags().StringVar(&price, "price", "all", "free|paid|all")
	filter.Flags().StringVar(&duration, "duration", "all", "short (<5h)|medium (5-20h)|long (>20h)|all")
	course.AddCommand(filter)

	course.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				categories, err := app.CatalogCLI.Categories(cmd.Context())
				if err != nil {
					return err
				}
				for _, c := range categories {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	})

	course.AddCommand(&cobra.Command{
		Use:   "show <course-id>",
		Short: "Show course details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				c, err := app.CatalogCLI.ShowCourse(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printCourse(cmd.OutOrStdout(), c)
				return nil
			})
		},
	})
	return course
}

func printCourses(w io.Writer, courses []catalogdto.CourseOutput) {
	if len(courses) == 0 {
		_, _ = fmt.Fprintln(w, "no courses")
		return
	}
	for _, c := range courses {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f★\t%.1fh\t%s\n", c.ID, c.Title, c.Category, c.Level, c.Rating, c.Duration, priceLabel(c.Price))
	}
}

func printCourse(w io.Writer, c catalogdto.CourseOutput) {
	_, _ = fmt.Fprintf(w, "id: %s\ntitle: %s\ninstructor: %s\ncategory: %s\nlevel: %s\nduration: %.1fh\nrating: %.1f (%d students)\nprice: %s\nlessons: %d\n",
		c.ID, c.Title, c.Instructor.Name, c.Category, c.Level, c.Duration, c.Rating, c.StudentsCount, priceLabel(c.Price), c.LessonCount)
	if c.Description != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", c.Description)
	}
	for i, m := range c.Modules {
		_, _ = fmt.Fprintf(w, "\n%d. %s\n", i+1, m.Title)
		for _, lesson := range m.Lessons {
			_, _ = fmt.Fprintf(w, "   - %s\n", lesson)
		}
	}
}

func priceLabel(price float64) string {
	if price == 0 {
		return "free"
	}
	return fmt.Sprintf("R$ %.2f", price)
}

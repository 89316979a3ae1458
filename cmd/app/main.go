package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"tabi/cmd/fx/config_fx"
	"tabi/cmd/fx/controllers_fx"
	"tabi/cmd/fx/db_fx"
	"tabi/cmd/fx/home_fx"
	"tabi/cmd/fx/itinerary_fx"
	"tabi/cmd/fx/memcache_fx"
	"tabi/cmd/fx/packing_fx"
	"tabi/cmd/fx/prompt_fx"
	"tabi/cmd/fx/server_fx"
	"tabi/cmd/fx/tools_fx"
	"tabi/cmd/fx/tripdata_fx"
	"tabi/internal/cli"
	"tabi/internal/models/trip_models"
	"tabi/internal/services"
	"tabi/pkg/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tabi",
		Short:         "Travel companion: itinerary, morning plan, packing list",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newServeCommand(),
		newItineraryCommand(),
		newNextCommand(),
		newImportCommand(),
		newResetCommand(),
	)
	return root
}

// coreModules is everything the one-shot commands need.
func coreModules() fx.Option {
	return fx.Options(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		tripdata_fx.Module,
		itinerary_fx.Module,
		home_fx.Module,
		packing_fx.Module,
	)
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for the display layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				coreModules(),
				config_fx.EventLogger,
				prompt_fx.Module,
				tools_fx.Module,
				controllers_fx.Module,
				server_fx.Module,
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

// startApp builds the core graph, fills targets and starts it. Callers stop the app.
func startApp(ctx context.Context, targets ...interface{}) (*fx.App, error) {
	app := fx.New(coreModules(), fx.NopLogger, fx.Populate(targets...))
	if err := app.Start(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func stopApp(app *fx.App) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.Stop(ctx)
}

func newItineraryCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Print the reconciled itinerary day by day",
		Example: `
tabi itinerary
tabi itinerary --date 3/6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var itinerary services.ItineraryServiceInterface
			var normalizer *utils.DateNormalizer
			app, err := startApp(ctx, &itinerary, &normalizer)
			if err != nil {
				return err
			}
			defer stopApp(app)

			days := services.GroupByDay(itinerary.Entries(ctx), normalizer)
			if date != "" {
				days = filterDay(days, date, normalizer)
			}
			cli.PrintDays(color.Output, days)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only print this day, e.g. 3/6")
	return cmd
}

func newNextCommand() *cobra.Command {
	var (
		prep int
		at   string
	)
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show when to wake up and leave for the next activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var itinerary services.ItineraryServiceInterface
			var morning services.MorningServiceInterface
			var normalizer *utils.DateNormalizer
			app, err := startApp(ctx, &itinerary, &morning, &normalizer)
			if err != nil {
				return err
			}
			defer stopApp(app)

			now, err := planningTime(at, normalizer.Location, time.Now)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("prep") {
				prep = morning.PrepTime(ctx)
			} else if prep < 0 {
				prep = 0
			}
			plan := services.ProjectMorning(itinerary.Entries(ctx), prep, now)
			cli.PrintMorning(color.Output, plan, prep)
			return nil
		},
	}
	cmd.Flags().IntVar(&prep, "prep", 0, "prep minutes for this run (default: the stored preference)")
	cmd.Flags().StringVar(&at, "at", "", "plan as if it were this RFC3339 time")
	return cmd
}

func newImportCommand() *cobra.Command {
	var date, file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace one day of the itinerary with a JSON array of entries",
		Example: `
tabi import --date 3/6 --file day2.json
cat day2.json | tabi import --date 3/6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var itinerary services.ItineraryServiceInterface
			app, err := startApp(ctx, &itinerary)
			if err != nil {
				return err
			}
			defer stopApp(app)

			entries, err := itinerary.ImportDay(ctx, date, string(raw))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries for %s\n", len(entries), date)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to replace, e.g. 3/6")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newResetCommand() *cobra.Command {
	var (
		date string
		all  bool
	)
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop a day override and fall back to the sheet",
		Args: func(cmd *cobra.Command, args []string) error {
			if date == "" && !all {
				return fmt.Errorf("either --date or --all is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var itinerary services.ItineraryServiceInterface
			app, err := startApp(ctx, &itinerary)
			if err != nil {
				return err
			}
			defer stopApp(app)

			if all {
				return itinerary.ResetAll(ctx)
			}
			return itinerary.ResetDay(ctx, date)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to reset, e.g. 3/6")
	cmd.Flags().BoolVar(&all, "all", false, "drop every override")
	return cmd
}

// planningTime is the moment to plan from, on the wall clock the itinerary
// timestamps were computed in. An empty at means wall time now.
func planningTime(at string, loc *time.Location, wall func() time.Time) (time.Time, error) {
	if at == "" {
		return wall().In(loc), nil
	}
	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at must be RFC3339: %w", err)
	}
	return parsed.In(loc), nil
}

// filterDay keeps the day whose normalized date matches date.
func filterDay(days []trip_models.DaySchedule, date string, normalizer *utils.DateNormalizer) []trip_models.DaySchedule {
	want := normalizer.NormalizeDate(date)
	for _, day := range days {
		if day.Date == date || (want.Valid && normalizer.NormalizeDate(day.Date).UnixMilli() == want.UnixMilli()) {
			return []trip_models.DaySchedule{day}
		}
	}
	return nil
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sandeepkv93/goodbuddi/internal/config"
	"github.com/sandeepkv93/goodbuddi/internal/export"
	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/planner"
	"github.com/sandeepkv93/goodbuddi/internal/scratchpad"
	"github.com/sandeepkv93/goodbuddi/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(flags.configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\n", flags.configPath)
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the events parsed from a scratchpad as JSON",
		Long:  "Parse a scratchpad outline and print its events. Reads stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open scratchpad: %w", err)
				}
				defer f.Close()
				in = f
			}
			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read scratchpad: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scratchpad.Parse(string(data)))
		},
	}
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var date, out string
	var week bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a day or week as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(flags, false)
			if err != nil {
				return err
			}
			defer env.Close()

			day, err := resolveDate(env.planner, date)
			if err != nil {
				return err
			}
			key := model.DateKey(day)

			var plans []model.DayPlan
			if week {
				plans, err = env.planner.Week(cmd.Context(), day)
			} else {
				var plan model.DayPlan
				plan, err = env.planner.Load(cmd.Context(), key)
				plans = []model.DayPlan{plan}
			}
			if err != nil {
				return fmt.Errorf("failed to load plans: %w", err)
			}

			if out == "" {
				out = key + ".ics"
			}
			if out == "-" {
				return export.WritePlans(cmd.OutOrStdout(), plans, env.planner.Now())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := export.WritePlans(f, plans, env.planner.Now()); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write calendar: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			env.logger.Info("calendar_exported", zap.String("path", out), zap.Int("days", len(plans)))
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout (default <date>.ics)")
	cmd.Flags().BoolVar(&week, "week", false, "export the whole week containing the date")
	return cmd
}

func newWeekCmd(flags *globalFlags) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the week overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(flags, false)
			if err != nil {
				return err
			}
			defer env.Close()

			day, err := resolveDate(env.planner, date)
			if err != nil {
				return err
			}
			plans, err := env.planner.Week(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("failed to load week: %w", err)
			}
			writeWeek(cmd.OutOrStdout(), model.MondayOfWeek(day), plans)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "any date in the week as YYYY-MM-DD (default today)")
	return cmd
}

func writeWeek(w io.Writer, monday time.Time, plans []model.DayPlan) {
	fmt.Fprintf(w, "Week of %s\n", model.FormatWeekRange(monday))
	for _, plan := range plans {
		day, err := model.ParseDateKey(plan.DateKey)
		if err != nil {
			continue
		}
		preview := "(nothing planned)"
		if titles := plan.PreviewTitles(planner.PreviewLimit); len(titles) > 0 {
			preview = strings.Join(titles, ", ")
			if more := len(plan.Events) - len(titles); more > 0 {
				preview += fmt.Sprintf(" +%d more", more)
			}
		}
		fmt.Fprintf(w, "%s %s  %s\n", day.Format("Mon"), plan.DateKey, preview)
	}
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var file, date string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Import a scratchpad file into a day plan whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(flags, false)
			if err != nil {
				return err
			}
			defer env.Close()

			day, err := resolveDate(env.planner, date)
			if err != nil {
				return err
			}
			key := model.DateKey(day)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s for %s (ctrl+c to stop)\n", file, key)
			return watch.File(ctx, file, env.logger, func(ctx context.Context, text string) error {
				plan, err := env.planner.Commit(ctx, key, text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d %s\n", key, len(plan.Events), pluralize(len(plan.Events), "event"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "scratchpad file to watch")
	cmd.Flags().StringVar(&date, "date", "", "date the file plans, as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func resolveDate(svc *planner.Service, raw string) (time.Time, error) {
	if raw == "" {
		return model.StartOfDay(svc.Now()), nil
	}
	day, err := model.ParseDateKey(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", raw, err)
	}
	return day, nil
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

package main

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/goodbuddi/internal/chime"
	"github.com/sandeepkv93/goodbuddi/internal/config"
	"github.com/sandeepkv93/goodbuddi/internal/daily"
	"github.com/sandeepkv93/goodbuddi/internal/scheduler"
	"github.com/sandeepkv93/goodbuddi/internal/update"
	"github.com/sandeepkv93/goodbuddi/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var watchFile string

	rootCmd := &cobra.Command{
		Use:   "goodbuddi",
		Short: "A terminal day planner",
		Long: `goodbuddi turns a free-form scratchpad outline into a day plan,
walks you through each activity with a focus timer and closes the
day with a short reflection.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags, watchFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath(), "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	rootCmd.Flags().StringVar(&watchFile, "watch-file", "", "import today's scratchpad from this file whenever it changes")

	rootCmd.AddCommand(
		newInitCmd(flags),
		newParseCmd(),
		newExportCmd(flags),
		newWeekCmd(flags),
		newWatchCmd(flags),
	)
	return rootCmd
}

func runTUI(parent context.Context, flags *globalFlags, watchFile string) error {
	env, err := openEnv(flags, true)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	engine := scheduler.NewEngine(env.cfg.Alerts.Buffer)
	engine.Start()
	defer engine.Stop()

	player, notifier := cues(env.cfg)
	model := update.NewModel(update.Options{
		Context:      ctx,
		Planner:      env.planner,
		Scheduler:    engine,
		Player:       player,
		Notifier:     notifier,
		Logger:       env.logger,
		UserName:     env.cfg.User.Name,
		AlertLead:    time.Duration(env.cfg.Alerts.LeadMinutes) * time.Minute,
		TimerMinutes: env.cfg.Timer.DefaultMinutes,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	rollover, err := daily.New(env.cfg.Daily.RolloverCron, env.logger, func(at time.Time) {
		program.Send(update.RolloverMsg{At: at})
	})
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		program.Quit()
		return nil
	})
	g.Go(func() error {
		return rollover.Run(gCtx)
	})
	if watchFile != "" {
		g.Go(func() error {
			return watch.File(gCtx, watchFile, env.logger, func(ctx context.Context, text string) error {
				plan, err := env.planner.Commit(ctx, env.planner.Today(), text)
				if err != nil {
					return err
				}
				program.Send(update.ScratchpadImportedMsg{Plan: plan})
				return nil
			})
		})
	}

	err = g.Wait()
	env.logger.Info("app_exit", zap.Error(err), zap.Uint64("alerts_dropped", engine.Dropped()))
	return err
}

// cues picks the timer cue players and the alert notifier from config.
func cues(cfg *config.Config) (chime.Player, chime.Notifier) {
	var players chime.Multi
	var notifier chime.Notifier = chime.NoopNotifier{}
	if cfg.Notify.Desktop {
		desktop := chime.NewExecNotifier()
		notifier = desktop
		players = append(players, chime.Desktop{Notifier: desktop})
	}
	if cfg.Notify.Bell {
		players = append(players, chime.NewBell(os.Stderr))
	}
	if len(players) == 0 {
		return chime.NoopPlayer{}, notifier
	}
	return players, notifier
}

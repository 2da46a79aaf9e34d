package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/storage"
	"github.com/vovakirdan/tui-tanks/internal/telemetry"
)

var (
	flagSimMode     string
	flagSimTicks    int
	flagSimBotSeed  int64
	flagSimJournal  string
	flagSimAll      bool
	flagSimMetrics  string
	flagSimRealtime bool
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session driven by bots",
	Long: `Run the simulation without a terminal UI. Bots press random keys for
every player slot. The run ends at game over, after --ticks ticks or on
Ctrl+C, and is stored like a played game.

Events can be journaled as JSON lines; movement events are left out unless
--journal-all is given. With --metrics the Prometheus endpoint stays up
while the run lasts; combine it with --realtime to watch a run live.

Examples:
  tanks sim
  tanks sim --mode tanks --seed 7 --ticks 100000
  tanks sim --journal events.jsonl --journal-all
  tanks sim --realtime --metrics 127.0.0.1:9464`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", "tanks_duo", "Game mode: tanks or tanks_duo")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 30000, "Tick budget")
	simCmd.Flags().Int64Var(&flagSimBotSeed, "bot-seed", 1, "Seed of the bot input")
	simCmd.Flags().StringVar(&flagSimJournal, "journal", "", "Write events as JSON lines to this file")
	simCmd.Flags().BoolVar(&flagSimAll, "journal-all", false, "Journal movement events too")
	simCmd.Flags().StringVar(&flagSimMetrics, "metrics", "", "Serve Prometheus metrics on this address during the run")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at the configured tick duration")
	simCmd.Flags().BoolVar(&flagSimSave, "save", true, "Store the run and score in the database")
}

func runSim(cmd *cobra.Command, _ []string) error {
	gameType := tanks.TwoPlayers
	switch flagSimMode {
	case "tanks":
		gameType = tanks.OnePlayer
	case "tanks_duo":
	default:
		return fmt.Errorf("unknown mode %q", flagSimMode)
	}

	cfg, err := config.LoadTanks(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyTanksPreset(&cfg, config.ParsePreset(flagDifficulty))
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := tanks.NewSession(cfg, seed, gameType, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	observers := telemetry.Observers{telemetry.NewMetrics(reg)}

	if flagSimJournal != "" {
		f, err := os.Create(flagSimJournal)
		if err != nil {
			return fmt.Errorf("cannot create journal: %w", err)
		}
		journal := telemetry.NewJournal(f, telemetry.DefaultJournalRate)
		if !flagSimAll {
			journal.Skip(tanks.EventTankMoved, tanks.EventProjectileMoved)
		}
		defer func() {
			written, dropped := journal.Stats()
			if err := journal.Close(); err != nil {
				logger.Error("journal close failed", "err", err)
			}
			logger.Info("journal written", "path", flagSimJournal, "events", written, "dropped", dropped)
		}()
		observers = append(observers, journal)
	}

	if flagSimMetrics != "" {
		go func() {
			if err := telemetry.Serve(ctx, flagSimMetrics, telemetry.NewRouter(reg), logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	logger.Info("simulation started", "mode", flagSimMode, "seed", seed, "ticks", flagSimTicks)
	reason, elapsed := simulate(ctx, session, tanks.NewBot(flagSimBotSeed), observers, cfg.Timers.Tick)

	sum := session.Summary()
	fmt.Printf("Mode:    %s\n", flagSimMode)
	fmt.Printf("Seed:    %d\n", seed)
	fmt.Printf("Ended:   %s after %s ticks (%s)\n", reason, humanize.Comma(int64(sum.Ticks)), elapsed.Round(time.Millisecond))
	fmt.Printf("Stage:   %d\n", sum.Stage)
	fmt.Printf("Scores:  P1 %s", humanize.Comma(int64(sum.Scores[0])))
	if gameType == tanks.TwoPlayers {
		fmt.Printf("  P2 %s", humanize.Comma(int64(sum.Scores[1])))
	}
	fmt.Println()
	fmt.Printf("Kills:   %d / %d / %d\n", sum.Kills[0], sum.Kills[1], sum.Kills[2])

	if !flagSimSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := tui.RunFromSummary(flagSimMode, seed, reason, elapsed, sum)
	id, err := store.SaveRun(run)
	if err != nil {
		return err
	}
	if total := run.Total(); total > 0 {
		if _, err := store.SaveScore(flagSimMode, total); err != nil {
			return err
		}
	}
	fmt.Printf("Run:     %s\n", id)
	return nil
}

// simulate steps the session until game over, the tick budget or
// cancellation. A positive pace spaces ticks in wall time.
func simulate(ctx context.Context, s *tanks.Session, bot *tanks.Bot, obs tanks.Observer, pace time.Duration) (string, time.Duration) {
	var ticker *time.Ticker
	if flagSimRealtime && pace > 0 {
		ticker = time.NewTicker(pace)
		defer ticker.Stop()
	}

	start := time.Now()
	s.Start()
	for i := 0; i < flagSimTicks; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return storage.EndQuit, time.Since(start)
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return storage.EndQuit, time.Since(start)
		}

		t0 := time.Now()
		events := s.Step(bot.Next())
		obs.ObserveTick(time.Since(t0), events, s.State())

		if s.Summary().Over {
			return storage.EndGameOver, time.Since(start)
		}
	}
	return storage.EndTickCap, time.Since(start)
}

// tanks is a terminal tank arena for one or two players.
//
// Usage:
//
//	tanks list               - List game modes
//	tanks play [mode]        - Play a mode (tanks or tanks_duo)
//	tanks menu               - Start menu to pick a mode interactively
//	tanks sim                - Run a headless session driven by bots
//	tanks serve              - Start SSH server for remote play
//	tanks scores <mode>      - Show high scores for a mode
//	tanks runs [mode]        - Show recently finished runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 50)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tanks/tanks.db)
//	--config <path>       - Custom tanks.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger  *log.Logger
	logFile *os.File
)

// annotationTUI marks commands that own the terminal; their logs must not
// reach stdout or stderr.
const annotationTUI = "tui"

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tanks - a tank arena in your terminal",
	Long: `Tanks is a terminal tank arena. Defend the eagle, destroy every enemy
tank of a stage and move on to the next one. Alone or with a friend on the
same keyboard.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  sim      - Headless run driven by bots
  serve    - Start SSH server for remote play
  scores   - View high scores
  runs     - View finished runs

Examples:
  tanks play
  tanks play tanks_duo --difficulty hard
  tanks sim --ticks 50000 --journal events.jsonl
  tanks serve --ssh :2222
  tanks scores tanks`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 50, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/tanks.db", "Path to scores database (env TANKS_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tanks config YAML (env TANKS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
}

// setup loads .env, applies environment defaults and configures logging and
// the game package before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	flags := cmd.Flags()
	if v := os.Getenv("TANKS_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("TANKS_CONFIG"); v != "" && !flags.Changed("config") {
		flagConfig = v
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if cmd.Annotations[annotationTUI] == "true" {
		out = io.Discard
	}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		logFile, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = logFile
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks",
		Level:           level,
	})

	tanks.SetLogger(logger)
	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(flagDifficulty)
	return nil
}

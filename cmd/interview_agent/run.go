package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive interview session in the terminal",
	Long: `Starts an interview in the terminal: introduce yourself, answer the interviewer's
questions, and type 'Стоп' when you want the final feedback.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runInterviewCmd,
}

var (
	runConfigPath     string
	runOutputDir      string
	runAskFinishAfter int
	runHardMaxTurns   int
	runAPIKey         string
	runVerbose        bool
	runDatabaseURL    string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for interview log exports")
	runCommand.Flags().IntVar(&runAskFinishAfter, "ask-finish-after", 0, "Turn after which the candidate is reminded how to stop")
	runCommand.Flags().IntVar(&runHardMaxTurns, "hard-max-turns", 0, "Turn at which the interview is force-ended")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print parsed profile and agent thoughts after each turn")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for session persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runInterviewCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("ask-finish-after") {
		cfg.AskFinishAfter = runAskFinishAfter
	}
	if cmd.Flags().Changed("hard-max-turns") {
		cfg.HardMaxTurns = runHardMaxTurns
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	limits := session.DefaultLimits()
	defaults := config.Config{
		OutputDir:      session.DefaultOutputDir,
		AskFinishAfter: limits.AskFinishAfter,
		HardMaxTurns:   limits.HardMaxTurns,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	llmCfg, err := llm.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load model config: %w", err)
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close()

	sessCfg := session.Config{
		Limits: session.Limits{
			AskFinishAfter: cfg.AskFinishAfter,
			HardMaxTurns:   cfg.HardMaxTurns,
		},
		OutputDir: cfg.OutputDir,
	}

	// Step 5: Optional session persistence
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: database unavailable, session will not be persisted: %v\n", err)
		} else {
			defer database.Close()
			sessCfg.Store = database
		}
	}

	runner := session.NewRunner(llm.NewGateway(client, llm.DefaultRetryPolicy()), sessCfg)
	printer := observability.NewPrinter(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Представьтесь и расскажите о себе (Enter для примера): ")
	var intro string
	if scanner.Scan() {
		intro = scanner.Text()
	}

	opening := runner.Start(ctx, intro)
	if cfg.Verbose {
		printer.PrintProfile(runner.Profile())
		printLastTurnThoughts(printer, runner)
	}
	fmt.Printf("\nИнтервьюер: %s\n", opening)

	for !runner.Finished() {
		fmt.Print("\nВы: ")
		if !scanner.Scan() {
			break
		}

		reply, done := runner.Step(ctx, scanner.Text())
		if cfg.Verbose {
			printLastTurnThoughts(printer, runner)
		}
		if reply != "" {
			fmt.Printf("\nИнтервьюер: %s\n", reply)
		}
		if done {
			break
		}
	}

	feedback, path, err := runner.Finish(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate feedback: %w", err)
	}

	fmt.Printf("\n%s\n", feedback)
	if path != "" {
		fmt.Printf("\nЛог интервью сохранён: %s\n", path)
	}
	return nil
}

// printLastTurnThoughts shows the internal agent thoughts recorded for the
// most recent turn.
func printLastTurnThoughts(p *observability.Printer, r *session.Runner) {
	ledger := r.Ledger()
	if ledger == nil || len(ledger.Turns) == 0 {
		return
	}
	p.PrintThoughts(ledger.Turns[len(ledger.Turns)-1].InternalThoughts)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinescope/config"
	"github.com/s0up4200/cinescope/filter"
	"github.com/s0up4200/cinescope/library"
	"github.com/s0up4200/cinescope/output"
	"github.com/s0up4200/cinescope/tmdb"
)

var (
	cfgFile    string
	colorFlag  string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	filters    *filter.Manager
	printer    *output.Printer

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinescope",
	Short: "Browse movies and TV shows from The Movie Database",
	Long: `cinescope is a terminal client for The Movie Database (TMDB).

Browse popular, top rated, upcoming and airing titles, search for movies
and TV shows, and look at the details of a single title. Run "cinescope browse"
for the interactive browser, or use the list, search and show commands for
plain output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "colorize output: auto, always or never")
}

// initializeApp loads the configuration and creates the TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("Using config file")
	}

	mode, err := output.ParseColorMode(colorFlag)
	if err != nil {
		return err
	}
	printer = output.NewPrinter(mode, cfg.Logging.Color)

	tmdbClient, err = newTMDBClient(cfg.TMDB, logger)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Expressions()); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

func newTMDBClient(c config.TMDBConfig, logger zerolog.Logger) (*tmdb.Client, error) {
	return tmdb.NewClient(c.APIKey, logger,
		tmdb.WithBaseURL(c.BaseURL),
		tmdb.WithLanguage(c.Language),
		tmdb.WithTimeout(c.Timeout),
		tmdb.WithRateLimit(c.RateLimit),
		tmdb.WithUserAgent("cinescope/"+version),
	)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(w).With().Timestamp().Logger()
	}

	// Console format
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !output.IsTerminal(w),
	}

	return zerolog.New(console).With().Timestamp().Logger()
}

// libraryChecker connects to Radarr when it is enabled. Connection problems
// are logged and the command continues without library status.
func libraryChecker(logger zerolog.Logger) library.Checker {
	if !cfg.Radarr.Enabled {
		return nil
	}

	client, err := library.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without library status")
		return nil
	}
	return client
}

// resolveFilter picks the filter to apply.
// Priority: command line filter > preset > default expression
func resolveFilter() (filter.Filter, error) {
	expression := filterExpr
	if expression == "" && preset == "" {
		expression = cfg.Filter.DefaultExpression
	}

	f, err := filters.Resolve(expression, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f == nil {
		return nil, nil
	}

	logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	return f, nil
}

func entitySubject(kind tmdb.Kind) func(tmdb.Entity) filter.Subject {
	return func(e tmdb.Entity) filter.Subject {
		return filter.Subject{Entity: e, Kind: kind}
	}
}

func formatOptions() output.FormatOptions {
	return output.FormatOptions{
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		PosterSize:   cfg.Browse.PosterSize,
	}
}

// commandContext returns the command's context, falling back to Background
// when the command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

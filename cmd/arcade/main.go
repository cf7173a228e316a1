package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/glabrego/arcade-cli/internal/app"
	"github.com/glabrego/arcade-cli/internal/bookmarks"
	"github.com/glabrego/arcade-cli/internal/catalog"
	"github.com/glabrego/arcade-cli/internal/config"
	"github.com/glabrego/arcade-cli/internal/feed"
	"github.com/glabrego/arcade-cli/internal/storage"
	"github.com/glabrego/arcade-cli/internal/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "arcade: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	var printMode bool
	var query string
	var category string

	flagSet := pflag.NewFlagSet("arcade", pflag.ContinueOnError)
	cfg.AddFlags(flagSet)
	flagSet.BoolVar(&printMode, "print", false, "load the feed once, print the filtered games and exit")
	flagSet.StringVar(&query, "query", "", "title search used with --print")
	flagSet.StringVar(&category, "category", "", "comma separated categories used with --print (All, Bookmarks or a feed category)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		logger.Warn("bookmark storage is read-only, bookmarks will not persist",
			zap.String("path", cfg.DBPath), zap.Error(err))
		fmt.Fprintf(os.Stderr, "warning: storage write check failed (%v). Verify ARCADE_DB_PATH is writable: %s\n", err, cfg.DBPath)
	}

	store := bookmarks.NewStore(repo, logger)
	store.Load(ctx)

	client := feed.NewClient(cfg.FeedURL, &http.Client{Timeout: cfg.FetchTimeout})
	controller := app.NewController(client, store, logger)

	if printMode {
		return printCatalog(ctx, controller, query, catalog.ParseSelectors(category), stdout)
	}

	model := tui.NewModel(controller, cfg.FetchTimeout)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// loader is the part of the controller one-shot mode drives.
type loader interface {
	Load(ctx context.Context) (app.Snapshot, error)
	SetQuery(query string) app.Snapshot
	SetActiveCategories(selectors []string) app.Snapshot
}

func printCatalog(ctx context.Context, controller loader, query string, selectors []string, w io.Writer) error {
	controller.SetQuery(query)
	controller.SetActiveCategories(selectors)
	snap, err := controller.Load(ctx)
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}
	for _, item := range snap.Items {
		marker := ""
		if snap.IsBookmarked(item.Title) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Title, item.Category, marker)
	}
	return nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogPath == "" {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{cfg.LogPath}
	zapConfig.ErrorOutputPaths = []string{cfg.LogPath}
	if cfg.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapConfig.Build()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `arcade: terminal browser for a game catalog feed.

Loads the pipe-delimited feed at ARCADE_FEED_URL, lets you search titles,
narrow by category and bookmark games. Bookmarks are kept in a sqlite file.

Usage:
  arcade [flags]

Examples:
  # Browse interactively
  ARCADE_FEED_URL=https://example.com/games.txt arcade

  # Print bookmarked games together with every board game
  arcade --feed-url https://example.com/games.txt --print --category Bookmarks,Board

Flags:
%s`, strings.TrimRight(flagSet.FlagUsages(), "\n")+"\n")
}

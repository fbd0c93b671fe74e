package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/catalog"
	"github.com/justchokingaround/aniview/internal/clipboard"
	"github.com/justchokingaround/aniview/internal/config"
	"github.com/justchokingaround/aniview/internal/database"
	"github.com/justchokingaround/aniview/internal/linkopen"
	"github.com/justchokingaround/aniview/internal/state"
	"github.com/justchokingaround/aniview/internal/tui"
	"github.com/justchokingaround/aniview/internal/tui/components/detail"
	"github.com/justchokingaround/aniview/internal/tui/nav"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	cfgFile   string
	logLevel  string
	noColor   bool
	debugMode bool
	resume    bool

	// Global config and logger
	cfg    *config.Config
	logger *slog.Logger

	// events forwards config reloads into a running TUI
	events = make(chan tea.Msg, 1)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aniview",
	Short: "Browse a local anime catalog in the terminal",
	Long: `aniview keeps a local catalog of anime records (Jikan-style JSON or YAML)
and shows them in a terminal UI: a list to pick from and a detail screen
with the banner, metadata, synopsis and genres of the selected entry.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init must work without a readable config
		if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}

		if err := config.InitializeDirs(); err != nil {
			return fmt.Errorf("failed to initialize directories: %w", err)
		}

		var err error
		var v *viper.Viper
		cfg, v, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if debugMode {
			cfg.Advanced.Debug = true
			if logLevel == "" {
				cfg.Logging.Level = "debug"
			}
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if noColor {
			cfg.Logging.Color = false
		}

		logger, err = config.InitLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := database.Init(&cfg.Database); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		if v.ConfigFileUsed() != "" {
			v.WatchConfig()
			v.OnConfigChange(func(e fsnotify.Event) {
				logger.Info("config file changed", "name", e.Name)
				layout, err := reloadLayout(v)
				if err != nil {
					logger.Error("ignoring config change", "error", err)
					return
				}
				select {
				case events <- tui.LayoutChangedMsg{Layout: layout}:
				default:
				}
			})
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := database.Close(); err != nil && logger != nil {
			logger.Error("failed to close database", "error", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("aniview starting", "version", version)

		store := state.NewStore()
		if resume {
			rec, err := catalog.NewService(database.GetDB()).LastViewed()
			switch {
			case err == nil:
				store.Select(rec)
				return runTUI(store, nav.Detail)
			case errors.Is(err, catalog.ErrNotFound):
				logger.Info("nothing to resume, opening the catalog")
			default:
				return err
			}
		}
		return runTUI(store, nav.Root)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/aniview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug mode (debug logging)")

	rootCmd.Flags().BoolVarP(&resume, "resume", "r", false, "open the last viewed entry")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// runTUI starts the terminal UI on the given screen
// reloadLayout reads the detail layout from a changed config file. It runs
// on the watcher goroutine and must not touch cfg.
func reloadLayout(v *viper.Viper) (detail.Layout, error) {
	reloaded := config.Default()
	if err := v.Unmarshal(reloaded); err != nil {
		return detail.Layout{}, fmt.Errorf("failed to reload config: %w", err)
	}
	if err := reloaded.Validate(); err != nil {
		return detail.Layout{}, fmt.Errorf("invalid config: %w", err)
	}
	return detail.LayoutFromConfig(reloaded.UI), nil
}

func runTUI(store *state.Store, initial nav.Destination) error {
	opener, err := linkopen.New(cfg.Links.Command)
	if err != nil {
		return fmt.Errorf("invalid links.command: %w", err)
	}

	return tui.Start(tui.Options{
		Catalog:   catalog.NewService(database.GetDB()),
		Store:     store,
		Opener:    opener,
		Clipboard: clipboard.NewService(logger, &cfg.Advanced.Clipboard),
		Layout:    detail.LayoutFromConfig(cfg.UI),
		Logger:    logger,
		Initial:   initial,
		Events:    events,
	})
}

var showCmd = &cobra.Command{
	Use:   "show <mal_id|file|title>",
	Short: "Open the detail screen of one record",
	Long: `Open the detail screen directly. The argument is the mal_id of a catalog
entry, a JSON/YAML file holding a record (the first one is shown), or a
title matched against the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := resolveRecord(args[0])
		if err != nil {
			return err
		}

		store := state.NewStore()
		store.Select(rec)
		return runTUI(store, nav.Detail)
	},
}

// resolveRecord finds the record arg refers to: a catalog mal_id, a record
// file, or failing both the closest catalog title
func resolveRecord(arg string) (anime.Record, error) {
	svc := catalog.NewService(database.GetDB())

	if id, err := strconv.Atoi(arg); err == nil {
		rec, err := svc.Get(id)
		if errors.Is(err, catalog.ErrNotFound) {
			return anime.Record{}, fmt.Errorf("no catalog entry with mal_id %d, add it with `aniview import`", id)
		}
		if err != nil {
			return anime.Record{}, err
		}
		if err := svc.SetLastViewed(id); err != nil {
			logger.Warn("failed to remember last viewed", "mal_id", id, "error", err)
		}
		return rec, nil
	}

	if _, err := os.Stat(arg); err == nil {
		return recordFromFile(arg)
	}

	rec, err := svc.FindByTitle(arg)
	if errors.Is(err, catalog.ErrNotFound) {
		return anime.Record{}, fmt.Errorf("%q is neither a file nor a catalog title", arg)
	}
	if err != nil {
		return anime.Record{}, err
	}
	logger.Debug("matched title", "query", arg, "title", rec.Title, "mal_id", rec.MalID)
	if err := svc.SetLastViewed(rec.MalID); err != nil {
		logger.Warn("failed to remember last viewed", "mal_id", rec.MalID, "error", err)
	}
	return rec, nil
}

func recordFromFile(path string) (anime.Record, error) {
	records, err := anime.LoadFile(path)
	if err != nil {
		return anime.Record{}, err
	}
	if len(records) == 0 {
		return anime.Record{}, fmt.Errorf("%s holds no records", path)
	}
	if len(records) > 1 {
		logger.Info("file holds several records, showing the first", "file", path, "count", len(records))
	}
	if err := records[0].Validate(); err != nil {
		return anime.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return records[0], nil
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Add records from JSON/YAML files to the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var records []anime.Record
		for _, path := range args {
			recs, err := anime.LoadFile(path)
			if err != nil {
				return err
			}
			records = append(records, recs...)
		}

		n, err := catalog.NewService(database.GetDB()).Import(records)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s)\n", n)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		sortName, _ := cmd.Flags().GetString("sort")
		query, _ := cmd.Flags().GetString("query")

		sortBy, err := catalog.ParseSortOrder(sortName)
		if err != nil {
			return fmt.Errorf("invalid --sort %q, want recent, title, score or year", sortName)
		}

		svc := catalog.NewService(database.GetDB())
		items, err := svc.List(catalog.FilterOptions{
			SearchQuery: query,
			SortBy:      sortBy,
		})
		if err != nil {
			return err
		}
		total, err := svc.Count()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No entries to show (%d in the catalog).\n", total)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MAL ID\tTITLE\tSCORE\tYEAR\tADDED")
		for _, it := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				it.Record.MalID,
				it.Record.Title,
				orDash(it.Record.Score != 0, strconv.FormatFloat(it.Record.Score, 'f', -1, 64)),
				orDash(it.Record.Year != 0, strconv.Itoa(it.Record.Year)),
				humanize.Time(it.AddedAt),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d entries\n", len(items), total)
		return nil
	},
}

// orDash prints absent table cells as "-"
func orDash(present bool, s string) string {
	if !present {
		return "-"
	}
	return s
}

var removeCmd = &cobra.Command{
	Use:   "remove <mal_id>...",
	Short: "Delete entries from the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := catalog.NewService(database.GetDB())
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid mal_id %q", arg)
			}
			if err := svc.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d\n", id)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("sort", "recent", "sort order: recent, title, score or year")
	listCmd.Flags().StringP("query", "q", "", "only titles containing this text")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = config.DefaultConfigPath()
		}

		if err := config.WriteDefault(configPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default configuration generated at: %s\n", configPath)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			fmt.Fprintln(cmd.OutOrStdout(), cfgFile)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

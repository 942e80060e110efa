package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/epf-2025/blogpress/internal/config"
	"github.com/epf-2025/blogpress/internal/llm"
	"github.com/epf-2025/blogpress/internal/pipeline"
	"github.com/epf-2025/blogpress/internal/server"
	"github.com/epf-2025/blogpress/internal/store"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "blogpress",
	Short:   "Generated local-SEO blog posts",
	Long:    "blogpress generates schema-validated blog posts on a schedule, keeps a rolling cache of them, and serves the blog API and pages.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("blogpress", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/blogpress/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure the store, schedule, and API key env vars.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Println("Configuration:")
		if cfg.Store.Configured() {
			fmt.Printf("  Store: %s\n", cfg.Store.Driver)
		} else {
			fmt.Println("  Store: not configured")
		}
		fmt.Printf("  Model: %s\n", cfg.Generation.Model)
		if cfg.Generation.APIKey() == "" {
			fmt.Printf("  API key: not set (%s)\n", cfg.Generation.APIKeyEnv)
		} else {
			fmt.Printf("  API key: set (%s)\n", cfg.Generation.APIKeyEnv)
		}
		fmt.Printf("  Post limit: %d\n", cfg.Blog.PostLimit)

		posts := st.Load(ctx)
		fmt.Println("\nCache:")
		fmt.Printf("  Generated posts: %d\n", len(posts))
		if lastRun := st.LastRun(ctx); lastRun != "" {
			fmt.Printf("  Last refresh: %s\n", lastRun)
		} else {
			fmt.Println("  Last refresh: never")
		}
		if len(posts) > 0 {
			fmt.Printf("  Newest: %s (%s)\n", posts[0].Title, posts[0].Date)
		}
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Generate one new post and update the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		pipe := pipeline.New(llm.NewClient(cfg.Generation), st, cfg.Blog.PostLimit)
		created, err := pipe.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		fmt.Printf("Created blog post: %s (%s)\n", created.Title, created.Slug)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and, if enabled, the refresh scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		pipe := pipeline.New(llm.NewClient(cfg.Generation), st, cfg.Blog.PostLimit)

		if cfg.Schedule.Enabled {
			interval, err := cfg.Schedule.TickInterval()
			if err != nil {
				return err
			}
			pipe.RunScheduler(ctx, interval)
		}

		fmt.Printf("Starting server at http://localhost:%d\n", cfg.Server.Port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(st, pipe, cfg.Server.RefreshToken(), cfg.Server.Port)
	},
}

// openStore builds the configured store; a nil store (no binding) is
// a valid result and degrades reads to empty.
func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if st == nil {
		log.Println("No persistence binding configured; posts will not be cached")
	}
	return st, nil
}

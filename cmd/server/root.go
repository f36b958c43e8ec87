package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dreamnotes/internal/config"
)

var (
	verbose bool

	flagPort           string
	flagMongoURI       string
	flagDatabase       string
	flagCollection     string
	flagConnectTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "dreamnotes",
	Short: "Dream notes HTTP backend",
	Long: `dreamnotes stores dream notes (title, description, mood) in MongoDB
and serves them over a small JSON API, an HTML page and an MCP endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, newLogger())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	f := rootCmd.Flags()
	f.StringVar(&flagPort, "port", "", "HTTP listen port (env PORT, default 3000)")
	f.StringVar(&flagMongoURI, "mongo-uri", "", "MongoDB connection URI (env MONGODB_URI)")
	f.StringVar(&flagDatabase, "database", "", "MongoDB database name (env MONGODB_DATABASE)")
	f.StringVar(&flagCollection, "collection", "", "MongoDB collection name (env MONGODB_COLLECTION)")
	f.DurationVar(&flagConnectTimeout, "connect-timeout", 0, "Startup connection timeout (env CONNECT_TIMEOUT)")
}

// loadConfig layers explicitly set flags over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("port") {
		cfg.Port = flagPort
	}
	if f.Changed("mongo-uri") {
		cfg.MongoURI = flagMongoURI
	}
	if f.Changed("database") {
		cfg.Database = flagDatabase
	}
	if f.Changed("collection") {
		cfg.Collection = flagCollection
	}
	if f.Changed("connect-timeout") {
		cfg.ConnectTimeout = flagConnectTimeout
	}
	return cfg, cfg.Validate()
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

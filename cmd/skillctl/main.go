// Command skillctl administers the skill-match store from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/logger"
)

const defaultTimeout = 2 * time.Minute

var (
	v = viper.New()

	rootCmd = &cobra.Command{
		Use:           "skillctl",
		Short:         "Manage the skill dictionary, synonyms and role keywords",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "deadline for the whole command")

	_ = v.BindPFlag("DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json"))
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withContainer loads config, connects and hands a wired container to fn.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	zl, err := logger.New(cfg.App.LogJSON, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	c, err := app.NewContainer(cfg, zl)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			zl.Warn("close container", zap.Error(err))
		}
	}()

	return fn(ctx, c)
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// Package main is the entry point for the allowlist command.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/violinist-dev/allowlist-handler/cmd/allowlist/app"
	"github.com/violinist-dev/allowlist-handler/internal/config"
	"github.com/violinist-dev/allowlist-handler/internal/logging"
)

// getLogLevel reads ALLOWLIST_LOG_LEVEL, falling back to LOG_LEVEL.
func getLogLevel() (string, bool) {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	levelStr := v.GetString("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}

	_, ok := logging.ParseLevel(levelStr)
	return levelStr, ok
}

func main() {
	levelStr, ok := getLogLevel()
	level, _ := logging.ParseLevel(levelStr)

	_, atomicLevel, err := logging.Setup(level)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if !ok {
		slog.Warn("Invalid LOG_LEVEL, using INFO", "value", levelStr)
	}

	if err := app.NewRootCmd(atomicLevel).Execute(); err != nil {
		os.Exit(1)
	}
}

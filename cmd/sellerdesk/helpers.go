// Shared helpers for sellerdesk CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/sellerdesk/internal/kvstore"
	"github.com/mesh-intelligence/sellerdesk/pkg/console"
)

// toastNotifier prints success notifications as toast-style lines on
// stdout.
type toastNotifier struct{}

func (toastNotifier) Success(title, description string) {
	fmt.Printf("✓ %s\n  %s\n", title, description)
}

// buildLogger constructs the CLI zap logger. Warnings and above go to
// stderr; --verbose lowers the level to debug.
func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// openConsole resolves the data directory, builds the store config from
// config.yaml, and opens the seller console over it. The caller must
// defer c.Close().
func openConsole() (*console.Console, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logger, err := buildLogger()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	backend := configBackend
	if backend == "" {
		backend = defaultBackend
	}

	c, err := console.Open(console.Config{
		Store: kvstore.Config{
			Backend: backend,
			DataDir: dataDir,
		},
		Notifier: toastNotifier{},
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open console: %w", err)
	}

	return c, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// fail prints a prefixed error to stderr and exits with code.
func fail(code int, prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(code)
}

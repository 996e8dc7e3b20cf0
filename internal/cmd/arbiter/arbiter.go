// Package arbiter parses arbiter service flags and launches the service.
package arbiter

import (
	"context"
	"flag"
	"fmt"

	arbiterserver "github.com/louisbranch/signalyard/internal/arbiter"
	entrypoint "github.com/louisbranch/signalyard/internal/platform/cmd"
)

// Config holds arbiter command configuration.
type Config struct {
	Port        int    `env:"SIGNALYARD_ARBITER_PORT" envDefault:"8095"`
	WorldSide   uint   `env:"SIGNALYARD_WORLD_SIDE" envDefault:"256"`
	JournalPath string `env:"SIGNALYARD_JOURNAL_PATH"`
	PolicyPath  string `env:"SIGNALYARD_POLICY_PATH"`
	MaxConns    int    `env:"SIGNALYARD_ARBITER_MAX_CONNS"`
	Locale      string `env:"SIGNALYARD_LOCALE" envDefault:"en"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The arbiter gRPC server port")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "SQLite command journal path (empty disables journaling)")
	fs.StringVar(&cfg.PolicyPath, "policy", cfg.PolicyPath, "Lua command policy script (empty disables the hook)")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "Maximum concurrent connections (0 for unlimited)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the arbiter gRPC service.
func Run(ctx context.Context, cfg Config) error {
	grant, err := arbiterserver.LoadGrantConfigFromEnv(nil)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceArbiter, func(context.Context) error {
		return arbiterserver.Run(ctx, arbiterserver.Config{
			Addr:        fmt.Sprintf(":%d", cfg.Port),
			WorldSide:   uint32(cfg.WorldSide),
			JournalPath: cfg.JournalPath,
			PolicyPath:  cfg.PolicyPath,
			MaxConns:    cfg.MaxConns,
			Grant:       grant,
			Locale:      cfg.Locale,
		})
	})
}

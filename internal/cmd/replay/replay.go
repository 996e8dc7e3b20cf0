// Package replay re-runs a command journal against a fresh world and
// verifies the outcome is identical to what the arbiter recorded.
package replay

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/signalyard/internal/command"
	"github.com/louisbranch/signalyard/internal/commandlog"
	entrypoint "github.com/louisbranch/signalyard/internal/platform/cmd"
	"github.com/louisbranch/signalyard/internal/sim"
	"github.com/louisbranch/signalyard/internal/wire"
)

// Config holds replay command configuration.
type Config struct {
	JournalPath string `env:"SIGNALYARD_JOURNAL_PATH"`
	WorldSide   uint   `env:"SIGNALYARD_WORLD_SIDE" envDefault:"256"`
	Verbose     bool   `env:"SIGNALYARD_REPLAY_VERBOSE"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "SQLite command journal to replay")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Log every replayed command")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run replays the configured journal.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReplay, func(context.Context) error {
		return Replay(ctx, cfg)
	})
}

// Replay applies every journal entry in order against a fresh world. Each
// replayed command must succeed with the cost and result data the arbiter
// recorded; the first divergence aborts the replay, because everything after
// it would run against a different world.
func Replay(ctx context.Context, cfg Config) error {
	if cfg.JournalPath == "" {
		return fmt.Errorf("journal path is required")
	}
	journal, err := commandlog.Open(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer journal.Close()

	side := uint32(cfg.WorldSide)
	if side == 0 {
		side = 256
	}
	world := sim.NewWorld(side)
	table := sim.NewTable()

	replayed := 0
	err = journal.Walk(ctx, func(e commandlog.Entry) error {
		frame, err := table.DecodeFrameBytes(e.Frame, wire.ReplaceWithQuestionMark)
		if err != nil {
			return fmt.Errorf("entry %d: %w", e.Seq, err)
		}
		if frame.ID != e.ID {
			return fmt.Errorf("entry %d: frame carries %s, journal says %s", e.Seq, frame.ID, e.ID)
		}
		if e.Company != 0 {
			world.Current = e.Company
		}
		cost := table.Do(world, frame.ID, frame.Tile, frame.Payload)
		if cost.Failed() {
			return fmt.Errorf("entry %d (%s): replay failed: %s",
				e.Seq, frame.ID, cost.SummaryMessage("en", 0))
		}
		if cost.Cost() != e.Cost || cost.ResultData() != e.ResultData {
			return fmt.Errorf("entry %d (%s): diverged: cost %d/%d, result %d/%d",
				e.Seq, frame.ID, cost.Cost(), e.Cost, cost.ResultData(), e.ResultData)
		}
		if cfg.Verbose {
			log.Printf("replay %d %s tile=%d %s", e.Seq, frame.ID, frame.Tile, command.Summary(frame.Payload))
		}
		replayed++
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("replayed %d commands, world matches journal", replayed)
	return nil
}

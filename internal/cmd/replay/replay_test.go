package replay

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/signalyard/internal/command"
	"github.com/louisbranch/signalyard/internal/commandlog"
	"github.com/louisbranch/signalyard/internal/sim"
)

// recordJournal applies the given frames against a fresh world and journals
// each one, the way the arbiter does.
func recordJournal(t *testing.T, path string, frames []command.Frame) {
	t.Helper()
	journal, err := commandlog.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer journal.Close()

	world := sim.NewWorld(64)
	table := sim.NewTable()
	for _, f := range frames {
		raw, err := f.EncodeBytes()
		if err != nil {
			t.Fatalf("encode %s: %v", f.ID, err)
		}
		cost := table.Do(world, f.ID, f.Tile, f.Payload)
		if cost.Failed() {
			t.Fatalf("%s failed while recording: %d", f.ID, cost.Message())
		}
		if _, err := journal.Append(context.Background(), commandlog.Entry{
			ID:         f.ID,
			Tile:       f.Tile,
			Company:    world.Current,
			Frame:      raw,
			Cost:       cost.Cost(),
			ResultData: cost.ResultData(),
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func testFrames() []command.Frame {
	return []command.Frame{
		{ID: command.FoundTown, Tile: 100, Payload: &command.Tuple[command.FoundTownData]{
			V: command.FoundTownData{Size: 1, Name: "Slade Falls"}}},
		{ID: command.BuildRailTrack, Tile: 10, Payload: &command.Tuple[command.BuildRailTrackData]{
			V: command.BuildRailTrackData{Track: 1}}},
		{ID: command.CreatePlan, Tile: command.InvalidTile, Payload: &command.EmptyPayload{}},
		{ID: command.RenamePlan, Tile: command.InvalidTile, Payload: &command.Tuple[command.RenamePlanData]{
			V: command.RenamePlanData{Plan: 0, Name: "mainline"}}},
		{ID: command.RemoveRailTrack, Tile: 10, Payload: &command.Tuple[command.RemoveRailTrackData]{
			V: command.RemoveRailTrackData{Track: 1}}},
	}
}

func TestReplayMatchesJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	recordJournal(t, path, testFrames())

	if err := Replay(context.Background(), Config{JournalPath: path, WorldSide: 64}); err != nil {
		t.Fatalf("replay: %v", err)
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	recordJournal(t, path, testFrames())

	// Replaying against a different-size world relocates tiles and towns, so
	// the first spatial command must diverge or fail.
	err := Replay(context.Background(), Config{JournalPath: path, WorldSide: 8})
	if err == nil {
		t.Fatal("expected replay against a different world to fail")
	}
}

func TestReplayRequiresJournalPath(t *testing.T) {
	err := Replay(context.Background(), Config{})
	if err == nil || !strings.Contains(err.Error(), "journal path") {
		t.Fatalf("err = %v", err)
	}
}

package sim

import (
	"testing"

	"github.com/louisbranch/signalyard/internal/command"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
	"github.com/louisbranch/signalyard/internal/wire"
)

func TestTableCoversEveryCommand(t *testing.T) {
	r := NewTable()
	for id := command.ID(0); id < command.End; id++ {
		if _, ok := r.Def(id); !ok {
			t.Fatalf("%s missing from table", id)
		}
		if r.NewPayload(id) == nil {
			t.Fatalf("%s has no payload factory", id)
		}
	}
}

func TestBuildRailTrackLifecycle(t *testing.T) {
	w := NewWorld(64)
	r := NewTable()
	before := w.Companies[w.Current].Money

	// Dry run must not touch the world.
	c := r.Test(w, command.BuildRailTrack, 10,
		&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1, RailType: 0}})
	if c.Failed() {
		t.Fatalf("dry run failed: %d", c.Message())
	}
	if len(w.Tracks) != 0 || w.Companies[w.Current].Money != before {
		t.Fatal("dry run mutated the world")
	}

	c = r.Do(w, command.BuildRailTrack, 10,
		&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1, RailType: 0}})
	if c.Failed() {
		t.Fatalf("build failed: %d", c.Message())
	}
	if c.Cost() != costRailTrack {
		t.Fatalf("cost = %d", c.Cost())
	}
	if c.Tile() != 10 {
		t.Fatalf("result tile = %d", c.Tile())
	}
	if w.Tracks[10] == nil || w.Tracks[10].Pieces != 1 {
		t.Fatalf("track not laid: %+v", w.Tracks[10])
	}
	if got := w.Companies[w.Current].Money; got != before-costRailTrack {
		t.Fatalf("money = %d, want %d", got, before-costRailTrack)
	}

	// Same piece again is rejected.
	c = r.Do(w, command.BuildRailTrack, 10,
		&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1}})
	if !c.Failed() || c.Message() != apperrors.CodeRailAlreadyBuilt {
		t.Fatalf("rebuild: failed=%v message=%d", c.Failed(), c.Message())
	}

	// Removal refunds.
	c = r.Do(w, command.RemoveRailTrack, 10,
		&command.Tuple[command.RemoveRailTrackData]{V: command.RemoveRailTrackData{Track: 1}})
	if c.Failed() {
		t.Fatalf("remove failed: %d", c.Message())
	}
	if c.Cost() != refundRail {
		t.Fatalf("refund = %d", c.Cost())
	}
	if _, ok := w.Tracks[10]; ok {
		t.Fatal("track survived removal")
	}

	c = r.Do(w, command.RemoveRailTrack, 10,
		&command.Tuple[command.RemoveRailTrackData]{V: command.RemoveRailTrackData{Track: 1}})
	if !c.Failed() || c.Message() != apperrors.CodeNoTrackToRemove {
		t.Fatalf("double remove: message=%d", c.Message())
	}
}

func TestBuildRailTrackEdges(t *testing.T) {
	w := NewWorld(8)
	r := NewTable()

	off := command.TileIndex(8 * 8)
	c := r.Do(w, command.BuildRailTrack, off,
		&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1}})
	if c.Message() != apperrors.CodeOffMap {
		t.Fatalf("off-map message = %d", c.Message())
	}

	w.Companies[w.Current].Money = costRailTrack - 1
	c = r.Do(w, command.BuildRailTrack, 3,
		&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1}})
	if c.Message() != apperrors.CodeNotEnoughCash {
		t.Fatalf("broke company message = %d", c.Message())
	}

	w.Companies[w.Current].Money = startingMoney
	w.Bridges[5] = true
	c = r.Do(w, command.BuildRailTrack, 5,
		&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1}})
	if c.Failed() {
		t.Fatalf("under-bridge build failed: %d", c.Message())
	}
	if c.ExtraMessage() != apperrors.CodeTrackUnderBridge {
		t.Fatalf("extra message = %d", c.ExtraMessage())
	}
}

func TestFoundTownRules(t *testing.T) {
	w := NewWorld(64)
	r := NewTable()

	found := func(tile command.TileIndex, size uint8, name string) command.CommandCost {
		return r.Do(w, command.FoundTown, tile,
			&command.Tuple[command.FoundTownData]{V: command.FoundTownData{Size: size, Name: name}})
	}

	c := found(100, 1, "Slade Falls")
	if c.Failed() {
		t.Fatalf("found failed: %d", c.Message())
	}
	if c.Cost() != costTownBase*2 {
		t.Fatalf("cost = %d", c.Cost())
	}
	id := command.TownID(c.ResultData())
	if w.Towns[id] == nil || w.Towns[id].Name != "Slade Falls" {
		t.Fatalf("town not created: %+v", w.Towns)
	}

	if c := found(3000, 1, "Slade Falls"); c.Message() != apperrors.CodeTownNameTaken {
		t.Fatalf("duplicate name message = %d", c.Message())
	}
	if c := found(101, 1, "Nextdoor"); c.Message() != apperrors.CodeTooCloseToTown {
		t.Fatalf("spacing message = %d", c.Message())
	}
	if c := found(3000, 1, ""); c.Message() != apperrors.CodeNameEmpty {
		t.Fatalf("empty name message = %d", c.Message())
	}
	long := make([]byte, maxNameRunes+1)
	for i := range long {
		long[i] = 'x'
	}
	if c := found(3000, 1, string(long)); c.Message() != apperrors.CodeNameTooLong {
		t.Fatalf("long name message = %d", c.Message())
	}

	c = r.Do(w, command.RenameTown, 0,
		&command.Tuple[command.RenameTownData]{V: command.RenameTownData{Town: id, Name: "Tinwell"}})
	if c.Failed() {
		t.Fatalf("rename failed: %d", c.Message())
	}
	if w.Towns[id].Name != "Tinwell" {
		t.Fatalf("name = %q", w.Towns[id].Name)
	}
	c = r.Do(w, command.RenameTown, 0,
		&command.Tuple[command.RenameTownData]{V: command.RenameTownData{Town: 999, Name: "x"}})
	if c.Message() != apperrors.CodeTownNotFound {
		t.Fatalf("missing town message = %d", c.Message())
	}
}

func TestPlans(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()

	c := r.Do(w, command.CreatePlan, command.InvalidTile, &command.EmptyPayload{})
	if c.Failed() {
		t.Fatalf("create failed: %d", c.Message())
	}
	id := command.PlanID(c.ResultData())
	if w.Plans[id] == nil {
		t.Fatal("plan not created")
	}

	c = r.Do(w, command.RenamePlan, command.InvalidTile,
		&command.Tuple[command.RenamePlanData]{V: command.RenamePlanData{Plan: id, Name: "mainline"}})
	if c.Failed() || w.Plans[id].Name != "mainline" {
		t.Fatalf("rename: message=%d name=%q", c.Message(), w.Plans[id].Name)
	}

	c = r.Do(w, command.RenamePlan, command.InvalidTile,
		&command.Tuple[command.RenamePlanData]{V: command.RenamePlanData{Plan: id + 1, Name: "x"}})
	if c.Message() != apperrors.CodePlanNotFound {
		t.Fatalf("missing plan message = %d", c.Message())
	}

	for len(w.Plans) < maxPlans {
		w.Plans[w.nextPlan] = &Plan{Owner: w.Current}
		w.nextPlan++
	}
	c = r.Do(w, command.CreatePlan, command.InvalidTile, &command.EmptyPayload{})
	if c.Message() != apperrors.CodeTooManyPlans {
		t.Fatalf("plan limit message = %d", c.Message())
	}
}

func TestStartStopVehicle(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()
	w.Vehicles[8] = &Vehicle{}

	start := func(v command.VehicleID, s bool) command.CommandCost {
		return r.Do(w, command.StartStopVehicle, command.InvalidTile,
			&command.Tuple[command.StartStopVehicleData]{V: command.StartStopVehicleData{Vehicle: v, StartStop: s}})
	}

	if c := start(8, true); c.Failed() || !w.Vehicles[8].Running {
		t.Fatalf("start: message=%d running=%v", c.Message(), w.Vehicles[8].Running)
	}
	if c := start(8, false); c.Failed() || w.Vehicles[8].Running {
		t.Fatalf("stop: message=%d running=%v", c.Message(), w.Vehicles[8].Running)
	}
	if c := start(9, true); c.Message() != apperrors.CodeVehicleNotFound {
		t.Fatalf("missing vehicle message = %d", c.Message())
	}

	w.Vehicles[8].InDepot = true
	if c := start(8, true); c.Message() != apperrors.CodeVehicleInDepot {
		t.Fatalf("depot message = %d", c.Message())
	}
	if c := start(8, false); c.Failed() {
		t.Fatalf("stopping in depot failed: %d", c.Message())
	}
}

func TestMoneyCheat(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()
	before := w.Companies[w.Current].Money

	c := r.Do(w, command.MoneyCheat, command.InvalidTile,
		&command.Tuple[command.MoneyCheatData]{V: command.MoneyCheatData{Amount: 1000000}})
	if c.Failed() {
		t.Fatalf("cheat failed: %d", c.Message())
	}
	if got := w.Companies[w.Current].Money; got != before+1000000 {
		t.Fatalf("money = %d", got)
	}
}

func TestPauseToggle(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()

	pause := func(mode uint8, paused bool) command.CommandCost {
		return r.Do(w, command.Pause, command.InvalidTile,
			&command.Tuple[command.PauseData]{V: command.PauseData{Mode: mode, Paused: paused}})
	}

	if c := pause(1, true); c.Failed() || !w.Paused {
		t.Fatalf("pause: message=%d paused=%v", c.Message(), w.Paused)
	}
	if c := pause(1, true); c.Message() != apperrors.CodeAlreadyPaused {
		t.Fatalf("re-pause message = %d", c.Message())
	}
	if c := pause(2, true); c.Failed() {
		t.Fatalf("second mode failed: %d", c.Message())
	}
	if c := pause(1, false); c.Failed() || !w.Paused {
		t.Fatal("clearing one mode should keep the other paused")
	}
	if c := pause(2, false); c.Failed() || w.Paused {
		t.Fatal("clearing the last mode should unpause")
	}
}

func TestPlaceSign(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()

	place := func(tile command.TileIndex, text string) command.CommandCost {
		return r.Do(w, command.PlaceSign, tile,
			&command.Tuple[command.PlaceSignData]{V: command.PlaceSignData{Text: text}})
	}

	if c := place(4, "depot north"); c.Failed() || w.Signs[4] != "depot north" {
		t.Fatalf("place: message=%d signs=%v", c.Message(), w.Signs)
	}
	if c := place(5, "   "); c.Message() != apperrors.CodeSignTextEmpty {
		t.Fatalf("empty text message = %d", c.Message())
	}
	// Blank text on an existing sign removes it.
	if c := place(4, ""); c.Failed() {
		t.Fatalf("remove failed: %d", c.Message())
	}
	if _, ok := w.Signs[4]; ok {
		t.Fatal("sign survived removal")
	}
}

func TestProgramSignal(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()
	w.Tracks[7] = &Track{Pieces: 1}

	prog := func(tile command.TileIndex, track uint8, ins []uint32) command.CommandCost {
		return r.Do(w, command.ProgramSignal, tile,
			&command.ProgramSignalPayload{Track: track, Instructions: ins})
	}

	if c := prog(7, 1, []uint32{1, 2, 3}); c.Failed() {
		t.Fatalf("program failed: %d", c.Message())
	}
	if len(w.Programs[7]) != 3 {
		t.Fatalf("program = %v", w.Programs[7])
	}
	if c := prog(7, 2, []uint32{1}); c.Message() != apperrors.CodeSignalProgramInvalid {
		t.Fatalf("wrong track message = %d", c.Message())
	}
	if c := prog(7, 1, nil); c.Message() != apperrors.CodeSignalProgramInvalid {
		t.Fatalf("empty program message = %d", c.Message())
	}
	bad := uint32(signalOpcodeCount) << 24
	if c := prog(7, 1, []uint32{bad}); c.Message() != apperrors.CodeSignalProgramInvalid {
		t.Fatalf("bad opcode message = %d", c.Message())
	}

	// Removing the rail discards the program.
	c := r.Do(w, command.RemoveRailTrack, 7,
		&command.Tuple[command.RemoveRailTrackData]{V: command.RemoveRailTrackData{Track: 1}})
	if c.Failed() {
		t.Fatalf("remove failed: %d", c.Message())
	}
	if _, ok := w.Programs[7]; ok {
		t.Fatal("program survived rail removal")
	}
}

func TestCompanyCtrl(t *testing.T) {
	w := NewWorld(16)
	r := NewTable()

	p := &command.CompanyCtrlPayload{}
	p.V.Action = CompanyActionNew
	if !r.PatchClientID(command.CompanyCtrl, p, 42) {
		t.Fatal("client id not stamped")
	}
	c := r.Do(w, command.CompanyCtrl, command.InvalidTile, p)
	if c.Failed() {
		t.Fatalf("create failed: %d", c.Message())
	}
	id := command.CompanyID(c.ResultData())
	if w.Companies[id] == nil {
		t.Fatal("company not created")
	}

	rm := &command.CompanyCtrlPayload{}
	rm.V.Action = CompanyActionRemove
	rm.V.Company = id
	if c := r.Do(w, command.CompanyCtrl, command.InvalidTile, rm); c.Failed() {
		t.Fatalf("remove failed: %d", c.Message())
	}
	if _, ok := w.Companies[id]; ok {
		t.Fatal("company survived removal")
	}
	if c := r.Do(w, command.CompanyCtrl, command.InvalidTile, rm); c.Message() != apperrors.CodeCompanyNotFound {
		t.Fatalf("double remove message = %d", c.Message())
	}
}

// End to end: a frame produced by a client decodes and dispatches against
// the world.
func TestFrameDispatch(t *testing.T) {
	w := NewWorld(64)
	r := NewTable()

	raw, err := command.Frame{
		ID:   command.FoundTown,
		Tile: 200,
		Payload: &command.Tuple[command.FoundTownData]{
			V: command.FoundTownData{Size: 2, Name: "Slade Falls"},
		},
	}.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	f, err := r.DecodeFrameBytes(raw, wire.ReplaceWithQuestionMark)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := r.Do(w, f.ID, f.Tile, f.Payload)
	if c.Failed() {
		t.Fatalf("dispatch failed: %d", c.Message())
	}
	town := w.Towns[command.TownID(c.ResultData())]
	if town == nil || town.Tile != 200 || town.Name != "Slade Falls" {
		t.Fatalf("town = %+v", town)
	}
}

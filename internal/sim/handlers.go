package sim

import (
	"strings"

	"github.com/louisbranch/signalyard/internal/command"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
)

// Handlers follow the dispatch contract: without the Execute flag they only
// validate and cost the order; with it they apply exactly what the dry run
// costed. Cost on execute must never exceed the dry-run cost.

// BuildRailTrack lays rail pieces on a tile. Building under a bridge
// succeeds but carries a warning message.
func (w *World) BuildRailTrack(flags command.DoFlag, tile command.TileIndex, track, railType uint8) command.CommandCost {
	if !w.validTile(tile) {
		return command.NewError(apperrors.CodeOffMap)
	}
	existing := w.Tracks[tile]
	if existing != nil && existing.Pieces&track == track {
		return command.NewError(apperrors.CodeRailAlreadyBuilt)
	}

	c := command.NewCost(command.ExpenseConstruction)
	c.AddCost(costRailTrack)
	c.SetTile(tile)
	if w.Bridges[tile] {
		c.SetExtraMessage(apperrors.CodeTrackUnderBridge)
	}
	if c = w.settle(flags, c); c.Failed() {
		return c
	}

	if flags&command.Execute != 0 {
		if existing == nil {
			existing = &Track{RailType: railType}
			w.Tracks[tile] = existing
		}
		existing.Pieces |= track
	}
	return c
}

// RemoveRailTrack removes rail pieces from a tile, refunding part of the
// build cost.
func (w *World) RemoveRailTrack(flags command.DoFlag, tile command.TileIndex, track uint8) command.CommandCost {
	if !w.validTile(tile) {
		return command.NewError(apperrors.CodeOffMap)
	}
	existing := w.Tracks[tile]
	if existing == nil || existing.Pieces&track == 0 {
		return command.NewError(apperrors.CodeNoTrackToRemove)
	}

	c := command.NewCost(command.ExpenseConstruction)
	c.AddCost(refundRail)
	c.SetTile(tile)
	if c = w.settle(flags, c); c.Failed() {
		return c
	}

	if flags&command.Execute != 0 {
		existing.Pieces &^= track
		if existing.Pieces == 0 {
			delete(w.Tracks, tile)
			delete(w.Programs, tile)
		}
	}
	return c
}

// FoundTown founds a new town on a tile.
func (w *World) FoundTown(flags command.DoFlag, tile command.TileIndex, size uint8, name string) command.CommandCost {
	if !w.validTile(tile) {
		return command.NewError(apperrors.CodeOffMap)
	}
	if code := checkName(name); code != apperrors.CodeNone {
		return command.NewError(code)
	}
	for _, t := range w.Towns {
		if t.Name == name {
			return command.NewError(apperrors.CodeTownNameTaken)
		}
		if manhattan(t.Tile, tile, w.Side) < minTownSpacing {
			return command.NewError(apperrors.CodeTooCloseToTown)
		}
	}

	c := command.NewCost(command.ExpenseConstruction)
	c.AddCost(costTownBase * command.Money(size+1))
	c.SetTile(tile)
	if c = w.settle(flags, c); c.Failed() {
		return c
	}

	if flags&command.Execute != 0 {
		id := w.nextTown
		w.nextTown++
		w.Towns[id] = &Town{Tile: tile, Size: size, Name: name}
		c.SetResultData(uint32(id))
	}
	return c
}

// RenameTown renames an existing town.
func (w *World) RenameTown(flags command.DoFlag, town command.TownID, name string) command.CommandCost {
	t, ok := w.Towns[town]
	if !ok {
		return command.NewError(apperrors.CodeTownNotFound)
	}
	if code := checkName(name); code != apperrors.CodeNone {
		return command.NewError(code)
	}
	for id, other := range w.Towns {
		if id != town && other.Name == name {
			return command.NewError(apperrors.CodeTownNameTaken)
		}
	}
	if flags&command.Execute != 0 {
		t.Name = name
	}
	return command.NewCost(command.ExpenseOther)
}

// CreatePlan allocates a new drawing plan for the current company. The new
// plan's id is reported through the result data.
func (w *World) CreatePlan(flags command.DoFlag) command.CommandCost {
	if len(w.Plans) >= maxPlans {
		return command.NewError(apperrors.CodeTooManyPlans)
	}
	c := command.NewCost(command.ExpenseOther)
	if flags&command.Execute != 0 {
		id := w.nextPlan
		w.nextPlan++
		w.Plans[id] = &Plan{Owner: w.Current}
		c.SetResultData(uint32(id))
	}
	return c
}

// RenamePlan names an existing plan.
func (w *World) RenamePlan(flags command.DoFlag, plan command.PlanID, name string) command.CommandCost {
	p, ok := w.Plans[plan]
	if !ok {
		return command.NewError(apperrors.CodePlanNotFound)
	}
	if code := checkName(name); code != apperrors.CodeNone {
		return command.NewError(code)
	}
	if flags&command.Execute != 0 {
		p.Name = name
	}
	return command.NewCost(command.ExpenseOther)
}

// StartStopVehicle toggles a vehicle's running state. A vehicle stabled in a
// depot cannot be started.
func (w *World) StartStopVehicle(flags command.DoFlag, vehicle command.VehicleID, start bool) command.CommandCost {
	v, ok := w.Vehicles[vehicle]
	if !ok {
		return command.NewError(apperrors.CodeVehicleNotFound)
	}
	if start && v.InDepot {
		return command.NewError(apperrors.CodeVehicleInDepot)
	}
	if flags&command.Execute != 0 {
		v.Running = start
	}
	return command.NewCost(command.ExpenseTrainRunning)
}

// MoneyCheat grants (or removes) money on the current company, bypassing the
// normal cost accounting.
func (w *World) MoneyCheat(flags command.DoFlag, amount command.Money) command.CommandCost {
	co := w.Companies[w.Current]
	if co == nil {
		return command.NewError(apperrors.CodeCompanyNotFound)
	}
	if flags&command.Execute != 0 {
		co.Money += amount
	}
	return command.NewCost(command.ExpenseOther)
}

// Pause sets or clears one pause-mode bit. Re-applying the current state is
// rejected so toggles from stale clients do not flap the game.
func (w *World) Pause(flags command.DoFlag, mode uint8, paused bool) command.CommandCost {
	set := w.PauseMode&mode != 0
	if set == paused {
		return command.NewError(apperrors.CodeAlreadyPaused)
	}
	if flags&command.Execute != 0 {
		if paused {
			w.PauseMode |= mode
		} else {
			w.PauseMode &^= mode
		}
		w.Paused = w.PauseMode != 0
	}
	return command.NewCost(command.ExpenseOther)
}

// PlaceSign writes free text onto a tile. Empty text removes the sign.
func (w *World) PlaceSign(flags command.DoFlag, tile command.TileIndex, text string) command.CommandCost {
	if !w.validTile(tile) {
		return command.NewError(apperrors.CodeOffMap)
	}
	_, exists := w.Signs[tile]
	if strings.TrimSpace(text) == "" && !exists {
		return command.NewError(apperrors.CodeSignTextEmpty)
	}
	if flags&command.Execute != 0 {
		if strings.TrimSpace(text) == "" {
			delete(w.Signs, tile)
		} else {
			w.Signs[tile] = text
		}
	}
	return command.NewCost(command.ExpenseOther)
}

// ProgramSignal installs a signal program on a rail tile.
func (w *World) ProgramSignal(flags command.DoFlag, tile command.TileIndex, track uint8, instructions []uint32) command.CommandCost {
	if !w.validTile(tile) {
		return command.NewError(apperrors.CodeOffMap)
	}
	existing := w.Tracks[tile]
	if existing == nil || existing.Pieces&track == 0 {
		return command.NewError(apperrors.CodeSignalProgramInvalid)
	}
	if len(instructions) == 0 {
		return command.NewError(apperrors.CodeSignalProgramInvalid)
	}
	for _, ins := range instructions {
		if ins>>24 >= signalOpcodeCount {
			return command.NewError(apperrors.CodeSignalProgramInvalid)
		}
	}
	if flags&command.Execute != 0 {
		w.Programs[tile] = append([]uint32(nil), instructions...)
	}
	c := command.NewCost(command.ExpenseConstruction)
	c.SetTile(tile)
	return c
}

// signalOpcodeCount is the number of defined signal program opcodes; the
// opcode lives in an instruction's high byte.
const signalOpcodeCount = 8

// Company control actions.
const (
	CompanyActionNew    = 0
	CompanyActionRemove = 1
)

// CompanyCtrl creates or removes a company. The client id is stamped by the
// dispatcher; for a new company the allocated id is reported through the
// result data.
func (w *World) CompanyCtrl(flags command.DoFlag, action uint8, target command.CompanyID, client command.ClientID) command.CommandCost {
	switch action {
	case CompanyActionNew:
		c := command.NewCost(command.ExpenseOther)
		if flags&command.Execute != 0 {
			c.SetResultData(uint32(w.addCompany()))
		}
		return c
	case CompanyActionRemove:
		if _, ok := w.Companies[target]; !ok {
			return command.NewError(apperrors.CodeCompanyNotFound)
		}
		if flags&command.Execute != 0 {
			delete(w.Companies, target)
		}
		return command.NewCost(command.ExpenseOther)
	default:
		return command.NewError(apperrors.CodeGenericFailure)
	}
}

// Package sim holds the authoritative game world the command handlers
// mutate, and the dispatch table binding every command id to its handler.
//
// The world is deliberately small: just enough state for each command to be
// validated and applied end to end. It is not safe for concurrent use; the
// arbiter serializes all dispatch onto one goroutine.
package sim

import (
	"unicode/utf8"

	"github.com/louisbranch/signalyard/internal/command"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
)

const (
	// maxNameRunes bounds player-supplied names.
	maxNameRunes = 31
	// maxPlans bounds drawing plans per world.
	maxPlans = 64
	// minTownSpacing is the smallest Manhattan distance between town tiles.
	minTownSpacing = 20

	costRailTrack = command.Money(100)
	refundRail    = command.Money(-50)
	costTownBase  = command.Money(1000)
	startingMoney = command.Money(100000)
)

// Company is one player company's ledger.
type Company struct {
	Money command.Money
}

// Town is a founded settlement.
type Town struct {
	Tile command.TileIndex
	Size uint8
	Name string
}

// Plan is a client drawing plan; the world only tracks identity and name.
type Plan struct {
	Owner command.CompanyID
	Name  string
}

// Vehicle is a dispatchable vehicle.
type Vehicle struct {
	Running bool
	InDepot bool
}

// Track is the rail present on one tile.
type Track struct {
	Pieces   uint8
	RailType uint8
}

// World is the full mutable game state.
type World struct {
	// Side is the map edge length; valid tiles are < Side*Side.
	Side uint32

	Paused    bool
	PauseMode uint8

	// Current is the company on whose behalf the next command runs.
	Current command.CompanyID

	Companies map[command.CompanyID]*Company
	Towns     map[command.TownID]*Town
	Plans     map[command.PlanID]*Plan
	Vehicles  map[command.VehicleID]*Vehicle
	Signs     map[command.TileIndex]string
	Tracks    map[command.TileIndex]*Track
	Programs  map[command.TileIndex][]uint32

	// Bridges marks tiles spanned by a bridge; building under one succeeds
	// with a warning.
	Bridges map[command.TileIndex]bool

	nextTown    command.TownID
	nextPlan    command.PlanID
	nextCompany command.CompanyID
}

// NewWorld builds an empty world with one funded company, which is also the
// current company.
func NewWorld(side uint32) *World {
	w := &World{
		Side:        side,
		Companies:   make(map[command.CompanyID]*Company),
		Towns:       make(map[command.TownID]*Town),
		Plans:       make(map[command.PlanID]*Plan),
		Vehicles:    make(map[command.VehicleID]*Vehicle),
		Signs:       make(map[command.TileIndex]string),
		Tracks:      make(map[command.TileIndex]*Track),
		Programs:    make(map[command.TileIndex][]uint32),
		Bridges:     make(map[command.TileIndex]bool),
		nextCompany: 1,
	}
	w.Current = w.addCompany()
	return w
}

func (w *World) addCompany() command.CompanyID {
	id := w.nextCompany
	w.nextCompany++
	w.Companies[id] = &Company{Money: startingMoney}
	return id
}

func (w *World) validTile(tile command.TileIndex) bool {
	return uint32(tile) < w.Side*w.Side
}

// checkName validates a player-supplied name, returning CodeNone when it is
// acceptable.
func checkName(name string) apperrors.Code {
	if name == "" {
		return apperrors.CodeNameEmpty
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		return apperrors.CodeNameTooLong
	}
	return apperrors.CodeNone
}

// settle applies the money side of a successful result: the current company
// must be able to afford a positive cost, and on execute the cost (or
// refund) hits its ledger. Failed results pass through untouched.
func (w *World) settle(flags command.DoFlag, c command.CommandCost) command.CommandCost {
	if c.Failed() {
		return c
	}
	co := w.Companies[w.Current]
	if co == nil {
		return command.NewError(apperrors.CodeCompanyNotFound)
	}
	if c.Cost() > 0 && co.Money < c.Cost() {
		return command.NewError(apperrors.CodeNotEnoughCash)
	}
	if flags&command.Execute != 0 {
		co.Money -= c.Cost()
	}
	return c
}

func manhattan(a, b command.TileIndex, side uint32) uint32 {
	ax, ay := uint32(a)%side, uint32(a)/side
	bx, by := uint32(b)%side, uint32(b)/side
	dx := ax - bx
	if ax < bx {
		dx = bx - ax
	}
	dy := ay - by
	if ay < by {
		dy = by - ay
	}
	return dx + dy
}

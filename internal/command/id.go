package command

import "fmt"

// ID identifies one command kind. Values are dense, start at zero, and End
// equals the registry length; they are wire-stable and must not be
// reordered.
type ID uint16

const (
	BuildRailTrack ID = iota
	RemoveRailTrack
	FoundTown
	RenameTown
	CreatePlan
	RenamePlan
	StartStopVehicle
	MoneyCheat
	Pause
	PlaceSign
	ProgramSignal
	CompanyCtrl

	// End is the table-length sentinel, not a command.
	End
)

var idNames = [End]string{
	BuildRailTrack:   "build_rail_track",
	RemoveRailTrack:  "remove_rail_track",
	FoundTown:        "found_town",
	RenameTown:       "rename_town",
	CreatePlan:       "create_plan",
	RenamePlan:       "rename_plan",
	StartStopVehicle: "start_stop_vehicle",
	MoneyCheat:       "money_cheat",
	Pause:            "pause",
	PlaceSign:        "place_sign",
	ProgramSignal:    "program_signal",
	CompanyCtrl:      "company_ctrl",
}

// Valid reports whether the id addresses a registry entry.
func (id ID) Valid() bool {
	return id < End
}

func (id ID) String() string {
	if id < End {
		return idNames[id]
	}
	return fmt.Sprintf("command(%d)", uint16(id))
}

package sim

import "github.com/louisbranch/signalyard/internal/command"

// NewTable assembles the dispatch table: one Def per command id, each with a
// trampoline that downcasts the payload to its concrete type and calls the
// typed handler. The table is built once at startup and shared read-only.
func NewTable() *command.Registry[*World] {
	return command.MustNewRegistry(map[command.ID]command.Def[*World]{
		command.BuildRailTrack: {
			NewPayload: func() command.Payload { return &command.Tuple[command.BuildRailTrackData]{} },
			Exec: func(w *World, flags command.DoFlag, tile command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.BuildRailTrackData]).V
				return w.BuildRailTrack(flags, tile, d.Track, d.RailType)
			},
			Category: command.CategoryConstruction,
		},
		command.RemoveRailTrack: {
			NewPayload: func() command.Payload { return &command.Tuple[command.RemoveRailTrackData]{} },
			Exec: func(w *World, flags command.DoFlag, tile command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.RemoveRailTrackData]).V
				return w.RemoveRailTrack(flags, tile, d.Track)
			},
			Category: command.CategoryConstruction,
		},
		command.FoundTown: {
			NewPayload: func() command.Payload { return &command.Tuple[command.FoundTownData]{} },
			Exec: func(w *World, flags command.DoFlag, tile command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.FoundTownData]).V
				return w.FoundTown(flags, tile, d.Size, d.Name)
			},
			Category: command.CategoryConstruction,
		},
		command.RenameTown: {
			NewPayload: func() command.Payload { return &command.Tuple[command.RenameTownData]{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.RenameTownData]).V
				return w.RenameTown(flags, d.Town, d.Name)
			},
			Category: command.CategoryOther,
		},
		command.CreatePlan: {
			NewPayload: func() command.Payload { return &command.EmptyPayload{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, _ command.Payload) command.CommandCost {
				return w.CreatePlan(flags)
			},
			Flags:    command.FlagSpectator,
			Category: command.CategoryOther,
		},
		command.RenamePlan: {
			NewPayload: func() command.Payload { return &command.Tuple[command.RenamePlanData]{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.RenamePlanData]).V
				return w.RenamePlan(flags, d.Plan, d.Name)
			},
			Flags:    command.FlagSpectator,
			Category: command.CategoryOther,
		},
		command.StartStopVehicle: {
			NewPayload: func() command.Payload { return &command.Tuple[command.StartStopVehicleData]{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.StartStopVehicleData]).V
				return w.StartStopVehicle(flags, d.Vehicle, d.StartStop)
			},
			Category: command.CategoryVehicle,
		},
		command.MoneyCheat: {
			NewPayload: func() command.Payload { return &command.Tuple[command.MoneyCheatData]{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.MoneyCheatData]).V
				return w.MoneyCheat(flags, d.Amount)
			},
			Flags:    command.FlagServer | command.FlagOffline | command.FlagNoEstimate,
			Category: command.CategoryCheat,
		},
		command.Pause: {
			NewPayload: func() command.Payload { return &command.Tuple[command.PauseData]{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.PauseData]).V
				return w.Pause(flags, d.Mode, d.Paused)
			},
			Flags:    command.FlagServer | command.FlagSpectator | command.FlagOffline,
			Category: command.CategoryAdmin,
		},
		command.PlaceSign: {
			NewPayload: func() command.Payload { return &command.Tuple[command.PlaceSignData]{} },
			Exec: func(w *World, flags command.DoFlag, tile command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.Tuple[command.PlaceSignData]).V
				return w.PlaceSign(flags, tile, d.Text)
			},
			Flags:    command.FlagSpectator,
			Category: command.CategoryOther,
		},
		command.ProgramSignal: {
			NewPayload: func() command.Payload { return &command.ProgramSignalPayload{} },
			Exec: func(w *World, flags command.DoFlag, tile command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.ProgramSignalPayload)
				return w.ProgramSignal(flags, tile, d.Track, d.Instructions)
			},
			Category: command.CategoryConstruction,
		},
		command.CompanyCtrl: {
			NewPayload: func() command.Payload { return &command.CompanyCtrlPayload{} },
			Exec: func(w *World, flags command.DoFlag, _ command.TileIndex, p command.Payload) command.CommandCost {
				d := p.(*command.CompanyCtrlPayload).V
				return w.CompanyCtrl(flags, d.Action, d.Company, d.Client)
			},
			Flags:    command.FlagServer | command.FlagSpectator | command.FlagOffline | command.FlagNoEstimate | command.FlagClientID,
			Category: command.CategoryAdmin,
		},
	})
}

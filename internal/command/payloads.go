package command

import (
	"strconv"

	"github.com/louisbranch/signalyard/internal/wire"
)

// Tuple payload declarations. The field list fixes the wire layout; see
// Field for the ordering contract.

// BuildRailTrackData holds the arguments of a rail construction order.
type BuildRailTrackData struct {
	Track    uint8
	RailType uint8
}

func (BuildRailTrackData) Spec() TupleSpec[BuildRailTrackData] { return buildRailTrackSpec }

var buildRailTrackSpec = TupleSpec[BuildRailTrackData]{
	Fields: []Field[BuildRailTrackData]{
		{Name: "track", Kind: KindUint8, Ref: func(p *BuildRailTrackData) any { return &p.Track }},
		{Name: "rail_type", Kind: KindUint8, Ref: func(p *BuildRailTrackData) any { return &p.RailType }},
	},
}

// RemoveRailTrackData holds the arguments of a rail removal order.
type RemoveRailTrackData struct {
	Track uint8
}

func (RemoveRailTrackData) Spec() TupleSpec[RemoveRailTrackData] { return removeRailTrackSpec }

var removeRailTrackSpec = TupleSpec[RemoveRailTrackData]{
	Fields: []Field[RemoveRailTrackData]{
		{Name: "track", Kind: KindUint8, Ref: func(p *RemoveRailTrackData) any { return &p.Track }},
	},
}

// FoundTownData holds the arguments for founding a town.
type FoundTownData struct {
	Size uint8
	Name string
}

func (FoundTownData) Spec() TupleSpec[FoundTownData] { return foundTownSpec }

var foundTownSpec = TupleSpec[FoundTownData]{
	Fields: []Field[FoundTownData]{
		{Name: "size", Kind: KindUint8, Ref: func(p *FoundTownData) any { return &p.Size }},
		{Name: "name", Kind: KindString, Ref: func(p *FoundTownData) any { return &p.Name }},
	},
}

// RenameTownData holds the arguments for renaming a town.
type RenameTownData struct {
	Town TownID
	Name string
}

func (RenameTownData) Spec() TupleSpec[RenameTownData] { return renameTownSpec }

var renameTownSpec = TupleSpec[RenameTownData]{
	Fields: []Field[RenameTownData]{
		{Name: "town", Kind: KindUint16, Ref: func(p *RenameTownData) any { return (*uint16)(&p.Town) }},
		{Name: "name", Kind: KindString, Ref: func(p *RenameTownData) any { return &p.Name }},
	},
}

// RenamePlanData holds the arguments for renaming a drawing plan.
type RenamePlanData struct {
	Plan PlanID
	Name string
}

func (RenamePlanData) Spec() TupleSpec[RenamePlanData] { return renamePlanSpec }

var renamePlanSpec = TupleSpec[RenamePlanData]{
	Fields: []Field[RenamePlanData]{
		{Name: "plan", Kind: KindUint16, Ref: func(p *RenamePlanData) any { return (*uint16)(&p.Plan) }},
		{Name: "name", Kind: KindString, Ref: func(p *RenamePlanData) any { return &p.Name }},
	},
}

// StartStopVehicleData holds the arguments for toggling a vehicle.
type StartStopVehicleData struct {
	Vehicle   VehicleID
	StartStop bool
}

func (StartStopVehicleData) Spec() TupleSpec[StartStopVehicleData] { return startStopVehicleSpec }

var startStopVehicleSpec = TupleSpec[StartStopVehicleData]{
	Fields: []Field[StartStopVehicleData]{
		{Name: "vehicle", Kind: KindVarUint, Ref: func(p *StartStopVehicleData) any { return (*uint32)(&p.Vehicle) }},
		{Name: "start_stop", Kind: KindBool, Ref: func(p *StartStopVehicleData) any { return &p.StartStop }},
	},
}

// MoneyCheatData holds the amount granted by the money cheat.
type MoneyCheatData struct {
	Amount Money
}

func (MoneyCheatData) Spec() TupleSpec[MoneyCheatData] { return moneyCheatSpec }

var moneyCheatSpec = TupleSpec[MoneyCheatData]{
	Fields: []Field[MoneyCheatData]{
		{Name: "amount", Kind: KindVarInt, Ref: func(p *MoneyCheatData) any { return (*int64)(&p.Amount) }},
	},
	SummaryFormat: "grant %d",
}

// PauseData holds the arguments for a pause toggle.
type PauseData struct {
	Mode   uint8
	Paused bool
}

func (PauseData) Spec() TupleSpec[PauseData] { return pauseSpec }

var pauseSpec = TupleSpec[PauseData]{
	Fields: []Field[PauseData]{
		{Name: "mode", Kind: KindUint8, Ref: func(p *PauseData) any { return &p.Mode }},
		{Name: "paused", Kind: KindBool, Ref: func(p *PauseData) any { return &p.Paused }},
	},
}

// PlaceSignData holds the free text of a map sign. The text is excluded
// from debug summaries because it is player-authored.
type PlaceSignData struct {
	Text string
}

func (PlaceSignData) Spec() TupleSpec[PlaceSignData] { return placeSignSpec }

var placeSignSpec = TupleSpec[PlaceSignData]{
	Fields: []Field[PlaceSignData]{
		{Name: "text", Kind: KindEncodedString, Ref: func(p *PlaceSignData) any { return &p.Text }},
	},
	SkipStringsInSummary: true,
}

// CompanyCtrlData holds a company management action. Client is stamped by
// the server before dispatch; values sent by clients are ignored.
type CompanyCtrlData struct {
	Action  uint8
	Company CompanyID
	Client  ClientID
}

func (CompanyCtrlData) Spec() TupleSpec[CompanyCtrlData] { return companyCtrlSpec }

var companyCtrlSpec = TupleSpec[CompanyCtrlData]{
	Fields: []Field[CompanyCtrlData]{
		{Name: "action", Kind: KindUint8, Ref: func(p *CompanyCtrlData) any { return &p.Action }},
		{Name: "company", Kind: KindUint8, Ref: func(p *CompanyCtrlData) any { return (*uint8)(&p.Company) }},
		{Name: "client", Kind: KindVarUint, Ref: func(p *CompanyCtrlData) any { return (*uint32)(&p.Client) }},
	},
}

// CompanyCtrlPayload extends the tuple payload with the client-id stamping
// hook looked up through the registry's FlagClientID scan.
type CompanyCtrlPayload struct {
	Tuple[CompanyCtrlData]
}

func (p *CompanyCtrlPayload) Clone() Payload {
	c := *p
	return &c
}

// SetClientID implements ClientIDSetter.
func (p *CompanyCtrlPayload) SetClientID(client ClientID) {
	p.V.Client = client
}

// ProgramSignalPayload carries a variable-length signal program. It is a
// custom-layout payload: the instruction list cannot be expressed as a
// fixed field tuple, so it implements the wire contract directly.
type ProgramSignalPayload struct {
	Track        uint8
	Instructions []uint32
}

// maxSignalInstructions bounds decoded programs so a malicious frame cannot
// force a large allocation.
const maxSignalInstructions = 64

func (p *ProgramSignalPayload) Clone() Payload {
	c := *p
	c.Instructions = append([]uint32(nil), p.Instructions...)
	return &c
}

func (p *ProgramSignalPayload) Serialise(w *wire.Writer) {
	w.WriteUint8(p.Track)
	w.WriteVarUint(uint64(len(p.Instructions)))
	for _, ins := range p.Instructions {
		w.WriteVarUint(uint64(ins))
	}
}

func (p *ProgramSignalPayload) Deserialise(r *wire.Reader, _ wire.StringValidation) bool {
	p.Track = r.ReadUint8()
	count := r.ReadVarUint()
	if r.Failed() || count > maxSignalInstructions {
		return false
	}
	p.Instructions = make([]uint32, 0, count)
	for i := uint64(0); i < count; i++ {
		p.Instructions = append(p.Instructions, r.ReadVarUint32())
	}
	return !r.Failed()
}

func (p *ProgramSignalPayload) SanitiseStrings(wire.StringValidation) {}

func (p *ProgramSignalPayload) AppendSummary(dst []byte) []byte {
	dst = append(dst, "track: "...)
	dst = strconv.AppendUint(dst, uint64(p.Track), 10)
	dst = append(dst, ", instructions: "...)
	return strconv.AppendInt(dst, int64(len(p.Instructions)), 10)
}

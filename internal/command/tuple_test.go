package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/louisbranch/signalyard/internal/wire"
)

func serialisePayload(t *testing.T, p Payload) []byte {
	t.Helper()
	w := wire.NewWriter(32)
	p.Serialise(w)
	return append([]byte(nil), w.Bytes()...)
}

func TestRenamePlanWireLayout(t *testing.T) {
	p := &Tuple[RenamePlanData]{V: RenamePlanData{Plan: 6, Name: "abc"}}
	got := serialisePayload(t, p)
	want := []byte{6, 0, 'a', 'b', 'c', 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("wire bytes = %v, want %v", got, want)
	}
}

func TestStartStopVehicleWireLayout(t *testing.T) {
	p := &Tuple[StartStopVehicleData]{V: StartStopVehicleData{Vehicle: 8, StartStop: true}}
	got := serialisePayload(t, p)
	want := []byte{8, 1}
	if !bytes.Equal(got, want) {
		t.Fatalf("wire bytes = %v, want %v", got, want)
	}
}

func TestMoneyCheatWireLayout(t *testing.T) {
	cases := []struct {
		amount Money
		want   []byte
	}{
		{-1, []byte{1}},
		{1, []byte{2}},
		{1000000, []byte{0xDE, 0x84, 0x80}},
	}
	for _, tc := range cases {
		p := &Tuple[MoneyCheatData]{V: MoneyCheatData{Amount: tc.amount}}
		got := serialisePayload(t, p)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("amount %d = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

// The shared field-walker output must match a hand-written serialisation of
// the same declared order.
func TestTupleMatchesHandWrittenSerialisation(t *testing.T) {
	p := &Tuple[RenameTownData]{V: RenameTownData{Town: 0x0302, Name: "Tinwell"}}

	byHand := wire.NewWriter(16)
	byHand.WriteUint16(0x0302)
	byHand.WriteString("Tinwell")

	if got := serialisePayload(t, p); !bytes.Equal(got, byHand.Bytes()) {
		t.Fatalf("walker bytes %v != hand bytes %v", got, byHand.Bytes())
	}
}

func roundTrip(t *testing.T, in Payload, out Payload) {
	t.Helper()
	raw := serialisePayload(t, in)
	r := wire.NewReader(raw)
	if !out.Deserialise(r, wire.ReplaceWithQuestionMark) {
		t.Fatalf("deserialise failed for %T", in)
	}
	if r.Remaining() != 0 {
		t.Fatalf("%T left %d bytes unread", in, r.Remaining())
	}
	if back := serialisePayload(t, out); !bytes.Equal(raw, back) {
		t.Fatalf("%T round trip mismatch: %v != %v", in, raw, back)
	}
}

func TestPayloadRoundTrips(t *testing.T) {
	roundTrip(t,
		&Tuple[BuildRailTrackData]{V: BuildRailTrackData{Track: 3, RailType: 1}},
		&Tuple[BuildRailTrackData]{})
	roundTrip(t,
		&Tuple[FoundTownData]{V: FoundTownData{Size: 2, Name: "Slade Falls"}},
		&Tuple[FoundTownData]{})
	roundTrip(t,
		&Tuple[RenamePlanData]{V: RenamePlanData{Plan: 512, Name: "mainline"}},
		&Tuple[RenamePlanData]{})
	roundTrip(t,
		&Tuple[StartStopVehicleData]{V: StartStopVehicleData{Vehicle: 70000, StartStop: false}},
		&Tuple[StartStopVehicleData]{})
	roundTrip(t,
		&Tuple[MoneyCheatData]{V: MoneyCheatData{Amount: -250000}},
		&Tuple[MoneyCheatData]{})
	roundTrip(t,
		&Tuple[PauseData]{V: PauseData{Mode: 1, Paused: true}},
		&Tuple[PauseData]{})
	roundTrip(t,
		&CompanyCtrlPayload{Tuple[CompanyCtrlData]{V: CompanyCtrlData{Action: 1, Company: 3, Client: 99}}},
		&CompanyCtrlPayload{})
	roundTrip(t,
		&ProgramSignalPayload{Track: 2, Instructions: []uint32{1, 500, 70000}},
		&ProgramSignalPayload{})
	roundTrip(t, &EmptyPayload{}, &EmptyPayload{})
}

func TestPayloadTruncation(t *testing.T) {
	payloads := []Payload{
		&Tuple[RenamePlanData]{V: RenamePlanData{Plan: 6, Name: "abc"}},
		&Tuple[StartStopVehicleData]{V: StartStopVehicleData{Vehicle: 8, StartStop: true}},
		&ProgramSignalPayload{Track: 1, Instructions: []uint32{9, 9, 9}},
	}
	for _, p := range payloads {
		raw := serialisePayload(t, p)
		for cut := 1; cut <= len(raw); cut++ {
			r := wire.NewReader(raw[:len(raw)-cut])
			fresh := p.Clone()
			if fresh.Deserialise(r, 0) && r.Remaining() == 0 && !r.Failed() {
				t.Fatalf("%T accepted a frame truncated by %d bytes", p, cut)
			}
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	p := &Tuple[RenamePlanData]{V: RenamePlanData{Plan: 1, Name: "one"}}
	c := p.Clone().(*Tuple[RenamePlanData])
	c.V.Plan = 2
	c.V.Name = "two"
	if p.V.Plan != 1 || p.V.Name != "one" {
		t.Fatalf("clone mutated the original: %+v", p.V)
	}

	ps := &ProgramSignalPayload{Track: 1, Instructions: []uint32{1, 2}}
	cs := ps.Clone().(*ProgramSignalPayload)
	cs.Instructions[0] = 99
	if ps.Instructions[0] != 1 {
		t.Fatal("clone shares the instruction slice")
	}
}

func TestSanitiseStringsIdempotent(t *testing.T) {
	p := &Tuple[FoundTownData]{V: FoundTownData{Size: 1, Name: "Bad\x01Town"}}
	p.SanitiseStrings(wire.ReplaceWithQuestionMark)
	once := p.V.Name
	p.SanitiseStrings(wire.ReplaceWithQuestionMark)
	if p.V.Name != once {
		t.Fatalf("sanitise not idempotent: %q then %q", once, p.V.Name)
	}
	if strings.ContainsRune(p.V.Name, 0x01) {
		t.Fatalf("control character survived: %q", p.V.Name)
	}
}

func TestEncodedStringKeepsControlCodes(t *testing.T) {
	p := &Tuple[PlaceSignData]{V: PlaceSignData{Text: "depot \uE001 north"}}
	p.SanitiseStrings(wire.AllowControlCode)
	if !strings.ContainsRune(p.V.Text, 0xE001) {
		t.Fatalf("formatting code stripped from encoded string: %q", p.V.Text)
	}

	town := &Tuple[FoundTownData]{V: FoundTownData{Size: 1, Name: "a\uE001b"}}
	town.SanitiseStrings(wire.AllowControlCode)
	if strings.ContainsRune(town.V.Name, 0xE001) {
		t.Fatalf("formatting code kept in plain string: %q", town.V.Name)
	}
}

func TestSummarySkipsStrings(t *testing.T) {
	sign := &Tuple[PlaceSignData]{V: PlaceSignData{Text: "secret base"}}
	if got := Summary(sign); strings.Contains(got, "secret") {
		t.Fatalf("summary leaked string field: %q", got)
	}

	town := &Tuple[FoundTownData]{V: FoundTownData{Size: 3, Name: "Slade Falls"}}
	got := Summary(town)
	if !strings.Contains(got, "Slade Falls") || !strings.Contains(got, "size: 3") {
		t.Fatalf("summary = %q", got)
	}
}

func TestSummaryFormatTemplate(t *testing.T) {
	p := &Tuple[MoneyCheatData]{V: MoneyCheatData{Amount: 12345}}
	if got := Summary(p); got != "grant 12345" {
		t.Fatalf("summary = %q", got)
	}
}

package qlight

import (
	"bytes"
	"testing"
)

func TestNewCommandSetReport(t *testing.T) {
	report := NewCommandSet().Report()

	if len(report) != ReportLength {
		t.Fatalf("report length = %d, want %d", len(report), ReportLength)
	}
	if report[0] != ReportID {
		t.Fatalf("report id = 0x%02X, want 0x%02X", report[0], ReportID)
	}
	if report[1] != 0 {
		t.Fatalf("reserved byte = %d, want 0", report[1])
	}
	// All channels ignore (3), sound ignore (6).
	if !bytes.Equal(report[2:8], []byte{3, 3, 3, 3, 3, 6}) {
		t.Fatalf("channel bytes = %v, want [3 3 3 3 3 6]", report[2:8])
	}
	for i := 8; i < ReportLength; i++ {
		if report[i] != 0 {
			t.Fatalf("padding byte %d = %d, want 0", i, report[i])
		}
	}
}

func TestAllOffReport(t *testing.T) {
	report := AllOff().Report()

	if !bytes.Equal(report[2:8], []byte{0, 0, 0, 0, 0, 0}) {
		t.Fatalf("channel bytes = %v, want all zero", report[2:8])
	}
}

func TestSetPlacesModeAtChannelOffset(t *testing.T) {
	offsets := map[Color]int{Red: 2, Yellow: 3, Green: 4, Blue: 5, White: 6}

	for color, offset := range offsets {
		set := NewCommandSet()
		set.Set(color, LightBlink)
		report := set.Report()

		if report[offset] != byte(LightBlink) {
			t.Fatalf("%v: byte %d = %d, want %d", color, offset, report[offset], LightBlink)
		}
		for _, other := range Colors {
			if other == color {
				continue
			}
			if got := report[offsets[other]]; got != byte(LightIgnore) {
				t.Fatalf("%v: channel %v = %d, want ignore", color, other, got)
			}
		}
	}
}

func TestSetLastWriteWins(t *testing.T) {
	set := NewCommandSet()
	set.Set(Red, LightOn)
	set.Set(Red, LightBlink)

	report := set.Report()
	if report[2] != byte(LightBlink) {
		t.Fatalf("red byte = %d, want %d", report[2], LightBlink)
	}
}

func TestSetAcceptsIgnore(t *testing.T) {
	// Explicit re-neutralization is allowed.
	set := AllOff()
	set.Set(Green, LightIgnore)

	report := set.Report()
	if report[4] != byte(LightIgnore) {
		t.Fatalf("green byte = %d, want ignore", report[4])
	}
	if report[2] != byte(LightOff) {
		t.Fatalf("red byte = %d, want off", report[2])
	}
}

func TestFoldedCliTokens(t *testing.T) {
	// qlight set red:on blue:blink
	set := NewCommandSet()
	for _, tok := range []string{"red:on", "blue:blink"} {
		lc, err := ParseLightCommand(tok)
		if err != nil {
			t.Fatalf("ParseLightCommand(%q): %v", tok, err)
		}
		set.Set(lc.Color, lc.Mode)
	}

	report := set.Report()
	if !bytes.Equal(report[2:8], []byte{1, 3, 3, 2, 3, 6}) {
		t.Fatalf("channel bytes = %v, want [1 3 3 2 3 6]", report[2:8])
	}
}

func TestFoldedCliTokensWithReset(t *testing.T) {
	// qlight set --reset red:on
	set := AllOff()
	lc, err := ParseLightCommand("red:on")
	if err != nil {
		t.Fatalf("ParseLightCommand: %v", err)
	}
	set.Set(lc.Color, lc.Mode)

	report := set.Report()
	if !bytes.Equal(report[2:8], []byte{1, 0, 0, 0, 0, 0}) {
		t.Fatalf("channel bytes = %v, want [1 0 0 0 0 0]", report[2:8])
	}
}

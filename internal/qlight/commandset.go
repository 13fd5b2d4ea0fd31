package qlight

const (
	// ReportID identifies the output report the device firmware acts on.
	ReportID byte = 0x57

	// ReportLength is the full report size including the report ID byte.
	ReportLength = 65
)

// channelOffsets fixes the byte position of each channel inside the output
// report. Byte 0 is the report ID, byte 1 is reserved.
var channelOffsets = [...]struct {
	Color  Color
	Offset int
}{
	{Red, 2},
	{Yellow, 3},
	{Green, 4},
	{Blue, 5},
	{White, 6},
}

const soundOffset = 7

// CommandSet holds one mode per channel plus the buzzer mode. Every channel
// always has a valid mode; LightIgnore is the neutral element.
type CommandSet struct {
	modes map[Color]LightMode
	sound SoundMode
}

// NewCommandSet returns a set that leaves every channel untouched.
func NewCommandSet() *CommandSet {
	modes := make(map[Color]LightMode, len(Colors))
	for _, c := range Colors {
		modes[c] = LightIgnore
	}
	return &CommandSet{modes: modes, sound: SoundIgnore}
}

// AllOff returns a set that turns every channel and the buzzer off.
func AllOff() *CommandSet {
	modes := make(map[Color]LightMode, len(Colors))
	for _, c := range Colors {
		modes[c] = LightOff
	}
	return &CommandSet{modes: modes, sound: SoundOff}
}

// Set overwrites the mode for a single channel. Calling it again for the
// same color replaces the earlier mode.
func (s *CommandSet) Set(color Color, mode LightMode) {
	s.modes[color] = mode
}

// Mode returns the mode currently held for a channel.
func (s *CommandSet) Mode(color Color) LightMode {
	return s.modes[color]
}

// Sound returns the buzzer mode.
func (s *CommandSet) Sound() SoundMode {
	return s.sound
}

// Report serializes the set into the 65-byte output report the device
// expects: report ID, a reserved byte, the five channel modes in wire
// order, the buzzer mode, and zero padding.
func (s *CommandSet) Report() []byte {
	data := make([]byte, ReportLength)
	data[0] = ReportID
	for _, ch := range channelOffsets {
		data[ch.Offset] = byte(s.modes[ch.Color])
	}
	data[soundOffset] = byte(s.sound)
	return data
}

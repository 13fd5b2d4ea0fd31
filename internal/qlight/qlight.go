// Package qlight implements the control protocol for the qlight USB HID
// indicator light: five colored channels plus a sound channel, driven by
// fixed-size output reports.
package qlight

import (
	"fmt"
	"strings"
)

const (
	// VID/PID the light enumerates with.
	VendorID  uint16 = 0x04D8
	ProductID uint16 = 0xE73C
)

// ParseError reports a token that does not name a valid color or mode.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// Color identifies one of the light's channels. The numeric value is the
// wire code the device expects for that channel.
type Color byte

const (
	Red    Color = 2
	Yellow Color = 3
	Green  Color = 4
	Blue   Color = 5
	White  Color = 6
)

// Colors lists every channel in wire order.
var Colors = [...]Color{Red, Yellow, Green, Blue, White}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case White:
		return "white"
	}
	return fmt.Sprintf("color(%d)", byte(c))
}

// ParseColor parses a case-insensitive color name.
func ParseColor(s string) (Color, error) {
	switch name := strings.ToLower(s); name {
	case "red":
		return Red, nil
	case "yellow":
		return Yellow, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	case "white":
		return White, nil
	default:
		return 0, parseErrorf("Expected one of [red, yellow, green, blue, white], got %s", name)
	}
}

// LightMode is the state requested for a single channel.
type LightMode byte

const (
	LightOff   LightMode = 0
	LightOn    LightMode = 1
	LightBlink LightMode = 2

	// LightIgnore leaves the channel untouched. It is the neutral mode and
	// is never a valid user-entered token.
	LightIgnore LightMode = 3
)

func (m LightMode) String() string {
	switch m {
	case LightOff:
		return "off"
	case LightOn:
		return "on"
	case LightBlink:
		return "blink"
	case LightIgnore:
		return "ignore"
	}
	return fmt.Sprintf("mode(%d)", byte(m))
}

// ParseLightMode parses a case-insensitive mode name.
func ParseLightMode(s string) (LightMode, error) {
	switch name := strings.ToLower(s); name {
	case "on":
		return LightOn, nil
	case "off":
		return LightOff, nil
	case "blink":
		return LightBlink, nil
	default:
		return 0, parseErrorf("Expected one of [on, off, blink] in command, got %s", name)
	}
}

// SoundMode is the state requested for the buzzer channel. The channel is
// part of the wire format but nothing beyond SoundOff is produced today.
type SoundMode byte

const (
	SoundOff    SoundMode = 0
	SoundNoise1 SoundMode = 1
	SoundNoise2 SoundMode = 2
	SoundNoise3 SoundMode = 3
	SoundNoise4 SoundMode = 4
	SoundNoise5 SoundMode = 5

	// SoundIgnore leaves the buzzer untouched.
	SoundIgnore SoundMode = 6
)

// LightCommand is a single channel update.
type LightCommand struct {
	Color Color
	Mode  LightMode
}

// ParseLightCommand parses a "color:mode" token as accepted on the command
// line, e.g. "red:on" or "blue:blink".
func ParseLightCommand(s string) (LightCommand, error) {
	colorName, modeName, ok := strings.Cut(s, ":")
	if !ok {
		return LightCommand{}, parseErrorf("Expected format of [red,yellow,green,blue,white]:[on,off,blink] got %s", s)
	}

	color, err := ParseColor(colorName)
	if err != nil {
		return LightCommand{}, err
	}
	mode, err := ParseLightMode(modeName)
	if err != nil {
		return LightCommand{}, err
	}

	return LightCommand{Color: color, Mode: mode}, nil
}

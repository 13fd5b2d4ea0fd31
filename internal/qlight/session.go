package qlight

import (
	"fmt"

	"github.com/helloitszak/qlight-ctrl/internal/hid"
)

// Binding names the physical device a session talks to.
type Binding struct {
	Name string
	Path string
}

// Session owns the device handle for one binding. The handle is opened on
// the first write and cached for the rest of the process.
type Session struct {
	binding Binding
	manager hid.Manager
	device  hid.Device
}

func NewSession(manager hid.Manager, binding Binding) *Session {
	return &Session{binding: binding, manager: manager}
}

// Binding returns the binding this session was created for.
func (s *Session) Binding() Binding { return s.binding }

// Device returns the open device handle, opening it on first use.
func (s *Session) Device() (hid.Device, error) {
	if s.device == nil {
		dev, err := s.manager.OpenPath(s.binding.Path)
		if err != nil {
			return nil, fmt.Errorf("open hid device at %s: %w", s.binding.Path, err)
		}
		s.device = dev
	}
	return s.device, nil
}

// Apply serializes the command set and writes it to the device as one
// output report, returning the number of bytes written.
func (s *Session) Apply(set *CommandSet) (int, error) {
	dev, err := s.Device()
	if err != nil {
		return 0, err
	}
	return dev.Write(set.Report())
}

// Close releases the cached handle, if any.
func (s *Session) Close() error {
	if s.device == nil {
		return nil
	}
	dev := s.device
	s.device = nil
	return dev.Close()
}

// Lights filters the system HID device list down to attached qlights.
func Lights(manager hid.Manager) ([]hid.Info, error) {
	devs, err := manager.List()
	if err != nil {
		return nil, err
	}
	var out []hid.Info
	for _, d := range devs {
		if d.VendorID == VendorID && d.ProductID == ProductID {
			out = append(out, d)
		}
	}
	return out, nil
}

package hid

import "fmt"

// MockDevice records written reports for tests.
type MockDevice struct {
	Reports  [][]byte
	WriteErr error
	Closed   bool
}

func (d *MockDevice) Write(p []byte) (int, error) {
	if d.WriteErr != nil {
		return 0, d.WriteErr
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	d.Reports = append(d.Reports, buf)
	return len(p), nil
}

func (d *MockDevice) Close() error {
	d.Closed = true
	return nil
}

// MockManager is an in-memory Manager for tests. OpenPath succeeds for any
// path present in Devices and hands out one MockDevice per path.
type MockManager struct {
	Devices   []Info
	OpenErr   error
	ListErr   error
	OpenCalls int

	opened map[string]*MockDevice
}

func NewMockManager(devices ...Info) *MockManager {
	return &MockManager{Devices: devices, opened: make(map[string]*MockDevice)}
}

func (m *MockManager) List() ([]Info, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Devices, nil
}

func (m *MockManager) OpenPath(path string) (Device, error) {
	m.OpenCalls++
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	for _, d := range m.Devices {
		if d.Path == path {
			if dev, ok := m.opened[path]; ok {
				return dev, nil
			}
			dev := &MockDevice{}
			m.opened[path] = dev
			return dev, nil
		}
	}
	return nil, fmt.Errorf("open %s: no such hid device", path)
}

// Opened returns the device handed out for path, or nil.
func (m *MockManager) Opened(path string) *MockDevice {
	return m.opened[path]
}

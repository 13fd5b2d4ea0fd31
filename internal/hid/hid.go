// Package hid provides the minimal HID surface the light needs: enumerate
// the HID devices attached to the system and open one by its platform path
// for output-report writes.
package hid

// Device is an opened HID device accepting output reports.
type Device interface {
	// Write sends one output report. The report ID is at p[0].
	Write(p []byte) (int, error)
	Close() error
}

// Info describes an attached HID device.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	OpenPath(path string) (Device, error)
}

// NewManager returns the platform HID manager.
func NewManager() (Manager, error) {
	return newManager()
}

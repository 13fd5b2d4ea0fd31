//go:build hidapi

package hid

import (
	"errors"
	"fmt"

	"github.com/karalabe/usb"
)

// hidapi-backed manager, selected with the "hidapi" build tag. Useful on
// systems where the pure-Go backend cannot claim the device node.

type hidapiManager struct{}

func newManager() (Manager, error) {
	if !usb.Supported() {
		return nil, errors.New("hidapi support not compiled in")
	}
	return &hidapiManager{}, nil
}

func (m *hidapiManager) List() ([]Info, error) {
	devs, err := usb.EnumerateHid(0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path,
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Product:      d.Product,
			Manufacturer: d.Manufacturer,
		})
	}
	return out, nil
}

func (m *hidapiManager) OpenPath(path string) (Device, error) {
	devs, err := usb.EnumerateHid(0, 0)
	if err != nil {
		return nil, err
	}
	for _, d := range devs {
		if d.Path != path {
			continue
		}
		dev, err := d.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return &hidapiDevice{dev}, nil
	}
	return nil, fmt.Errorf("open %s: no such hid device", path)
}

type hidapiDevice struct{ d usb.Device }

// hidapi expects the report ID as the first byte of the write, which is
// how callers hand reports to this package already.
func (d *hidapiDevice) Write(p []byte) (int, error) { return d.d.Write(p) }

func (d *hidapiDevice) Close() error { return d.d.Close() }

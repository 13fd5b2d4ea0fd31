package server

import (
	"errors"
	"testing"

	"github.com/hypebeast/go-osc/osc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helloitszak/qlight-ctrl/internal/hid"
	"github.com/helloitszak/qlight-ctrl/internal/qlight"
)

const testPath = "/dev/hidraw0"

func newTestServer(exitOnWriteError bool) (*Server, *hid.MockManager) {
	mgr := hid.NewMockManager(hid.Info{
		Path:      testPath,
		VendorID:  qlight.VendorID,
		ProductID: qlight.ProductID,
	})
	session := qlight.NewSession(mgr, qlight.Binding{Name: "desk", Path: testPath})
	return New(zerolog.Nop(), session, exitOnWriteError), mgr
}

func lastReport(t *testing.T, mgr *hid.MockManager) []byte {
	t.Helper()
	dev := mgr.Opened(testPath)
	require.NotNil(t, dev, "expected the device to have been opened")
	require.NotEmpty(t, dev.Reports)
	return dev.Reports[len(dev.Reports)-1]
}

func TestColorMessageWritesReport(t *testing.T) {
	s, mgr := newTestServer(false)

	msg := &osc.Message{Address: "/lights/1/green", Arguments: []interface{}{int32(1)}}
	require.NoError(t, s.handlePacket(msg))

	report := lastReport(t, mgr)
	require.Len(t, report, qlight.ReportLength)
	assert.Equal(t, qlight.ReportID, report[0])
	assert.Equal(t, byte(0), report[1])
	// Green is at offset 4; every other channel stays at ignore.
	assert.Equal(t, []byte{3, 3, 1, 3, 3}, report[2:7])
	assert.Equal(t, byte(qlight.SoundIgnore), report[7])
}

func TestResetMessageWritesAllOff(t *testing.T) {
	s, mgr := newTestServer(false)

	msg := &osc.Message{Address: "/reset/1", Arguments: []interface{}{"whatever", int32(9)}}
	require.NoError(t, s.handlePacket(msg))

	report := lastReport(t, mgr)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, report[2:8])
}

func TestUnknownColorIsDropped(t *testing.T) {
	s, mgr := newTestServer(false)

	msg := &osc.Message{Address: "/lights/1/purple", Arguments: []interface{}{int32(1)}}
	require.NoError(t, s.handlePacket(msg))

	assert.Zero(t, mgr.OpenCalls, "declined command must not touch the device")
}

func TestUnknownRouteIsDropped(t *testing.T) {
	s, mgr := newTestServer(false)

	msg := &osc.Message{Address: "/unknown/path", Arguments: []interface{}{int32(1)}}
	require.NoError(t, s.handlePacket(msg))

	assert.Zero(t, mgr.OpenCalls)
}

func TestBadArgumentsAreDropped(t *testing.T) {
	s, mgr := newTestServer(false)

	// No args, too many args, wrong type, out of range, wrong numeric type.
	for _, args := range [][]interface{}{
		{},
		{int32(1), int32(2)},
		{"on"},
		{int32(3)},
		{float32(1)},
	} {
		msg := &osc.Message{Address: "/lights/1/red", Arguments: args}
		require.NoError(t, s.handlePacket(msg))
	}

	assert.Zero(t, mgr.OpenCalls)
}

func TestBundlesAreIgnored(t *testing.T) {
	s, mgr := newTestServer(false)

	require.NoError(t, s.handlePacket(&osc.Bundle{}))
	assert.Zero(t, mgr.OpenCalls)
}

func TestWriteErrorLogsAndContinuesByDefault(t *testing.T) {
	s, mgr := newTestServer(false)

	dev, err := mgr.OpenPath(testPath)
	require.NoError(t, err)
	dev.(*hid.MockDevice).WriteErr = errors.New("device unplugged")

	msg := &osc.Message{Address: "/lights/1/red", Arguments: []interface{}{int32(1)}}
	assert.NoError(t, s.handlePacket(msg))
}

func TestWriteErrorIsFatalWhenConfigured(t *testing.T) {
	s, mgr := newTestServer(true)

	dev, err := mgr.OpenPath(testPath)
	require.NoError(t, err)
	dev.(*hid.MockDevice).WriteErr = errors.New("device unplugged")

	msg := &osc.Message{Address: "/lights/1/red", Arguments: []interface{}{int32(1)}}
	assert.Error(t, s.handlePacket(msg))
}

func TestDeviceHandleIsReused(t *testing.T) {
	s, mgr := newTestServer(false)

	for i := 0; i < 3; i++ {
		msg := &osc.Message{Address: "/lights/1/red", Arguments: []interface{}{int32(1)}}
		require.NoError(t, s.handlePacket(msg))
	}

	assert.Equal(t, 1, mgr.OpenCalls, "session must cache the open handle")
	assert.Len(t, mgr.Opened(testPath).Reports, 3)
}

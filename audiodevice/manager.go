// Package audiodevice lists and selects the audio devices of a platform
// audio device module.
package audiodevice

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	mediasoupclient "github.com/jiyeyuran/mediasoup-client-go"
)

var ErrInvalidDeviceIndex = errors.New("audiodevice: invalid device index")

// Module is a platform audio device module. Device indexes go from 0 to the
// returned device count minus one.
type Module interface {
	Init() error
	RecordingDevices() int
	RecordingDeviceName(index int) (name, guid string, err error)
	SetRecordingDevice(index int) error
	PlayoutDevices() int
	PlayoutDeviceName(index int) (name, guid string, err error)
	SetPlayoutDevice(index int) error
}

type Option func(m *Manager)

func WithLogger(logger logr.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager lists and selects the devices of one Module. It is owned by the
// caller and passed to whatever needs it.
type Manager struct {
	logger logr.Logger
	module Module
}

// NewManager initializes module and returns its Manager.
func NewManager(module Module, options ...Option) (*Manager, error) {
	m := &Manager{
		logger: mediasoupclient.NewLogger("AudioDeviceManager"),
		module: module,
	}
	for _, o := range options {
		o(m)
	}

	if err := module.Init(); err != nil {
		m.logger.Error(err, "audio device module init failed")
		return nil, err
	}

	return m, nil
}

// RecordingDevices returns the names of the recording devices, in index
// order.
func (m *Manager) RecordingDevices() ([]string, error) {
	return deviceNames(m.module.RecordingDevices(), m.module.RecordingDeviceName)
}

// PlayoutDevices returns the names of the playout devices, in index order.
func (m *Manager) PlayoutDevices() ([]string, error) {
	return deviceNames(m.module.PlayoutDevices(), m.module.PlayoutDeviceName)
}

func (m *Manager) SetRecordingDevice(index int) error {
	if index < 0 || index >= m.module.RecordingDevices() {
		return fmt.Errorf("%w: recording device %d", ErrInvalidDeviceIndex, index)
	}
	if err := m.module.SetRecordingDevice(index); err != nil {
		return err
	}
	m.logger.V(1).Info("recording device selected", "index", index)

	return nil
}

func (m *Manager) SetPlayoutDevice(index int) error {
	if index < 0 || index >= m.module.PlayoutDevices() {
		return fmt.Errorf("%w: playout device %d", ErrInvalidDeviceIndex, index)
	}
	if err := m.module.SetPlayoutDevice(index); err != nil {
		return err
	}
	m.logger.V(1).Info("playout device selected", "index", index)

	return nil
}

func deviceNames(count int, deviceName func(index int) (string, string, error)) ([]string, error) {
	names := make([]string, 0, count)

	for i := 0; i < count; i++ {
		name, _, err := deviceName(i)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

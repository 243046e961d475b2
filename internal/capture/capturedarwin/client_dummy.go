//go:build !darwin
// +build !darwin

package capturedarwin

import (
	"fmt"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

type DummySource struct {
	logger contracts.Logger
}

func NewEventSource(options *contracts.CaptureOptions) (contracts.EventSource, error) {
	options.Logger.Info("Using dummy event source for non-macOS system")
	return &DummySource{
		logger: options.Logger,
	}, nil
}

func (s *DummySource) ListDevices() ([]contracts.DeviceInfo, error) {
	s.logger.Warn("ListDevices called on dummy event source")
	return nil, fmt.Errorf("MIDI capture is not available on this platform")
}

func (s *DummySource) SelectDevice(deviceID int) error {
	s.logger.Warn("SelectDevice called on dummy event source")
	return fmt.Errorf("MIDI capture is not available on this platform")
}

func (s *DummySource) StartCapture(eventChannel chan contracts.NoteEvent) {
	s.logger.Warn("StartCapture called on dummy event source")
}

func (s *DummySource) Stop() error {
	s.logger.Warn("Stop called on dummy event source")
	return nil
}

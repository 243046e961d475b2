//go:build darwin
// +build darwin

package capturedarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/youpy/go-coremidi"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices        = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice    = errors.New("invalid MIDI device")
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Source captures MIDI note events from CoreMIDI on macOS and feeds them to
// the preview cycle. It handles device connections and safe concurrent
// delivery into the event channel.
type Source struct {
	logger       contracts.Logger
	eventChannel atomic.Value // Atomic storage for the event channel to ensure thread safety.
	client       coremidi.Client
	inputPort    coremidi.InputPort
	portConn     internalPortConnection
	filter       *contracts.MIDIEventFilter
	clientName   string
	mu           sync.Mutex
	capturing    bool
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewEventSource initializes a CoreMIDI-backed event source.
func NewEventSource(options *contracts.CaptureOptions) (contracts.EventSource, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("CoreMIDI event source created")

	return &Source{
		logger:     options.Logger,
		client:     client,
		filter:     options.Filter,
		clientName: options.ClientName,
	}, nil
}

// ListDevices retrieves and returns available MIDI input devices.
// If no devices are found, an error is logged and returned.
func (s *Source) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		s.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI device by ID and connects to it.
// If a device is already connected, it disconnects first.
func (s *Source) SelectDevice(deviceID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		s.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	if s.portConn != nil {
		s.portConn.Disconnect()
		s.portConn = nil
	}

	source := sources[deviceID]
	s.logger.Info("MIDI device selected",
		s.logger.Field().Int("deviceID", deviceID),
		s.logger.Field().String("deviceName", source.Name()))

	s.inputPort, err = coremidi.NewInputPort(s.client, "Input Port", s.handlePacket)
	if err != nil {
		s.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	s.portConn, err = s.inputPort.Connect(source)
	if err != nil {
		s.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	s.logger.Info("MIDI device successfully connected")
	return nil
}

// handlePacket converts incoming CoreMIDI packets to note events and applies
// filtering. The full status byte is kept so channel information survives the
// round trip through the effect.
func (s *Source) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	s.wg.Add(1)
	defer s.wg.Done()

	eventChannel, _ := s.eventChannel.Load().(chan contracts.NoteEvent)
	if eventChannel == nil {
		s.logger.Warn("eventChannel not initialized or of invalid type")
		return
	}

	if len(packet.Data) < 3 {
		s.logger.Warn(ErrIncompleteMIDIPacket.Error())
		return
	}

	event := contracts.NoteEvent{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Status:    packet.Data[0],
		Note:      packet.Data[1],
		Velocity:  packet.Data[2],
	}

	if s.filter != nil && !s.filter.Allows(event.Status) {
		return
	}
	select {
	case eventChannel <- event:
	default:
		s.logger.Warn("Event buffer full; dropping MIDI event")
	}
}

// StartCapture begins capturing MIDI events by storing the event channel and
// marking capturing as active. Ensures any ongoing capture is stopped before
// starting a new one.
func (s *Source) StartCapture(eventChannel chan contracts.NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if eventChannel == nil {
		s.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	if s.capturing {
		s.logger.Warn("Capture already started; attempting to stop existing capture")
		if err := s.Stop(); err != nil {
			s.logger.Error("Failed to stop existing capture", s.logger.Field().Error("error", err))
		}
	}

	s.logger.Info("Starting MIDI event capture")
	s.eventChannel.Store(eventChannel)
	s.capturing = true
}

// Stop halts MIDI event capturing, disconnects from the device, and waits for
// ongoing packet handling to complete. Only executes once even if called
// multiple times.
func (s *Source) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping MIDI capture")
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.capturing {
			s.capturing = false

			if s.portConn != nil {
				s.portConn.Disconnect()
				s.portConn = nil
			}

			// Store a closed-off dummy channel to prevent further writes.
			dummyChannel := make(chan contracts.NoteEvent)
			s.eventChannel.Store(dummyChannel)

			s.logger.Info("MIDI capture stopped")
			s.wg.Wait()
		}
	})
	return nil
}

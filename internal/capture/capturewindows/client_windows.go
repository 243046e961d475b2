//go:build windows
// +build windows

package capturewindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// HMIDIIN is a handle to an open MIDI input device.
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// midiInCaps mirrors the winmm MIDIINCAPSW structure.
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Source captures MIDI note events through winmm on Windows and feeds them to
// the preview cycle.
type Source struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	handle       HMIDIIN
	portConn     bool
	mu           sync.Mutex
	callback     uintptr
	filter       *contracts.MIDIEventFilter
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// NewEventSource creates a winmm-backed event source for Windows.
func NewEventSource(options *contracts.CaptureOptions) (contracts.EventSource, error) {
	options.Logger.Info("winmm event source created")

	return &Source{
		logger: options.Logger,
		filter: options.Filter,
	}, nil
}

// ListDevices lists the available MIDI input devices.
func (s *Source) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		s.logger.Warn("No MIDI devices found")
		return nil, errors.New("no MIDI devices found")
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			s.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI input device by ID.
func (s *Source) SelectDevice(deviceID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.portConn {
		if err := s.stopCapture(); err != nil {
			return fmt.Errorf("failed to stop previous MIDI capture: %w", err)
		}
	}

	s.callback = windows.NewCallback(midiInCallback)
	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&s.handle)),
		uintptr(deviceID),
		s.callback,
		uintptr(unsafe.Pointer(s)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to open MIDI device %d: %v", deviceID, err))
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	s.portConn = true
	s.logger.Info(fmt.Sprintf("MIDI device %d connected", deviceID))
	return nil
}

// StartCapture initializes MIDI event capture into the given channel.
func (s *Source) StartCapture(eventChannel chan contracts.NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.portConn {
		s.logger.Error("Cannot start capture: No MIDI device selected")
		return
	}

	if _, ok := s.eventChannel.Load().(chan contracts.NoteEvent); ok {
		s.logger.Warn("Capture already started")
		return
	}

	s.eventChannel.Store(eventChannel)

	if s.handle == 0 {
		s.logger.Error("Invalid MIDI device handle")
		return
	}

	r1, _, err := procMidiInStart.Call(uintptr(s.handle))
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to start MIDI capture: %v", err))
		return
	}

	s.logger.Info("MIDI capture started")
}

// midiInCallback processes incoming MIDI messages. The full status byte is
// kept so channel information survives the round trip through the effect.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	s := (*Source)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		s.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		s.logger.Info("MIDI device closed")
	case MIM_DATA:
		if dwParam2 == 0 {
			return 0
		}

		event := contracts.NoteEvent{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Status:    byte(dwParam1 & 0xFF),
			Note:      byte((dwParam1 >> 8) & 0xFF),
			Velocity:  byte((dwParam1 >> 16) & 0xFF),
		}

		if s.filter != nil && !s.filter.Allows(event.Status) {
			s.logger.Debug(fmt.Sprintf("MIDI command 0x%X filtered out", event.Status&0xF0))
			return 0
		}

		if ch, ok := s.eventChannel.Load().(chan contracts.NoteEvent); ok && ch != nil {
			select {
			case ch <- event:
			default:
				s.logger.Warn("MIDI event channel is full; event discarded")
			}
		}
	case MIM_ERROR, MIM_LONGERROR:
		s.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		s.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		s.logger.Warn(fmt.Sprintf("Unknown MIDI message: 0x%X", wMsg))
	}

	return 0
}

// Stop terminates MIDI event capture and disconnects the device.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.portConn {
		s.logger.Warn("No MIDI device is connected")
		return nil
	}

	if err := s.stopCapture(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	s.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// stopCapture stops the capture and releases resources.
func (s *Source) stopCapture() error {
	if s.handle == 0 {
		return fmt.Errorf("invalid MIDI device handle")
	}

	r1, _, err := procMidiInStop.Call(uintptr(s.handle))
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to stop MIDI capture: %v", err))
		return err
	}

	r1, _, err = procMidiInClose.Call(uintptr(s.handle))
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to close MIDI device: %v", err))
		return err
	}

	s.portConn = false
	s.handle = 0
	s.eventChannel.Store((chan contracts.NoteEvent)(nil))
	return nil
}

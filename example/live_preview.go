package main

import (
	"fmt"

	"github.com/goudreinette/vary-velocity/internal/logger"
	"github.com/goudreinette/vary-velocity/sdk/capture"
	"github.com/goudreinette/vary-velocity/sdk/contracts"
	"github.com/goudreinette/vary-velocity/sdk/varyvelocity"
)

func main() {
	log := logger.NewZapLogger()

	source, err := capture.NewEventSource(
		contracts.WithCaptureLogger(log),
		contracts.WithCaptureLogLevel(contracts.InfoLevel),
		contracts.WithEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI event source", log.Field().Error("error", err))
		return
	}

	devices, err := source.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	preview := varyvelocity.NewPreview(source, varyvelocity.Full(),
		contracts.WithLogger(log),
	)

	// Widest spread, no floor: variance 1.0 maps to sigma = 25.
	params := preview.Plugin().Parameters()
	params.Set(0, 1.0)
	params.Set(1, 0.0)

	if err = preview.Start(0); err != nil {
		log.Error("Failed to start preview", log.Field().Error("error", err))
		return
	}
	defer preview.Stop()

	fmt.Println("Randomizing velocities... Press Ctrl+C to exit.")
	for event := range preview.Events() {
		log.Info("Transformed MIDI event",
			log.Field().Uint64("Timestamp", event.Timestamp),
			log.Field().Uint8("Status", event.Status),
			log.Field().Uint8("Note", event.Note),
			log.Field().Uint8("Velocity", event.Velocity),
		)
	}
}

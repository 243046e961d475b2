package varyvelocity

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// Preview cycle constants. The preview stands in for a plugin host: it drives
// the plugin on a fixed block clock with silent audio, which is all the
// identity audio path needs.
const (
	previewSampleRate = 44100.0
	previewBlockSize  = 512
	previewChanBuffer = 128
)

// channelSink forwards flushed events onto the preview's output channel.
// Delivery is non-blocking so a stalled consumer cannot stall the cycle.
type channelSink struct {
	out chan contracts.NoteEvent
}

func (c channelSink) SendEvents(events []contracts.NoteEvent) {
	for _, e := range events {
		select {
		case c.out <- e:
		default:
		}
	}
}

// Preview runs a plugin instance against live MIDI input, outside any plugin
// host. Captured note events are batched per block-sized cycle, run through
// the effect, and delivered on Events in transformed form.
type Preview struct {
	plugin contracts.Plugin
	source contracts.EventSource
	logger contracts.Logger

	in    chan contracts.NoteEvent
	out   chan contracts.NoteEvent
	batch []contracts.NoteEvent

	bufIn  [][]float32
	bufOut [][]float32

	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewPreview creates a preview runner for the given variant, fed by the given
// event source. Options are passed through to the plugin factory; the event
// sink is owned by the preview and cannot be overridden.
func NewPreview(source contracts.EventSource, variant contracts.VariantSpec, opts ...contracts.Option) *Preview {
	out := make(chan contracts.NoteEvent, previewChanBuffer)
	opts = append(opts, contracts.WithEventSink(channelSink{out: out}))

	options := applyDefaultOptions(opts...)
	opts = append(opts, contracts.WithLogger(options.Logger))
	plugin := NewPlugin(variant, opts...)
	plugin.SetSampleRate(previewSampleRate)

	bufIn := make([][]float32, variant.Info.Inputs)
	bufOut := make([][]float32, variant.Info.Outputs)
	for ch := range bufIn {
		bufIn[ch] = make([]float32, previewBlockSize)
	}
	for ch := range bufOut {
		bufOut[ch] = make([]float32, previewBlockSize)
	}

	secondsPerBlock := float64(previewBlockSize) / previewSampleRate

	return &Preview{
		plugin:   plugin,
		source:   source,
		logger:   options.Logger,
		in:       make(chan contracts.NoteEvent, previewChanBuffer),
		out:      out,
		batch:    make([]contracts.NoteEvent, 0, previewChanBuffer),
		bufIn:    bufIn,
		bufOut:   bufOut,
		interval: time.Duration(secondsPerBlock * float64(time.Second)),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Plugin returns the underlying plugin instance, e.g. to adjust parameters
// while the preview runs.
func (p *Preview) Plugin() contracts.Plugin {
	return p.plugin
}

// Events delivers the transformed note events, one per inbound note event,
// in cycle order.
func (p *Preview) Events() <-chan contracts.NoteEvent {
	return p.out
}

// Start selects the capture device and begins running cycles.
func (p *Preview) Start(deviceID int) error {
	if err := p.source.SelectDevice(deviceID); err != nil {
		return fmt.Errorf("selecting capture device: %w", err)
	}
	p.source.StartCapture(p.in)
	p.started.Store(true)
	go p.run()
	return nil
}

// run executes one plugin cycle per block interval until stopped.
func (p *Preview) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			if err := p.cycle(); err != nil {
				p.logger.Error("preview cycle aborted", p.logger.Field().Error("error", err))
				return
			}
		}
	}
}

// cycle gathers the events captured since the last tick and runs them through
// one full plugin cycle: event intake, audio pass, flush.
func (p *Preview) cycle() error {
	p.batch = p.batch[:0]
	for {
		select {
		case e := <-p.in:
			p.batch = append(p.batch, e)
			continue
		default:
		}
		break
	}

	if err := p.plugin.ProcessEvents(p.batch); err != nil {
		return err
	}
	return p.plugin.ProcessAudio(p.bufIn, p.bufOut)
}

// Stop ends the cycle loop, stops the capture source, and closes Events.
func (p *Preview) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		close(p.stop)
		err = p.source.Stop()
		// The run loop only exists if Start succeeded; waiting for it
		// otherwise would block forever.
		if p.started.Load() {
			<-p.done
		}
		close(p.out)
	})
	return err
}

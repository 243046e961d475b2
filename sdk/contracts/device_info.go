package contracts

// DeviceInfo describes a MIDI input device an event source can capture from,
// as reported by ListDevices. The preview host shows these when picking the
// keyboard to audition the effect with.
type DeviceInfo struct {
	Name         string // Port name as registered with the OS MIDI service.
	Manufacturer string // Manufacturer reported by the device driver.
	EntityName   string // Entity the port belongs to; equals Name on backends without entities.
}

package io

import (
	"github.com/sirupsen/logrus"
)

// Region is a half-open address range bound to a device.
type Region struct {
	Start  uint32
	End    uint32
	Device Device
}

// Contains reports if addr lies in [Start, End).
func (r Region) Contains(addr uint32) bool {
	return r.Start <= addr && addr < r.End
}

// MemMap dispatches memory accesses to devices by address.
//
// Where regions overlap, the most recently registered device wins.
type MemMap struct {
	regions []Region
}

// Register binds [start, end) to dev, above every region registered so far.
func (mm *MemMap) Register(start, end uint32, dev Device) (err error) {
	if end <= start {
		err = ErrRange
		return
	}

	logrus.WithFields(logrus.Fields{
		"device": dev.Name(),
		"start":  start,
		"end":    end,
	}).Debug("memmap: register")

	mm.regions = append(mm.regions, Region{Start: start, End: end, Device: dev})
	return
}

// Regions returns the registered regions, in priority order from lowest.
func (mm *MemMap) Regions() []Region {
	return mm.regions
}

// Lookup returns the device owning addr.
func (mm *MemMap) Lookup(addr uint32) (dev Device, ok bool) {
	if mm == nil {
		return
	}
	for n := len(mm.regions) - 1; n >= 0; n-- {
		if mm.regions[n].Contains(addr) {
			return mm.regions[n].Device, true
		}
	}
	return
}

// Read returns the value at addr, or ok false when no device owns addr.
func (mm *MemMap) Read(addr uint32, size Size) (value uint16, ok bool) {
	dev, ok := mm.Lookup(addr)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"addr": addr,
			"size": size,
		}).Warn("memmap: unhandled read")
		return
	}

	value = dev.Read(addr, size)
	return
}

// Write stores value at addr. It returns false when no device owns addr.
func (mm *MemMap) Write(addr uint32, value uint16, size Size) (ok bool) {
	dev, ok := mm.Lookup(addr)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"addr":  addr,
			"value": value,
			"size":  size,
		}).Warn("memmap: unhandled write")
		return
	}

	dev.Write(addr, value, size)
	return
}

// IoMap dispatches port accesses. Each port has at most one device.
type IoMap struct {
	ports map[uint16]Device
}

// Register binds port to dev, replacing any previous binding.
func (im *IoMap) Register(port uint16, dev Device) {
	if im.ports == nil {
		im.ports = make(map[uint16]Device)
	}

	logrus.WithFields(logrus.Fields{
		"device": dev.Name(),
		"port":   port,
	}).Debug("iomap: register")

	im.ports[port] = dev
}

// Read returns the value of port, or ok false when the port is unbound.
func (im *IoMap) Read(port uint16, size Size) (value uint16, ok bool) {
	dev, ok := im.ports[port]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"port": port,
			"size": size,
		}).Warn("iomap: unhandled read")
		return
	}

	value = dev.Read(uint32(port), size)
	return
}

// Write sends value to port. It returns false when the port is unbound.
func (im *IoMap) Write(port uint16, value uint16, size Size) (ok bool) {
	dev, ok := im.ports[port]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"port":  port,
			"value": value,
			"size":  size,
		}).Warn("iomap: unhandled write")
		return
	}

	dev.Write(uint32(port), value, size)
	return
}

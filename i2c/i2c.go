// Package i2c provides the bus transports the displays and sensors talk
// through. Every transport satisfies tinygo's drivers.I2C so device drivers
// can sit on top of any of them.
package i2c

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// transport names used in the configuration
const (
	KindSim    = "sim"
	KindDev    = "dev"
	KindPeriph = "periph"
	KindSMBus  = "smbus"
)

const (
	I2C_SLAVE = 0x0703
	I2C_SMBUS = 0x0720
)

// Bus is a transport that can be released
type Bus interface {
	drivers.I2C
	Close() error
}

// Open returns the transport named by kind for /dev/i2c-<bus>
func Open(kind string, bus int) (Bus, error) {
	switch kind {
	case KindSim, "":
		return NewSim(bus), nil
	case KindDev:
		return OpenDev(bus)
	case KindPeriph:
		return OpenPeriph(bus)
	case KindSMBus:
		return OpenSMBus(bus)
	}
	return nil, fmt.Errorf("unknown i2c transport %q", kind)
}

// Probe reports whether anything acknowledges addr. It sends the address
// alone with the write bit so receive-only parts answer too.
func Probe(bus drivers.I2C, addr uint16) bool {
	return bus.Tx(addr, nil, nil) == nil
}

// Dev talks to the kernel i2c-dev driver directly
type Dev struct {
	fd      *os.File
	bus     int
	address uint16
}

func OpenDev(bus int) (*Dev, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open i2c bus %d", bus)
	}
	return &Dev{fd: f, bus: bus}, nil
}

func (this *Dev) Close() error {
	return this.fd.Close()
}

func (this *Dev) selectLine(addr uint16) error {
	if this.address == addr {
		return nil
	}
	if err := ioctl(this.fd.Fd(), I2C_SLAVE, uintptr(addr)); err != nil {
		return errors.Wrapf(err, "ioctl I2C_SLAVE @ 0x%02x", addr)
	}
	this.address = addr
	return nil
}

// Tx writes w then reads len(r) bytes, not MT safe. With neither it does
// an SMBus quick write.
func (this *Dev) Tx(addr uint16, w, r []byte) error {
	if err := this.selectLine(addr); err != nil {
		return err
	}
	if len(w) == 0 && len(r) == 0 {
		if err := this.quickWrite(); err != nil {
			return errors.Wrapf(err, "bus %d quick write 0x%02x", this.bus, addr)
		}
		return nil
	}
	if len(w) > 0 {
		if _, err := this.fd.Write(w); err != nil {
			return errors.Wrapf(err, "bus %d write 0x%02x", this.bus, addr)
		}
	}
	if len(r) > 0 {
		if _, err := this.fd.Read(r); err != nil {
			return errors.Wrapf(err, "bus %d read 0x%02x", this.bus, addr)
		}
	}
	return nil
}

func (this *Dev) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return this.Tx(uint16(addr), []byte{r}, buf)
}

func (this *Dev) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return this.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

// quickWrite puts only the address byte on the wire
func (this *Dev) quickWrite() error {
	type smbusCmd struct {
		isRead  uint8
		command uint8
		size    uint32
		data    uintptr
	}
	var cmd smbusCmd // write, size 0 is quick
	return ioctl(this.fd.Fd(), I2C_SMBUS, uintptr(unsafe.Pointer(&cmd)))
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, err := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}

package i2c

import (
	"github.com/pkg/errors"
	smbus "github.com/platinasystems/i2c"
)

// largest SMBus block transfer
const maxBlock = 32

// SMBus frames transactions as SMBus calls, for adapters that only speak
// the SMBus subset of i2c
type SMBus struct {
	bus     smbus.Bus
	index   int
	address uint16
	opened  bool
}

func OpenSMBus(index int) (*SMBus, error) {
	s := &SMBus{index: index}
	if err := s.bus.Open(index); err != nil {
		return nil, errors.Wrapf(err, "open smbus %d", index)
	}
	s.opened = true
	return s, nil
}

func (this *SMBus) Close() error {
	if !this.opened {
		return nil
	}
	this.opened = false
	return this.bus.Close()
}

func (this *SMBus) selectLine(addr uint16) error {
	if this.address == addr {
		return nil
	}
	if err := this.bus.ForceSlaveAddress(int(addr)); err != nil {
		return errors.Wrapf(err, "smbus %d select 0x%02x", this.index, addr)
	}
	this.address = addr
	return nil
}

// Tx maps the write/read pair onto quick, byte and i2c block transfers; the
// first written byte is the SMBus command.
func (this *SMBus) Tx(addr uint16, w, r []byte) error {
	if err := this.selectLine(addr); err != nil {
		return err
	}
	var sd smbus.SMBusData
	var err error
	switch {
	case len(w) == 0 && len(r) == 0:
		err = this.bus.Do(smbus.Write, 0, smbus.Quick, &sd)
		return this.wrap(err, addr)
	case len(w) == 0:
		err = this.bus.Do(smbus.Read, 0, smbus.Byte, &sd)
		if err == nil && len(r) > 0 {
			r[0] = sd[0]
		}
		return this.wrap(err, addr)
	case len(w) == 1 && len(r) == 0:
		err = this.bus.Do(smbus.Write, w[0], smbus.Byte, &sd)
		return this.wrap(err, addr)
	case len(r) == 0:
		if len(w)-1 > maxBlock {
			return errors.Errorf("smbus %d: %d byte write too long", this.index, len(w))
		}
		sd[0] = byte(len(w) - 1)
		copy(sd[1:], w[1:])
		err = this.bus.Do(smbus.Write, w[0], smbus.I2CBlockData, &sd)
		return this.wrap(err, addr)
	}
	if len(r) > maxBlock {
		return errors.Errorf("smbus %d: %d byte read too long", this.index, len(r))
	}
	sd[0] = byte(len(r))
	err = this.bus.Do(smbus.Read, w[0], smbus.I2CBlockData, &sd)
	if err == nil {
		copy(r, sd[1:])
	}
	return this.wrap(err, addr)
}

func (this *SMBus) wrap(err error, addr uint16) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "smbus %d tx 0x%02x", this.index, addr)
}

func (this *SMBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return this.Tx(uint16(addr), []byte{r}, buf)
}

func (this *SMBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return this.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

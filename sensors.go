package main

import (
	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/bme280"
	"tinygo.org/x/drivers/lis3dh"
)

// peripheral addresses
const (
	addrFuel  = 0x36
	addrAccel = 0x18
	addrEnv   = 0x76
)

// MAX17048 registers
const (
	regFuelVCell   = 0x02
	regFuelSOC     = 0x04
	regFuelVersion = 0x08
)

const (
	regAccelWhoAmI = 0x0F
	accelWhoAmI    = 0x33
	regEnvChipID   = 0xD0
	envChipID      = 0x60
)

var errNoFuelGauge = errors.New("fuel gauge not responding")
var errSensor = errors.New("sensor not responding")

type envReading struct {
	milliC   int32 // temperature
	humidity int32 // hundredths of a percent
	milliPa  int32 // pressure
}

type max17048 struct {
	bus  drivers.I2C
	addr uint8
}

func newFuelGauge(bus drivers.I2C) *max17048 {
	return &max17048{bus: bus, addr: addrFuel}
}

func (m *max17048) readWord(reg uint8) (uint16, error) {
	var buf [2]byte
	if err := m.bus.ReadRegister(m.addr, reg, buf[:]); err != nil {
		return 0, errors.Wrapf(err, "fuel gauge register 0x%02x", reg)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (m *max17048) begin() error {
	v, err := m.readWord(regFuelVersion)
	if err != nil {
		return errors.WithMessage(errNoFuelGauge, err.Error())
	}
	if v&0xFFF0 != 0x0010 {
		return errors.Wrapf(errNoFuelGauge, "unexpected version 0x%04x", v)
	}
	return nil
}

func (m *max17048) percent() (int, error) {
	w, err := m.readWord(regFuelSOC)
	if err != nil {
		return 0, err
	}
	pct := int(w >> 8)
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

// millivolts reads the cell voltage, 78.125uV per bit
func (m *max17048) millivolts() (int, error) {
	w, err := m.readWord(regFuelVCell)
	if err != nil {
		return 0, err
	}
	return int(w) * 5 / 64, nil
}

type bmeSensor struct {
	dev bme280.Device
}

func newEnvSensor(bus drivers.I2C) *bmeSensor {
	dev := bme280.New(bus)
	dev.Address = addrEnv
	return &bmeSensor{dev: dev}
}

func (b *bmeSensor) begin() error {
	b.dev.Configure()
	if !b.dev.Connected() {
		return errors.Wrap(errSensor, "bme280")
	}
	return nil
}

func (b *bmeSensor) read() (envReading, error) {
	var r envReading
	var err error
	if r.milliC, err = b.dev.ReadTemperature(); err != nil {
		return r, errors.Wrap(err, "bme280 temperature")
	}
	if r.humidity, err = b.dev.ReadHumidity(); err != nil {
		return r, errors.Wrap(err, "bme280 humidity")
	}
	if r.milliPa, err = b.dev.ReadPressure(); err != nil {
		return r, errors.Wrap(err, "bme280 pressure")
	}
	return r, nil
}

type lis3dhAccel struct {
	dev lis3dh.Device
}

func newAccelerometer(bus drivers.I2C) *lis3dhAccel {
	dev := lis3dh.New(bus)
	dev.Address = lis3dh.Address0
	return &lis3dhAccel{dev: dev}
}

func (a *lis3dhAccel) begin() error {
	a.dev.Configure()
	a.dev.SetRange(lis3dh.RANGE_2_G)
	if !a.dev.Connected() {
		return errors.Wrap(errSensor, "lis3dh")
	}
	return nil
}

// read returns micro-g per axis
func (a *lis3dhAccel) read() (x, y, z int32, err error) {
	x, y, z, err = a.dev.ReadAcceleration()
	if err != nil {
		err = errors.Wrap(err, "lis3dh")
	}
	return
}

package i2c

import (
	"log"
	"sync"

	"github.com/pkg/errors"
)

// how many writes a Sim remembers
const maxWrites = 1024

// Write is one recorded write transaction
type Write struct {
	Addr uint16
	Data []byte
}

// Sim is an in-memory bus: it records writes, serves reads from a register
// map and only acknowledges the addresses marked present.
type Sim struct {
	mu      sync.Mutex
	bus     int
	present map[uint16]bool
	noRead  map[uint16]bool
	regs    map[uint16]map[uint8]byte
	writes  []Write
	last    map[uint16]string
	verbose bool
}

// NewSim returns a bus where every address acknowledges
func NewSim(bus int) *Sim {
	return &Sim{
		bus:  bus,
		regs: make(map[uint16]map[uint8]byte),
		last: make(map[uint16]string),
	}
}

// Verbose logs every write that differs from the last one to its address
func (this *Sim) Verbose(on bool) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.verbose = on
}

// SetPresent limits the acknowledging devices to addrs
func (this *Sim) SetPresent(addrs ...uint16) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.present = make(map[uint16]bool)
	for _, a := range addrs {
		this.present[a] = true
	}
}

// SetWriteOnly makes addrs refuse reads, like display controllers that
// only receive
func (this *Sim) SetWriteOnly(addrs ...uint16) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.noRead = make(map[uint16]bool)
	for _, a := range addrs {
		this.noRead[a] = true
	}
}

// SetRegister stores vals at consecutive registers starting at reg
func (this *Sim) SetRegister(addr uint16, reg uint8, vals ...byte) {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.setRegister(addr, reg, vals)
}

func (this *Sim) setRegister(addr uint16, reg uint8, vals []byte) {
	m, ok := this.regs[addr]
	if !ok {
		m = make(map[uint8]byte)
		this.regs[addr] = m
	}
	for i, v := range vals {
		m[reg+uint8(i)] = v
	}
}

func (this *Sim) Writes() []Write {
	this.mu.Lock()
	defer this.mu.Unlock()
	ret := make([]Write, len(this.writes))
	copy(ret, this.writes)
	return ret
}

// LastWrite returns the latest write to addr, nil if there was none
func (this *Sim) LastWrite(addr uint16) []byte {
	this.mu.Lock()
	defer this.mu.Unlock()
	for i := len(this.writes) - 1; i >= 0; i-- {
		if this.writes[i].Addr == addr {
			return this.writes[i].Data
		}
	}
	return nil
}

func (this *Sim) Close() error {
	if this.verbose {
		log.Printf("Close: sim bus %d", this.bus)
	}
	return nil
}

func (this *Sim) Tx(addr uint16, w, r []byte) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.present != nil && !this.present[addr] {
		return errors.Errorf("sim bus %d: no ack from 0x%02x", this.bus, addr)
	}
	if len(r) > 0 && this.noRead[addr] {
		return errors.Errorf("sim bus %d: 0x%02x refused read", this.bus, addr)
	}

	if len(w) > 0 {
		data := make([]byte, len(w))
		copy(data, w)
		if len(this.writes) >= maxWrites {
			this.writes = append(this.writes[:0], this.writes[maxWrites/2:]...)
		}
		this.writes = append(this.writes, Write{Addr: addr, Data: data})
		if this.verbose && this.last[addr] != string(data) {
			log.Printf("Write 0x%02x on bus %d: % x", addr, this.bus, data)
		}
		this.last[addr] = string(data)
		if len(r) == 0 && len(w) > 1 {
			this.setRegister(addr, w[0], w[1:])
		}
	}

	if len(r) > 0 {
		var reg uint8
		if len(w) > 0 {
			reg = w[0]
		}
		m := this.regs[addr]
		for i := range r {
			r[i] = m[reg+uint8(i)]
		}
	}
	return nil
}

func (this *Sim) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return this.Tx(uint16(addr), []byte{r}, buf)
}

func (this *Sim) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return this.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

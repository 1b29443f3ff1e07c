package main

import (
	"sync"
	"sync/atomic"

	"github.com/stianeikeland/go-rpio"
)

type irqFlag int

const (
	flagMenu   irqFlag = iota // btn3 on the home screen
	flagAction                // btn1 on the home screen, battery readout
	flagDate                  // btn2 on the home screen, date readout
	flagSplit                 // btn3 inside the timing programs
	flagCount
)

func (f irqFlag) String() string {
	switch f {
	case flagMenu:
		return "menu"
	case flagAction:
		return "action"
	case flagDate:
		return "date"
	case flagSplit:
		return "split"
	}
	return "unknown"
}

// gpioInterrupts raises a flag on the falling edge of an attached button.
// Edges are found by the watcher goroutine, flags are read and cleared by
// the control loop.
type gpioInterrupts struct {
	mu       sync.Mutex
	attached map[string]irqFlag
	wasLow   map[string]bool
	flags    [flagCount]int32
}

func newGpioInterrupts() *gpioInterrupts {
	return &gpioInterrupts{
		attached: make(map[string]irqFlag),
		wasLow:   make(map[string]bool),
	}
}

func (gi *gpioInterrupts) attach(btn string, f irqFlag) {
	gi.mu.Lock()
	defer gi.mu.Unlock()
	gi.attached[btn] = f
}

func (gi *gpioInterrupts) detach(btn string) {
	gi.mu.Lock()
	defer gi.mu.Unlock()
	delete(gi.attached, btn)
}

func (gi *gpioInterrupts) pending(f irqFlag) bool {
	return atomic.LoadInt32(&gi.flags[f]) != 0
}

func (gi *gpioInterrupts) clear(f irqFlag) {
	atomic.StoreInt32(&gi.flags[f], 0)
}

// sample takes one reading of every button and raises flags for new presses
func (gi *gpioInterrupts) sample(states map[string]rpio.State) []irqFlag {
	gi.mu.Lock()
	defer gi.mu.Unlock()

	raised := []irqFlag{}
	for name, st := range states {
		low := st == rpio.Low
		if low && !gi.wasLow[name] {
			if f, ok := gi.attached[name]; ok {
				atomic.StoreInt32(&gi.flags[f], 1)
				raised = append(raised, f)
			}
		}
		gi.wasLow[name] = low
	}
	return raised
}

func startWatchInterrupts(rt runtimeConfig, gi *gpioInterrupts) {
	rt.logger = &ThreadLogger{name: "Buttons"}
	wg.Add(1)
	go runWatchInterrupts(rt, gi)
}

func runWatchInterrupts(rt runtimeConfig, gi *gpioInterrupts) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runWatchInterrupts")
	}()

	for {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runWatchInterrupts")
			return
		default:
		}

		states, err := rt.buttons.readButtons(rt)
		if err != nil {
			// we're done
			rt.logger.Println(err.Error())
			rt.comms.shutdown()
			return
		}

		for _, f := range gi.sample(states) {
			rt.logger.Printf("raised %s", f)
		}

		rt.clock.Sleep(dIrqSleep)
	}
}

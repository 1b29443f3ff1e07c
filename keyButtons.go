package main

import (
	"sync"
	"time"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// how long one key stroke reads as a held button
const dKeyHold = 150 * time.Millisecond

type keyButtons struct {
	mu   sync.Mutex
	keys map[rune]string
	last map[string]time.Time
	err  error
}

func (kb *keyButtons) initButtons(s *settings) error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "termbox init")
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()
	return nil
}

func (kb *keyButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	kb.mu.Lock()
	kb.keys = make(map[rune]string)
	kb.last = make(map[string]time.Time)
	for k, v := range pins {
		if v.key == "" {
			continue
		}
		kb.keys[rune(v.key[0])] = k
		rt.logger.Printf("%s on key '%s'", k, v.key[:1])
	}
	kb.mu.Unlock()

	go kb.pollKeys(rt)
	return nil
}

func (kb *keyButtons) pollKeys(rt runtimeConfig) {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			// add an exit key
			if ev.Key == termbox.KeyCtrlC {
				kb.mu.Lock()
				kb.err = errors.New("Exit termbox loop")
				kb.mu.Unlock()
				return
			}
			kb.mu.Lock()
			if name, ok := kb.keys[ev.Ch]; ok {
				kb.last[name] = rt.clock.Now()
			}
			kb.mu.Unlock()
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

// readButtons reports a key as pressed for a short while after it was hit
func (kb *keyButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.err != nil {
		return nil, kb.err
	}

	now := rt.clock.Now()
	ret := make(map[string]rpio.State)
	for _, name := range kb.keys {
		ret[name] = rpio.High
		if t, ok := kb.last[name]; ok && now.Sub(t) < dKeyHold {
			ret[name] = rpio.Low
		}
	}
	return ret, nil
}

func (kb *keyButtons) closeButtons() {
	termbox.Interrupt()
	termbox.Close()
}

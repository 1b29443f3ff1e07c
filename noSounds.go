package main

import (
	"sync"
)

// logBuzzer remembers what would have been played
type logBuzzer struct {
	mu      sync.Mutex
	freqs   []int
	playing bool
	stops   int
}

func (lb *logBuzzer) tone(freq int) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.freqs = append(lb.freqs, freq)
	lb.playing = true
}

func (lb *logBuzzer) noTone() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.playing {
		lb.stops++
	}
	lb.playing = false
}

func (lb *logBuzzer) isPlaying() bool {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.playing
}

func (lb *logBuzzer) played() []int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return append([]int{}, lb.freqs...)
}

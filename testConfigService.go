package main

import (
	"sync"
)

// testStatusService keeps the handler instead of listening
type testStatusService struct {
	mu      sync.Mutex
	handler *APIHandler
	addr    string
	stopped bool
}

func (t *testStatusService) launch(handler *APIHandler, addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
	t.addr = addr
}

func (t *testStatusService) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *testStatusService) state() (*APIHandler, string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler, t.addr, t.stopped
}

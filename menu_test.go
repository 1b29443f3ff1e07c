package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

const ms = time.Millisecond

func TestScrollIndex(t *testing.T) {
	for _, tc := range []struct {
		i, delta, n, want int
	}{
		{1, 1, 10, 2},
		{9, 1, 10, 1},
		{1, -1, 10, 9},
		{5, -1, 10, 4},
		{3, 10, 10, 4},
		{1, 1, 2, 1},
		{1, 1, 1, 0},
	} {
		assert.Equal(t, scrollIndex(tc.i, tc.delta, tc.n), tc.want, "scrollIndex(%d, %d, %d)", tc.i, tc.delta, tc.n)
	}
}

func TestMenuSelectFirst(t *testing.T) {
	rig := testRuntime(press{btn4, 500 * ms, 100 * ms})
	d := rig.newDev()

	idx := d.menuSelect()
	assert.Equal(t, idx, 1)
	assert.Assert(t, rig.right().inOrder("Chro", "", "Chro", "", "Chro", "", "Chro"))
	assert.Assert(t, rig.left().seen("   1"))
}

func TestMenuScroll(t *testing.T) {
	rig := testRuntime(
		press{btn3, 300 * ms, 50 * ms},
		press{btn3, 600 * ms, 50 * ms},
		press{btn1, 900 * ms, 50 * ms},
		press{btn4, 1200 * ms, 50 * ms},
	)
	d := rig.newDev()

	idx := d.menuSelect()
	assert.Equal(t, idx, 2)
	assert.Assert(t, rig.right().inOrder("Chro", "data", "Alrm", "data"))
}

func TestMenuWrapsBackwards(t *testing.T) {
	rig := testRuntime(
		press{btn1, 300 * ms, 50 * ms},
		press{btn4, 600 * ms, 50 * ms},
	)
	d := rig.newDev()

	idx := d.menuSelect()
	assert.Equal(t, idx, len(d.programs)-1)
	assert.Assert(t, rig.right().seen("Game"))
	assert.Assert(t, !rig.right().seen("quit"))
}

func TestMenuTimeout(t *testing.T) {
	rig := testRuntime()
	d := rig.newDev()

	idx := d.menuSelect()
	assert.Equal(t, idx, 0)
	assert.Assert(t, rig.at() > dMenuSettle+dInactivity)
	assert.Assert(t, rig.at() < dMenuSettle+dInactivity+50*ms)
}

func TestMenuActivityExtendsTimeout(t *testing.T) {
	rig := testRuntime(press{btn3, 2000 * ms, 50 * ms})
	d := rig.newDev()

	idx := d.menuSelect()
	assert.Equal(t, idx, 0)
	// the scroll at 2s restarts the inactivity window
	assert.Assert(t, rig.at() > 2000*ms+dButtonDelay+dInactivity)
}

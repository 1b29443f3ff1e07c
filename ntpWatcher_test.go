package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

func TestCheckDrift(t *testing.T) {
	rig := testRuntime()
	ts := &testNtpChecker{}

	ts.set(testStart.Add(2 * time.Minute))
	assert.Assert(t, !checkDrift(rig.rt, ts))
	assert.Equal(t, rig.rt.rtc.now(), testStart)

	ts.set(testStart.Add(-4 * time.Minute))
	assert.Assert(t, !checkDrift(rig.rt, ts))

	ahead := testStart.Add(-2 * time.Hour)
	ts.set(ahead)
	assert.Assert(t, checkDrift(rig.rt, ts))
	assert.Equal(t, rig.rt.rtc.now(), ahead)

	ts.fail = true
	assert.Assert(t, !checkDrift(rig.rt, ts))
	assert.Equal(t, rig.rt.rtc.now(), ahead)
}

func TestNTPWatcher(t *testing.T) {
	rig := testRuntime()
	clock := clockwork.NewFakeClockAt(testStart)
	rt := rig.rt
	rt.clock = clock
	rt.rtc = newRealTimeClock(clock)

	ts := &testNtpChecker{}
	ts.set(testStart.Add(time.Hour))
	startNTPWatcher(rt, ts)

	// first check happens right away, then it parks on the next one
	clock.BlockUntil(1)
	assert.Equal(t, rt.rtc.now(), testStart.Add(time.Hour))

	rt.rtc.set(testStart.Add(-time.Hour))
	ts.set(clock.Now().Add(30 * time.Minute))
	clock.Advance(time.Hour)
	clock.BlockUntil(1)
	assert.Equal(t, rt.rtc.now(), testStart.Add(30*time.Minute))

	rt.comms.shutdown()
	wg.Wait()
}

func TestParseIPTime(t *testing.T) {
	got, err := parseIPTime([]byte(`{"abbreviation":"EDT","datetime":"2024-03-15T08:00:01.123456-04:00","utc_offset":"-04:00"}`))
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(time.Date(2024, 3, 15, 12, 0, 1, 123456000, time.UTC)))

	_, err = parseIPTime([]byte(`{"unixtime": 1710504001}`))
	assert.ErrorContains(t, err, "time service reply")

	_, err = parseIPTime([]byte(`{"datetime":"yesterday"}`))
	assert.ErrorContains(t, err, "time service datetime")
}

func TestOOBFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ip" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"datetime":"2024-03-15T12:00:00.000000+00:00"}`))
	}))
	defer srv.Close()

	body, err := OOBFetch(srv.URL + "/api/ip")
	assert.NilError(t, err)
	assert.Assert(t, len(body) > 0)

	_, err = OOBFetch(srv.URL + "/missing")
	assert.ErrorContains(t, err, "404")

	rig := testRuntime()
	rig.rt.settings.settings[sTimeURL] = srv.URL + "/api/ip"
	got, err := (&ntpChecker{}).getIPDateTime(rig.rt)
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(testStart))
}

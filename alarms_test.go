package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestAlarmDueOncePerMinute(t *testing.T) {
	a := &alarmState{}
	at := time.Date(2024, 3, 15, 6, 30, 0, 0, time.UTC)

	assert.Assert(t, !a.due(at), "disarmed")
	a.set(6, 30, true)
	assert.Assert(t, a.due(at))
	assert.Assert(t, !a.due(at.Add(20*time.Second)), "same minute")
	assert.Assert(t, !a.due(at.Add(time.Minute)))
	assert.Assert(t, a.due(at.Add(24*time.Hour)), "next day")
}

func TestAlarmRingsOut(t *testing.T) {
	rig := testRuntime()
	d := rig.newDev()
	d.alarm.set(12, 1, true)

	d.checkAlarm(time.Date(2024, 3, 15, 12, 1, 0, 0, time.UTC))
	assert.Assert(t, rig.right().seen("ALrm"))
	assert.Assert(t, len(rig.buzzer.played()) > 0)
	assert.Equal(t, rig.buzzer.played()[0], alarmTone)
	// the countdown reaching zero silences it
	assert.Assert(t, !rig.buzzer.isPlaying())
	assert.Equal(t, rig.at(), rig.rt.settings.GetDuration(sAlarmRing))
}

func TestAlarmStoppedByButton(t *testing.T) {
	rig := testRuntime(press{btn2, 1000 * ms, 50 * ms})
	d := rig.newDev()
	d.alarm.set(12, 1, true)
	d.attachHome()

	d.checkAlarm(time.Date(2024, 3, 15, 12, 1, 0, 0, time.UTC))
	assert.Assert(t, !rig.buzzer.isPlaying())
	assert.Assert(t, rig.at() < 2*time.Second)
	// the stop press is not a date request
	assert.Assert(t, !rig.rt.irq.pending(flagDate))
}

func TestAlarmFromHome(t *testing.T) {
	rig := testRuntime(press{btn4, 500 * ms, 50 * ms})
	d := rig.newDev()
	d.alarm.set(12, 0, true)

	d.homeStep()
	assert.Assert(t, rig.left().seen("ALrm"))
	assert.Assert(t, !rig.buzzer.isPlaying())
}

func TestAlarmSet(t *testing.T) {
	rig := testRuntime(taps(seq(
		[]string{btn4}, repeat(btn3, 6), []string{btn4}, // hour 06
		repeat(btn3, 3), []string{btn4, btn4}, // minute 30
		[]string{btn3, btn4}, // arm and save
	)...)...)
	d := rig.newDev()

	runAlarmSet(d)
	assert.Equal(t, d.alarm.get(), alarmView{Hour: 6, Minute: 30, Armed: true})
	assert.Assert(t, strings.Contains(rig.serial.String(), "alarm 06:30 on"))
	assert.Assert(t, rig.right().seen("  on"))
}

func TestAlarmSetCancelRestores(t *testing.T) {
	rig := testRuntime(taps(seq(
		[]string{btn4}, repeat(btn3, 6), []string{btn4},
		[]string{btn4, btn4},
		[]string{btn1},
	)...)...)
	d := rig.newDev()
	d.alarm.set(7, 15, true)

	runAlarmSet(d)
	assert.Equal(t, d.alarm.get(), alarmView{Hour: 7, Minute: 15, Armed: true})
}

func TestAlarmFromCalendar(t *testing.T) {
	rig := testRuntime(taps(btn4, btn4, btn4, btn4, btn2, btn4)...)
	rig.rt.calendar.(*testEvents).next = testStart.Add(3*time.Hour + 15*time.Minute)
	d := rig.newDev()

	runAlarmSet(d)
	assert.Equal(t, d.alarm.get(), alarmView{Hour: 15, Minute: 15, Armed: true})
	assert.Assert(t, rig.left().seen("gcal"))
}

func TestAlarmFromCalendarError(t *testing.T) {
	// the failed import holds the screen for a second
	rig := testRuntime(append(taps(btn4, btn4, btn4, btn4, btn2), press{btn4, 3 * time.Second, 50 * ms})...)
	rig.rt.calendar.(*testEvents).setFails(1)
	d := rig.newDev()

	runAlarmSet(d)
	assert.Assert(t, rig.right().seen("gcal"))
	assert.Assert(t, rig.left().seen("Err"))
	assert.Equal(t, d.alarm.get(), alarmView{})
}

func TestAlarmFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "alarm.json")
	assert.NilError(t, writeAlarm(alarmView{Hour: 5, Minute: 45, Armed: true}, fname))

	a, err := readAlarm(fname)
	assert.NilError(t, err)
	assert.Equal(t, a, alarmView{Hour: 5, Minute: 45, Armed: true})

	assert.NilError(t, writeAlarm(alarmView{Hour: 25, Minute: 0}, fname))
	_, err = readAlarm(fname)
	assert.ErrorContains(t, err, "out of range")

	_, err = readAlarm(filepath.Join(t.TempDir(), "missing.json"))
	assert.Assert(t, err != nil)
}

func TestAlarmSavedAndLoaded(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "alarm.json")
	rig := testRuntime(taps(btn4, btn4, btn4, btn4, btn3, btn4)...)
	rig.rt.settings.settings[sAlarmFile] = fname
	d := rig.newDev()

	runAlarmSet(d)

	again := testRuntime()
	again.rt.settings.settings[sAlarmFile] = fname
	d2 := again.newDev()
	assert.Equal(t, d2.alarm.get(), alarmView{Hour: 0, Minute: 0, Armed: true})
}

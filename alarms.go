package main

import (
	"encoding/json"
	"io/ioutil"
	"strings"
	"sync"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

const (
	dRingBeat = 250 * time.Millisecond
	alarmTone = 2000
)

// alarmState is the one daily alarm. The status service reads it from its
// own goroutine.
type alarmState struct {
	mu     sync.Mutex
	hour   int
	minute int
	armed  bool
	fired  time.Time // minute the alarm last rang
}

type alarmView struct {
	Hour   int  `json:"hour"`
	Minute int  `json:"minute"`
	Armed  bool `json:"armed"`
}

func (a *alarmState) get() alarmView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return alarmView{Hour: a.hour, Minute: a.minute, Armed: a.armed}
}

func (a *alarmState) set(hour, minute int, armed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hour, a.minute, a.armed = hour, minute, armed
}

// due reports whether now is the alarm minute, and marks it fired so one
// minute only rings once
func (a *alarmState) due(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.armed || now.Hour() != a.hour || now.Minute() != a.minute {
		return false
	}
	minute := now.Truncate(time.Minute)
	if a.fired.Equal(minute) {
		return false
	}
	a.fired = minute
	return true
}

func writeAlarm(a alarmView, fname string) error {
	output, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fname, output, 0644)
}

func readAlarm(fname string) (alarmView, error) {
	var a alarmView
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return a, err
	}
	h, err := jsonparser.GetInt(data, "hour")
	if err != nil {
		return a, errors.Wrap(err, "alarm hour")
	}
	m, err := jsonparser.GetInt(data, "minute")
	if err != nil {
		return a, errors.Wrap(err, "alarm minute")
	}
	armed, _ := jsonparser.GetBoolean(data, "armed")
	a = alarmView{Hour: int(h), Minute: int(m), Armed: armed}
	if validateTime(2000, 1, 1, a.Hour, a.Minute) != nil || a.Hour < 0 || a.Minute < 0 {
		return alarmView{}, errors.Errorf("alarm %02d:%02d out of range", a.Hour, a.Minute)
	}
	return a, nil
}

// loadAlarm restores the saved alarm, if there is one
func (d *device) loadAlarm() {
	fname := d.rt.settings.GetString(sAlarmFile)
	if fname == "" {
		return
	}
	a, err := readAlarm(fname)
	if err != nil {
		d.logger.Printf("no saved alarm: %v", err)
		return
	}
	d.alarm.set(a.Hour, a.Minute, a.Armed)
}

func (d *device) saveAlarm() {
	fname := d.rt.settings.GetString(sAlarmFile)
	if fname == "" {
		return
	}
	if err := writeAlarm(d.alarm.get(), fname); err != nil {
		d.logger.Printf("saving alarm: %v", err)
	}
}

// checkAlarm rings when the armed minute comes around
func (d *device) checkAlarm(now time.Time) {
	if !d.alarm.due(now) {
		return
	}
	d.logger.Printf("alarm at %s", now.Format("15:04"))
	d.publish("ring")
	d.ringAlarm()

	// the button that stopped it must not reach the clock face
	d.rt.irq.clear(flagMenu)
	d.rt.irq.clear(flagAction)
	d.rt.irq.clear(flagDate)
}

// ringAlarm beeps and blinks until a button is pressed or the ring time
// counts down to zero
func (d *device) ringAlarm() {
	rt := d.rt
	beats := int(rt.settings.GetDuration(sAlarmRing) / dRingBeat)
	on := false
	for cnt := beats; ; cnt-- {
		if cnt <= 0 || d.quitting() {
			rt.buzzer.noTone()
			break
		}
		if btn := firstPressed(rt, btn1, btn2, btn3, btn4); btn != "" {
			rt.buzzer.noTone()
			waitRelease(rt, btn)
			break
		}
		on = !on
		if on {
			d.showBoth("ALrm", "ALrm")
			rt.buzzer.tone(alarmTone)
		} else {
			d.showBoth("", "")
			rt.buzzer.noTone()
		}
		d.sleep(dRingBeat)
	}
	d.showBoth("", "")
}

func onOff(on bool) string {
	if on {
		return "  on"
	}
	return " off"
}

func (d *device) showAlarm() {
	a := d.alarm.get()
	d.left.SetDecimal(a.Hour*100 + a.Minute)
	d.right.SetString(onOff(a.Armed))
}

// importAlarm takes the alarm time from the next calendar event
func (d *device) importAlarm() bool {
	d.showBoth("gcal", "----")
	t, err := d.rt.calendar.nextAlarm(d.rt)
	if err != nil {
		d.logger.Println(err.Error())
		d.showBoth("Err", "gcal")
		d.sleep(dSecond)
		return false
	}
	t = t.In(d.rt.rtc.now().Location())
	d.alarm.set(t.Hour(), t.Minute(), true)
	d.logger.Printf("alarm from calendar %s", t.Format(time.RFC3339))
	return true
}

// runAlarmSet edits the alarm time, then btn3 arms or disarms it, btn2
// takes it from the calendar and btn4 saves
func runAlarmSet(d *device) {
	rt := d.rt
	a := d.alarm.get()
	hour, ok := d.enterNumber("hour", a.Hour, 23)
	if !ok {
		return
	}
	minute, ok := d.enterNumber("min", a.Minute, 59)
	if !ok {
		return
	}
	if err := validateTime(2000, 1, 1, hour, minute); err != nil {
		d.logger.Println(err.Error())
		d.showError()
		return
	}
	d.alarm.set(hour, minute, a.Armed)

	for !d.quitting() {
		d.showAlarm()
		btn := waitAnyPress(rt, btn1, btn2, btn3, btn4)
		waitRelease(rt, btn)
		v := d.alarm.get()
		switch btn {
		case btn1:
			d.alarm.set(a.Hour, a.Minute, a.Armed)
			return
		case btn2:
			d.importAlarm()
		case btn3:
			d.alarm.set(v.Hour, v.Minute, !v.Armed)
		case btn4:
			d.saveAlarm()
			d.serialf("alarm %02d:%02d %s", v.Hour, v.Minute, strings.TrimSpace(onOff(v.Armed)))
			d.showBoth("ALrm", onOff(v.Armed))
			d.sleep(dSecond)
			return
		}
	}
}

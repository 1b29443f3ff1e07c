package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var errBadTime = errors.New("time out of range")

// dayOfWeek is Zeller's congruence with January and February counted as
// months 13 and 14 of the year before. 0 is Sunday.
func dayOfWeek(y, m, d int) int {
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (d + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7
	return (h + 6) % 7
}

func daysInMonth(y, m int) int {
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func validateTime(year, month, day, hour, minute int) error {
	switch {
	case hour > 23:
		return errors.Wrapf(errBadTime, "hour %d", hour)
	case minute > 59:
		return errors.Wrapf(errBadTime, "minute %d", minute)
	case month < 1 || month > 12:
		return errors.Wrapf(errBadTime, "month %d", month)
	case day < 1 || day > daysInMonth(year, month):
		return errors.Wrapf(errBadTime, "day %d", day)
	}
	return nil
}

// enterNumber edits a two digit value on the right surface. btn3 steps the
// current digit, btn4 moves on, btn1 gives up. The tens digit never goes
// past the tens of max.
func (d *device) enterNumber(label string, initial, max int) (int, bool) {
	rt := d.rt
	maxTens := max / 10
	tens, ones := initial/10, initial%10
	if tens > maxTens || tens < 0 {
		tens = 0
	}
	if ones < 0 {
		ones = 0
	}

	d.left.SetString(label)
	for pos := 0; pos < 2; {
		if pos == 0 {
			d.right.SetString(fmt.Sprintf("  %d-", tens))
		} else {
			d.right.SetString(fmt.Sprintf("  %d%d", tens, ones))
		}
		btn := waitAnyPress(rt, btn1, btn3, btn4)
		waitRelease(rt, btn)
		switch btn {
		case "", btn1:
			return 0, false
		case btn3:
			if pos == 0 {
				tens = (tens + 1) % (maxTens + 1)
			} else {
				ones = (ones + 1) % 10
			}
		case btn4:
			pos++
		}
	}
	return tens*10 + ones, true
}

// meridiem settles a 1..12 hour as AM or PM; 0 and 13..23 are already
// unambiguous
func (d *device) meridiem(hour int) (int, bool) {
	if hour == 0 || hour > 12 {
		return hour, true
	}
	d.left.SetString("A--P")
	d.right.SetDecimal(hour)
	btn := waitAnyPress(d.rt, btn1, btn3)
	waitRelease(d.rt, btn)
	switch btn {
	case btn1:
		if hour == 12 {
			return 0, true
		}
		return hour, true
	case btn3:
		if hour == 12 {
			return 12, true
		}
		return hour + 12, true
	}
	return 0, false
}

func (d *device) showError() {
	d.showBoth("Err", "or")
	d.sleep(dSecond)
}

func runTimeSet(d *device) {
	now := d.rt.rtc.now()

	fields := []struct {
		label   string
		initial int
		max     int
	}{
		{"hour", now.Hour(), 23},
		{"min", now.Minute(), 59},
		{"yr", now.Year() % 100, 99},
		{"mon", int(now.Month()), 12},
		{"day", now.Day(), 31},
	}
	var v [5]int
	for i, f := range fields {
		n, ok := d.enterNumber(f.label, f.initial, f.max)
		if !ok {
			return
		}
		v[i] = n
	}
	hour, minute, year, month, day := v[0], v[1], 2000+v[2], v[3], v[4]

	if err := validateTime(year, month, day, hour, minute); err != nil {
		d.logger.Println(err.Error())
		d.showError()
		return
	}
	hour, ok := d.meridiem(hour)
	if !ok {
		return
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())
	d.rt.rtc.set(t)
	d.logger.Printf("clock set to %s", t.Format(time.RFC3339))
	d.showBoth("time", " set")
	d.sleep(dSecond)
}

// showDate puts month and day up with the weekday, then the year
func (d *device) showDate() {
	now := d.rt.rtc.now()
	d.left.SetDecimal(int(now.Month())*100 + now.Day())
	d.right.SetString(weekdayNames[dayOfWeek(now.Year(), int(now.Month()), now.Day())])
	d.sleep(dSecond)
	d.right.SetDecimal(now.Year())
	d.sleep(dSecond)
}

// showBattery shows seconds and charge on the right for a moment
func (d *device) showBattery() {
	pct, err := d.rt.fuel.percent()
	if err != nil {
		d.logger.Println(err.Error())
		d.right.SetString("Err")
		d.sleep(2 * dSecond)
		return
	}
	if pct > 99 {
		pct = 99
	}
	d.right.SetDecimal(d.rt.rtc.now().Second()*100 + pct)
	d.sleep(2 * dSecond)
}

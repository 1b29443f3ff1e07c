package main

import "time"

// the RTC is corrected once it drifts further than this
const maxDrift = 5 * time.Minute

func startNTPWatcher(rt runtimeConfig, ts timeSource) {
	rt.logger = &ThreadLogger{name: "NTPWatcher"}
	wg.Add(1)
	go runNTPWatcher(rt, ts)
}

// checkDrift resets the RTC when it is too far off, true if it did
func checkDrift(rt runtimeConfig, ts timeSource) bool {
	ipTime, err := ts.getIPDateTime(rt)
	if err != nil {
		rt.logger.Println(err.Error())
		return false
	}
	diff := rt.rtc.now().Sub(ipTime)
	if diff <= maxDrift && diff >= -maxDrift {
		return false
	}
	rt.logger.Printf("clock off by %v, resetting", diff)
	rt.rtc.set(ipTime)
	return true
}

func runNTPWatcher(rt runtimeConfig, ts timeSource) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runNTPWatcher")
	}()

	for {
		checkDrift(rt, ts)
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runNTPWatcher")
			return
		case <-rt.clock.After(rt.settings.GetDuration(sTimeCheck)):
		}
	}
}

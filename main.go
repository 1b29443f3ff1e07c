package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dscheirer.com/tm8/tracks"
)

// compiled in hardware features, filled in by init() of the drivers
var features []string

// tm8 -config={config file} [-selftest] [-oauth] [-echo]

func loadTracks(s *settings) (*tracks.Table, error) {
	path := s.GetString(sTrackFile)
	if path == "" {
		return tracks.Default(), nil
	}
	tbl, err := tracks.Load(path)
	if err != nil {
		return nil, err
	}
	if err := tracks.Validate(tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

func main() {
	configFile := flag.String("config", "", "path to config file, built in defaults when empty")
	selfTestOnly := flag.Bool("selftest", false, "run the boot self-test and exit")
	oauthOnly := flag.Bool("oauth", false, "authorize the calendar and exit")
	echo := flag.Bool("echo", false, "copy the log to stderr")
	flag.Parse()

	s, err := loadSettings(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	closer, err := setupLogging(s, *echo)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	logger := &ThreadLogger{name: "Main"}
	logger.Printf("features: %v", features)
	s.Dump()

	if *oauthOnly {
		if err := (&gcalEvents{}).authorize(s); err != nil {
			logger.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	tbl, err := loadTracks(s)
	if err != nil {
		log.Fatal(err)
	}

	rt, err := initRuntime(s)
	if err != nil {
		log.Fatal(err)
	}
	if err := startButtons(rt); err != nil {
		log.Fatal(err)
	}
	defer rt.buttons.closeButtons()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			logger.Printf("caught %v", sig)
			rt.comms.shutdown()
		case <-rt.comms.quit:
		}
	}()

	gi := newGpioInterrupts()
	rt.irq = gi
	startWatchInterrupts(rt, gi)
	if s.GetString(sTimeURL) != "" {
		startNTPWatcher(rt, &ntpChecker{})
	}
	if s.GetString(sStatusAddr) != "" {
		startStatusService(rt, &httpStatusService{})
	}

	d := newDevice(rt, tbl)
	err = d.boot()
	if err != nil {
		logger.Println(err.Error())
	} else if !*selfTestOnly {
		d.run()
	}

	rt.comms.shutdown()
	wg.Wait()
	rt.buzzer.noTone()
	indicatorsOff(rt)
	logger.Println("exiting")
	if code := exitStatus(err); code != 0 {
		closer.Close()
		os.Exit(code)
	}
}

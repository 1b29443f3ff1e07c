package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// setting keys
const (
	sTransport     = "i2c_transport"
	sLeftBus       = "i2c_left_bus"
	sRightBus      = "i2c_right_bus"
	sHoldTime      = "hold_time"
	sDebug         = "debug_dump"
	sLogFile       = "logFile"
	sButtonSource  = "button_source"
	sLedPins       = "led_pins"
	sBacklightPins = "backlight_pins"
	sTonePin       = "tone_pin"
	sTrackFile     = "track_file"
	sStatusAddr    = "status_addr"
	sStatusUser    = "status_user"
	sStatusSecret  = "status_secret"
	sCalName       = "calendar"
	sSecrets       = "secretPath"
	sHomeTick      = "home_tick"
	sAlarmRing     = "alarm_ring"
	sAlarmFile     = "alarm_file"
	sTimeURL       = "time_url"
	sTimeCheck     = "time_check"
)

// button names, also their setting keys
const (
	btn1 = "btn1" // top left
	btn2 = "btn2" // bottom left
	btn3 = "btn3" // top right
	btn4 = "btn4" // bottom right
)

// button sources
const (
	srcRPIO     = "rpio"
	srcKeyboard = "keyboard"
	srcNone     = "none"
)

type buttonMap struct {
	pinNum int
	key    string
}

// keep settings generic, type-convert on the fly
type settings struct {
	settings map[string]interface{}
}

func defaultSettings() *settings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sTransport] = "dev"
	s[sLeftBus] = 1
	s[sRightBus] = 2
	s[sHoldTime] = 8
	s[sDebug] = false
	s[sLogFile] = "/var/log/tm8.log"
	s[sButtonSource] = srcRPIO
	s[btn1] = buttonMap{pinNum: 5, key: "q"}
	s[btn2] = buttonMap{pinNum: 6, key: "a"}
	s[btn3] = buttonMap{pinNum: 13, key: "p"}
	s[btn4] = buttonMap{pinNum: 19, key: "l"}
	s[sLedPins] = "17,27,22,23,24"
	s[sBacklightPins] = "16,20,21,25,8,7"
	s[sTonePin] = 18
	s[sTrackFile] = ""
	s[sStatusAddr] = ""
	s[sStatusUser] = "tm8"
	s[sStatusSecret] = ""
	s[sCalName] = "tm8"
	s[sSecrets] = "/etc/default/tm8"
	s[sHomeTick], _ = time.ParseDuration("100ms")
	s[sAlarmRing], _ = time.ParseDuration("1m")
	s[sAlarmFile] = ""
	s[sTimeURL] = ""
	s[sTimeCheck], _ = time.ParseDuration("1h")

	if runtime.GOARCH != "arm" && runtime.GOARCH != "arm64" {
		s[sTransport] = "sim"
		s[sButtonSource] = srcKeyboard
		s[sLogFile] = "tm8.log"
	}

	return &settings{settings: s}
}

func (s *settings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, dataType, _, err := jsonparser.Get(data, k); err != nil || dataType == jsonparser.NotExist {
			log.Printf("Skipping key %s", k)
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try strconv ParseInt, allows hex
				valString, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		case buttonMap:
			bm := initVal.(buttonMap)
			if pin, err2 := jsonparser.GetInt(data, k, "pin"); err2 == nil {
				bm.pinNum = int(pin)
			}
			if key, err2 := jsonparser.GetString(data, k, "key"); err2 == nil && key != "" {
				bm.key = key
			}
			s.settings[k] = bm
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

func loadSettings(configFile string) (*settings, error) {
	s := defaultSettings()
	if configFile == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load conf file '%s'", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)

	if err := s.settingsFromJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *settings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *settings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *settings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

// GetIntList splits a comma separated setting, bad entries are skipped
func (s *settings) GetIntList(key string) []int {
	ret := []int{}
	for _, f := range strings.Split(s.GetString(key), ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			log.Printf("%s: ignoring %q", key, f)
			continue
		}
		ret = append(ret, v)
	}
	return ret
}

func (s *settings) GetButtonMap(key string) buttonMap {
	switch v := s.settings[key].(type) {
	case buttonMap:
		return v
	default:
		return buttonMap{}
	}
}

func (s *settings) GetAllButtonNames() []string {
	return []string{btn1, btn2, btn3, btn4}
}

func (s *settings) Dump() {
	for k, v := range s.settings {
		if k == sStatusSecret {
			v = "****"
		}
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}

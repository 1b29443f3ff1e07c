package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{
		"i2c_transport": "smbus",
		"i2c_left_bus": "0x3",
		"hold_time": 4,
		"debug_dump": "True",
		"home_tick": "250ms",
		"led_pins": "1, 2,x,3",
		"btn3": {"pin": 26},
		"btn4": {"key": "m"}
	}`))
	assert.NilError(t, err)

	assert.Equal(t, s.GetString(sTransport), "smbus")
	assert.Equal(t, s.GetInt(sLeftBus), 3)
	assert.Equal(t, s.GetInt(sRightBus), 2)
	assert.Equal(t, s.GetInt(sHoldTime), 4)
	assert.Assert(t, s.GetBool(sDebug))
	assert.Equal(t, s.GetDuration(sHomeTick), 250*time.Millisecond)
	assert.DeepEqual(t, s.GetIntList(sLedPins), []int{1, 2, 3})
	assert.Equal(t, s.GetButtonMap(btn3), buttonMap{pinNum: 26, key: "p"})
	assert.Equal(t, s.GetButtonMap(btn4), buttonMap{pinNum: 19, key: "m"})
	assert.Equal(t, s.GetDuration(sTimeCheck), time.Hour)
}

func TestSettingsBadValues(t *testing.T) {
	s := defaultSettings()
	assert.ErrorContains(t, s.settingsFromJSON([]byte(`{"home_tick": "soon"}`)), "setting home_tick")

	s = defaultSettings()
	assert.ErrorContains(t, s.settingsFromJSON([]byte(`{"hold_time": "lots"}`)), "setting hold_time")
}

func TestLoadSettings(t *testing.T) {
	s, err := loadSettings("")
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sStatusUser), "tm8")
	assert.DeepEqual(t, s.GetAllButtonNames(), []string{btn1, btn2, btn3, btn4})

	_, err = loadSettings(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorContains(t, err, "could not load conf file")

	path := filepath.Join(t.TempDir(), "tm8.json")
	assert.NilError(t, ioutil.WriteFile(path, []byte(`{"track_file": "/etc/tm8/tracks.yaml", "time_check": "15m"}`), 0644))
	s, err = loadSettings(path)
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sTrackFile), "/etc/tm8/tracks.yaml")
	assert.Equal(t, s.GetDuration(sTimeCheck), 15*time.Minute)
}

func TestSettingsMissingKeys(t *testing.T) {
	s := defaultSettings()
	assert.Equal(t, s.GetInt("nope"), 0)
	assert.Equal(t, s.GetString("nope"), "")
	assert.Assert(t, !s.GetBool("nope"))
	assert.Equal(t, s.GetDuration("nope"), time.Duration(-1))
	assert.DeepEqual(t, s.GetIntList("nope"), []int{})
}

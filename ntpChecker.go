package main

import (
	"io/ioutil"
	"net/http"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// timeSource tells the watcher what time it really is
type timeSource interface {
	getIPDateTime(rt runtimeConfig) (time.Time, error)
}

// ntpChecker asks a worldtimeapi style service for the local time
type ntpChecker struct{}

const ipTimeLayout = "2006-01-02T15:04:05.999999-07:00"

// OOBFetch gets url, nil on anything but a 200
func OOBFetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch %s: %s", url, resp.Status)
	}
	return ioutil.ReadAll(resp.Body)
}

func parseIPTime(body []byte) (time.Time, error) {
	dt, err := jsonparser.GetString(body, "datetime")
	if err != nil {
		return time.Time{}, errors.Wrap(err, "time service reply")
	}
	t, err := time.Parse(ipTimeLayout, dt)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "time service datetime")
	}
	return t, nil
}

func (ntp *ntpChecker) getIPDateTime(rt runtimeConfig) (time.Time, error) {
	url := rt.settings.GetString(sTimeURL)
	rt.logger.Printf("fetching time from %s", url)
	body, err := OOBFetch(url)
	if err != nil {
		return time.Time{}, err
	}
	return parseIPTime(body)
}

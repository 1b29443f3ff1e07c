package main

import (
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

var errNoEvents = errors.New("no upcoming events")

// gcalEvents takes the next alarm from a named Google calendar
type gcalEvents struct {
	prompt bool
}

func (ge *gcalEvents) service(ctx context.Context, s *settings) (*calendar.Service, error) {
	b, err := ioutil.ReadFile(filepath.Join(s.GetString(sSecrets), "client_secret.json"))
	if err != nil {
		return nil, errors.Wrap(err, "client secret")
	}
	config, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, errors.Wrap(err, "client secret config")
	}
	client, err := calendarClient(ctx, config, ge.prompt)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.New(client)
	if err != nil {
		return nil, errors.Wrap(err, "calendar client")
	}
	return srv, nil
}

// authorize walks through the interactive token setup
func (ge *gcalEvents) authorize(s *settings) error {
	ge.prompt = true
	defer func() { ge.prompt = false }()
	_, err := ge.service(context.Background(), s)
	return err
}

func (ge *gcalEvents) calendarID(srv *calendar.Service, name string) (string, error) {
	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return "", errors.Wrap(err, "calendar list")
	}
	for _, c := range list.Items {
		if c.Summary == name {
			return c.Id, nil
		}
	}
	return "", errors.Errorf("could not find calendar %s", name)
}

// nextAlarm returns the start of the first timed event after now
func (ge *gcalEvents) nextAlarm(rt runtimeConfig) (time.Time, error) {
	logger := &ThreadLogger{name: "Calendar"}
	srv, err := ge.service(context.Background(), rt.settings)
	if err != nil {
		return time.Time{}, err
	}
	id, err := ge.calendarID(srv, rt.settings.GetString(sCalName))
	if err != nil {
		return time.Time{}, err
	}

	events, err := srv.Events.List(id).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(rt.rtc.now().Format(time.RFC3339)).
		MaxResults(10).
		OrderBy("startTime").
		Do()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "event list")
	}
	logger.Printf("%d upcoming events", len(events.Items))

	for _, e := range events.Items {
		// all day events have no time to ring at
		if e.Start == nil || e.Start.DateTime == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			logger.Printf("skipping %q: %v", e.Summary, err)
			continue
		}
		return t, nil
	}
	return time.Time{}, errNoEvents
}

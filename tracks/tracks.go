// Package tracks loads the race track table used by the race chronograph.
package tracks

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// longest name a 4 digit display can show
const maxNameLen = 4

type Table struct {
	Tracks []Track `yaml:"tracks"`
}

// Track is one lap of a known course
type Track struct {
	Name     string `yaml:"name"`
	Distance int    `yaml:"distance_m"`
}

// Default is used when no table is configured
func Default() *Table {
	return &Table{
		Tracks: []Track{
			{Name: "trck", Distance: 400},
			{Name: "1 km", Distance: 1000},
			{Name: "5 km", Distance: 5000},
		},
	}
}

func Load(path string) (*Table, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read track table %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, "parse track table")
	}
	return &t, nil
}

// Validate checks the table without changing it.
func Validate(t *Table) error {
	if t == nil || len(t.Tracks) == 0 {
		return fmt.Errorf("track table is empty")
	}
	seen := make(map[string]bool)
	for i, tr := range t.Tracks {
		if tr.Name == "" {
			return fmt.Errorf("track %d: name is required", i)
		}
		if len(tr.Name) > maxNameLen {
			return fmt.Errorf("track %q: name longer than %d characters", tr.Name, maxNameLen)
		}
		for j := 0; j < len(tr.Name); j++ {
			if tr.Name[j] > 0x7F {
				return fmt.Errorf("track %q: name must be ASCII", tr.Name)
			}
		}
		if seen[tr.Name] {
			return fmt.Errorf("track %q: duplicate name", tr.Name)
		}
		seen[tr.Name] = true
		if tr.Distance <= 0 {
			return fmt.Errorf("track %q: distance_m must be positive", tr.Name)
		}
	}
	return nil
}

// Names lists the track names in table order
func (t *Table) Names() []string {
	ret := make([]string, len(t.Tracks))
	for i, tr := range t.Tracks {
		ret[i] = tr.Name
	}
	return ret
}

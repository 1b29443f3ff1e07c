package tracks

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

const sample = `
tracks:
  - name: oval
    distance_m: 400
  - name: park
    distance_m: 2500
`

func TestParse(t *testing.T) {
	tbl, err := Parse([]byte(sample))
	assert.NilError(t, err)
	assert.NilError(t, Validate(tbl))
	assert.DeepEqual(t, tbl.Names(), []string{"oval", "park"})
	assert.Equal(t, tbl.Tracks[1].Distance, 2500)
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "tracks")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tracks.yaml")
	assert.NilError(t, ioutil.WriteFile(path, []byte(sample), 0644))
	tbl, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, len(tbl.Tracks), 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read track table")
}

func TestValidate(t *testing.T) {
	assert.NilError(t, Validate(Default()))
	assert.ErrorContains(t, Validate(&Table{}), "empty")
	assert.ErrorContains(t, Validate(&Table{Tracks: []Track{{Name: "", Distance: 1}}}), "name is required")
	assert.ErrorContains(t, Validate(&Table{Tracks: []Track{{Name: "toolong", Distance: 1}}}), "longer than")
	assert.ErrorContains(t, Validate(&Table{Tracks: []Track{{Name: "a", Distance: 0}}}), "positive")
	assert.ErrorContains(t, Validate(&Table{Tracks: []Track{{Name: "a", Distance: 1}, {Name: "a", Distance: 2}}}), "duplicate")
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("tracks: [oops"))
	assert.ErrorContains(t, err, "parse track table")
}

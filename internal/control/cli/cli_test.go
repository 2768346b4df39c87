package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
)

const teaShop = `title Tea Shop
component Business [0.95, 0.63]
component Cup of Tea [0.79, 0.61] label [19, -4]
component Hot Water [0.45, 0.57] (inertia)
pipeline Kettle [0.57, 0.5]
{
  component Campfire [0.35]
}
Business->Cup of Tea
evolve Hot Water 0.62
note Standard [0.4, 0.8]
pioneers [0.9, 0.1, 0.7, 0.3]
`

// mapFile writes the tea shop map to a temporary file and isolates the
// configuration from the user's.
func mapFile(t *testing.T) string {
	t.Helper()
	t.Setenv("WARDMAP_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tea.owm")
	require.NoError(t, os.WriteFile(path, []byte(teaShop), 0644))
	return path
}

func TestParseCommand(t *testing.T) {

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		cmd := ParseCommand{File: mapFile(t), Format: "yaml"}
		require.NoError(t, cmd.run(&out))

		var m model.Map
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &m))
		require.NotNil(t, m.Title)
		assert.Equal(t, "Tea Shop", m.Title.Text)
		assert.Len(t, m.Components, 3)
		assert.Empty(t, m.Events)
	})

	t.Run("json with events", func(t *testing.T) {
		path := mapFile(t)
		require.NoError(t, os.WriteFile(path, []byte("component [0.5, 0.5]\n"), 0644))

		var out bytes.Buffer
		cmd := ParseCommand{File: path, Format: "json", Events: true}
		require.NoError(t, cmd.run(&out))

		var m model.Map
		require.NoError(t, json.Unmarshal(out.Bytes(), &m))
		require.Len(t, m.Components, 1)
		assert.NotEmpty(t, m.Events, "the missing name is reported")
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := ParseCommand{File: filepath.Join(t.TempDir(), "nope.owm")}
		err := cmd.run(&bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestMoveCommand(t *testing.T) {

	t.Run("prints", func(t *testing.T) {
		path := mapFile(t)
		var out bytes.Buffer
		cmd := MoveCommand{File: path, Line: 2, Coords: "0.9,0.7"}
		require.NoError(t, cmd.run(&out))

		m := extract.Parse(out.String())
		assert.Equal(t, model.Point{Visibility: 0.9, Maturity: 0.7}, m.Components[0].Point)

		original, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, teaShop, string(original), "file untouched without -w")
	})

	t.Run("writes", func(t *testing.T) {
		path := mapFile(t)
		var out bytes.Buffer
		cmd := MoveCommand{File: path, Line: 7, Coords: "[0.40]", Write: true}
		require.NoError(t, cmd.run(&out))
		assert.Empty(t, out.String())

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(written), "  component Campfire [0.40]\n")
	})

	t.Run("wrong arity", func(t *testing.T) {
		cmd := MoveCommand{File: mapFile(t), Line: 2, Coords: "0.5"}
		err := cmd.run(&bytes.Buffer{})
		assert.True(t, errors.Is(err, mutate.ErrInvalidCoordinates))
	})

	t.Run("not a number", func(t *testing.T) {
		cmd := MoveCommand{File: mapFile(t), Line: 2, Coords: "a,b"}
		assert.Error(t, cmd.run(&bytes.Buffer{}))
	})

	t.Run("empty line", func(t *testing.T) {
		cmd := MoveCommand{File: mapFile(t), Line: 42, Coords: "0.5,0.5"}
		assert.Error(t, cmd.run(&bytes.Buffer{}))
	})
}

func TestRenameCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := RenameCommand{File: mapFile(t), Line: 3, Name: "Pot of Tea"}
	require.NoError(t, cmd.run(&out))

	m := extract.Parse(out.String())
	assert.Equal(t, "Pot of Tea", m.Components[1].Name)
	require.Len(t, m.Links, 1)
	assert.Equal(t, "Pot of Tea", m.Links[0].End)

	t.Run("collision", func(t *testing.T) {
		cmd := RenameCommand{File: mapFile(t), Line: 3, Name: "Business"}
		err := cmd.run(&bytes.Buffer{})
		assert.True(t, errors.Is(err, mutate.ErrNameCollision))
	})
}

func TestDeleteCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := DeleteCommand{File: mapFile(t), Line: 5}
	require.NoError(t, cmd.run(&out))

	m := extract.Parse(out.String())
	assert.Empty(t, m.Pipelines)
	assert.Len(t, m.Components, 3)
	assert.NotContains(t, out.String(), "Campfire")
}

func TestAddCommand(t *testing.T) {

	t.Run("component with defaults", func(t *testing.T) {
		var out bytes.Buffer
		cmd := AddCommand{File: mapFile(t), Kind: "component", Name: "Business"}
		require.NoError(t, cmd.run(&out))
		assert.Contains(t, out.String(), "component Hot Water [0.45, 0.57] (inertia)\ncomponent Business 1 [0.90, 0.10]\n")
	})

	t.Run("note", func(t *testing.T) {
		var out bytes.Buffer
		cmd := AddCommand{File: mapFile(t), Kind: "note", Name: "Cheap", Coords: "0.2,0.3"}
		require.NoError(t, cmd.run(&out))
		assert.Contains(t, out.String(), "note Standard [0.4, 0.8]\nnote Cheap [0.20, 0.30]\n")
	})

	t.Run("to a pipeline", func(t *testing.T) {
		var out bytes.Buffer
		cmd := AddCommand{File: mapFile(t), Name: "Electric", Pipeline: "Kettle"}
		require.NoError(t, cmd.run(&out))
		assert.Contains(t, out.String(), "{\n  component Electric [0.50]\n  component Campfire [0.35]\n}")
	})

	t.Run("a note to a pipeline", func(t *testing.T) {
		cmd := AddCommand{File: mapFile(t), Kind: "note", Name: "Hi", Pipeline: "Kettle"}
		assert.Error(t, cmd.run(&bytes.Buffer{}))
	})

	t.Run("wrong arity", func(t *testing.T) {
		cmd := AddCommand{File: mapFile(t), Name: "Electric", Pipeline: "Kettle", Coords: "0.5,0.5"}
		assert.Error(t, cmd.run(&bytes.Buffer{}))
	})
}

func TestRefAtLine(t *testing.T) {
	m := extract.Parse(teaShop)

	for line, want := range map[int]mutate.ElementRef{
		1:  {Kind: model.KindTitle, Line: 1},
		2:  {Kind: model.KindComponent, Line: 2, Name: "Business"},
		5:  {Kind: model.KindPipeline, Line: 5, Name: "Kettle"},
		7:  {Kind: model.KindPipelineComponent, Line: 7, Name: "Campfire"},
		9:  {Kind: model.KindLink, Line: 9},
		10: {Kind: model.KindEvolution, Line: 10},
		11: {Kind: model.KindNote, Line: 11},
		12: {Kind: model.KindAttitude, Line: 12},
	} {
		ref, err := refAtLine(m, line)
		require.NoError(t, err, "line %d", line)
		assert.Equal(t, want, ref, "line %d", line)
	}

	_, err := refAtLine(m, 6)
	assert.Error(t, err, "a block brace is no element")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	showVersion(&out)
	assert.Equal(t, "development (unknown)\n", out.String())
}

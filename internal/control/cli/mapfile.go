package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/config"
	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
	"github.com/ja-he/wardmap/internal/syntax"
)

// loadConfig reads the configuration from the wardmap home directory,
// falling back to the defaults if it is unusable.
func loadConfig() config.Config {
	home := config.Home()
	configData, err := config.Load(home)
	if err != nil {
		log.Warn().Err(err).Str("home", home).Msg("can't use config file, using defaults")
	}
	return configData
}

func readMapFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read map file (%w)", err)
	}
	return string(data), nil
}

// emit writes the text back to the map file if write is set and prints it
// otherwise.
func emit(out io.Writer, path string, text string, write bool) error {
	if !write {
		_, err := io.WriteString(out, text)
		return err
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("could not write map file (%w)", err)
	}
	log.Info().Str("file", path).Msg("wrote map")
	return nil
}

// editMapFile applies a single mutation to the map file. The op is built
// from the configuration and the map's current parse result.
func editMapFile(
	out io.Writer,
	path string,
	write bool,
	op func(configData config.Config, m *model.Map) (mutate.Op, error),
) error {
	configData := loadConfig()
	text, err := readMapFile(path)
	if err != nil {
		return err
	}

	o, err := op(configData, extract.ParseWith(configData.ExtractOptions(), text))
	if err != nil {
		return err
	}
	result, err := configData.Engine().Apply(text, o)
	if err != nil {
		return fmt.Errorf("could not %s (%w)", o.Describe(), err)
	}
	log.Debug().Str("op", o.Describe()).Str("file", path).Msg("applied edit")

	return emit(out, path, result, write)
}

// refAtLine returns a reference to the element on the given line.
// Declarations carry their name, so that a stale line is noticed.
func refAtLine(m *model.Map, line int) (mutate.ElementRef, error) {
	if d, ok := m.DeclarationAt(line); ok {
		return mutate.ElementRef{Kind: d.Kind, Line: line, Name: d.Name}, nil
	}
	ref := func(kind model.Kind) (mutate.ElementRef, error) {
		return mutate.ElementRef{Kind: kind, Line: line}, nil
	}
	for _, n := range m.Notes {
		if n.Line == line {
			return ref(model.KindNote)
		}
	}
	for _, a := range m.Attitudes {
		if a.Line == line {
			return ref(model.KindAttitude)
		}
	}
	for _, l := range m.Links {
		if l.Line == line {
			return ref(model.KindLink)
		}
	}
	for _, e := range m.Evolutions {
		if e.Line == line {
			return ref(model.KindEvolution)
		}
	}
	for _, me := range m.Methods {
		if me.Line == line && !me.FromComponent {
			return ref(model.KindMethod)
		}
	}
	if m.Title != nil && m.Title.Line == line {
		return ref(model.KindTitle)
	}
	return mutate.ElementRef{}, fmt.Errorf("no element on line %d", line)
}

// parseCoords reads comma separated coordinates, e.g. "0.5,0.25".
func parseCoords(s string) (mutate.Coords, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "["), "]"))
	values, err := syntax.ParseValues(s)
	if err != nil {
		return nil, fmt.Errorf("invalid coordinates '%s' (%w)", s, err)
	}
	return mutate.Coords(values), nil
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ja-he/wardmap/internal/config"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
)

// AddCommand contains flags for the `add` command line command, for
// `go-flags` to parse command line args into.
type AddCommand struct {
	File     string `short:"f" long:"file" description:"the map file" value-name:"<file>" required:"true"`
	Kind     string `short:"k" long:"kind" description:"the kind of element to add" choice:"component" choice:"note" choice:"anchor" default:"component"`
	Name     string `short:"n" long:"name" description:"the name of the added element (made unique if taken) or the text of the note" value-name:"<name>" required:"true"`
	Coords   string `short:"c" long:"coordinates" description:"the coordinates; only a maturity when adding to a pipeline; configured defaults if omitted" value-name:"<v,m>"`
	Pipeline string `short:"p" long:"pipeline" description:"add the component to the block of this pipeline" value-name:"<pipeline>"`
	Write    bool   `short:"w" long:"write" description:"write the result to the map file instead of printing it"`
}

// Execute executes the add command.
// (This gets called by `go-flags` when `add` is provided on the command line)
func (command *AddCommand) Execute(args []string) error {
	return command.run(os.Stdout)
}

func (command *AddCommand) run(out io.Writer) error {
	kind := model.Kind(command.Kind)
	if kind == "" {
		kind = model.KindComponent
	}
	if command.Pipeline != "" && kind != model.KindComponent {
		return fmt.Errorf("only components can be added to a pipeline, not a %s", kind)
	}

	var coords mutate.Coords
	if command.Coords != "" {
		var err error
		coords, err = parseCoords(command.Coords)
		if err != nil {
			return err
		}
		want := 2
		if command.Pipeline != "" {
			want = 1
		}
		if len(coords) != want {
			return fmt.Errorf("expected %d coordinate values, got %d", want, len(coords))
		}
	}

	return editMapFile(out, command.File, command.Write, func(configData config.Config, _ *model.Map) (mutate.Op, error) {
		op := mutate.Add{Element: kind, Base: command.Name, Pipeline: command.Pipeline}
		switch {
		case command.Pipeline != "" && coords != nil:
			op.Point.Maturity = coords[0]
		case command.Pipeline != "":
			op.Point.Maturity = *configData.Defaults.Maturity
		case coords != nil:
			op.Point = model.Point{Visibility: coords[0], Maturity: coords[1]}
		default:
			op.Point = model.Point{Visibility: configData.Defaults.Point[0], Maturity: configData.Defaults.Point[1]}
		}
		return op, nil
	})
}

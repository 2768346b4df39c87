package cli

import (
	"io"
	"os"

	"github.com/ja-he/wardmap/internal/config"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
)

// Flags for the `move` command line command, for `go-flags` to parse command
// line args into.
type MoveCommand struct {
	File   string `short:"f" long:"file" description:"the map file" value-name:"<file>" required:"true"`
	Line   int    `short:"l" long:"line" description:"the line of the element to move" value-name:"<line>" required:"true"`
	Coords string `short:"c" long:"coordinates" description:"the new coordinates; attitudes take four values, pipeline components and evolutions only a maturity" value-name:"<v,m[,v2,m2]>" required:"true"`
	Write  bool   `short:"w" long:"write" description:"write the result to the map file instead of printing it"`
}

// Executes the move command.
// (This gets called by `go-flags` when `move` is provided on the command line)
func (command *MoveCommand) Execute(args []string) error {
	return command.run(os.Stdout)
}

func (command *MoveCommand) run(out io.Writer) error {
	coords, err := parseCoords(command.Coords)
	if err != nil {
		return err
	}
	return editMapFile(out, command.File, command.Write, func(_ config.Config, m *model.Map) (mutate.Op, error) {
		ref, err := refAtLine(m, command.Line)
		if err != nil {
			return nil, err
		}
		return mutate.Move{Ref: ref, Coords: coords}, nil
	})
}

package cli

import (
	"io"
	"os"

	"github.com/ja-he/wardmap/internal/config"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
)

// Flags for the `delete` command line command, for `go-flags` to parse
// command line args into.
type DeleteCommand struct {
	File  string `short:"f" long:"file" description:"the map file" value-name:"<file>" required:"true"`
	Line  int    `short:"l" long:"line" description:"the line of the element to delete; a pipeline goes with its block" value-name:"<line>" required:"true"`
	Write bool   `short:"w" long:"write" description:"write the result to the map file instead of printing it"`
}

// Executes the delete command.
// (This gets called by `go-flags` when `delete` is provided on the command
// line)
func (command *DeleteCommand) Execute(args []string) error {
	return command.run(os.Stdout)
}

func (command *DeleteCommand) run(out io.Writer) error {
	return editMapFile(out, command.File, command.Write, func(_ config.Config, m *model.Map) (mutate.Op, error) {
		ref, err := refAtLine(m, command.Line)
		if err != nil {
			return nil, err
		}
		return mutate.Delete{Ref: ref}, nil
	})
}

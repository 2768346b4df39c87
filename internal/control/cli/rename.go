package cli

import (
	"io"
	"os"

	"github.com/ja-he/wardmap/internal/config"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
)

// Flags for the `rename` command line command, for `go-flags` to parse
// command line args into.
type RenameCommand struct {
	File  string `short:"f" long:"file" description:"the map file" value-name:"<file>" required:"true"`
	Line  int    `short:"l" long:"line" description:"the line of the element to rename" value-name:"<line>" required:"true"`
	Name  string `short:"n" long:"name" description:"the new name; links and evolutions referring to the old name follow" value-name:"<name>" required:"true"`
	Write bool   `short:"w" long:"write" description:"write the result to the map file instead of printing it"`
}

// Executes the rename command.
// (This gets called by `go-flags` when `rename` is provided on the command
// line)
func (command *RenameCommand) Execute(args []string) error {
	return command.run(os.Stdout)
}

func (command *RenameCommand) run(out io.Writer) error {
	return editMapFile(out, command.File, command.Write, func(_ config.Config, m *model.Map) (mutate.Op, error) {
		ref, err := refAtLine(m, command.Line)
		if err != nil {
			return nil, err
		}
		return mutate.Rename{Ref: ref, Name: command.Name}, nil
	})
}

package cli

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/wardmap/internal/extract"
)

// Flags for the `parse` command line command, for `go-flags` to parse command
// line args into.
type ParseCommand struct {
	File   string `short:"f" long:"file" description:"the map file" value-name:"<file>" required:"true"`
	Format string `long:"format" description:"the output format" choice:"yaml" choice:"json" default:"yaml"`
	Events bool   `long:"events" description:"include the recovery events, i.e. what was repaired in the text"`
}

// Executes the parse command.
// (This gets called by `go-flags` when `parse` is provided on the command
// line)
func (command *ParseCommand) Execute(args []string) error {
	return command.run(os.Stdout)
}

func (command *ParseCommand) run(out io.Writer) error {
	configData := loadConfig()
	text, err := readMapFile(command.File)
	if err != nil {
		return err
	}

	result := *extract.ParseWith(configData.ExtractOptions(), text)
	if !command.Events {
		result.Events = nil
	}

	switch command.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	}
}

package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/potatolog"
	"github.com/ja-he/wardmap/internal/tui"
)

// Flags for the `edit` command line command, for `go-flags` to parse command
// line args into.
type EditCommand struct {
	File          string `short:"f" long:"file" description:"the map file; created on write if missing" value-name:"<file>" required:"true"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs only kept in memory)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
}

// Executes the edit command.
// (This gets called by `go-flags` when `edit` is provided on the command line)
func (command *EditCommand) Execute(args []string) error {
	// set up stderr logger until TUI set up
	stderrLogger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// create TUI logger
	var logWriter io.Writer
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stderrLogger.Fatal().Err(err).Str("file", command.LogOutputFile).Msg("could not open file for logging")
		}
		defer file.Close()
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, potatolog.GlobalMemoryLogReaderWriter)
	} else {
		logWriter = potatolog.GlobalMemoryLogReaderWriter
	}
	tuiLogger := zerolog.New(logWriter).With().Timestamp().Caller().Logger()

	// temporarily log to both (in case the TUI doesn't get set we want the info
	// on the stderr logger, otherwise the TUI logger is relevant)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, tuiLogger))

	configData := loadConfig()

	text, err := readMapFile(command.File)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("file", command.File).Msg("starting a new map")
		text = ""
	} else if err != nil {
		return err
	}

	editor, err := tui.NewEditor(text, configData, func(text string) error {
		return emit(nil, command.File, text, true)
	})
	if err != nil {
		return err
	}
	defer editor.Close()

	screen, err := tui.NewTUIScreenHandler()
	if err != nil {
		return err
	}

	// now that the screen is initialized, we'll always want the TUI logger, so
	// we're making it the global logger
	log.Logger = tuiLogger

	tui.Run(screen, editor)
	screen.Fini()

	if editor.Modified() {
		log.Logger = stderrLogger
		log.Warn().Str("file", command.File).Msg("quit with unwritten changes")
	}
	return nil
}

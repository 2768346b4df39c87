// Package cli provides the command-line interface for wardmap.
package cli

type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	ParseCommand   ParseCommand   `command:"parse" subcommands-optional:"true" description:"print the elements of a map"`
	MoveCommand    MoveCommand    `command:"move" subcommands-optional:"true" description:"set the coordinates of an element"`
	RenameCommand  RenameCommand  `command:"rename" subcommands-optional:"true" description:"rename an element and the references to it"`
	DeleteCommand  DeleteCommand  `command:"delete" subcommands-optional:"true" description:"delete an element"`
	AddCommand     AddCommand     `command:"add" subcommands-optional:"true" description:"add a component, note or anchor"`
	EditCommand    EditCommand    `command:"edit" subcommands-optional:"true" description:"edit a map in the terminal"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true" description:"show the program version"`
}

var Opts CommandLineOpts

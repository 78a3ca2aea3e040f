package cli

import (
	"errors"
	"flag"
	"io"
)

// ErrMissingScenario is returned when a command needs -scenario and got none.
var ErrMissingScenario = errors.New("-scenario is required")

// SearchFlags are the flags of the search command
type SearchFlags struct {
	Scenario string
	JSON     bool
}

// EditFlags are the flags of the edit command
type EditFlags struct {
	Scenario string
	JSON     bool
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int // 0 keeps the configured port
	Verbose bool
}

// ParseSearchFlags parses the search command's arguments
func ParseSearchFlags(args []string, stderr io.Writer) (*SearchFlags, error) {
	flags := &SearchFlags{}
	fs := newFlagSet("search", stderr)
	fs.StringVar(&flags.Scenario, "scenario", "", "Scenario YAML file")
	fs.BoolVar(&flags.JSON, "json", false, "Print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if flags.Scenario == "" {
		return nil, ErrMissingScenario
	}
	return flags, nil
}

// ParseEditFlags parses the edit command's arguments
func ParseEditFlags(args []string, stderr io.Writer) (*EditFlags, error) {
	flags := &EditFlags{}
	fs := newFlagSet("edit", stderr)
	fs.StringVar(&flags.Scenario, "scenario", "", "Scenario YAML file with edits to replay")
	fs.BoolVar(&flags.JSON, "json", false, "Print the final session as JSON")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if flags.Scenario == "" {
		return nil, ErrMissingScenario
	}
	return flags, nil
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags(args []string, stderr io.Writer) (*ServeFlags, error) {
	flags := &ServeFlags{}
	fs := newFlagSet("serve", stderr)
	fs.IntVar(&flags.Port, "port", 0, "Port to listen on (default from config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if stderr != nil {
		fs.SetOutput(stderr)
	}
	return fs
}

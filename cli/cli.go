package cli

import (
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"rsgame-bundler/bundle"
	"rsgame-bundler/ui"
)

type (
	Args struct {
		Pack    *PackCmd    `arg:"subcommand:pack" help:"pack assets into a bundle"`
		List    *ListCmd    `arg:"subcommand:list" help:"print the directory of a bundle"`
		Extract *ExtractCmd `arg:"subcommand:extract" help:"copy one asset out of a bundle"`
		Browse  *BrowseCmd  `arg:"subcommand:browse" help:"browse a bundle interactively"`
		Verbose bool        `arg:"-v,--verbose" help:"log every packed entry"`
	}
	PackCmd struct {
		Manifest string `help:"manifest listing the assets, .json or .yaml" placeholder:"FILE"`
		Schema   string `help:"footer-v0 or header-v1" placeholder:"SCHEMA"`
		Root     string `help:"directory asset paths are relative to" placeholder:"DIR"`
		Out      string `help:"path of the bundle to write" placeholder:"FILE"`
		Attach   string `help:"write the bundle after this file (footer-v0 only)" placeholder:"FILE"`
	}
	ListCmd struct {
		Bundle string `arg:"positional,required" help:"bundle to read" placeholder:"BUNDLE"`
		Schema string `help:"footer-v0 or header-v1, detected when empty" placeholder:"SCHEMA"`
		JSON   bool   `arg:"--json" help:"print the directory as JSON"`
	}
	ExtractCmd struct {
		Bundle string `arg:"positional,required" help:"bundle to read" placeholder:"BUNDLE"`
		Name   string `arg:"positional,required" help:"entry name" placeholder:"NAME"`
		To     string `arg:"required" help:"path to destination file" placeholder:"FILE"`
		Schema string `help:"footer-v0 or header-v1, detected when empty" placeholder:"SCHEMA"`
		Force  bool   `help:"overwrite the destination file"`
	}
	BrowseCmd struct {
		Bundle string `arg:"positional,required" help:"bundle to read" placeholder:"BUNDLE"`
		Schema string `help:"footer-v0 or header-v1, detected when empty" placeholder:"SCHEMA"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Packs game assets into a single bundle file and inspects existing bundles.",
			"",
			"A bundle holds a fixed-record directory and the raw bytes of every asset,",
			"so the game can open one file and reach any asset by name.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// parseSchemaFlag treats an empty flag as "not given".
func parseSchemaFlag(s string) (bundle.Schema, error) {
	if s == "" {
		return "", nil
	}
	return bundle.ParseSchema(s)
}

func NewLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Run executes the subcommand selected in args.
func Run(args Args, stdout io.Writer, logger *logrus.Logger) error {
	switch {
	case args.Pack != nil:
		_, err := StartPacking(*args.Pack, logger)
		return err
	case args.List != nil:
		return StartListing(*args.List, stdout)
	case args.Extract != nil:
		return StartExtracting(*args.Extract, logger)
	case args.Browse != nil:
		schema, err := parseSchemaFlag(args.Browse.Schema)
		if err != nil {
			return err
		}
		archive, err := bundle.Open(args.Browse.Bundle, schema)
		if err != nil {
			return err
		}
		return ui.Start(args.Browse.Bundle, archive)
	}
	return errors.New("no command given")
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	if parser.Subcommand() == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}

	logger := NewLogger(os.Stderr, args.Verbose)
	if err := Run(args, os.Stdout, logger); err != nil {
		logger.WithError(err).Error("failed")
		os.Exit(1)
	}
}

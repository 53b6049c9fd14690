// panelparse - run the panel extraction engine over a message.
//
// Usage:
//
//	panelparse --schema schema.yaml [--tag infobar] [file]
//
// Reads the message text from the file (or stdin when no file or "-" is
// given), parses it against the schema snapshot, and prints the outcome
// as JSON. Exits non-zero when the block violates the schema so shell
// pipelines can tell a rejection from ordinary prose.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/loveyouguhan/infopanel/panel"
	"github.com/loveyouguhan/infopanel/schemafile"
)

func main() {
	schemaPath := flag.StringP("schema", "s", "", "schema snapshot file (.yaml, .yml, .json, .jsonc)")
	tag := flag.StringP("tag", "t", panel.DefaultTag, "tag name delimiting the panel-data region")
	verbose := flag.BoolP("verbose", "v", false, "log engine decisions to stderr")
	flag.Parse()

	if *schemaPath == "" {
		fmt.Fprintln(os.Stderr, "panelparse: --schema is required")
		flag.Usage()
		os.Exit(2)
	}

	schema, err := schemafile.Load(*schemaPath)
	if err != nil {
		fatal("load schema: %v", err)
	}

	var input io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	text, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	eng := panel.New(panel.WithTag(*tag), panel.WithLogger(logger))
	outcome, parseErr := eng.Parse(string(text), schema, "")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		fatal("encode outcome: %v", err)
	}

	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "panelparse: %v\n", parseErr)
		os.Exit(1)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "panelparse: "+format+"\n", args...)
	os.Exit(1)
}

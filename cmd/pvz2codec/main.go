// Command pvz2codec converts a PvZ2 RTON container to JSONYX text.
//
// usage: pvz2codec rton2json <input.rton> <output.json>
//
// A json2rton subcommand is intentionally absent: RTON re-encoding is out
// of scope, the same boundary the original RTONConverter script drew
// around its own conversion() directory walker
// (original_source/RTONConverter/rtons_to_jsons.py).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nineteendo/pvz2codec/jsonyx"
	"github.com/nineteendo/pvz2codec/rton"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "rton2json":
		runRton2JSON(os.Args[2:])
	case "json2rton":
		fmt.Fprintln(os.Stderr, "pvz2codec: json2rton is not supported")
		os.Exit(2)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pvz2codec rton2json <input.rton> <output.json>")
}

func runRton2JSON(args []string) {
	fs := flag.NewFlagSet("rton2json", flag.ExitOnError)
	repair := fs.Bool("repair", false, "tolerate a truncated container instead of rejecting it")
	indent := fs.String("indent", "\t", "indentation string for the output JSON")
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		usage()
		os.Exit(2)
	}
	inPath, outPath := rest[0], rest[1]

	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", inPath).Msg("read input")
	}

	root, warnings, err := rton.Decode(data, inPath, rton.Repair(*repair), rton.WithLogger(log.Logger))
	if err != nil {
		log.Fatal().Err(err).Str("path", inPath).Msg("decode rton")
	}
	for _, w := range warnings {
		log.Warn().Str("path", inPath).Msg(w.String())
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("create output")
	}
	defer out.Close()

	enc := jsonyx.NewEncoder()
	enc.Indent = *indent
	if err := enc.Dump(out, root); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("encode json")
	}
	log.Info().Str("in", inPath).Str("out", outPath).Msg("converted")
}

// Command ofpactgen generates the raw action tables of Open vSwitch from the
// annotated enum ofp_raw_action_type in lib/ofp-actions.c.
//
// Usage:
//
//	ofpactgen [options] (prototypes | definitions) <ofp-actions.c>
//
// Examples:
//
//	ofpactgen prototypes lib/ofp-actions.c > lib/ofp-actions.inc1
//	ofpactgen definitions lib/ofp-actions.c > lib/ofp-actions.inc2
//	ofpactgen --tables=tables.toml definitions lib/ofp-actions.c
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gogpu/ofpact"
	"github.com/gogpu/ofpact/cgen"
	"github.com/gogpu/ofpact/config"
	"github.com/gogpu/ofpact/internal/logging"
	"github.com/gogpu/ofpact/ofp"
)

const progName = "ofpactgen"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ovsVersion := fs.String("ovs-version", "", "Open vSwitch version being built (informational)")
	tablesPath := fs.String("tables", "", "TOML file extending the vendor and version tables")
	noSizeAsserts := fs.Bool("no-size-asserts", false, "omit the struct size assertions from definitions")
	help := fs.Bool("help", false, "print this help and exit")
	fs.BoolVar(help, "h", false, "print this help and exit")

	positionals, err := parseInterleaved(fs, args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v (use --help for help)\n", progName, err)
		return 1
	}
	if *help {
		usage(stdout, fs)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}
	log, err := logging.New(stderr, logging.Options{
		Level:     cfg.LogLevel,
		NoColor:   cfg.LogNoColor,
		Timestamp: cfg.LogTimestamp,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}

	if len(positionals) != 2 {
		fmt.Fprintf(stderr, "%s: exactly two non-option arguments required (use --help for help)\n", progName)
		return 1
	}
	mode, err := cgen.ParseMode(positionals[0])
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}
	inputPath := positionals[1]

	tablesFile := cfg.TablesFile
	if *tablesPath != "" {
		tablesFile = *tablesPath
	}
	tables, err := config.LoadTables(tablesFile)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}
	defer f.Close()

	code, info, err := ofpact.CompileWithInfo(f, inputPath, ofpact.Options{
		Mode:            mode,
		Tables:          tables,
		Logger:          &log,
		OmitSizeAsserts: *noSizeAsserts,
	})
	if err != nil {
		var conflictErr *ofpact.ConflictError
		if errors.As(err, &conflictErr) {
			fmt.Fprint(stderr, conflictErr.Conflicts.FormatAll())
			log.Error().Int("conflicts", len(conflictErr.Conflicts)).Msg("no code generated")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}

	if _, err := io.WriteString(stdout, code); err != nil {
		fmt.Fprintf(stderr, "%s: write output: %v\n", progName, err)
		return 1
	}

	event := log.Info().
		Str("mode", mode.String()).
		Str("input", inputPath).
		Int("actions", info.Actions).
		Int("instances", info.Instances).
		Int("versioned", info.VersionedConstructors).
		Str("output", humanize.Bytes(uint64(len(code))))
	if *ovsVersion != "" {
		event = event.Str("ovs_version", *ovsVersion)
	}
	if st, statErr := f.Stat(); statErr == nil {
		event = event.Str("input_size", humanize.Bytes(uint64(st.Size())))
	}
	event.Msg("generated")
	return 0
}

// parseInterleaved parses flags that may appear before, between or after
// positional arguments and returns the positionals in order.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positionals, nil
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "%s: OpenFlow raw action table generator\n", progName)
	fmt.Fprintf(w, "usage: %s [options] COMMAND ofp-actions.c\n\n", progName)
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  prototypes   print forward declarations\n")
	fmt.Fprintf(w, "  definitions  print the instance table, constructors and dispatcher\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	fmt.Fprintf(w, "\nEnvironment:\n")
	fmt.Fprintf(w, "  %s_LOG_LEVEL      trace, debug, info, warn (default), error or off\n", config.EnvPrefix)
	fmt.Fprintf(w, "  %s_LOG_NOCOLOR    disable colored log output\n", config.EnvPrefix)
	fmt.Fprintf(w, "  %s_LOG_TIMESTAMP  prefix log lines with a timestamp\n", config.EnvPrefix)
	fmt.Fprintf(w, "  %s_TABLES         default for --tables\n", config.EnvPrefix)

	tables := ofp.DefaultTables()
	fmt.Fprintf(w, "\nBuilt-in vendors:\n")
	for _, v := range tables.Vendors() {
		fmt.Fprintf(w, "  %-4s id=%#x header_len=%d\n", v.Name, v.ID, v.HeaderLen)
	}
	fmt.Fprintf(w, "\nBuilt-in versions:\n")
	for _, v := range tables.Versions() {
		fmt.Fprintf(w, "  OF%s code=%d\n", v.Name, v.Code)
	}

	names := []string{"void", "struct NAME"}
	for _, p := range ofp.Primitives() {
		names = append(names, p.Name)
	}
	fmt.Fprintf(w, "\nArgument types: %s (append \", ...\" for variable length)\n", strings.Join(names, ", "))
}

// ABOUTME: Help display for the fishbone CLI with commands, examples, and configuration status.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2389-research/fishbone/diagram"
)

const fishboneASCII = `
        ___                              ___
       /   \______ ______ ______ ______ /   \
  <'   )====|======|======|======|======|===( >>
       \___/~~~~~~ ~~~~~~ ~~~~~~ ~~~~~~ \___/
`

// printHelp writes the root help: usage patterns, variants, examples, and
// which FISHBONE_* variables are set.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, fishboneASCII)
	fmt.Fprintf(w, "fishbone %s - AI maturity model fishbone charts\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  fishbone generate [-v variant] [--lang zh|en]   Write chart HTML files")
	fmt.Fprintln(w, "  fishbone generate --list                        List diagram variants")
	fmt.Fprintln(w, "  fishbone serve [--port 8023]                    Serve the chart viewer")
	fmt.Fprintln(w, "  fishbone start                                  Check charts, then serve")
	fmt.Fprintln(w, "  fishbone version                                Print version")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Variants:")
	for _, v := range diagram.Variants() {
		fmt.Fprintf(w, "  %-12s %s\n", v, v.Description())
	}
	fmt.Fprintf(w, "  %-12s %s\n", "all", "every variant (default for zh)")
	fmt.Fprintf(w, "  %-12s %s\n", "both", "ultra and interactive (default for en)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Global Flags:")
	fmt.Fprintln(w, "  --config <file>       Config file (default: ./fishbone.yaml, then $XDG_CONFIG_HOME/fishbone)")
	fmt.Fprintln(w, "  --log-level <level>   debug, info, warn, error (default: info)")
	fmt.Fprintln(w, "  --log-format <fmt>    console or json (default: console)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  fishbone generate")
	fmt.Fprintln(w, "  fishbone generate -v ultra --lang en")
	fmt.Fprintln(w, "  fishbone generate --model my_model.yaml --out site")
	fmt.Fprintln(w, "  fishbone serve --port 9000 --model resource/model_of_level.json")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	for _, key := range []string{"FISHBONE_LANG", "FISHBONE_MODEL", "FISHBONE_OUT_DIR", "FISHBONE_SERVER_PORT"} {
		fmt.Fprintf(w, "  %-22s %s\n", key, envStatus(key))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  .env files in the working directory and config directory are loaded first.")
}

// envStatus returns the value of a set variable in brackets, or "[not set]".
func envStatus(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return "[" + v + "]"
	}
	return "[not set]"
}

// Command wacc-run loads a compiled guest module and a fixture of
// current/proposed key-value pairs, runs a named exported function against
// them, and prints the run result, check_count, the final stack lengths, and
// the captured log.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cryptidtech/wacc"
)

type settings struct {
	modulePath   string
	fname        string
	currentPath  string
	proposedPath string
	fuel         uint64
	useFuel      bool
}

func cli() settings {
	var s settings
	flag.StringVar(&s.modulePath, "m", "", "path to the compiled wasm module")
	flag.StringVar(&s.fname, "f", "move_every_zig", "exported function to invoke")
	flag.StringVar(&s.currentPath, "current", "", "path to a JSON fixture for the current store")
	flag.StringVar(&s.proposedPath, "proposed", "", "path to a JSON fixture for the proposed store")
	fuel := flag.Uint64("fuel", 0, "fuel budget (0 disables metering)")
	flag.Parse()

	if s.modulePath == "" {
		fmt.Fprintln(os.Stderr, "must provide -m, the path to a compiled wasm module")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s.fuel = *fuel
	s.useFuel = *fuel != 0
	return s
}

func main() {
	s := cli()

	code, err := os.ReadFile(s.modulePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	current, err := loadFixture(s.currentPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	proposed, err := loadFixture(s.proposedPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pstack := wacc.NewMemStack()
	rstack := wacc.NewMemStack()
	ctx := wacc.NewContext(current, proposed, pstack, rstack, "")

	builder := wacc.NewBuilder().WithBytes(code).WithContext(ctx)
	if s.useFuel {
		builder = builder.WithFuel(s.fuel)
	}

	instance, err := builder.TryBuild()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer instance.Close()

	ok, err := instance.Run(s.fname)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("run(%s) = %v\n", s.fname, ok)
	fmt.Printf("check_count = %d\n", ctx.CheckCount())
	fmt.Printf("pstack.len = %d, rstack.len = %d\n", pstack.Len(), rstack.Len())
	if log := instance.Log(); len(log) > 0 {
		fmt.Printf("log:\n%s", log)
	}
}

// fixtureEntry is the on-disk shape of one key-value pair: a "bin" kind is
// base64-decoded, a "str" kind is used verbatim.
type fixtureEntry struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func loadFixture(path string) (wacc.Pairs, error) {
	pairs := wacc.NewMemPairs()
	if path == "" {
		return pairs, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}

	var entries map[string]fixtureEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	for key, entry := range entries {
		switch entry.Kind {
		case "str":
			pairs.Put(key, wacc.StrValue(entry.Value))
		case "bin", "":
			b, err := base64.StdEncoding.DecodeString(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("fixture %s: key %s: %w", path, key, err)
			}
			pairs.Put(key, wacc.BinValue(b))
		default:
			return nil, fmt.Errorf("fixture %s: key %s: unknown kind %q", path, key, entry.Kind)
		}
	}
	return pairs, nil
}

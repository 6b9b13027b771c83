// Command rvmctl is a small operator CLI for inspecting and exercising
// packed programs outside of a host process: disassemble one, run it to
// see the resulting Type IR, or pack a directory of fixtures into a
// distributable bundle.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/rvm/internal/rvm"
	"github.com/funvibe/rvm/internal/rvmhost"
)

// fixture is the on-disk shape a packed program is authored in for this
// CLI: plain YAML rather than whatever the (out-of-scope) transformer
// would emit, since fixtures here only ever carry literal-pool values a
// human can type — no deferred class/program thunks.
type fixture struct {
	Name    string `yaml:"name"`
	Program []any  `yaml:"program"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "disasm":
		err = runDisasm(os.Args[2:])
	case "run":
		err = runRun(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "bundle":
		err = runBundle(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rvmctl <disasm|run|dump|bundle> <args...>")
}

func errorLine(msg string) string {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return "\033[31mrvmctl: " + msg + "\033[39m"
	}
	return "rvmctl: " + msg
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func runDisasm(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("disasm: expected a fixture path")
	}
	fx, err := loadFixture(args[0])
	if err != nil {
		return err
	}
	program := rvm.Decode(fx.Program)
	fmt.Print(rvm.Disassemble(program))
	return nil
}

func runRun(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("run: expected a fixture path")
	}
	fx, err := loadFixture(args[0])
	if err != nil {
		return err
	}
	node, err := rvm.ResolveType(fx.Program, nil)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", fx.Name, err)
	}
	fmt.Printf("%s => %s\n", fx.Name, node.Kind)
	return nil
}

func runDump(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("dump: expected a fixture path")
	}
	fx, err := loadFixture(args[0])
	if err != nil {
		return err
	}
	program := rvm.Decode(fx.Program)
	fmt.Printf("name: %s\n", fx.Name)
	fmt.Printf("stream length: %d\n", len(program.Stream))
	fmt.Printf("pool size: %s\n", humanize.Bytes(uint64(len(program.Pool))))
	for i, v := range program.Pool {
		fmt.Printf("  [%d] %#v\n", i, v)
	}
	return nil
}

// runBundle packs every *.yaml fixture in a directory into a single
// rvmhost.Bundle file, named after each fixture's `name` field.
func runBundle(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("bundle: expected <fixture-dir> <out-file>")
	}
	dir, out := args[0], args[1]

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading fixture dir: %w", err)
	}

	b := &rvmhost.Bundle{Programs: make(map[string][]any), SourceFile: dir}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		fx, err := loadFixture(dir + "/" + e.Name())
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		b.Programs[fx.Name] = fx.Program
	}

	data, err := b.Serialize()
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	fmt.Printf("wrote %s (%s, %d programs)\n", out, humanize.Bytes(uint64(len(data))), len(b.Programs))
	return nil
}

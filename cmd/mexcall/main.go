package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/mex-bridge/codec"
	"github.com/wippyai/mex-bridge/dispatch"
	"github.com/wippyai/mex-bridge/fixture"
	"github.com/wippyai/mex-bridge/mx"
)

func main() {
	var (
		fixtureFile = flag.String("fixture", "", "Path to a TOML call fixture")
		opName      = flag.String("op", "", "Operation to invoke")
		argList     = flag.String("args", "", "Arguments (comma-separated literals)")
		nout        = flag.Int("nout", -1, "Number of outputs to request (-1: the operation's maximum, capped at 1)")
		saveFile    = flag.String("save", "", "Write the first output as CBOR to this file")
		list        = flag.Bool("list", false, "List operations and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	tbl, err := newStoreTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		fmt.Println("Operations:")
		for _, op := range tbl.Operations() {
			max, _ := tbl.MaxOutputs(op)
			fmt.Printf("  %s (up to %d outputs)\n", op, max)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(tbl); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *fixtureFile == "" && *opName == "" {
		fmt.Fprintln(os.Stderr, "Usage: mexcall -op <name> [-args a,b,...] [-nout n] [-save out.cbor]")
		fmt.Fprintln(os.Stderr, "       mexcall -fixture <calls.toml> [-save out.cbor]")
		fmt.Fprintln(os.Stderr, "       mexcall -list")
		fmt.Fprintln(os.Stderr, "       mexcall -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "Without -nout the request is derived from the operation: its")
		fmt.Fprintln(os.Stderr, "declared maximum, capped at 1 (zero-output operations get 0).")
		os.Exit(1)
	}

	if err := run(tbl, *fixtureFile, *opName, *argList, *nout, *saveFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(tbl *dispatch.Table, fixtureFile, opName, argList string, nout int, saveFile string) error {
	ctx := context.Background()

	if fixtureFile != "" {
		f, err := fixture.Load(fixtureFile)
		if err != nil {
			return err
		}
		for i := range f.Calls {
			c := &f.Calls[i]
			inputs, err := c.Inputs(f.Dir)
			if err != nil {
				return err
			}
			max, _ := tbl.MaxOutputs(c.Op)
			slots, err := tbl.Invoke(ctx, c.Outputs(max), inputs)
			if err != nil {
				return fmt.Errorf("call %d (%s): %w", i, c.Op, err)
			}
			printSlots(c.Op, slots)
			if saveFile != "" && i == len(f.Calls)-1 {
				if err := save(saveFile, slots); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if nout < 0 {
		max, _ := tbl.MaxOutputs(opName)
		nout = min(1, max)
	}

	inputs := []*mx.Array{mx.NewChar(opName)}
	if argList != "" {
		for _, lit := range strings.Split(argList, ",") {
			a, err := parseArg(lit)
			if err != nil {
				return err
			}
			inputs = append(inputs, a)
		}
	}

	slots, err := tbl.Invoke(ctx, nout, inputs)
	if err != nil {
		return err
	}
	printSlots(opName, slots)
	if saveFile != "" {
		return save(saveFile, slots)
	}
	return nil
}

func printSlots(op string, slots []*mx.Array) {
	if len(slots) == 0 {
		fmt.Printf("%s: ok\n", op)
		return
	}
	for i, s := range slots {
		fmt.Printf("%s[%d] = %s\n", op, i, render(s))
	}
}

func render(a *mx.Array) string {
	if a == nil {
		return "[]"
	}
	if a.IsCell() {
		parts := make([]string, 0, a.NumElements())
		for _, el := range a.Cells() {
			parts = append(parts, render(el))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	if a.IsNumeric() && a.IsScalar() {
		v, err := a.FloatAt(0)
		if err == nil {
			return fmt.Sprintf("%g", v)
		}
	}
	return a.String()
}

func save(path string, slots []*mx.Array) error {
	if len(slots) == 0 || slots[0] == nil {
		return fmt.Errorf("no output to save")
	}
	data, err := codec.Marshal(slots[0])
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

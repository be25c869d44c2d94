package main

import (
	"fmt"
	"io"
	"os"
	"time"

	prc "github.com/ultimate-research/prc-rs"
	"github.com/ultimate-research/prc-rs/format"
	"github.com/ultimate-research/prc-rs/ir"

	"github.com/scott-cotton/cli"
)

// readFile reads file, or r when file is "-".
func readFile(file string, r io.Reader) ([]byte, error) {
	if file == "-" {
		d, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}

// loadNode reads a tree from data. An explicit -I format wins over def,
// which wins over detection; def may be nil.
func (cfg *MainConfig) loadNode(name string, data []byte, def *format.Format) (*ir.Node, error) {
	start := time.Now()
	f := def
	if cfg.InFormat != nil {
		f = cfg.InFormat
	}
	var (
		node *ir.Node
		err  error
	)
	if f != nil {
		node, err = prc.LoadAs(*f, data, cfg.prcOpts()...)
	} else {
		var detected format.Format
		node, detected, err = prc.Load(name, data, cfg.prcOpts()...)
		f = &detected
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", name, err)
	}
	if cfg.Verbose {
		theLog.Info("loaded", "file", name, "format", *f, "bytes", len(data), "elapsed", time.Since(start))
	}
	return node, nil
}

func (cfg *MainConfig) loadFile(cc *cli.Context, file string, def *format.Format) (*ir.Node, error) {
	data, err := readFile(file, cc.In)
	if err != nil {
		return nil, err
	}
	return cfg.loadNode(file, data, def)
}

// writeNode writes node to w in the -O format, or def.
func (cfg *MainConfig) writeNode(w io.Writer, node *ir.Node, def format.Format) error {
	start := time.Now()
	f := cfg.outFormat(def)
	if f.IsBinary() && isTerminal(w) {
		return fmt.Errorf("%w: refusing to write binary output to a terminal, use -o", cli.ErrUsage)
	}
	if err := prc.Write(w, node, f, cfg.labels, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error writing %s: %w", f, err)
	}
	if cfg.Verbose {
		theLog.Info("wrote", "format", f, "elapsed", time.Since(start))
	}
	return nil
}

// oneArg returns the single input file of args, "-" when there is none.
func oneArg(name string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: %s takes at most one file, got %v", cli.ErrUsage, name, args)
}

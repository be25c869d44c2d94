package main

import (
	"fmt"
	"time"

	"github.com/ultimate-research/prc-rs/ir"
	"github.com/ultimate-research/prc-rs/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one diff input may be stdin", cli.ErrUsage)
	}
	a, err := cfg.loadFile(cc, args[0], nil)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := cfg.loadFile(cc, args[1], nil)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, a, b *ir.Node) (bool, error) {
	start := time.Now()
	changes := libdiff.Diff(a, b, cfg.labels)
	if cfg.Verbose {
		theLog.Info("diffed", "changes", len(changes), "elapsed", time.Since(start))
	}
	if len(changes) == 0 {
		return false, nil
	}
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	if err := libdiff.Render(changes, cc.Out); err != nil {
		return false, fmt.Errorf("error writing diff: %w", err)
	}
	return true, nil
}

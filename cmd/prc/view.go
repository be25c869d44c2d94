package main

import (
	"github.com/ultimate-research/prc-rs/format"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		node, err := cfg.loadFile(cc, file, nil)
		if err != nil {
			return err
		}
		if err := cfg.writeNode(cc.Out, node, format.XMLFormat); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"github.com/ultimate-research/prc-rs/format"

	"github.com/scott-cotton/cli"
)

func disasm(cfg *DisasmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Disasm.Parse(cc, args)
	if err != nil {
		cfg.Disasm.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	file, err := oneArg("disasm", args)
	if err != nil {
		return err
	}
	in := format.BinaryFormat
	node, err := cfg.loadFile(cc, file, &in)
	if err != nil {
		return err
	}
	return cfg.writeNode(cc.Out, node, format.XMLFormat)
}

func asm(cfg *AsmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Asm.Parse(cc, args)
	if err != nil {
		cfg.Asm.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	file, err := oneArg("asm", args)
	if err != nil {
		return err
	}
	in := format.XMLFormat
	node, err := cfg.loadFile(cc, file, &in)
	if err != nil {
		return err
	}
	return cfg.writeNode(cc.Out, node, format.BinaryFormat)
}

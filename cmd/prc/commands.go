package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: binary/b, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: binary/b, xml/x, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "prc").
		WithSynopsis("prc [opts] command [opts]").
		WithDescription("prc converts, views and compares param files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return prcMain(cfg, cc, args)
		}).
		WithSubs(
			DisasmCommand(cfg),
			AsmCommand(cfg),
			ViewCommand(cfg),
			GetCommand(cfg),
			DiffCommand(cfg))
}

func DisasmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DisasmConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Disasm, "disasm").
		WithAliases("d", "dis").
		WithSynopsis("disasm [file]").
		WithDescription("convert a binary param file to xml").
		WithRun(func(cc *cli.Context, args []string) error {
			return disasm(cfg, cc, args)
		})
}

func AsmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AsmConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Asm, "asm").
		WithAliases("a").
		WithSynopsis("asm [file]").
		WithDescription("convert an xml param document to a binary param file").
		WithRun(func(cc *cli.Context, args []string) error {
			return asm(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view param files as xml, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the node at a path such as $.fighters[0].name").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] a b").
		WithDescription("list the differences between two param files as yaml").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

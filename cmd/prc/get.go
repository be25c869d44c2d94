package main

import (
	"fmt"

	"github.com/ultimate-research/prc-rs/format"
	"github.com/ultimate-research/prc-rs/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a node path", cli.ErrUsage)
	}
	path := normPath(args[0])
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		node, err := cfg.loadFile(cc, file, nil)
		if err != nil {
			return err
		}
		res, err := getPath(cfg.MainConfig, node, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, path, err)
		}
		if err := cfg.writeNode(cc.Out, res, format.XMLFormat); err != nil {
			return err
		}
	}
	return nil
}

func normPath(path string) string {
	if path == "" {
		return ""
	}
	if path[0] != '$' {
		path = "$" + path
	}
	return path
}

func getPath(cfg *MainConfig, node *ir.Node, path string) (*ir.Node, error) {
	res, err := node.GetPath(path, cfg.labels)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("no node at %s", path)
	}
	return res, nil
}

package main

import (
	"fmt"
	"io"
	"os"

	prc "github.com/ultimate-research/prc-rs"
	"github.com/ultimate-research/prc-rs/format"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/prcxml"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode xml with color'"`
	Labels  string `cli:"name=l aliases=labels desc='file of hash labels, one per line'"`
	Lenient bool   `cli:"name=lenient desc='accept unsorted hash pools and struct tables'"`
	Strict  bool   `cli:"name=strict desc='fail on xml names missing from the -l labels'"`
	Verbose bool   `cli:"name=v desc='log conversions and timings'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	labels *hash40.Labels

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) loadLabels() error {
	if cfg.Labels == "" {
		return nil
	}
	f, err := os.Open(cfg.Labels)
	if err != nil {
		return fmt.Errorf("could not open labels %q: %w", cfg.Labels, err)
	}
	defer f.Close()
	labels, err := hash40.ReadLabels(f)
	if err != nil {
		return fmt.Errorf("error reading labels %s: %w", cfg.Labels, err)
	}
	cfg.labels = labels
	if cfg.Verbose {
		theLog.Info("loaded labels", "file", cfg.Labels, "count", labels.Len())
	}
	return nil
}

func (cfg *MainConfig) prcOpts() []prc.Opt {
	return []prc.Opt{
		prc.WithLabels(cfg.labels),
		prc.WithLenient(cfg.Lenient),
		prc.WithStrict(cfg.Strict),
	}
}

func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return def
}

func (cfg *MainConfig) encOpts(w io.Writer) []prcxml.EncodeOption {
	res := []prcxml.EncodeOption{}
	if cfg.Color {
		res = append(res, prcxml.EncodeColors(prcxml.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, prcxml.EncodeColors(prcxml.NewColors()))
		return res
	}
	return res
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type DisasmConfig struct {
	*MainConfig

	Disasm *cli.Command
}

type AsmConfig struct {
	*MainConfig

	Asm *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

package main

import (
	"github.com/scott-cotton/cli"
)

// conv reads each document in the input format and writes it in the
// output format. With no explicit -O the output format is the opposite
// of the input format.
func conv(cfg *ConvConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Conv.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	out := cfg.outFormat()
	if cfg.OutFormat == nil {
		if cfg.inFormat() == JSONFormat {
			out = YAMLFormat
		} else {
			out = JSONFormat
		}
	}
	outCfg := *cfg.MainConfig
	outCfg.OutFormat = &out
	for _, arg := range args {
		node, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		if err := writeDoc(&outCfg, cc.Out, node); err != nil {
			return err
		}
	}
	return nil
}

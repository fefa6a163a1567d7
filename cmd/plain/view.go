package main

import (
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
	for _, arg := range args {
		node, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, node); err != nil {
			return err
		}
	}
	return nil
}

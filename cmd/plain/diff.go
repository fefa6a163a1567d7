package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/plainform/go-plain/debug"
	"github.com/plainform/go-plain/ir"
	"github.com/plainform/go-plain/libdiff"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	from, err := readDoc(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	to, err := readDoc(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if cfg.Merge {
		return mergePatchDiff(cfg, cc, from, to)
	}
	var res *ir.Node
	if cfg.ByKey != "" {
		res, err = diffByKey(cfg, from, to)
		if err != nil {
			return err
		}
	} else {
		res = libdiff.Diff(from, to)
	}
	if debug.Diff() {
		debug.Logf("diff %s %s -> %v\n", args[0], args[1], res)
	}
	if res == nil {
		return nil
	}
	return writeDoc(cfg.MainConfig, cc.Out, res)
}

func diffByKey(cfg *DiffConfig, from, to *ir.Node) (*ir.Node, error) {
	if from.Type != ir.ArrayType || to.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: -k requires array documents", cli.ErrUsage)
	}
	return libdiff.DiffArrayByKey(from, to, cfg.ByKey, libdiff.Diff)
}

// mergePatchDiff renders the difference as an rfc 7386 merge patch over
// the json encodings.
func mergePatchDiff(cfg *DiffConfig, cc *cli.Context, from, to *ir.Node) error {
	fromJSON, err := ir.ToJSON(from)
	if err != nil {
		return err
	}
	toJSON, err := ir.ToJSON(to)
	if err != nil {
		return err
	}
	patch, err := jsonpatch.CreateMergePatch(fromJSON, toJSON)
	if err != nil {
		return err
	}
	node, err := ir.FromJSON(patch)
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, cc.Out, node)
}

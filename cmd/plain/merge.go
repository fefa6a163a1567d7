package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/plainform/go-plain/ir"
	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: merge requires two arguments, a document and a patch", cli.ErrUsage)
	}
	doc, err := readDoc(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	patch, err := readDoc(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	docJSON, err := ir.ToJSON(doc)
	if err != nil {
		return err
	}
	patchJSON, err := ir.ToJSON(patch)
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(docJSON, patchJSON)
	if err != nil {
		return fmt.Errorf("error applying patch: %w", err)
	}
	node, err := ir.FromJSON(merged)
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, cc.Out, node)
}

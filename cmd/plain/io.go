package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/plainform/go-plain/ir"
)

func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", arg, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func readDoc(cfg *MainConfig, arg string) (*ir.Node, error) {
	data, err := readArg(arg)
	if err != nil {
		return nil, err
	}
	var node *ir.Node
	switch cfg.inFormat() {
	case YAMLFormat:
		node, err = ir.FromYAML(data)
	default:
		node, err = ir.FromJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return node, nil
}

func writeDoc(cfg *MainConfig, w io.Writer, node *ir.Node) error {
	var data []byte
	var err error
	switch cfg.outFormat() {
	case YAMLFormat:
		data, err = ir.ToYAML(node)
	default:
		var opts []ir.EncodeOption
		if !cfg.Compact {
			opts = append(opts, ir.WithIndent("  "))
		}
		data, err = ir.ToJSON(node, opts...)
		data = append(data, '\n')
		if cfg.useColor(w) {
			data = colorizeJSON(data)
		}
	}
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func ParseFormat(v string) (Format, error) {
	switch v {
	case "j", "json":
		return JSONFormat, nil
	case "y", "yaml":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", v)
}

type MainConfig struct {
	Color   bool `cli:"name=color desc='force color output'"`
	Compact bool `cli:"name=compact desc='compact json output'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat() Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if cfg.Y {
		return YAMLFormat
	}
	return JSONFormat
}

func (cfg *MainConfig) outFormat() Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Y {
		return YAMLFormat
	}
	return JSONFormat
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ConvConfig struct {
	*MainConfig

	Conv *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge bool   `cli:"name=m aliases=merge desc='emit an rfc 7386 merge patch instead of a diff tree'"`
	ByKey string `cli:"name=k aliases=key desc='align array elements by this object key'"`

	Diff *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

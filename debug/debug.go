package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Materialize bool
	Reify       bool
	Hints       bool
	Registry    bool
	Diff        bool
}

var d *debug

func init() {
	d = &debug{}
	d.Materialize = boolEnv("PLAIN_DEBUG_MATERIALIZE")
	d.Reify = boolEnv("PLAIN_DEBUG_REIFY")
	d.Hints = boolEnv("PLAIN_DEBUG_HINTS")
	d.Registry = boolEnv("PLAIN_DEBUG_REGISTRY")
	d.Diff = boolEnv("PLAIN_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Materialize() bool {
	return d.Materialize
}
func Reify() bool {
	return d.Reify
}
func Hints() bool {
	return d.Hints
}
func Registry() bool {
	return d.Registry
}
func Diff() bool {
	return d.Diff
}

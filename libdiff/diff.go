package libdiff

import (
	"github.com/plainform/go-plain/ir"
)

// Diff field names in change records.
const (
	DelField = "-"
	InsField = "+"
)

// DiffFunc computes the diff of two nodes, returning nil when they are
// equal.
type DiffFunc func(from, to *ir.Node) *ir.Node

// Diff computes the structural diff of two plain trees. Nil input on
// either side stands for an absent document.
func Diff(from, to *ir.Node) *ir.Node {
	switch {
	case from == nil && to == nil:
		return nil
	case from == nil || to == nil:
		return MakeDiff(from, to)
	case from.Type != to.Type:
		return MakeDiff(from, to)
	}
	switch from.Type {
	case ir.ObjectType:
		return DiffObject(from, to, Diff)
	case ir.ArrayType:
		return DiffArray(from, to, Diff)
	default:
		if ir.Compare(from, to) == 0 {
			return nil
		}
		return MakeDiff(from, to)
	}
}

// MakeDiff builds a leaf change record. An absent side is omitted, so a
// pure insertion has only "+" and a pure deletion only "-".
func MakeDiff(from, to *ir.Node) *ir.Node {
	kvs := []ir.KeyVal{}
	if from != nil {
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(DelField), Val: from.Clone()})
	}
	if to != nil {
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(InsField), Val: to.Clone()})
	}
	return ir.FromKeyVals(kvs)
}

package libdiff

import (
	"github.com/plainform/go-plain/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffObject aligns the two field-name sequences with a rune-mapped text
// diff, then recurses on values of shared names. A name deleted in one
// place and inserted in another is a moved field, not a change: the two
// values are recursed like an equal pair. Returns nil when nothing
// differs.
func DiffObject(from, to *ir.Node, df DiffFunc) *ir.Node {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	resMap := map[string]*ir.Node{}
	deleted := map[rune]int{}
	inserted := map[rune]int{}
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				deleted[r] = fi
				fi++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				fRes := df(from.Values[fi], to.Values[ti])
				if fRes != nil {
					resMap[runeMap[r]] = fRes
				}
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				inserted[r] = ti
				ti++
			}
		}
	}
	// field names are unique per object, so each rune occurs at most once
	// on each side
	for r, fIdx := range deleted {
		tIdx, moved := inserted[r]
		if !moved {
			resMap[runeMap[r]] = MakeDiff(from.Values[fIdx], nil)
			continue
		}
		delete(inserted, r)
		if fRes := df(from.Values[fIdx], to.Values[tIdx]); fRes != nil {
			resMap[runeMap[r]] = fRes
		}
	}
	for r, tIdx := range inserted {
		resMap[runeMap[r]] = MakeDiff(nil, to.Values[tIdx])
	}
	if len(resMap) == 0 {
		return nil
	}
	return ir.FromMap(resMap)
}

func mapFieldsTo(m map[string]rune, im map[rune]string, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i := range node.Fields {
		f := node.Fields[i].String
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
			im[r] = f
		}
		rs[i] = r
	}
	return rs
}

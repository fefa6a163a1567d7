package libdiff

import (
	"fmt"

	"github.com/plainform/go-plain/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// AtField holds the element index in array change records.
const AtField = "@"

// DiffArray aligns the two element sequences by content, mapping each
// element's JSON encoding to a rune and diffing the rune strings. The
// result is an array of change records carrying the element index, or
// nil when the arrays are equal.
func DiffArray(from, to *ir.Node, df DiffFunc) *ir.Node {
	elemMap := map[string]rune{}
	fromRunes := mapElemsTo(elemMap, from)
	toRunes := mapElemsTo(elemMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var records []*ir.Node
	fi, ti := 0, 0
	for i := 0; i < len(diffs); i++ {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			del := len([]rune(diff.Text))
			// a delete run followed by an insert run is a modification:
			// pair elements positionally and recurse
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins := len([]rune(diffs[i+1].Text))
				for del > 0 && ins > 0 {
					if sub := df(from.Values[fi], to.Values[ti]); sub != nil {
						records = append(records, atRecord(fi, sub))
					}
					fi++
					ti++
					del--
					ins--
				}
				for ; ins > 0; ins-- {
					records = append(records, atRecord(ti, MakeDiff(nil, to.Values[ti])))
					ti++
				}
				i++
			}
			for ; del > 0; del-- {
				records = append(records, atRecord(fi, MakeDiff(from.Values[fi], nil)))
				fi++
			}
		case diffpatch.DiffEqual:
			fi += len([]rune(diff.Text))
			ti += len([]rune(diff.Text))
		case diffpatch.DiffInsert:
			for range diff.Text {
				records = append(records, atRecord(ti, MakeDiff(nil, to.Values[ti])))
				ti++
			}
		}
	}
	if len(records) == 0 {
		return nil
	}
	return ir.FromSlice(records)
}

// DiffArrayByKey diffs two arrays of objects by aligning elements on the
// value of a key field rather than on position. Each change record
// carries the key field so the element it concerns can be located.
func DiffArrayByKey(from, to *ir.Node, key string, df DiffFunc) (*ir.Node, error) {
	fromMap, err := keyedElems(from, key)
	if err != nil {
		return nil, err
	}
	toMap, err := keyedElems(to, key)
	if err != nil {
		return nil, err
	}
	objDiff := df(ir.FromMap(fromMap), ir.FromMap(toMap))
	if objDiff == nil {
		return nil, nil
	}
	resItems := make([]*ir.Node, len(objDiff.Values))
	for i, v := range objDiff.Values {
		var resMap map[string]*ir.Node
		switch v.Type {
		case ir.ObjectType:
			resMap = ir.ToMap(v)
		case ir.NullType:
			resMap = map[string]*ir.Node{}
		default:
			return nil, fmt.Errorf("wrong type for value: %s", v.Type)
		}
		keyVal, err := ir.FromJSON([]byte(objDiff.Fields[i].String))
		if err != nil {
			return nil, err
		}
		resMap[key] = keyVal
		resItems[i] = ir.FromMap(resMap)
	}
	return ir.FromSlice(resItems), nil
}

func keyedElems(arr *ir.Node, key string) (map[string]*ir.Node, error) {
	res := make(map[string]*ir.Node, len(arr.Values))
	for i, val := range arr.Values {
		if val == nil || val.Type != ir.ObjectType {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		kv := ir.Get(val, key)
		if kv == nil {
			return nil, fmt.Errorf("element %d has no %q field", i, key)
		}
		enc, err := ir.ToJSON(kv)
		if err != nil {
			return nil, err
		}
		res[string(enc)] = val
	}
	return res, nil
}

func mapElemsTo(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		enc, err := ir.ToJSON(v)
		if err != nil {
			enc = []byte(fmt.Sprintf("%v", v))
		}
		r, ok := m[string(enc)]
		if !ok {
			r = rune(len(m))
			m[string(enc)] = r
		}
		rs[i] = r
	}
	return rs
}

func atRecord(index int, diff *ir.Node) *ir.Node {
	kvs := []ir.KeyVal{{Key: ir.FromString(AtField), Val: ir.FromInt(int64(index))}}
	for i := range diff.Fields {
		kvs = append(kvs, ir.KeyVal{Key: diff.Fields[i], Val: diff.Values[i]})
	}
	return ir.FromKeyVals(kvs)
}

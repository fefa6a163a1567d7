package ir

import (
	"fmt"
	"strings"
)

// Path returns a JSONPath-style location of y in its tree, such as
// "$.spec.containers[0].name".
func (y *Node) Path() string {
	var parts []string
	n := y
	for n.Parent != nil {
		p := n.Parent
		switch p.Type {
		case ObjectType:
			parts = append(parts, "."+n.ParentField)
		case ArrayType:
			parts = append(parts, fmt.Sprintf("[%d]", n.ParentIndex))
		}
		n = p
	}
	var sb strings.Builder
	sb.WriteString("$")
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// GetPath navigates a dotted path with [i] index segments, e.g.
// "spec.containers[0].name". A leading "$" names the root. It returns
// nil if the path does not resolve.
func GetPath(y *Node, path string) *Node {
	path = strings.TrimPrefix(path, "$")
	cur := y
	for _, seg := range splitPath(path) {
		if cur == nil {
			return nil
		}
		if seg.index >= 0 {
			if cur.Type != ArrayType || seg.index >= len(cur.Values) {
				return nil
			}
			cur = cur.Values[seg.index]
			continue
		}
		if cur.Type != ObjectType {
			return nil
		}
		cur = Get(cur, seg.field)
	}
	return cur
}

type pathSeg struct {
	field string
	index int
}

func splitPath(path string) []pathSeg {
	var segs []pathSeg
	for _, part := range strings.Split(path, ".") {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				if part != "" {
					segs = append(segs, pathSeg{field: part, index: -1})
				}
				break
			}
			if open > 0 {
				segs = append(segs, pathSeg{field: part[:open], index: -1})
			}
			end := strings.IndexByte(part, ']')
			if end < open {
				segs = append(segs, pathSeg{field: part, index: -1})
				break
			}
			idx := 0
			if _, err := fmt.Sscanf(part[open:end+1], "[%d]", &idx); err != nil {
				segs = append(segs, pathSeg{field: part, index: -1})
				break
			}
			segs = append(segs, pathSeg{index: idx, field: ""})
			part = part[end+1:]
		}
	}
	return segs
}

package ir

import (
	"strings"
	"testing"
)

func TestYAMLRoundTrip(t *testing.T) {
	in := strings.TrimLeft(`
name: app
replicas: 3
ports:
- 80
- 443
labels:
  env: prod
`, "\n")
	node, err := FromYAML([]byte(in))
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if got := GetPath(node, "ports[1]"); got == nil || got.Int64 == nil || *got.Int64 != 443 {
		t.Errorf("ports[1] = %v", got)
	}
	out, err := ToYAML(node)
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %q, want %q", out, in)
	}
}

func TestYAMLKeyOrder(t *testing.T) {
	node, err := FromYAML([]byte("z: 1\na: 2\n"))
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if node.Fields[0].String != "z" || node.Fields[1].String != "a" {
		t.Errorf("field order = %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
}

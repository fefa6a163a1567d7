package ir

import (
	"testing"
)

func TestPath(t *testing.T) {
	doc, err := FromJSON([]byte(`{"spec": {"containers": [{"name": "app"}]}}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	name := GetPath(doc, "spec.containers[0].name")
	if name == nil || name.String != "app" {
		t.Fatalf("GetPath() = %v", name)
	}
	if got := name.Path(); got != "$.spec.containers[0].name" {
		t.Errorf("Path() = %q", got)
	}
}

func TestGetPath(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a": [1, {"b": true}], "c.d": 0}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	tests := []struct {
		path string
		ok   bool
	}{
		{"a[1].b", true},
		{"$.a[1].b", true},
		{"$.a[0]", true},
		{"a[2]", false},
		{"a.b", false},
		{"missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := GetPath(doc, tt.path)
			if (got != nil) != tt.ok {
				t.Errorf("GetPath(%q) = %v, want found=%v", tt.path, got, tt.ok)
			}
		})
	}
}

// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Widget: {
	name:  string & =~"^[a-z]+$"
	count: int & >0 | *1
}
`

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	w, err := Decode[widget](testSchema, []byte(`name: "gear"`), "#Widget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Name != "gear" {
		t.Errorf("Name = %q, want %q", w.Name, "gear")
	}
	if w.Count != 1 {
		t.Errorf("Count = %d, want default 1", w.Count)
	}
}

func TestDecode_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := Decode[widget](testSchema, []byte(`name: "GEAR"`), "#Widget", WithFilename("widget.cue"))
	if err == nil {
		t.Fatal("expected error for name violating the schema regex")
	}
	if !strings.Contains(err.Error(), "widget.cue") {
		t.Errorf("error %q does not mention the filename", err)
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := Decode[widget](testSchema, []byte(`name: "gear`), "#Widget")
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestDecode_SizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "gear"`)
	_, err := Decode[widget](testSchema, data, "#Widget", WithMaxSize(4))
	if err == nil {
		t.Fatal("expected error for input exceeding the size limit")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error %q does not mention the size limit", err)
	}
}

func TestDecode_UnknownRoot(t *testing.T) {
	t.Parallel()

	_, err := Decode[widget](testSchema, []byte(`name: "gear"`), "#Missing")
	if err == nil {
		t.Fatal("expected error for unknown schema root")
	}
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"steps"}, "steps"},
		{[]string{"steps", "0", "url"}, "steps[0].url"},
		{[]string{"fetch", "max_response_bytes"}, "fetch.max_response_bytes"},
	}

	for _, tt := range tests {
		if got := jsonPath(tt.path); got != tt.want {
			t.Errorf("jsonPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

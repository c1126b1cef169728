package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommandReportsBuildVersion(t *testing.T) {
	cmd := NewVersionCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "retailcore ") {
		t.Fatalf("output = %q", out.String())
	}
}

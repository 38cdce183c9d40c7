package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/catalogstage"
)

func TestExtractMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"extract", "--env-file", "", "--pdf", missing, "--out-dir", t.TempDir()})

	err := root.Execute()
	if !errors.Is(err, catalogstage.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "input PDF does not exist: "+missing) {
		t.Errorf("unexpected message %q", err.Error())
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestExtractRequiresPDF(t *testing.T) {
	t.Setenv("CATALOGSTAGE_PDF", "")
	root := newRootCmd()
	root.SetArgs([]string{"extract", "--env-file", ""})

	if err := root.Execute(); err == nil {
		t.Error("expected error without --pdf")
	}
}

func TestOutputFlagsExclusive(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"extract", "--env-file", "", "--pdf", "x.pdf", "--output", "a.csv", "--out-dir", "b"})

	if err := root.Execute(); err == nil {
		t.Error("expected error for --output with --out-dir")
	}
}

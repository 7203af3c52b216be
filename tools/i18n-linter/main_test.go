// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLint_FindsEveryProblemKind(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "a.go"), `package pkg
func f() {
	_ = i18n.T("greeting", "bob")
	_ = i18n.T("not.translated")
}`)
	// Keys in tests and skipped directories do not count as used.
	writeFile(t, filepath.Join(root, "pkg", "a_test.go"), `package pkg
var _ = i18n.T("test.only")`)
	writeFile(t, filepath.Join(root, "_examples", "x.go"), `package x
var _ = i18n.T("example.only")`)

	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "en.yaml"), "greeting: \"Hello %s\"\nunused: \"Bye\"\n")
	writeFile(t, filepath.Join(locales, "de.yaml"), "greeting: \"Hallo\"\n")

	report, err := lint(root, locales, "en.yaml")
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}

	if len(report.Unknown) != 1 || report.Unknown[0] != "not.translated" {
		t.Fatalf("unexpected unknown keys %v", report.Unknown)
	}
	if len(report.Orphaned) != 1 || report.Orphaned[0] != "unused" {
		t.Fatalf("unexpected orphaned keys %v", report.Orphaned)
	}
	if got := report.Missing["de.yaml"]; len(got) != 1 || got[0] != "unused" {
		t.Fatalf("unexpected missing keys %v", report.Missing)
	}
	if got := report.VerbErrors["de.yaml"]; len(got) != 1 || got[0] != "greeting" {
		t.Fatalf("unexpected verb errors %v", report.VerbErrors)
	}
	if !report.Failed() {
		t.Fatalf("report should fail")
	}

	var out bytes.Buffer
	printReport(&out, report)
	if !strings.Contains(out.String(), "FAIL") {
		t.Fatalf("expected FAIL in output, got:\n%s", out.String())
	}
}

func TestLint_CleanTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), `package a
var _ = i18n.T("greeting", "bob")`)
	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "en.yaml"), "greeting: \"Hello %s\"\n")
	writeFile(t, filepath.Join(locales, "de.yaml"), "greeting: \"Hallo %s\"\n")

	report, err := lint(root, locales, "en.yaml")
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}
	if report.Failed() || len(report.Orphaned) != 0 {
		t.Fatalf("expected clean report, got %+v", report)
	}
}

func TestSameVerbs(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Copied %q", "%q kopiert", true},
		{"Hello %s", "Hallo", false},
		{"%d of %s", "%s of %d", false},
		{"100%% done", "100%% fertig", true},
	}
	for _, tc := range cases {
		if got := sameVerbs(tc.a, tc.b); got != tc.want {
			t.Fatalf("sameVerbs(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

// The repository's own locales must stay consistent.
func TestRepositoryLocales(t *testing.T) {
	root := filepath.Join("..", "..")
	report, err := lint(root, filepath.Join(root, localesDir), primaryLocale)
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}
	if report.Failed() {
		var out bytes.Buffer
		printReport(&out, report)
		t.Fatalf("locale problems:\n%s", out.String())
	}
}

// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that the locale files agree with each other and with
// the i18n.T calls in the Go sources.
//
// Usage (from the repository root):
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	verbRe    = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z%]`)
)

// Report lists every problem found. Orphaned keys are warnings only.
type Report struct {
	Unknown    []string            // used in code, absent from the primary locale
	Orphaned   []string            // in the primary locale, never used
	Missing    map[string][]string // locale file -> keys absent from it
	VerbErrors map[string][]string // locale file -> keys whose verbs differ from primary
}

func (r Report) Failed() bool {
	return len(r.Unknown) > 0 || len(r.Missing) > 0 || len(r.VerbErrors) > 0
}

func main() {
	report, err := lint(projectRoot, localesDir, primaryLocale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, report)
	if report.Failed() {
		os.Exit(1)
	}
}

func lint(root, locales, primary string) (Report, error) {
	report := Report{
		Missing:    map[string][]string{},
		VerbErrors: map[string][]string{},
	}

	used, err := findUsedKeys(root)
	if err != nil {
		return report, fmt.Errorf("scanning sources: %w", err)
	}

	primaryMessages, err := loadLocale(filepath.Join(locales, primary))
	if err != nil {
		return report, fmt.Errorf("loading primary locale: %w", err)
	}

	for key := range used {
		if _, ok := primaryMessages[key]; !ok {
			report.Unknown = append(report.Unknown, key)
		}
	}
	for key := range primaryMessages {
		if _, ok := used[key]; !ok {
			report.Orphaned = append(report.Orphaned, key)
		}
	}
	sort.Strings(report.Unknown)
	sort.Strings(report.Orphaned)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return report, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primary {
			continue
		}
		messages, err := loadLocale(file)
		if err != nil {
			return report, fmt.Errorf("loading %s: %w", name, err)
		}
		for key, text := range primaryMessages {
			other, ok := messages[key]
			if !ok {
				report.Missing[name] = append(report.Missing[name], key)
				continue
			}
			if !sameVerbs(text, other) {
				report.VerbErrors[name] = append(report.VerbErrors[name], key)
			}
		}
		sort.Strings(report.Missing[name])
		sort.Strings(report.VerbErrors[name])
		if len(report.Missing[name]) == 0 {
			delete(report.Missing, name)
		}
		if len(report.VerbErrors[name]) == 0 {
			delete(report.VerbErrors, name)
		}
	}

	return report, nil
}

// findUsedKeys collects the literal IDs passed to i18n.T in non-test Go
// files. Directories starting with "_" or "." and the tools tree are skipped.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, match := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			keys[match[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadLocale reads a flat locale file into key -> message.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var messages map[string]string
	if err := yaml.Unmarshal(content, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// sameVerbs reports whether a and b use the same fmt verbs in the same order.
func sameVerbs(a, b string) bool {
	va, vb := verbRe.FindAllString(a, -1), verbRe.FindAllString(b, -1)
	if len(va) != len(vb) {
		return false
	}
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}
	return true
}

func printReport(w io.Writer, r Report) {
	section := func(title string, items []string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  none")
		}
		for _, item := range items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}

	section("Keys used in code but missing from "+primaryLocale, r.Unknown)
	section("Orphaned keys (warning)", r.Orphaned)

	for _, name := range sortedKeys(r.Missing) {
		section("Missing from "+name, r.Missing[name])
	}
	for _, name := range sortedKeys(r.VerbErrors) {
		section("Format verbs differ in "+name, r.VerbErrors[name])
	}

	if r.Failed() {
		fmt.Fprintln(w, "FAIL")
	} else {
		fmt.Fprintln(w, "OK")
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

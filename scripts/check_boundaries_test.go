package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, root string, rel string, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestCollectViolations(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "contexts/catalog/product-service/application/ok.go", `package application

import (
	"context"

	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/pagination"
)
`)
	writeSource(t, root, "contexts/catalog/product-service/application/bad.go", `package application

import (
	"crudhub/contexts/catalog/product-service/adapters/memory"
	"crudhub/internal/platform/db"
)
`)
	writeSource(t, root, "contexts/catalog/product-service/domain/entities/bad.go", `package entities

import (
	"github.com/google/uuid"
	"crudhub/contexts/workspace/todo-service/domain/entities"
)
`)
	writeSource(t, root, "contexts/catalog/product-service/ports/bad.go", `package ports

import (
	"crudhub/internal/platform/db"
	"crudhub/internal/shared/outbox"
)
`)
	writeSource(t, root, "contexts/catalog/product-service/adapters/http/ok.go", `package http

import "github.com/google/uuid"
`)
	t.Chdir(root)

	violations := collectViolations("contexts")
	rules := map[string]int{}
	for _, v := range violations {
		rules[v.Rule]++
	}

	expect := map[string]int{
		"application must not import adapters":               1,
		"application must not import runtime infrastructure": 1,
		"application import is outside explicit allowlist":   2,
		"cross-module imports are forbidden":                 1,
		"domain import is outside explicit allowlist":        2,
		"ports must not import runtime infrastructure":       1,
		"ports import is outside explicit allowlist":         1,
	}
	for rule, count := range expect {
		if rules[rule] != count {
			t.Fatalf("rule %q: expected %d violations, got %d (%+v)", rule, count, rules[rule], violations)
		}
	}
	if len(violations) != 9 {
		t.Fatalf("expected 9 violations, got %d: %+v", len(violations), violations)
	}
}

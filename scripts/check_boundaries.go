// check_boundaries enforces the ports-and-adapters import rules inside
// contexts/. Run it from the repository root: go run ./scripts.
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	modulePath   = "crudhub"
	shared       = modulePath + "/internal/shared"
	contextsRoot = "contexts"
)

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule constrains what files directly under a service layer may import.
// allow lists service-relative prefixes plus absolute ones; stdlib is always
// allowed.
type layerRule struct {
	allowService  []string
	allowAbsolute []string
	forbidRuntime bool
}

var layerRules = map[string]layerRule{
	"domain": {
		allowService:  []string{"domain"},
		forbidRuntime: true,
	},
	"application": {
		allowService:  []string{"application", "domain", "ports"},
		allowAbsolute: []string{shared},
		forbidRuntime: true,
	},
	"ports": {
		allowService:  []string{"domain"},
		allowAbsolute: []string{shared},
		forbidRuntime: true,
	},
	"transport": {
		forbidRuntime: true,
	},
}

func main() {
	violations := collectViolations(contextsRoot)
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Import < b.Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var out []violation
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel := filepath.ToSlash(path)
		parts := strings.Split(rel, "/")
		if len(parts) < 4 || parts[0] != contextsRoot {
			return nil
		}
		service := fmt.Sprintf("%s/%s/%s/%s", modulePath, contextsRoot, parts[1], parts[2])
		out = append(out, checkFile(path, rel, parts[3], service)...)
		return nil
	})
	return out
}

func checkFile(path string, rel string, layer string, service string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: rel, Line: 1, Rule: "file must parse"}}
	}

	rule, constrained := layerRules[layer]
	var out []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		report := func(reason string) {
			out = append(out, violation{
				File:   rel,
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
				Rule:   reason,
			})
		}

		if hasPrefix(importPath, modulePath+"/"+contextsRoot) && !hasPrefix(importPath, service) {
			report("cross-module imports are forbidden")
		}
		if !constrained {
			continue
		}
		if strings.Contains(importPath, "/adapters/") {
			report(layer + " must not import adapters")
		}
		if rule.forbidRuntime && isRuntimeInfrastructure(importPath) {
			report(layer + " must not import runtime infrastructure")
		}
		if !isStdlib(importPath) && !rule.allows(service, importPath) {
			report(layer + " import is outside explicit allowlist")
		}
	}
	return out
}

func (r layerRule) allows(service string, importPath string) bool {
	for _, p := range r.allowService {
		if hasPrefix(importPath, service+"/"+p) {
			return true
		}
	}
	for _, p := range r.allowAbsolute {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isRuntimeInfrastructure(importPath string) bool {
	return hasPrefix(importPath, modulePath+"/internal/platform") ||
		hasPrefix(importPath, modulePath+"/internal/app") ||
		hasPrefix(importPath, modulePath+"/cmd")
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// isStdlib treats any import whose first element has no dot as standard
// library, except this module's own packages.
func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

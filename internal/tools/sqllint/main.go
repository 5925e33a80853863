// Command sqllint verifies that every SQL string literal in the tree starts
// with the `--sql <uuid>` audit marker consumed by infra.SQLRunner. Run it
// over the repo root before committing new statements.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	auditMarkerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var violations []violation
	for _, target := range targets {
		vs, err := lintTarget(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
			os.Exit(1)
		}
		violations = append(violations, vs...)
	}

	if len(violations) > 0 {
		fmt.Fprintf(os.Stderr, "sqllint: %d statement(s) without an audit marker\n", len(violations))
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  %s:%d %s (%s)\n", v.file, v.line, v.message, v.name)
		}
		os.Exit(1)
	}
}

func lintTarget(target string) ([]violation, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if filepath.Ext(target) != ".go" {
			return nil, nil
		}
		return lintFile(target)
	}

	var violations []violation
	err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		vs, err := lintFile(path)
		if err != nil {
			return err
		}
		violations = append(violations, vs...)
		return nil
	})
	return violations, err
}

func lintFile(path string) ([]violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	var violations []violation
	ast.Inspect(file, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, value := range vs.Values {
			bl, ok := value.(*ast.BasicLit)
			if !ok || bl.Kind != token.STRING {
				continue
			}
			raw, err := unquote(bl.Value)
			if err != nil || !sqlKeywordPattern.MatchString(raw) {
				continue
			}
			if auditMarkerPattern.MatchString(firstLine(raw)) {
				continue
			}
			pos := fset.Position(bl.Pos())
			violations = append(violations, violation{
				file:    path,
				line:    pos.Line,
				name:    specNames(vs),
				message: "missing or invalid --sql <uuid> marker",
			})
		}
		return true
	})
	return violations, nil
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) > 1 && v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}

func specNames(vs *ast.ValueSpec) string {
	parts := make([]string, 0, len(vs.Names))
	for _, ident := range vs.Names {
		if ident != nil {
			parts = append(parts, ident.Name)
		}
	}
	return strings.Join(parts, ",")
}

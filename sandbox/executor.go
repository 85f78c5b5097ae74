// Package sandbox runs LLM-generated parser code in a Yaegi interpreter.
// Interpreting instead of compiling avoids go build hangs, binary version
// mismatches, and dependency resolution for code that exists for a single
// test run. Only whitelisted stdlib packages may be imported; filesystem,
// network, and exec access are rejected before evaluation.
package sandbox

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// EntryPoint is the function every generated parser must define:
//
//	func Parse(text string) ([][]string, error)
//
// It receives the extracted statement text and returns CSV-shaped rows,
// header first.
const EntryPoint = "main.Parse"

// Executor evaluates generated Go source in a sandboxed interpreter.
type Executor struct {
	allowedPackages map[string]bool
}

// NewExecutor creates an Executor with the default import whitelist.
func NewExecutor() *Executor {
	return &Executor{
		allowedPackages: map[string]bool{
			"strings":       true,
			"strconv":       true,
			"fmt":           true,
			"math":          true,
			"regexp":        true,
			"errors":        true,
			"sort":          true,
			"time":          true,
			"unicode":       true,
			"unicode/utf8":  true,
			"bytes":         true,
			"encoding/csv":  true,
			"encoding/json": true,

			// Blocked by omission: os, os/exec, io, net, net/http,
			// path/filepath, syscall, unsafe, plugin, runtime.
		},
	}
}

// Run validates, evaluates, and executes the parser code against the given
// statement text. The context bounds execution time; runaway regexes and
// infinite loops surface as a timeout error.
func (e *Executor) Run(ctx context.Context, code string, text string) ([][]string, error) {
	wrapped := wrapCode(code)
	if err := e.validateImports(wrapped); err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}

	if _, err := i.Eval(wrapped); err != nil {
		return nil, fmt.Errorf("code evaluation failed: %w", err)
	}

	v, err := i.Eval(EntryPoint)
	if err != nil {
		return nil, fmt.Errorf("Parse function not found: %w", err)
	}

	parseFunc, ok := v.Interface().(func(string) ([][]string, error))
	if !ok {
		return nil, fmt.Errorf("Parse has incorrect signature (expected: func(string) ([][]string, error))")
	}

	resultCh := make(chan [][]string, 1)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("parser panicked: %v", r)
			}
		}()
		rows, err := parseFunc(text)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- rows
	}()

	select {
	case rows := <-resultCh:
		return rows, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("parser execution timed out: %w", ctx.Err())
	}
}

// validateImports parses the import declarations of src and checks every
// path against the whitelist. Validation works on the AST, so grouped,
// one-line, aliased, blank, and dot imports are all seen.
func (e *Executor) validateImports(src string) error {
	f, err := parser.ParseFile(token.NewFileSet(), "parser.go", src, parser.ImportsOnly)
	if err != nil {
		return fmt.Errorf("unparseable generated code: %w", err)
	}

	var forbidden []string
	for _, imp := range f.Imports {
		pkg, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return fmt.Errorf("malformed import path %s", imp.Path.Value)
		}
		if !e.allowedPackages[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %v (allowed: %v)", forbidden, e.allowed())
	}
	return nil
}

// wrapCode ensures the source carries a package clause.
func wrapCode(code string) string {
	if strings.Contains(code, "package main") {
		return code
	}
	return "package main\n\n" + code
}

func (e *Executor) allowed() []string {
	pkgs := make([]string, 0, len(e.allowedPackages))
	for pkg := range e.allowedPackages {
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

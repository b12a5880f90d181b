// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/casbin/govaluate"

	"benchcharts/internal/bench"
)

// ExpressionVariables are the parameter names an expression may reference.
var ExpressionVariables = []string{"renderer", "mode", "count", "width", "height", "complexity", "density", "spread"}

// Expression is a boolean predicate over column parameters, e.g.
// `spread >= 29 && renderer != 'Forward'`.
type Expression struct {
	text      string
	evaluable *govaluate.EvaluableExpression
}

// NewExpression parses text and checks that it only references known parameters.
func NewExpression(text string) (*Expression, error) {
	evaluable, err := govaluate.NewEvaluableExpressionWithFunctions(text, getEvaluatorFunctions())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", text, err)
	}
	for _, name := range evaluable.Vars() {
		if !slices.Contains(ExpressionVariables, name) {
			return nil, fmt.Errorf("invalid filter expression %q: unknown parameter %q, expected one of %s", text, name, strings.Join(ExpressionVariables, ", "))
		}
	}
	return &Expression{text: text, evaluable: evaluable}, nil
}

// Matches evaluates the expression for p. The result must be a boolean.
func (e *Expression) Matches(p bench.Params) (bool, error) {
	result, err := e.evaluable.Evaluate(parameters(p))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter expression %q: %w", e.text, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("filter expression %q returned %v, expected true or false", e.text, result)
	}
	return ok, nil
}

func (e *Expression) String() string {
	return e.text
}

func parameters(p bench.Params) map[string]any {
	return map[string]any{
		"renderer":   p.Renderer,
		"mode":       p.Mode,
		"count":      float64(p.ParticleCount),
		"width":      float64(p.ResolutionWidth),
		"height":     float64(p.ResolutionHeight),
		"complexity": float64(p.Complexity),
		"density":    float64(p.Density),
		"spread":     float64(p.Spread),
	}
}

// getEvaluatorFunctions returns the string helpers available to expressions.
func getEvaluatorFunctions() map[string]govaluate.ExpressionFunction {
	functions := make(map[string]govaluate.ExpressionFunction)
	stringArgs := func(name string, args []any) (string, string, error) {
		if len(args) != 2 {
			return "", "", fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
		}
		s, ok1 := args[0].(string)
		sub, ok2 := args[1].(string)
		if !ok1 || !ok2 {
			return "", "", fmt.Errorf("%s expects string arguments", name)
		}
		return s, sub, nil
	}
	functions["contains"] = func(args ...any) (any, error) {
		s, sub, err := stringArgs("contains", args)
		if err != nil {
			return nil, err
		}
		return strings.Contains(s, sub), nil
	}
	functions["hasPrefix"] = func(args ...any) (any, error) {
		s, prefix, err := stringArgs("hasPrefix", args)
		if err != nil {
			return nil, err
		}
		return strings.HasPrefix(s, prefix), nil
	}
	return functions
}

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Any is the flag and preset value that leaves a constraint unset.
const Any = "any"

// IntConstraint is an optional integer equality constraint. It implements
// pflag.Value and yaml.Unmarshaler.
type IntConstraint struct {
	Value  int
	Active bool
}

// IntOf returns a set constraint.
func IntOf(v int) IntConstraint {
	return IntConstraint{Value: v, Active: true}
}

// Matches reports whether v satisfies the constraint.
func (c IntConstraint) Matches(v int) bool {
	return !c.Active || c.Value == v
}

func (c *IntConstraint) String() string {
	if !c.Active {
		return Any
	}
	return strconv.Itoa(c.Value)
}

func (c *IntConstraint) Set(s string) error {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Any) || s == "" {
		*c = IntConstraint{}
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected an integer or %q, got %q", Any, s)
	}
	*c = IntOf(v)
	return nil
}

func (c *IntConstraint) Type() string {
	return "int|any"
}

// UnmarshalYAML accepts an integer or the string "any".
func (c *IntConstraint) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return c.Set(raw)
}

// StringConstraint is an optional string equality constraint. It implements
// pflag.Value and yaml.Unmarshaler.
type StringConstraint struct {
	Value  string
	Active bool
}

// StringOf returns a set constraint.
func StringOf(v string) StringConstraint {
	return StringConstraint{Value: v, Active: true}
}

// Matches reports whether v satisfies the constraint.
func (c StringConstraint) Matches(v string) bool {
	return !c.Active || c.Value == v
}

func (c *StringConstraint) String() string {
	if !c.Active {
		return Any
	}
	return c.Value
}

func (c *StringConstraint) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), Any) || s == "" {
		*c = StringConstraint{}
		return nil
	}
	*c = StringOf(s)
	return nil
}

func (c *StringConstraint) Type() string {
	return "string|any"
}

// UnmarshalYAML accepts a string; "any" leaves the constraint unset.
func (c *StringConstraint) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return c.Set(raw)
}

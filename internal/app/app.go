// Package app defines application-wide types, constants, and context
// that are shared across multiple commands.
package app

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Name is the name of the application executable.
var Name = filepath.Base(os.Args[0])

// DefaultGraphsDir is the directory, relative to the working directory, that holds every chart set.
const DefaultGraphsDir = "graphs"

// Context represents the application context that can be accessed from all commands.
type Context struct {
	Timestamp   string // Timestamp is the timestamp when the application was started.
	GraphsDir   string // GraphsDir is the root directory that chart sets are written under.
	LogFilePath string // LogFilePath is the path to the log file.
	Version     string // Version is the version of the application.
}

// FromCommandContext extracts the application context stored by the root command.
func FromCommandContext(ctx context.Context) (Context, error) {
	if ctx == nil {
		return Context{}, fmt.Errorf("application context not initialized")
	}
	appContext, ok := ctx.Value(Context{}).(Context)
	if !ok {
		return Context{}, fmt.Errorf("application context not initialized")
	}
	return appContext, nil
}

// Flag names for flags defined in the root command, but sometimes used in other commands.
const (
	FlagDebugName     = "debug"
	FlagSyslogName    = "syslog"
	FlagLogStdOutName = "log-stdout"
	FlagOutputDirName = "output"
)

// Flag represents a command-line flag with its name and help text.
type Flag struct {
	Name string
	Help string
}

// FlagGroup represents a group of related flags with a group name.
type FlagGroup struct {
	GroupName string
	Flags     []Flag
}

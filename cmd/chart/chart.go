// Package chart is a subcommand of the root command. It filters a benchmark
// results table and writes one chart per device.
package chart

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"benchcharts/internal/app"
	"benchcharts/internal/chart"
	"benchcharts/internal/emit"
	"benchcharts/internal/runstats"
	"benchcharts/internal/selection"
	"benchcharts/internal/table"
	"benchcharts/internal/util"
)

const cmdName = "chart"

var examples = []string{
	fmt.Sprintf("  Bar charts of the default comparison: $ %s %s", app.Name, cmdName),
	fmt.Sprintf("  Box plots from another results file:  $ %s %s --input src/Frametime-Mobile.csv --box --name Mobile-OUTPUT", app.Name, cmdName),
	fmt.Sprintf("  One renderer, all spreads:            $ %s %s --renderer GBuffer6 --name GBuffer6-OUTPUT", app.Name, cmdName),
	fmt.Sprintf("  Expression filter and extra formats:  $ %s %s --where \"spread >= 30 && renderer != 'Forward'\" --format all", app.Name, cmdName),
	fmt.Sprintf("  Settings from a preset file:          $ %s %s --preset presets/mobile.yaml", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Generate one chart per device from a benchmark results table",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// defaults
const (
	DefaultInput     = "src/Frametime-Full.csv"
	DefaultOutputDir = "Frametime-OUTPUT"
	DefaultDataTitle = "Frametime (ms)"
)

// flag vars
var (
	flagInput   string
	flagName    string
	flagTitle   string
	flagBox     bool
	flagFormat  []string
	flagPreset  string
	flagOpen    bool
	flagMetrics string
	flagFilter  = selection.DefaultFilter()
)

// flag names
const (
	flagInputName   = "input"
	flagNameName    = "name"
	flagTitleName   = "title"
	flagBoxName     = "box"
	flagFormatName  = "format"
	flagPresetName  = "preset"
	flagOpenName    = "open"
	flagMetricsName = "metrics"
)

func init() {
	Cmd.Flags().StringVar(&flagInput, flagInputName, DefaultInput, "")
	Cmd.Flags().StringVar(&flagName, flagNameName, DefaultOutputDir, "")
	Cmd.Flags().StringVar(&flagTitle, flagTitleName, DefaultDataTitle, "")
	Cmd.Flags().BoolVar(&flagBox, flagBoxName, false, "")
	Cmd.Flags().StringSliceVar(&flagFormat, flagFormatName, []string{chart.FormatHtml}, "")
	selection.AddFlags(Cmd.Flags(), &flagFilter)
	Cmd.Flags().StringVar(&flagPreset, flagPresetName, "", "")
	Cmd.Flags().BoolVar(&flagOpen, flagOpenName, term.IsTerminal(int(os.Stdout.Fd())), "")
	Cmd.Flags().StringVar(&flagMetrics, flagMetricsName, "", "")

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
	cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	cmd.Println("Flags:")
	for _, group := range getFlagGroups() {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, flag := range group.Flags {
			flagDefault := ""
			if cmd.Flags().Lookup(flag.Name).DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
			}
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
		}
	}
	cmd.Println("\nGlobal Flags:")
	cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
		flagDefault := ""
		if cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue != "" {
			flagDefault = fmt.Sprintf(" (default: %s)", cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue)
		}
		cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
	})
	return nil
}

func getFlagGroups() []app.FlagGroup {
	var groups []app.FlagGroup
	flags := []app.Flag{
		{
			Name: flagInputName,
			Help: "benchmark results table, \".csv\" or \".xlsx\"",
		},
		{
			Name: flagNameName,
			Help: "name of the chart directory created below the global output directory",
		},
		{
			Name: flagTitleName,
			Help: "value axis title",
		},
		{
			Name: flagBoxName,
			Help: "draw box-and-whisker plots of the raw samples instead of bars of the averages",
		},
		{
			Name: flagFormatName,
			Help: fmt.Sprintf("choose output format(s) from: %s, html is always written", strings.Join(append([]string{chart.FormatAll}, chart.FormatOptions...), ", ")),
		},
	}
	groups = append(groups, app.FlagGroup{
		GroupName: "Chart Options",
		Flags:     flags,
	})
	groups = append(groups, selection.GetFlagGroup())
	flags = []app.Flag{
		{
			Name: flagPresetName,
			Help: "YAML file with chart and filter settings, flags given on the command line take precedence",
		},
		{
			Name: flagOpenName,
			Help: "open each html chart in the default browser, on by default when run from a terminal",
		},
		{
			Name: flagMetricsName,
			Help: "write run counters to this file in the Prometheus text format",
		},
	}
	groups = append(groups, app.FlagGroup{
		GroupName: "Other Options",
		Flags:     flags,
	})
	return groups
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagPreset != "" {
		exists, err := util.FileExists(flagPreset)
		if err != nil || !exists {
			err := fmt.Errorf("preset file %s does not exist", flagPreset)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return err
		}
	}
	if !util.IsValidDirectoryName(flagName) {
		err := fmt.Errorf("invalid chart directory name: %s", flagName)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if _, err := chart.ValidateFormats(flagFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if strings.TrimSpace(flagFilter.Where) != "" {
		if _, err := selection.NewExpression(flagFilter.Where); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return err
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext, err := app.FromCommandContext(cmd.Parent().Context())
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return reportError(cmd, appContext, err)
	}
	slog.Info("chart settings", slog.String("version", appContext.Version), slog.String("started", appContext.Timestamp), slog.String("input", settings.Input), slog.String("name", settings.Name), slog.String("filter", settings.Filter.String()))
	t, err := table.Load(settings.Input)
	if err != nil {
		return reportError(cmd, appContext, err)
	}
	stats := runstats.New()
	style := chart.Bar
	if settings.Box {
		style = chart.Box
	}
	emitter, err := emit.New(emit.Options{
		Filter:     settings.Filter,
		Style:      style,
		YAxisTitle: settings.Title,
		GraphsDir:  appContext.GraphsDir,
		OutputDir:  settings.Name,
		Formats:    settings.Format,
		Open:       flagOpen,
		Stats:      stats,
	})
	if err != nil {
		return reportError(cmd, appContext, err)
	}
	if err := emit.Generate(t, emitter); err != nil {
		return reportError(cmd, appContext, err)
	}
	if flagMetrics != "" {
		if err := stats.WriteTextfile(flagMetrics); err != nil {
			return reportError(cmd, appContext, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Charts for %d device(s) written to %s\n", emitter.Flushes(), emitter.OutputPath())
	for _, file := range emitter.Files() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", file)
	}
	return nil
}

func reportError(cmd *cobra.Command, appContext app.Context, err error) error {
	slog.Error(err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	if appContext.LogFilePath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "See %s for details.\n", appContext.LogFilePath)
	}
	cmd.SilenceUsage = true
	return err
}

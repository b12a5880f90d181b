// Package inspect is a subcommand of the root command. It prints how each data
// column of a benchmark results table is classified, without writing charts.
package inspect

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"benchcharts/internal/app"
	"benchcharts/internal/bench"
	"benchcharts/internal/palette"
	"benchcharts/internal/selection"
	"benchcharts/internal/table"
)

const cmdName = "inspect"

var examples = []string{
	fmt.Sprintf("  Classify the default results file:     $ %s %s", app.Name, cmdName),
	fmt.Sprintf("  Check which columns a filter includes: $ %s %s --input src/Frametime-Mobile.csv --renderer GBuffer3 --spread any", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Show how each column of a benchmark results table would be charted",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

const defaultInput = "src/Frametime-Full.csv"

var (
	flagInput    string
	flagBox      bool
	flagIncluded bool
	flagFilter   = selection.DefaultFilter()
)

const (
	flagInputName    = "input"
	flagBoxName      = "box"
	flagIncludedName = "included"
)

func init() {
	Cmd.Flags().StringVar(&flagInput, flagInputName, defaultInput, "")
	Cmd.Flags().BoolVar(&flagBox, flagBoxName, false, "")
	Cmd.Flags().BoolVar(&flagIncluded, flagIncludedName, false, "")
	selection.AddFlags(Cmd.Flags(), &flagFilter)
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
	return []app.FlagGroup{
		{
			GroupName: "Inspect Options",
			Flags: []app.Flag{
				{Name: flagInputName, Help: "benchmark results table, \".csv\" or \".xlsx\""},
				{Name: flagBoxName, Help: "show the colors of box-and-whisker charts"},
				{Name: flagIncludedName, Help: "list only the columns the filter includes"},
			},
		},
		selection.GetFlagGroup(),
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if err := flagFilter.Compile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	t, err := table.Load(flagInput)
	if err != nil {
		slog.Error(err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cmd.SilenceUsage = true
		return err
	}
	c := newClassifier(flagFilter, flagBox, flagIncluded)
	if err := bench.Scan(t, c); err != nil {
		slog.Error(err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cmd.SilenceUsage = true
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), c.render(flagInput))
	return nil
}

// classifier collects one row per scanned column.
type classifier struct {
	filter       selection.Filter
	box          bool
	includedOnly bool
	printer      *message.Printer
	fields       []Field
	devices      mapset.Set[string]
	scanned      int
	included     int
}

var fieldNames = []string{"Column", "Device", "Renderer", "Mode", "Count", "Resolution", "Complexity", "Density", "Spread", "Average", "Included", "Label", "Color"}

func newClassifier(filter selection.Filter, box, includedOnly bool) *classifier {
	fields := make([]Field, len(fieldNames))
	for i, name := range fieldNames {
		fields[i] = Field{Name: name}
	}
	return &classifier{
		filter:       filter,
		box:          box,
		includedOnly: includedOnly,
		printer:      message.NewPrinter(language.English), // use printer to get commas at thousands, e.g., 1,048,576
		fields:       fields,
		devices:      mapset.NewThreadUnsafeSet[string](),
	}
}

func (c *classifier) BeginDevice(name string) error {
	c.devices.Add(name)
	return nil
}

func (c *classifier) VisitColumn(col bench.Column) error {
	c.scanned++
	label, ok, err := c.filter.Name(col.Params)
	if err != nil {
		return fmt.Errorf("column %d (%s): %w", col.Index, col.Device, err)
	}
	if ok {
		c.included++
	} else if c.includedOnly {
		return nil
	}
	p := col.Params
	average := "-"
	if !math.IsNaN(col.Average) {
		average = c.printer.Sprintf("%0.2f", col.Average)
	}
	included := "no"
	if ok {
		included = "yes"
	}
	values := []string{
		strconv.Itoa(col.Index),
		col.Device,
		p.Renderer,
		p.Mode,
		c.printer.Sprintf("%d", p.ParticleCount),
		fmt.Sprintf("%dx%d", p.ResolutionWidth, p.ResolutionHeight),
		strconv.Itoa(p.Complexity),
		strconv.Itoa(p.Density),
		strconv.Itoa(p.Spread),
		average,
		included,
		label,
		palette.Color(p, c.box).String(),
	}
	for i, v := range values {
		c.fields[i].Values = append(c.fields[i].Values, v)
	}
	return nil
}

func (c *classifier) render(input string) string {
	var sb strings.Builder
	sb.WriteString(renderTextTable(input, c.fields))
	sb.WriteString(c.printer.Sprintf("%d columns scanned, %d included, %d devices\n", c.scanned, c.included, c.devices.Cardinality()))
	return sb.String()
}

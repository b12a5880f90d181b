package inspect

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"
)

// NoDataFound is printed in place of an empty table.
const NoDataFound = "No data found."

// Field is one column of a text table.
type Field struct {
	Name   string
	Values []string
}

// renderTextTable prints the field names as column headings across the top,
// each column padded to its longest value.
func renderTextTable(title string, fields []Field) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", title))
	for range len(title) {
		sb.WriteString("=")
	}
	sb.WriteString("\n")
	if len(fields) == 0 || len(fields[0].Values) == 0 {
		sb.WriteString(NoDataFound + "\n\n")
		return sb.String()
	}
	// find the longest item per column -- can be the field name (column header) or a value
	maxFieldLen := make([]int, len(fields))
	for i, field := range fields {
		// the last column shouldn't occupy more space than the value
		if i == len(fields)-1 {
			continue
		}
		maxFieldLen[i] = len(field.Name)
		for _, val := range field.Values {
			if len(val) > maxFieldLen[i] {
				maxFieldLen[i] = len(val)
			}
		}
	}
	columnSpacing := 3
	writeRow := func(cell func(i int) string) {
		var line strings.Builder
		for i := range fields {
			line.WriteString(fmt.Sprintf("%-*s", maxFieldLen[i]+columnSpacing, cell(i)))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	// print the field names
	writeRow(func(i int) string { return fields[i].Name })
	// underline the field names
	writeRow(func(i int) string { return strings.Repeat("-", len(fields[i].Name)) })
	// print the rows
	for row := range len(fields[0].Values) {
		writeRow(func(i int) string { return fields[i].Values[row] })
	}
	sb.WriteString("\n")
	return sb.String()
}

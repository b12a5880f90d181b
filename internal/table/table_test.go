// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	input := "Setting,,,,GPU A,,\n" +
		"Renderer,,,,Forward,,\n" +
		"Mode,,,,VertVert\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 7, tbl.NumColumns())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, "Forward", tbl.Cell(4, 0))
	assert.Equal(t, "VertVert", tbl.Cell(4, 1))
	assert.Equal(t, "", tbl.Cell(5, 1), "short rows are padded")
	assert.Equal(t, "", tbl.Cell(4, 2), "out of range rows are empty")
	assert.Equal(t, "", tbl.Cell(9, 0), "out of range columns are empty")
}

func TestHeaderNormalization(t *testing.T) {
	tbl, err := FromRows([][]string{{"a", "", "GPU", "", "GPU", "GPU"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1", "GPU", "Unnamed: 3", "GPU.1", "GPU.2"}, tbl.Header)
	assert.Equal(t, 0, tbl.NumRows())
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder("Unnamed: 5"))
	assert.False(t, IsPlaceholder("NVIDIA GeForce RTX 3070"))
}

func TestFromRowsEmpty(t *testing.T) {
	_, err := FromRows(nil)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("h0,h1\n1,2\n3,4\n"), 0644))
	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, tbl.Column(0))
	assert.Nil(t, tbl.Column(2))
}

func TestLoadXlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Setting", "", "", "", "GPU A"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Renderer", "", "", "", "GBuffer3"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GPU A", tbl.Header[4])
	assert.Equal(t, "GBuffer3", tbl.Cell(4, 0))
	assert.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, 6, tbl.NumColumns(), "a trailing empty column follows the last device")
	assert.True(t, IsPlaceholder(tbl.Header[5]))
}

func TestPadRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		width    int
		expected []string
	}{
		{"device last", [][]string{{"Setting", "", "GPU A"}}, 0, []string{"Setting", "", "GPU A", ""}},
		{"sheet wider than header", [][]string{{"Setting", "GPU A"}, {"Renderer", "Forward", "", "x"}}, 5, []string{"Setting", "GPU A", "", "", ""}},
		{"trailing column kept", [][]string{{"Setting", "GPU A", ""}}, 3, []string{"Setting", "GPU A", ""}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, padRows(test.rows, test.width)[0])
		})
	}
	assert.Empty(t, padRows(nil, 4))
}

func TestHeaderWhitespaceIsKept(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Setting,, ,GPU A \nRenderer,, 1 ,x\n"))
	require.NoError(t, err)
	assert.Equal(t, " ", tbl.Header[2])
	assert.False(t, IsPlaceholder(tbl.Header[2]))
	assert.Equal(t, "GPU A ", tbl.Header[3])
	assert.Equal(t, "1", tbl.Cell(2, 0))
}

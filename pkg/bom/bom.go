// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bom reads Bill-of-Materials spreadsheets into part entries.
package bom

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// 📦 Entry is one part row of a BOM.
type Entry struct {
	OriginalName string // part file name as written in the BOM (e.g. "1234-PART.SLDPRT")
	Material     string
	Quantity     int
}

// 📐 Layout locates the BOM columns. Columns are 1-based, HeaderRows is the number of
// leading rows to skip.
type Layout struct {
	NameColumn     int
	MaterialColumn int
	QuantityColumn int
	HeaderRows     int
}

// DefaultLayout matches the column arrangement of the usual BOM export.
func DefaultLayout() Layout {
	return Layout{
		NameColumn:     2,
		MaterialColumn: 12,
		QuantityColumn: 6,
		HeaderRows:     2,
	}
}

// 🔍 Validate checks column ranges and that no two fields share a column.
func (l Layout) Validate() error {
	if l.NameColumn < 1 || l.MaterialColumn < 1 || l.QuantityColumn < 1 {
		return errors.Errorf("column indices must be 1 or greater (name=%d, material=%d, quantity=%d)",
			l.NameColumn, l.MaterialColumn, l.QuantityColumn)
	}
	if l.HeaderRows < 0 {
		return errors.Errorf("header rows must not be negative, got %d", l.HeaderRows)
	}
	if l.NameColumn == l.MaterialColumn || l.NameColumn == l.QuantityColumn || l.MaterialColumn == l.QuantityColumn {
		return errors.Errorf("column indices must be unique (name=%d, material=%d, quantity=%d)",
			l.NameColumn, l.MaterialColumn, l.QuantityColumn)
	}
	return nil
}

// 📥 Load reads the BOM at path. The format is picked from the file extension:
// .xlsx, .xlsm and .xltx are read as workbooks, .csv as comma separated text.
func Load(ctx context.Context, path string, layout Layout) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening BOM: %w", err)
	}
	defer f.Close()

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		entries, err = ReadWorkbook(ctx, f, layout)
	case ".csv":
		entries, err = ReadCSV(ctx, f, layout)
	default:
		return nil, errors.Errorf("unsupported BOM file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Errorf("loading BOM %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Int("rows", len(entries)).Msg("loaded BOM")
	return entries, nil
}

// ReadWorkbook reads entries from the first worksheet of an Excel workbook.
func ReadWorkbook(ctx context.Context, r io.Reader, layout Layout) ([]Entry, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no worksheets found in workbook")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Errorf("reading worksheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("workbook is empty")
	}

	zerolog.Ctx(ctx).Debug().Str("sheet", sheets[0]).Int("rows", len(rows)).Msg("reading worksheet")
	return fromRows(rows, layout), nil
}

// ReadCSV reads entries from comma separated text.
func ReadCSV(ctx context.Context, r io.Reader, layout Layout) ([]Entry, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Errorf("parsing CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	zerolog.Ctx(ctx).Debug().Int("rows", len(rows)).Msg("reading CSV")
	return fromRows(rows, layout), nil
}

func fromRows(rows [][]string, layout Layout) []Entry {
	entries := make([]Entry, 0, len(rows))
	for i := layout.HeaderRows; i < len(rows); i++ {
		row := rows[i]

		name := cell(row, layout.NameColumn)
		if name == "" {
			continue
		}

		entries = append(entries, Entry{
			OriginalName: name,
			Material:     cell(row, layout.MaterialColumn),
			Quantity:     parseQuantity(cell(row, layout.QuantityColumn)),
		})
	}
	return entries
}

// cell returns the trimmed text of a 1-based column, empty when the row is short.
func cell(row []string, column int) string {
	if column < 1 || column > len(row) {
		return ""
	}
	return strings.TrimSpace(row[column-1])
}

func parseQuantity(s string) int {
	q, err := strconv.Atoi(s)
	if err != nil || q < 0 {
		return 0
	}
	return q
}

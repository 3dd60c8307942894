package zincio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/nao1215/zincio/domain/model"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names of an exported workbook
const (
	// XLSXDataSheet holds the column names followed by one row per grid row
	XLSXDataSheet = "grid"
	// XLSXMetaSheet lists the grid meta and every column tag
	XLSXMetaSheet = "meta"
)

// Dump writes g to w in the format and compression given by opts. w is not
// closed.
func Dump(w io.Writer, g *Grid, opts DumpOptions) error {
	if g == nil {
		return ErrNilGrid
	}
	cw, finish, err := opts.Compression.NewWriter(w)
	if err != nil {
		return err
	}
	if err := writeFormat(cw, g, opts.Format); err != nil {
		_ = finish()
		return err
	}
	return finish()
}

// Save writes g to a file. opts.FileExtension() is appended to path unless
// path already ends with it. It returns the path written.
func Save(g *Grid, path string, opts DumpOptions) (string, error) {
	if g == nil {
		return "", ErrNilGrid
	}
	if ext := opts.FileExtension(); !strings.HasSuffix(strings.ToLower(path), ext) {
		path += ext
	}
	ec := NewErrorContext("save", path)
	if err := newValidator().validateOutputPath(path); err != nil {
		return "", ec.Error(err)
	}

	f, err := os.Create(path) //nolint:gosec // writing user-provided paths is the point
	if err != nil {
		return "", ec.Error(err)
	}
	if err := Dump(f, g, opts); err != nil {
		_ = f.Close()
		return "", ec.WithDetails(opts.Format.String()).Error(err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", ec.Error(err)
	}
	if err := f.Close(); err != nil {
		return "", ec.Error(err)
	}

	model.Logger().Debug("saved grid",
		zap.String("path", path),
		zap.Stringer("format", opts.Format),
		zap.Stringer("compression", opts.Compression))
	return path, nil
}

func writeFormat(w io.Writer, g *Grid, format OutputFormat) error {
	switch format {
	case OutputFormatZinc:
		return g.WriteZinc(w)
	case OutputFormatCSV:
		return writeCSV(w, g)
	case OutputFormatParquet:
		frame, err := NewFrame(g, nil)
		if err != nil {
			return err
		}
		defer frame.Release()
		return frame.WriteParquet(w)
	case OutputFormatXLSX:
		return writeXLSX(w, g)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// writeCSV writes a header of column names and one record per row. Null
// cells are empty, Str cells hold their text and other cells their Zinc
// literal.
func writeCSV(w io.Writer, g *Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.ColumnNames()); err != nil {
		return err
	}
	record := make([]string, g.NumCols())
	for r := range g.NumRows() {
		for c, v := range g.Row(r) {
			record[c] = v.Plain()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, g *Grid) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", XLSXDataSheet); err != nil {
		return err
	}
	header := make([]any, g.NumCols())
	for i, name := range g.ColumnNames() {
		header[i] = name
	}
	if err := f.SetSheetRow(XLSXDataSheet, "A1", &header); err != nil {
		return err
	}
	for r := range g.NumRows() {
		row := make([]any, g.NumCols())
		for c, v := range g.Row(r) {
			row[c] = xlsxCell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXDataSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := writeXLSXMeta(f, g); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// writeXLSXMeta lists grid meta (empty column) and column tags as
// column, tag, value rows.
func writeXLSXMeta(f *excelize.File, g *Grid) error {
	if _, err := f.NewSheet(XLSXMetaSheet); err != nil {
		return err
	}
	rows := [][]any{{"column", "tag", "value"}}
	for name, v := range g.Meta().All() {
		rows = append(rows, []any{"", name, v.String()})
	}
	for _, col := range g.Columns() {
		for name, v := range col.Tags().All() {
			rows = append(rows, []any{col.Name(), name, v.String()})
		}
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXMetaSheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func xlsxCell(v model.Value) any {
	switch v.Kind() {
	case model.KindNull, model.KindNA, model.KindRemove:
		return nil
	case model.KindNumber:
		if f := v.Float(); !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return v.String()
	case model.KindBool, model.KindMarker:
		return v.IsTrue()
	default:
		return v.Plain()
	}
}

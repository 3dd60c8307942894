// Package zincio decodes Project Haystack Zinc grids into typed columns and
// moves them on to analytical tools.
//
// A Zinc grid is a small text table: a version line with grid meta, a column
// line where every column carries its own tags (unit, tz, kind, enum, ...)
// and CSV-like data rows whose cells are Zinc literals. zincio decodes each
// column with a single kind chosen up front from its tags, or from its first
// value when no tags say otherwise, and decodes columns in parallel.
//
// # Basic Usage
//
//	grid, err := zincio.ReadFile("history.zinc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	col, _ := grid.Column("v0")
//	fmt.Println(col.Kind(), col.Value(0))
//
// # Arrow Frames
//
// NewFrame converts a grid into an Apache Arrow table. Grid meta becomes
// schema metadata and each column's tags become field metadata, so nothing
// from the header is lost:
//
//	frame, err := zincio.NewFrame(grid, memory.DefaultAllocator)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer frame.Release()
//
// # Export
//
// Save and Dump write a grid as Zinc, CSV, Parquet or Excel, optionally
// compressed with gzip, xz or zstd:
//
//	path, err := zincio.Save(grid, "out", zincio.NewDumpOptions().
//	    WithFormat(zincio.OutputFormatParquet))
//
// # SQL
//
// Open loads .zinc files (plain or compressed) into an in-memory SQLite
// database. Each file becomes a table named after the file:
//
//	db, err := zincio.Open("history.zinc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query("SELECT ts, v0 FROM history WHERE v0 > 68")
//
// Number columns are stored as REAL, Bool and Marker columns as INTEGER,
// Str columns as plain text and every other kind as its Zinc literal.
//
// # Logging
//
// Decoding is silent by default. Pass a *zap.Logger to SetLogger to see how
// column kinds were resolved and how loading went.
package zincio

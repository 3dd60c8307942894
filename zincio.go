package zincio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/nao1215/zincio/domain/model"
	zinciodriver "github.com/nao1215/zincio/driver"
	"go.uber.org/zap"
)

const (
	// DriverName is the name for the zincio driver
	DriverName = "zincio"
)

// Register registers the zincio driver with database/sql
func Register() {
	sql.Register(DriverName, zinciodriver.NewDriver())
}

func init() {
	Register()
}

// Type aliases for the decoded grid model
type (
	// Grid is a decoded Zinc grid
	Grid = model.Grid
	// Column is one decoded grid column
	Column = model.Column
	// Value is one decoded Zinc value
	Value = model.Value
	// Kind is the kind of a Zinc value
	Kind = model.Kind
	// Tags is an ordered set of name/value tags
	Tags = model.Tags
	// DecodeOptions controls decoding
	DecodeOptions = model.DecodeOptions
)

// NewDecodeOptions returns the default decode options: strict column kinds
// and one worker per CPU.
var NewDecodeOptions = model.NewDecodeOptions

// SetLogger sets the logger used by the decoder and the driver. A nil
// logger silences them again.
func SetLogger(l *zap.Logger) {
	model.SetLogger(l)
}

// Parse decodes Zinc text into a Grid with the default options.
func Parse(text string) (*Grid, error) {
	return model.Parse(text)
}

// ParseWithOptions decodes Zinc text into a Grid.
func ParseWithOptions(text string, opts DecodeOptions) (*Grid, error) {
	return model.ParseWithOptions(text, opts)
}

// ParseReader reads uncompressed Zinc text from r and decodes it.
func ParseReader(r io.Reader, opts DecodeOptions) (*Grid, error) {
	text, err := model.ReadText(r)
	if err != nil {
		return nil, NewErrorContext("read", "").Error(err)
	}
	return model.ParseWithOptions(text, opts)
}

// ReadFile decodes a .zinc file with the default options. Compressed files
// (.zinc.gz, .zinc.bz2, .zinc.xz, .zinc.zst) are decompressed on the fly.
func ReadFile(path string) (*Grid, error) {
	return ReadFileWithOptions(path, model.NewDecodeOptions())
}

// ReadFileWithOptions decodes a .zinc file.
func ReadFileWithOptions(path string, opts DecodeOptions) (*Grid, error) {
	ec := NewErrorContext("read", path)
	if err := newValidator().validateFile(path); err != nil {
		return nil, ec.Error(err)
	}

	f, err := os.Open(path) //nolint:gosec // reading user-provided paths is the point
	if err != nil {
		return nil, ec.Error(err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	r, release, err := DetectCompressionType(path).NewReader(f)
	if err != nil {
		return nil, ec.Error(err)
	}
	defer release() //nolint:errcheck

	grid, err := ParseReader(r, opts)
	if err != nil {
		var colErr *model.ColumnError
		if errors.As(err, &colErr) {
			ec.WithColumn(colErr.Column)
		}
		return nil, ec.Error(err)
	}
	model.Logger().Debug("read grid",
		zap.String("path", path),
		zap.Int("columns", grid.NumCols()),
		zap.Int("rows", grid.NumRows()))
	return grid, nil
}

// ReadFS decodes the grid file name from fsys, such as an embed.FS.
// Compressed names are decompressed like in ReadFile.
func ReadFS(fsys fs.FS, name string, opts DecodeOptions) (*Grid, error) {
	ec := NewErrorContext("read", name)
	if !model.IsSupportedFile(name) {
		return nil, ec.Error(fmt.Errorf("%w: %s", ErrUnsupportedFile, name))
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, ec.Error(notFound(err))
	}
	defer f.Close() //nolint:errcheck // read-only file

	r, release, err := DetectCompressionType(name).NewReader(f)
	if err != nil {
		return nil, ec.Error(err)
	}
	defer release() //nolint:errcheck

	grid, err := ParseReader(r, opts)
	if err != nil {
		return nil, ec.Error(err)
	}
	return grid, nil
}

// Open opens an in-memory SQLite database holding one table per Zinc file.
//
// Paths may name .zinc files (plain or compressed) or directories, which are
// scanned recursively. Each table is named after its file without extensions,
// so "history.zinc.gz" becomes table "history". Two files mapping to the same
// table name are an error.
//
// Example:
//
//	db, err := zincio.Open("history.zinc", "sites/")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query("SELECT ts, v0 FROM history WHERE v0 IS NOT NULL")
func Open(paths ...string) (*sql.DB, error) {
	return OpenContext(context.Background(), paths...)
}

// OpenContext is like Open but loads the files under ctx.
func OpenContext(ctx context.Context, paths ...string) (*sql.DB, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	v := newValidator()
	for _, path := range paths {
		if err := v.validatePath(path); err != nil {
			return nil, NewErrorContext("open", path).Error(err)
		}
	}

	db, err := sql.Open(DriverName, strings.Join(paths, ";"))
	if err != nil {
		return nil, err
	}
	// Each connection holds its own copy of the tables.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, NewErrorContext("open", strings.Join(paths, ";")).Error(err)
	}
	return db, nil
}

// notFound maps fs.ErrNotExist to ErrFileNotFound, keeping both in the chain.
func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	return err
}

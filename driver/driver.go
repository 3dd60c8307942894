package driver

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/zincio/domain/model"
	"go.uber.org/zap"
	"modernc.org/sqlite"
)

// Driver implements database/sql/driver.Driver for Zinc grid files.
//
// The DSN is a list of file or directory paths separated by semicolons.
// Every (compressed) .zinc file becomes one table of an in-memory SQLite
// database, named after the file without its extensions.
type Driver struct{}

// Connector implements database/sql/driver.Connector interface.
type Connector struct {
	driver *Driver
	dsn    string // file and directory paths separated by semicolons
}

// Connection implements database/sql/driver.Conn interface.
// It wraps an underlying SQLite connection that holds the loaded grids.
type Connection struct {
	conn driver.Conn
}

// Transaction implements database/sql/driver.Tx interface.
type Transaction struct {
	tx driver.Tx
}

// NewDriver creates a new zincio driver
func NewDriver() *Driver {
	return &Driver{}
}

// Open implements driver.Driver interface
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	return &Connector{
		driver: d,
		dsn:    dsn,
	}, nil
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := (&sqlite.Driver{}).Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	if err := c.loadPaths(ctx, conn, strings.Split(c.dsn, ";")); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Connection{conn: conn}, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// loadPaths loads every grid file named by paths. A file named explicitly
// must load; files found while scanning a directory are skipped with a
// warning when they fail to decode.
func (c *Connector) loadPaths(ctx context.Context, conn driver.Conn, paths []string) error {
	files, err := c.collectAllFiles(paths)
	if err != nil {
		return err
	}

	loaded := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.loadFile(ctx, conn, f.path)
		if err == nil {
			loaded++
			continue
		}
		if !f.scanned {
			return fmt.Errorf("failed to load file %s: %w", f.path, err)
		}
		model.Logger().Warn("skipping grid file",
			zap.String("path", f.path),
			zap.Error(err))
	}

	if loaded == 0 {
		return ErrNoFilesLoaded
	}
	return nil
}

// gridFile is a file selected for loading
type gridFile struct {
	path string
	// scanned is set for files found in a directory
	scanned bool
}

// collectAllFiles collects all files from multiple paths with duplicate detection
func (c *Connector) collectAllFiles(paths []string) ([]gridFile, error) {
	tableNames := make(map[string]string) // table name -> file path
	var files []gridFile
	given := 0

	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		given++
		if err := ValidatePath(path); err != nil {
			return nil, fmt.Errorf("%w: %s", err, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}

		var found []gridFile
		if info.IsDir() {
			found, err = c.collectDirectoryFiles(path)
			if err != nil {
				return nil, err
			}
		} else {
			if !model.IsSupportedFile(path) {
				return nil, fmt.Errorf("unsupported file type: %s", path)
			}
			found = []gridFile{{path: path}}
		}

		for _, f := range found {
			tableName := model.TableFromFilePath(f.path)
			if existing, ok := tableNames[tableName]; ok {
				return nil, fmt.Errorf("%w: table '%s' from files '%s' and '%s'",
					ErrDuplicateTableName, tableName, existing, f.path)
			}
			tableNames[tableName] = f.path
			files = append(files, f)
		}
	}

	if given == 0 {
		return nil, ErrNoPathsProvided
	}
	if len(files) == 0 {
		return nil, ErrNoFilesLoaded
	}
	return files, nil
}

// collectDirectoryFiles walks dirPath and returns every grid file in it
func (c *Connector) collectDirectoryFiles(dirPath string) ([]gridFile, error) {
	var files []gridFile
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dirPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsValidFileName(d.Name()) {
			return nil
		}
		files = append(files, gridFile{path: path, scanned: true})
		return ValidateFileCount(len(files))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}
	return files, nil
}

// loadFile decodes one grid file and copies it into a new table
func (c *Connector) loadFile(ctx context.Context, conn driver.Conn, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := ValidateFileSize(info.Size()); err != nil {
		return err
	}

	grid, err := model.NewFile(path).ToGrid(model.NewDecodeOptions())
	if err != nil {
		return err
	}
	if err := ValidateColumnCount(grid.NumCols()); err != nil {
		return err
	}

	tableName := model.TableFromFilePath(path)
	if err := ValidateTableName(tableName); err != nil {
		return err
	}
	if err := c.createTable(ctx, conn, tableName, grid); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if err := c.insertRows(ctx, conn, tableName, grid); err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}

	model.Logger().Debug("loaded grid into table",
		zap.String("path", path),
		zap.String("table", tableName),
		zap.Int("columns", grid.NumCols()),
		zap.Int("rows", grid.NumRows()))
	return nil
}

// createTable creates the table of a grid. Column affinity follows the
// column kind.
func (c *Connector) createTable(ctx context.Context, conn driver.Conn, tableName string, grid *model.Grid) error {
	return c.executeStatement(ctx, conn, buildCreateTableQuery(tableName, grid), nil)
}

func buildCreateTableQuery(tableName string, grid *model.Grid) string {
	columns := make([]string, 0, grid.NumCols())
	for _, col := range grid.Columns() {
		columns = append(columns, fmt.Sprintf(`[%s] %s`, col.Name(), columnAffinity(col.Kind())))
	}
	return fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS [%s] (%s)`,
		tableName,
		strings.Join(columns, ", "),
	)
}

func columnAffinity(kind model.Kind) string {
	switch kind {
	case model.KindNumber:
		return "REAL"
	case model.KindBool, model.KindMarker:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// insertRows inserts every grid row inside one transaction
func (c *Connector) insertRows(ctx context.Context, conn driver.Conn, tableName string, grid *model.Grid) (err error) {
	if grid.NumRows() == 0 {
		return nil
	}

	beginner, ok := conn.(driver.ConnBeginTx)
	if !ok {
		return ErrBeginTxNotSupported
	}
	tx, err := beginner.BeginTx(ctx, driver.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", grid.NumCols()), ", ")
	stmt, err := conn.Prepare(fmt.Sprintf(`INSERT INTO [%s] VALUES (%s)`, tableName, placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]driver.NamedValue, grid.NumCols())
	for r := range grid.NumRows() {
		for i, v := range grid.Row(r) {
			args[i] = driver.NamedValue{Ordinal: i + 1, Value: sqlValue(v)}
		}
		if err := c.executeStatement(ctx, stmt, "", args); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// sqlValue converts a decoded value to the value stored in SQLite: Number
// as float64, Bool and Marker as 0/1, Str as its text, absent values as
// NULL and anything else as its Zinc literal.
func sqlValue(v model.Value) driver.Value {
	switch v.Kind() {
	case model.KindNull, model.KindNA, model.KindRemove:
		return nil
	case model.KindNumber:
		if math.IsNaN(v.Float()) {
			return nil
		}
		return v.Float()
	case model.KindBool, model.KindMarker:
		if v.IsTrue() {
			return int64(1)
		}
		return int64(0)
	default:
		return v.Plain()
	}
}

// executeStatement executes a statement with context support. target is
// either a connection, in which case query is prepared first, or a
// prepared statement.
func (c *Connector) executeStatement(ctx context.Context, target any, query string, args []driver.NamedValue) error {
	switch stmt := target.(type) {
	case driver.Conn:
		prepared, err := stmt.Prepare(query)
		if err != nil {
			return err
		}
		defer prepared.Close()
		return c.executeStatement(ctx, prepared, "", args)
	case driver.Stmt:
		execer, ok := stmt.(driver.StmtExecContext)
		if !ok {
			return ErrStmtExecContextNotSupported
		}
		_, err := execer.ExecContext(ctx, args)
		return err
	default:
		return fmt.Errorf("unsupported statement type %T", target)
	}
}

// Close implements driver.Conn interface
func (conn *Connection) Close() error {
	if conn.conn != nil {
		return conn.conn.Close()
	}
	return nil
}

// Begin implements driver.Conn interface (deprecated, use BeginTx instead)
func (conn *Connection) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx interface
func (conn *Connection) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	connBeginTx, ok := conn.conn.(driver.ConnBeginTx)
	if !ok {
		return nil, ErrBeginTxNotSupported
	}
	tx, err := connBeginTx.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx}, nil
}

// Commit implements driver.Tx interface
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback implements driver.Tx interface
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// Prepare implements driver.Conn interface (deprecated, use PrepareContext instead)
func (conn *Connection) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext implements driver.ConnPrepareContext interface
func (conn *Connection) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	connPrepareCtx, ok := conn.conn.(driver.ConnPrepareContext)
	if !ok {
		return nil, ErrPrepareContextNotSupported
	}
	return connPrepareCtx.PrepareContext(ctx, query)
}

package driver

import "errors"

// Predefined errors
var (
	// ErrNoPathsProvided is returned when the DSN holds no paths
	ErrNoPathsProvided = errors.New("zincio driver: no paths provided")

	// ErrNoFilesLoaded is returned when no grid could be loaded
	ErrNoFilesLoaded = errors.New("zincio driver: no files were loaded")

	// ErrStmtExecContextNotSupported is returned when statement does not support ExecContext
	ErrStmtExecContextNotSupported = errors.New("zincio driver: statement does not support ExecContext")

	// ErrBeginTxNotSupported is returned when underlying connection does not support BeginTx
	ErrBeginTxNotSupported = errors.New("zincio driver: underlying connection does not support BeginTx")

	// ErrPrepareContextNotSupported is returned when underlying connection does not support PrepareContext
	ErrPrepareContextNotSupported = errors.New("zincio driver: underlying connection does not support PrepareContext")

	// ErrDuplicateTableName is returned when multiple files would create the same table name
	ErrDuplicateTableName = errors.New("zincio driver: duplicate table name")
)

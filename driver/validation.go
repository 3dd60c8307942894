package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nao1215/zincio/domain/model"
)

// MaxFileSize defines the maximum file size allowed for loading (1GB)
const MaxFileSize = 1024 * 1024 * 1024

// MaxFilesPerDirectory defines the maximum number of grid files loaded from one directory tree
const MaxFilesPerDirectory = 1000

// MaxColumnCount defines the maximum number of columns allowed in a table
const MaxColumnCount = 2000

var (
	// ErrFileTooLarge is returned when a file exceeds the maximum size limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrTooManyFiles is returned when a directory contains too many files
	ErrTooManyFiles = errors.New("too many files in directory")

	// ErrTooManyColumns is returned when a grid has too many columns
	ErrTooManyColumns = errors.New("too many columns")

	// ErrInvalidPath is returned when a path is invalid or potentially dangerous
	ErrInvalidPath = errors.New("invalid or dangerous path")

	// ErrInvalidIdentifier is returned when an SQL identifier is invalid
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
)

// ValidatePath rejects empty paths, paths with NUL bytes, deep traversal and
// system directories.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	if strings.Contains(path, "\x00") {
		return ErrInvalidPath
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") && !isLegitimateRelativePath(path) {
		return ErrInvalidPath
	}

	lowerPath := strings.ToLower(path)
	for _, sysDir := range []string{"/etc/", "/proc/", "/sys/", "/dev/", "/boot/"} {
		if strings.HasPrefix(lowerPath, sysDir) {
			return ErrInvalidPath
		}
	}
	for _, winDir := range []string{"c:\\windows\\", "c:/windows/", "\\\\"} {
		if strings.HasPrefix(lowerPath, winDir) {
			return ErrInvalidPath
		}
	}
	return nil
}

// ValidateFileSize checks a file size against MaxFileSize
func ValidateFileSize(size int64) error {
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

// ValidateColumnCount checks if column count is within limits
func ValidateColumnCount(columnCount int) error {
	if columnCount > MaxColumnCount {
		return ErrTooManyColumns
	}
	return nil
}

// ValidateFileCount checks if file count is within limits
func ValidateFileCount(fileCount int) error {
	if fileCount > MaxFilesPerDirectory {
		return ErrTooManyFiles
	}
	return nil
}

// ValidateTableName checks that a table name derived from a file name can
// be used between brackets in SQL.
func ValidateTableName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "[]\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// IsValidFileName reports whether a file found while scanning a directory
// should be considered: hidden files and names with suspicious characters
// are skipped, as is anything that is not a (compressed) .zinc file.
func IsValidFileName(fileName string) bool {
	if strings.HasPrefix(fileName, ".") {
		return false
	}
	if strings.ContainsAny(fileName, "\x00<>:\"|?*") {
		return false
	}
	return model.IsSupportedFile(fileName)
}

// isLegitimateRelativePath allows up to three leading ".." elements
func isLegitimateRelativePath(path string) bool {
	cleanPath := filepath.Clean(path)
	if !strings.HasPrefix(cleanPath, "../") && !strings.HasPrefix(cleanPath, "..\\") {
		return true
	}
	parts := strings.FieldsFunc(cleanPath, func(c rune) bool {
		return c == '/' || c == '\\'
	})
	upLevels := 0
	for _, part := range parts {
		if part != ".." {
			break
		}
		upLevels++
	}
	return upLevels <= 3
}

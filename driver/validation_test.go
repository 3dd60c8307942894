package driver

import (
	"errors"
	"testing"
)

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantErr  bool
		expected error
	}{
		{
			name:    "Valid relative path",
			path:    "testdata/history.zinc",
			wantErr: false,
		},
		{
			name:    "Parent directory",
			path:    "../testdata/history.zinc",
			wantErr: false,
		},
		{
			name:     "Empty path",
			path:     "",
			wantErr:  true,
			expected: ErrInvalidPath,
		},
		{
			name:     "Whitespace only path",
			path:     "   ",
			wantErr:  true,
			expected: ErrInvalidPath,
		},
		{
			name:     "Path with null byte",
			path:     "test\x00.zinc",
			wantErr:  true,
			expected: ErrInvalidPath,
		},
		{
			name:     "Path traversal attempt",
			path:     "../../../../../../../etc/passwd",
			wantErr:  true,
			expected: ErrInvalidPath,
		},
		{
			name:     "Unix system directory",
			path:     "/etc/grids/history.zinc",
			wantErr:  true,
			expected: ErrInvalidPath,
		},
		{
			name:     "Windows system directory",
			path:     "C:\\Windows\\System32\\history.zinc",
			wantErr:  true,
			expected: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Errorf("ValidatePath() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestValidateLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		validate func() error
		expected error
	}{
		{name: "Valid column count", validate: func() error { return ValidateColumnCount(10) }},
		{name: "Maximum allowed columns", validate: func() error { return ValidateColumnCount(MaxColumnCount) }},
		{name: "Too many columns", validate: func() error { return ValidateColumnCount(MaxColumnCount + 1) }, expected: ErrTooManyColumns},
		{name: "Valid file count", validate: func() error { return ValidateFileCount(10) }},
		{name: "Maximum allowed files", validate: func() error { return ValidateFileCount(MaxFilesPerDirectory) }},
		{name: "Too many files", validate: func() error { return ValidateFileCount(MaxFilesPerDirectory + 1) }, expected: ErrTooManyFiles},
		{name: "Small file", validate: func() error { return ValidateFileSize(1024) }},
		{name: "File too large", validate: func() error { return ValidateFileSize(MaxFileSize + 1) }, expected: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.validate()
			if tt.expected == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Errorf("error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestValidateTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "Plain name", table: "history", wantErr: false},
		{name: "Name with spaces and dashes", table: "site 1-hist", wantErr: false},
		{name: "Empty name", table: "", wantErr: true},
		{name: "Closing bracket", table: "a]b", wantErr: true},
		{name: "Opening bracket", table: "a[b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateTableName(tt.table)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTableName(%q) error = %v, wantErr %v", tt.table, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("ValidateTableName(%q) error = %v, expected %v", tt.table, err, ErrInvalidIdentifier)
			}
		})
	}
}

func TestIsValidFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileName string
		want     bool
	}{
		{fileName: "history.zinc", want: true},
		{fileName: "history.zinc.gz", want: true},
		{fileName: "history.ZINC.zst", want: true},
		{fileName: ".hidden.zinc", want: false},
		{fileName: "history.csv", want: false},
		{fileName: "his|tory.zinc", want: false},
		{fileName: "history", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			t.Parallel()
			if got := IsValidFileName(tt.fileName); got != tt.want {
				t.Errorf("IsValidFileName(%q) = %v, want %v", tt.fileName, got, tt.want)
			}
		})
	}
}

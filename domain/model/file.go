package model

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ErrInvalidEncoding is returned when file contents are not valid UTF-8
var ErrInvalidEncoding = errors.New("grid text is not valid UTF-8")

// FileType represents supported file types
type FileType int

const (
	// FileTypeZinc represents a Zinc grid file
	FileTypeZinc FileType = iota
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// ExtZinc is the Zinc file extension
	ExtZinc = ".zinc"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

var compressionExtensions = []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD}

// File represents a Zinc file, possibly compressed, that can be decoded into a Grid
type File struct {
	path     string
	fileType FileType
}

// NewFile creates a new File
func NewFile(path string) *File {
	return &File{
		path:     path,
		fileType: detectFileType(path),
	}
}

// IsSupportedFile checks if the file has a supported extension
func IsSupportedFile(fileName string) bool {
	return detectFileType(fileName) == FileTypeZinc
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Type returns file type
func (f *File) Type() FileType {
	return f.fileType
}

// IsGZ returns true if file is gzip compressed
func (f *File) IsGZ() bool {
	return strings.HasSuffix(strings.ToLower(f.path), ExtGZ)
}

// IsBZ2 returns true if file is bzip2 compressed
func (f *File) IsBZ2() bool {
	return strings.HasSuffix(strings.ToLower(f.path), ExtBZ2)
}

// IsXZ returns true if file is xz compressed
func (f *File) IsXZ() bool {
	return strings.HasSuffix(strings.ToLower(f.path), ExtXZ)
}

// IsZSTD returns true if file is zstd compressed
func (f *File) IsZSTD() bool {
	return strings.HasSuffix(strings.ToLower(f.path), ExtZSTD)
}

// ToGrid reads and decodes the file
func (f *File) ToGrid(opts DecodeOptions) (*Grid, error) {
	if f.Type() != FileTypeZinc {
		return nil, fmt.Errorf("unsupported file type: %s", f.Path())
	}
	text, err := f.ReadText()
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(text, opts)
}

// ReadText reads the whole file, decompressing it if needed
func (f *File) ReadText() (string, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return "", err
	}
	defer closer() //nolint:errcheck // read-only file

	return ReadText(reader)
}

// ReadText reads r to the end and checks that it holds UTF-8 text.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// detectFileType detects file type from extension, considering compressed files
func detectFileType(path string) FileType {
	if strings.ToLower(filepath.Ext(trimCompressionExt(path))) == ExtZinc {
		return FileTypeZinc
	}
	return FileTypeUnsupported
}

func trimCompressionExt(path string) string {
	lower := strings.ToLower(path)
	for _, ext := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// openReader opens file and returns a reader that handles compression
func (f *File) openReader() (io.Reader, func() error, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader = file
	closer := file.Close

	switch {
	case f.IsGZ():
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		reader = gzReader
		closer = func() error {
			gzReader.Close()
			return file.Close()
		}
	case f.IsBZ2():
		reader = bzip2.NewReader(file)
	case f.IsXZ():
		xzReader, err := xz.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		reader = xzReader
	case f.IsZSTD():
		decoder, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		reader = decoder
		closer = func() error {
			decoder.Close()
			return file.Close()
		}
	}

	return reader, closer, nil
}

// TableFromFilePath creates table name from file path
func TableFromFilePath(filePath string) string {
	fileName := trimCompressionExt(filepath.Base(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

package zincio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/zincio/domain/model"
)

// validator checks user-provided paths before anything is opened
type validator struct{}

func newValidator() *validator {
	return &validator{}
}

// validatePath validates a single file or directory path
func (v *validator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return notFound(err)
	}
	if !info.IsDir() && !model.IsSupportedFile(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	return nil
}

// validateFile is validatePath for inputs that must be a file
func (v *validator) validateFile(path string) error {
	if err := v.validatePath(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return notFound(err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnsupportedFile, path)
	}
	return nil
}

// validateOutputPath checks that the parent directory of an output path exists
func (v *validator) validateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("output path cannot be empty")
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return notFound(err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

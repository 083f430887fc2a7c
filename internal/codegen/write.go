package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	platformerrors "github.com/jmgilman/go/errors"

	"github.com/user/errnogen/internal/model"
)

// WriteFile replaces path with data. The data goes to a temp file in the
// same directory first, so readers see either the old or the new contents.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to write output")
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to sync temp file")
	}

	if err := tmpFile.Close(); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to close temp file")
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to set output mode")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to rename temp file")
	}

	return nil
}

// Check reports whether path already holds data. A missing or different
// file yields model.ErrStale.
func Check(path string, data []byte) error {
	current, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", model.ErrStale, path)
	}
	if err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "failed to read output")
	}
	if !bytes.Equal(current, data) {
		return fmt.Errorf("%w: %s", model.ErrStale, path)
	}
	return nil
}

// =============================================================================
// SKUID Intake Report - File Manager Utility
// =============================================================================
//
// This module writes report files into an output directory.
//
// REPLACEMENT STRATEGY:
//   Reports are never appended to. Replacing a report:
//     1. removes any existing file at the target path
//     2. writes the new content to a uniquely named temporary file in the
//        same directory ({name}.{uuid}.tmp)
//     3. renames the temporary file into place
//   The content is fully rendered before step 1, so a failed run never
//   leaves a half-written report behind.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles report file operations.
type FileManager struct {
	// OutputDir is the directory where report files are placed.
	OutputDir string

	// FileMode is the permission used for new report files.
	// Default: 0644
	FileMode os.FileMode
}

// NewFileManager creates a FileManager writing into outputDir.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		FileMode:  0644,
	}
}

// Path returns the full path of a report file name.
func (fm *FileManager) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fm.OutputDir, name)
}

// Replace deletes any existing file at name and writes data in its place.
//
// RETURNS:
//   - The path of the written file.
//   - An error if the old file cannot be removed or the new one written.
func (fm *FileManager) Replace(name string, data []byte) (string, error) {
	target := fm.Path(name)

	if err := RemoveIfExists(target); err != nil {
		return "", err
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", target, uuid.New().String())
	if err := os.WriteFile(tmpPath, data, fm.FileMode); err != nil {
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move report into place: %w", err)
	}

	return target, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// RemoveIfExists deletes path. A missing file is not an error.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to remove existing file %s: %w", path, err)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

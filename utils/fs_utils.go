package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CreateFile will create a file at the given path and file name combination. If the path is the empty string, the
// file will be created in the current working directory.
func CreateFile(path string, fileName string) (*os.File, error) {
	// By default, the path will be the name of the file
	filePath := fileName

	// Check to see if the file needs to be created in another directory or the working directory
	if path != "" {
		// Make the directory, if it does not exist already
		err := MakeDirectory(path)
		if err != nil {
			return nil, err
		}
		// Since the path is non-empty, concatenate the path with the name of the file
		filePath = filepath.Join(path, fileName)
	}

	// Create the file
	file, err := os.Create(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return file, nil
}

// CopyFile copies a file from a source path to a destination path. File permissions are retained. Returns an error
// if one occurs.
func CopyFile(sourcePath string, targetPath string) error {
	// Obtain file info for the source file
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}

	// If the path refers to a directory, return an error
	if sourceInfo.IsDir() {
		return errors.Errorf("could not copy file from '%s' to '%s' because the source path refers to a directory", sourcePath, targetPath)
	}

	// Ensure the existence of the directory we wish to copy to.
	targetDirectory := filepath.Dir(targetPath)
	err = os.MkdirAll(targetDirectory, 0777)
	if err != nil {
		return errors.WithStack(err)
	}

	// Open a handle to the source file
	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer sourceFile.Close()

	// Get a handle to the created target file
	targetFile, err := os.Create(targetPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer targetFile.Close()

	// Copy contents from one file handle to the other
	_, err = io.Copy(targetFile, sourceFile)
	if err != nil {
		return errors.WithStack(err)
	}

	// Carry the permissions of the source file over
	return errors.WithStack(os.Chmod(targetPath, sourceInfo.Mode()))
}

// MakeDirectory creates a directory at the given path, including any parent directories which do not exist.
// Returns an error, if one occurred.
func MakeDirectory(dirToMake string) error {
	dirInfo, err := os.Stat(dirToMake)
	if err != nil {
		// Directory does not exist, as expected.
		if os.IsNotExist(err) {
			err = os.MkdirAll(dirToMake, 0777)
			if err != nil {
				return errors.WithStack(err)
			}

			// Successfully made the directory
			return nil
		}
		// Some other sort of error, throw it
		return errors.WithStack(err)
	}

	// dirToMake exists but refers to a file, throw an error accordingly
	if !dirInfo.IsDir() {
		return fmt.Errorf("could not create directory '%s' as a file with the same name exists", dirToMake)
	}

	// Directory already exists, good to go
	return nil
}

// CopyDirectory copies a directory from a source path to a destination path. If recursively, all subdirectories will
// be copied. If not, only files within the directory will be copied. Returns an error if one occurs.
func CopyDirectory(sourcePath string, targetPath string, recursively bool) error {
	// Obtain directory info for the source path
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}

	// If the path does not refer to a directory, return an error
	if !sourceInfo.IsDir() {
		return errors.Errorf("could not copy directory from '%s' to '%s' because the source path does not refer to a valid directory", sourcePath, targetPath)
	}

	// Create the destination folder with the given permissions
	err = os.MkdirAll(targetPath, sourceInfo.Mode())
	if err != nil {
		return errors.WithStack(err)
	}

	// Read all file descriptors in the source directory
	dirEntries, err := os.ReadDir(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}

	// Loop for each directory entry
	for _, dirEntry := range dirEntries {
		// Determine our source/target paths for this entry
		entSourcePath := filepath.Join(sourcePath, dirEntry.Name())
		entTargetPath := filepath.Join(targetPath, dirEntry.Name())

		if dirEntry.IsDir() {
			// If we're copying recursively, we copy directories too.
			if recursively {
				err = CopyDirectory(entSourcePath, entTargetPath, recursively)
				if err != nil {
					return err
				}
			}
		} else {
			// Copy this file
			err = CopyFile(entSourcePath, entTargetPath)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

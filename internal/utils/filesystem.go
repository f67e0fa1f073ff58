package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// ProjectDirName is the directory that marks a waypoint project.
const ProjectDirName = ".waypoint"

// FindProjectRoot traverses up from the working directory to find the
// directory containing .waypoint. Returns an empty string if none is found.
func FindProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindProjectRootFrom(currentDir)
}

// FindProjectRootFrom is FindProjectRoot starting at dir.
// Stops searching when it reaches the user's home directory.
func FindProjectRootFrom(dir string) (string, error) {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		fileInfo, err := os.Stat(filepath.Join(currentDir, ProjectDirName))
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for %s directory at %s: %w", ProjectDirName, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

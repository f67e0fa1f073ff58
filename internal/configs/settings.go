package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/waypoint/internal/utils"
)

// ConfigFileName is the name of both the project and the user config file.
const ConfigFileName = "config.toml"

// Settings locates the configuration files for one invocation.
type Settings struct {
	// ProjectPath is the directory holding .waypoint, or "" outside a project.
	ProjectPath string

	// ProjectConfigPath is .waypoint/config.toml inside ProjectPath.
	ProjectConfigPath string

	// UserConfigPath is the per-user config file under the OS config dir.
	UserConfigPath string
}

// ResolveSettings finds the project enclosing dir and the user config file.
func ResolveSettings(dir string) (*Settings, error) {
	projectPath, err := utils.FindProjectRootFrom(dir)
	if err != nil {
		return nil, fmt.Errorf("error getting project root: %w", err)
	}

	s := &Settings{ProjectPath: projectPath}
	if projectPath != "" {
		s.ProjectConfigPath = ProjectConfigPath(projectPath)
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		s.UserConfigPath = filepath.Join(configDir, "waypoint", ConfigFileName)
	}
	return s, nil
}

// ProjectConfigPath returns the config file for a project rooted at root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, utils.ProjectDirName, ConfigFileName)
}

// BaseDir is the directory relative paths in the config resolve against:
// the project root, or dir when there is no project.
func (s *Settings) BaseDir(dir string) string {
	if s.ProjectPath != "" {
		return s.ProjectPath
	}
	return dir
}

package scene

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var ScenesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadFile returns the raw bytes of a scene file, preferring an on-disk copy
// under scene/ so authored files can be edited without rebuilding.
func LoadFile(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskScenePath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// LoadScript returns the raw bytes of a tour script.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("scene", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// LoadSpec reads and unmarshals a YAML spec file by name.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := LoadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("scene: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scene: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "scene/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "scene/")
	s = strings.TrimPrefix(s, "scripts/")
	return fmt.Sprintf("scripts/%s", s)
}

func diskScenePath(clean string) string {
	return filepath.Join("scene", filepath.FromSlash(clean))
}

package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolve returns the absolute project root. An explicit root wins; otherwise the root is
// the directory two levels above the running executable, or the nearest ancestor of the
// working directory that contains toolsDir when the executable lives elsewhere.
func Resolve(explicit, toolsDir string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project root: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project root %s is not a directory", abs)
		}
		return abs, nil
	}

	exeRoot, err := ExecutableRoot()
	if err == nil && hasDir(exeRoot, toolsDir) {
		return exeRoot, nil
	}
	cwd, cwdErr := os.Getwd()
	if cwdErr == nil {
		if found, ok := FindRoot(cwd, toolsDir); ok {
			return found, nil
		}
	}
	if err != nil {
		return "", err
	}
	return exeRoot, nil
}

// ExecutableRoot returns the directory two levels above the running executable.
func ExecutableRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// FindRoot walks up from start to the first directory containing toolsDir.
func FindRoot(start, toolsDir string) (string, bool) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	dir := abs
	for {
		if hasDir(dir, toolsDir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func hasDir(root, name string) bool {
	info, err := os.Stat(filepath.Join(root, name))
	return err == nil && info.IsDir()
}

package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/consts"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
)

//go:embed embed/viewkeeper.yaml
var defaultConfig string

// InitOptions contains options for project initialization
type InitOptions struct {
	// Dialect is written into the generated configuration. Defaults to
	// postgresql.
	Dialect string
}

// Initialize writes a starter viewkeeper.yaml into dir. It is idempotent: an
// existing configuration is left untouched and reported as not written.
//
// Example:
//
//	written, err := project.Initialize(".", project.InitOptions{Dialect: "sqlite"})
//	if err != nil {
//		log.Fatal("Failed to initialize project:", err)
//	}
func Initialize(dir string, opts InitOptions) (bool, error) {
	name := opts.Dialect
	if name == "" {
		name = consts.DefaultDialect
	}

	d, err := dialect.Get(name)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return false, errors.Wrapf(err, "failed to access directory: %s", dir)
	}
	if !info.IsDir() {
		return false, errors.Errorf("not a directory: %s", dir)
	}

	path := filepath.Join(dir, consts.DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	content := strings.ReplaceAll(defaultConfig, "$$DIALECT", d.Name())
	if err := os.WriteFile(path, []byte(content), consts.ModeFile); err != nil {
		return false, errors.Wrapf(err, "failed to write file: %s", path)
	}

	return true, nil
}

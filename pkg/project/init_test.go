package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/config"
	"github.com/pseudomuto/viewkeeper/pkg/consts"
	"github.com/pseudomuto/viewkeeper/pkg/project"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Run("writes a loadable config", func(t *testing.T) {
		dir := t.TempDir()

		written, err := project.Initialize(dir, project.InitOptions{Dialect: "sqlite3"})
		require.NoError(t, err)
		require.True(t, written)

		cfg, err := config.LoadConfigFile(filepath.Join(dir, consts.DefaultConfigFile))
		require.NoError(t, err)
		require.Equal(t, "sqlite", cfg.Dialect)

		p, err := project.New(cfg)
		require.NoError(t, err)
		require.Len(t, p.Views(), 1)
	})

	t.Run("defaults to postgresql", func(t *testing.T) {
		dir := t.TempDir()

		_, err := project.Initialize(dir, project.InitOptions{})
		require.NoError(t, err)

		cfg, err := config.LoadConfigFile(filepath.Join(dir, consts.DefaultConfigFile))
		require.NoError(t, err)
		require.Equal(t, consts.DefaultDialect, cfg.Dialect)
	})

	t.Run("preserves existing config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, consts.DefaultConfigFile)
		require.NoError(t, os.WriteFile(path, []byte("dialect: duckdb\n"), consts.ModeFile))

		written, err := project.Initialize(dir, project.InitOptions{})
		require.NoError(t, err)
		require.False(t, written)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "dialect: duckdb\n", string(data))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := project.Initialize(t.TempDir(), project.InitOptions{Dialect: "oracle"})
		require.Error(t, err)

		_, err = project.Initialize(filepath.Join(t.TempDir(), "missing"), project.InitOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to access directory")

		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, consts.ModeFile))
		_, err = project.Initialize(file, project.InitOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "not a directory")
	})
}

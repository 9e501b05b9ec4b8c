package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/config"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const sqliteConfig = `
dialect: sqlite
tables:
  - name: users
    columns:
      - id INTEGER PRIMARY KEY
      - full_name TEXT
views:
  - name: user_names
    query: SELECT id, full_name FROM users
    columns:
      - id INTEGER PRIMARY KEY
      - full_name TEXT
`

// runApp runs the CLI with every command mounted and returns what it wrote.
func runApp(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	e := newEnv(cfg)
	var buf bytes.Buffer

	app := newApp(e, &Version{Version: "test"}, []*cli.Command{
		createCmd(e),
		dev(e),
		dropCmd(e),
		initCmd(),
		refresh(e),
		render(e),
	})
	app.Writer = &buf
	app.ErrWriter = &buf

	err := app.Run(context.Background(), append([]string{"viewkeeper"}, args...))
	return buf.String(), err
}

// sqliteProject returns the sqlite test project backed by a file in a temp
// dir so separate commands see the same database.
func sqliteProject(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfig(strings.NewReader(sqliteConfig))
	require.NoError(t, err)

	cfg.DSN = filepath.Join(t.TempDir(), "app.db")
	return cfg
}

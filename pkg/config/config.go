package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/consts"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration parses but can't be used.
var ErrInvalidConfig = errors.New("invalid configuration")

type (
	// Config represents a viewkeeper project: where to connect and which
	// tables and views to manage.
	Config struct {
		// Dialect names the target database (default: postgresql)
		Dialect string `yaml:"dialect"`

		// DSN is passed to the driver for the dialect. It may be omitted for
		// commands that only render SQL.
		DSN string `yaml:"dsn,omitempty"`

		Log        Log        `yaml:"log"`
		ClickHouse ClickHouse `yaml:"clickhouse"`

		// Tables are the base relations views read from.
		Tables []Table `yaml:"tables"`

		// Views are created after, and dropped before, every table.
		Views []View `yaml:"views"`
	}

	// ClickHouse represents ClickHouse connection settings.
	ClickHouse struct {
		// Cluster is used for ON CLUSTER when a view doesn't set its own
		Cluster string `yaml:"cluster,omitempty"`

		// DialTimeout bounds connection attempts (e.g. 5s)
		DialTimeout time.Duration `yaml:"dial_timeout,omitempty"`

		TLS TLS `yaml:"tls,omitempty"`
	}

	// TLS holds the client certificate files for ClickHouse connections.
	TLS struct {
		CertFile string `yaml:"cert_file"`
		KeyFile  string `yaml:"key_file"`
		CAFile   string `yaml:"ca_file"`
	}

	// Table declares a base table.
	Table struct {
		Name   string `yaml:"name"`
		Schema string `yaml:"schema,omitempty"`
		Engine string `yaml:"engine,omitempty"`

		// Columns are declarations like "id BIGINT PRIMARY KEY".
		Columns []string `yaml:"columns"`

		// Indexes are declarations like "UNIQUE INDEX ix_users_email (email)".
		Indexes []string `yaml:"indexes,omitempty"`
	}

	// View declares a view or materialized view over a hand written query.
	View struct {
		Name         string `yaml:"name"`
		Schema       string `yaml:"schema,omitempty"`
		Materialized bool   `yaml:"materialized,omitempty"`
		Replace      bool   `yaml:"replace,omitempty"`

		// Cascade appends CASCADE to DROP where supported. When unset it
		// defaults to true for materialized views.
		Cascade *bool `yaml:"cascade,omitempty"`

		// Query is the SELECT the view exposes. :name parameters are bound
		// from Params and inlined as literals.
		Query  string         `yaml:"query"`
		Params map[string]any `yaml:"params,omitempty"`

		// Columns declare the query's output columns.
		Columns []string `yaml:"columns"`
		Indexes []string `yaml:"indexes,omitempty"`

		PostgreSQL PostgreSQLView `yaml:"postgresql,omitempty"`
		ClickHouse ClickHouseView `yaml:"clickhouse,omitempty"`
	}

	PostgreSQLView struct {
		With       map[string]string `yaml:"with,omitempty"`
		Tablespace string            `yaml:"tablespace,omitempty"`
		WithNoData bool              `yaml:"with_no_data,omitempty"`
	}

	ClickHouseView struct {
		OnCluster string `yaml:"on_cluster,omitempty"`
		To        string `yaml:"to,omitempty"`
		Engine    string `yaml:"engine,omitempty"`
		Populate  bool   `yaml:"populate,omitempty"`
	}
)

// LoadConfig parses a project configuration from the provided io.Reader.
//
// Missing settings are defaulted (dialect postgresql, text logs at info) and
// the result is validated before it is returned.
//
// Example:
//
//	yamlData := `
//	dialect: sqlite
//	dsn: file:app.db
//	tables:
//	  - name: users
//	    columns: ["id INTEGER PRIMARY KEY", "name TEXT"]
//	views:
//	  - name: user_names
//	    query: SELECT id, name FROM users
//	    columns: ["id INTEGER PRIMARY KEY", "name TEXT"]
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("viewkeeper.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate checks that the configuration can be turned into a project.
func (c *Config) Validate() error {
	if _, err := dialect.Get(c.Dialect); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "dialect: %v", err)
	}

	if err := c.Log.validate(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, t := range c.Tables {
		if t.Name == "" {
			return errors.Wrapf(ErrInvalidConfig, "tables[%d]: name is required", i)
		}
		if len(t.Columns) == 0 {
			return errors.Wrapf(ErrInvalidConfig, "table %s: at least one column is required", t.Name)
		}
		if err := unique(seen, t.Schema, t.Name); err != nil {
			return err
		}
	}

	for i, v := range c.Views {
		if v.Name == "" {
			return errors.Wrapf(ErrInvalidConfig, "views[%d]: name is required", i)
		}
		if v.Query == "" {
			return errors.Wrapf(ErrInvalidConfig, "view %s: query is required", v.Name)
		}
		if err := unique(seen, v.Schema, v.Name); err != nil {
			return err
		}
	}

	return nil
}

// View returns the view named name, which may be schema qualified.
func (c *Config) View(name string) (View, bool) {
	for _, v := range c.Views {
		if v.Name == name || (v.Schema != "" && v.Schema+"."+v.Name == name) {
			return v, true
		}
	}
	return View{}, false
}

func (c *Config) setDefaults() {
	if c.Dialect == "" {
		c.Dialect = consts.DefaultDialect
	}

	c.Log.setDefaults()
}

func unique(seen map[string]bool, schema, name string) error {
	key := name
	if schema != "" {
		key = schema + "." + name
	}

	if seen[key] {
		return errors.Wrapf(ErrInvalidConfig, "%s is declared more than once", key)
	}

	seen[key] = true
	return nil
}

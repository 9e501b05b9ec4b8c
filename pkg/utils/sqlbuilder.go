package utils

import (
	"fmt"
	"sort"
	"strings"
)

// SQLBuilder provides a fluent interface for building DDL statements.
// It handles common patterns like optional guards, cluster injection and
// conditional clause building so the compilers in the schema and view
// packages don't each reimplement keyword joining.
//
// Names passed to Ident are expected to be quoted already (by a dialect);
// the builder never decides how an identifier is quoted.
//
// Example usage:
//
//	sql := utils.NewSQLBuilder().
//		Create("MATERIALIZED VIEW").
//		Ident(`"daily_totals"`).
//		With(map[string]string{"fillfactor": "70"}).
//		As("SELECT orders.day, sum(orders.total) AS total FROM orders GROUP BY orders.day").
//		String()
//	// Output: CREATE MATERIALIZED VIEW "daily_totals" WITH (fillfactor = 70) AS SELECT ...
type SQLBuilder struct {
	parts []string
}

// NewSQLBuilder creates a new SQLBuilder instance.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{
		parts: make([]string, 0, 10),
	}
}

// Create adds a CREATE clause with the specified object type.
//
// Example:
//
//	builder.Create("VIEW")               // CREATE VIEW
//	builder.Create("MATERIALIZED VIEW")  // CREATE MATERIALIZED VIEW
func (b *SQLBuilder) Create(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "CREATE", objectType)
	return b
}

// CreateOrReplace adds a CREATE OR REPLACE clause with the specified object type.
//
// Example:
//
//	builder.CreateOrReplace("VIEW")  // CREATE OR REPLACE VIEW
func (b *SQLBuilder) CreateOrReplace(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "CREATE", "OR", "REPLACE", objectType)
	return b
}

// Drop adds a DROP clause with the specified object type.
//
// Example:
//
//	builder.Drop("VIEW")   // DROP VIEW
//	builder.Drop("INDEX")  // DROP INDEX
func (b *SQLBuilder) Drop(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "DROP", objectType)
	return b
}

// IfExists adds an IF EXISTS clause. This should be called after DROP operations.
//
// Example:
//
//	builder.Drop("VIEW").IfExists()  // DROP VIEW IF EXISTS
func (b *SQLBuilder) IfExists() *SQLBuilder {
	b.parts = append(b.parts, "IF", "EXISTS")
	return b
}

// IfNotExists adds an IF NOT EXISTS clause. This should be called after CREATE operations.
//
// Example:
//
//	builder.Create("VIEW").IfNotExists()  // CREATE VIEW IF NOT EXISTS
func (b *SQLBuilder) IfNotExists() *SQLBuilder {
	b.parts = append(b.parts, "IF", "NOT", "EXISTS")
	return b
}

// Ident adds an already quoted identifier.
//
// Example:
//
//	builder.Ident(`"public"."users"`)  // "public"."users"
func (b *SQLBuilder) Ident(quoted string) *SQLBuilder {
	if quoted != "" {
		b.parts = append(b.parts, quoted)
	}
	return b
}

// OnCluster adds an ON CLUSTER clause if cluster is not empty.
//
// Example:
//
//	builder.OnCluster("production")  // ON CLUSTER `production`
//	builder.OnCluster("")            // (nothing added)
func (b *SQLBuilder) OnCluster(cluster string) *SQLBuilder {
	if cluster != "" {
		b.parts = append(b.parts, "ON", "CLUSTER", BacktickIdentifier(cluster))
	}
	return b
}

// To adds a TO clause naming the target table of a ClickHouse materialized view.
//
// Example:
//
//	builder.To("analytics.daily")  // TO `analytics`.`daily`
func (b *SQLBuilder) To(target string) *SQLBuilder {
	if target != "" {
		b.parts = append(b.parts, "TO", BacktickIdentifier(target))
	}
	return b
}

// Engine adds an ENGINE clause with the specified engine definition.
//
// Example:
//
//	builder.Engine("MergeTree() ORDER BY id")  // ENGINE = MergeTree() ORDER BY id
func (b *SQLBuilder) Engine(engine string) *SQLBuilder {
	if engine != "" {
		b.parts = append(b.parts, "ENGINE", "=", engine)
	}
	return b
}

// With adds a WITH (...) storage parameter clause. Parameters are rendered as
// `key = value` sorted by key so output is stable. Nothing is added when
// params is empty.
//
// Example:
//
//	builder.With(map[string]string{"fillfactor": "70"})  // WITH (fillfactor = 70)
func (b *SQLBuilder) With(params map[string]string) *SQLBuilder {
	if len(params) == 0 {
		return b
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s = %s", k, params[k]))
	}

	b.parts = append(b.parts, "WITH", "("+strings.Join(pairs, ", ")+")")
	return b
}

// As adds an AS clause followed by the given body.
//
// Example:
//
//	builder.As("SELECT users.id FROM users")  // AS SELECT users.id FROM users
func (b *SQLBuilder) As(body string) *SQLBuilder {
	if body != "" {
		b.parts = append(b.parts, "AS", body)
	}
	return b
}

// Raw adds raw SQL text to the builder. Use sparingly for complex constructs
// that don't fit the fluent pattern.
//
// Example:
//
//	builder.Raw("CASCADE")  // CASCADE
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.parts = append(b.parts, sql)
	}
	return b
}

// RawIf adds raw SQL text only when cond is true.
//
// Example:
//
//	builder.RawIf(view.Cascade, "CASCADE")
func (b *SQLBuilder) RawIf(cond bool, sql string) *SQLBuilder {
	if cond {
		return b.Raw(sql)
	}
	return b
}

// String builds and returns the final SQL statement. No trailing semicolon is
// added since statements are sent to drivers one at a time.
//
// Example:
//
//	sql := builder.Drop("VIEW").IfExists().Ident(`"v1"`).String()
//	// Returns: DROP VIEW IF EXISTS "v1"
func (b *SQLBuilder) String() string {
	return strings.Join(b.parts, " ")
}

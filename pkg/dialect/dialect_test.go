package dialect_test

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

func (s status) String() string { return "status:" + string(s) }

func TestGet(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"postgresql", "postgresql"},
		{"postgres", "postgresql"},
		{"PG", "postgresql"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
		{"duckdb", "duckdb"},
		{"clickhouse", "clickhouse"},
		{" mysql ", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := dialect.Get(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, d.Name())
		})
	}

	_, err := dialect.Get("oracle")
	require.Error(t, err)
	require.True(t, errors.Is(err, dialect.ErrUnknownDialect))
	require.Contains(t, err.Error(), `"oracle"`)

	require.Panics(t, func() { dialect.MustGet("oracle") })
	require.Equal(t, []string{"clickhouse", "duckdb", "mysql", "postgresql", "sqlite"}, dialect.Names())
}

func TestQuote(t *testing.T) {
	pg := dialect.MustGet("postgresql")
	ch := dialect.MustGet("clickhouse")

	require.Equal(t, `"v1"`, pg.Quote("v1"))
	require.Equal(t, `"My""View"`, pg.Quote(`My"View`))
	require.Equal(t, "`v1`", ch.Quote("v1"))

	tests := []struct {
		input    string
		expected string
	}{
		{"id", "id"},
		{"user_id", "user_id"},
		{"_private", "_private"},
		{"Name", `"Name"`},
		{"order", `"order"`},
		{"user", `"user"`},
		{"full name", `"full name"`},
		{"1st", `"1st"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, pg.QuoteIfNeeded(tt.input))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	require.Equal(t, "$1", dialect.MustGet("postgresql").Placeholder(1))
	require.Equal(t, "$12", dialect.MustGet("postgresql").Placeholder(12))
	require.Equal(t, "?", dialect.MustGet("sqlite").Placeholder(3))
	require.Equal(t, "?", dialect.MustGet("clickhouse").Placeholder(1))
}

func TestLiteral(t *testing.T) {
	pg := dialect.MustGet("postgresql")
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: "NULL"},
		{name: "true", value: true, expected: "TRUE"},
		{name: "false", value: false, expected: "FALSE"},
		{name: "int", value: 42, expected: "42"},
		{name: "negative int64", value: int64(-7), expected: "-7"},
		{name: "uint8", value: uint8(255), expected: "255"},
		{name: "float", value: 1.5, expected: "1.5"},
		{name: "string", value: "active", expected: "'active'"},
		{name: "string with quote", value: "it's", expected: "'it''s'"},
		{name: "bytes", value: []byte{0xde, 0xad}, expected: `'\xdead'`},
		{name: "time", value: ts, expected: "'2024-03-01 12:30:00'"},
		{name: "stringer", value: status("open"), expected: "'status:open'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := pg.Literal(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, lit)
		})
	}

	_, err := pg.Literal(struct{}{})
	require.True(t, errors.Is(err, dialect.ErrUnsupportedLiteral))
}

func TestLiteral_StringEscaping(t *testing.T) {
	tests := []struct {
		dialect  string
		value    string
		expected string
	}{
		{dialect: "postgresql", value: `x\' OR 1=1 --`, expected: `'x\'' OR 1=1 --'`},
		{dialect: "sqlite", value: `C:\temp\`, expected: `'C:\temp\'`},
		{dialect: "duckdb", value: `a\b`, expected: `'a\b'`},
		{dialect: "clickhouse", value: `x\' OR 1=1 --`, expected: `'x\\'' OR 1=1 --'`},
		{dialect: "clickhouse", value: `C:\temp\`, expected: `'C:\\temp\\'`},
		{dialect: "clickhouse", value: "it's", expected: "'it''s'"},
		{dialect: "mysql", value: `x\' OR 1=1 --`, expected: `'x\\'' OR 1=1 --'`},
		{dialect: "mysql", value: `trailing\`, expected: `'trailing\\'`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+" "+tt.value, func(t *testing.T) {
			lit, err := dialect.MustGet(tt.dialect).Literal(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, lit)
		})
	}
}

func TestLiteral_NonFiniteFloats(t *testing.T) {
	for _, v := range []any{math.NaN(), math.Inf(1), math.Inf(-1), float32(math.Inf(1))} {
		for _, name := range []string{"postgresql", "clickhouse"} {
			_, err := dialect.MustGet(name).Literal(v)
			require.Error(t, err)
			require.True(t, errors.Is(err, dialect.ErrUnsupportedLiteral), "%s %v", name, v)
		}
	}
}

func TestLiteral_Bytes(t *testing.T) {
	tests := map[string]string{
		"sqlite":     "X'beef'",
		"mysql":      "X'beef'",
		"duckdb":     `'\xbeef'::BLOB`,
		"clickhouse": "unhex('beef')",
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			lit, err := dialect.MustGet(name).Literal([]byte{0xbe, 0xef})
			require.NoError(t, err)
			require.Equal(t, expected, lit)
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		dialect  string
		typ      string
		args     []int
		expected string
	}{
		{"postgresql", dialect.TypeInteger, nil, "INTEGER"},
		{"postgresql", dialect.TypeString, []int{255}, "VARCHAR(255)"},
		{"postgresql", dialect.TypeNumeric, []int{10, 2}, "NUMERIC(10, 2)"},
		{"postgresql", dialect.TypeFloat, nil, "DOUBLE PRECISION"},
		{"sqlite", dialect.TypeDateTime, nil, "DATETIME"},
		{"duckdb", dialect.TypeNumeric, []int{18, 4}, "DECIMAL(18, 4)"},
		{"clickhouse", dialect.TypeBigInteger, nil, "Int64"},
		{"clickhouse", dialect.TypeString, []int{255}, "String"},
		{"clickhouse", dialect.TypeNumeric, []int{10, 2}, "Decimal(10, 2)"},
		{"clickhouse", dialect.TypeDateTime, nil, "DateTime"},
		{"mysql", "JSON", nil, "JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.typ, func(t *testing.T) {
			require.Equal(t, tt.expected, dialect.MustGet(tt.dialect).TypeName(tt.typ, tt.args...))
		})
	}
}

func TestFeatures(t *testing.T) {
	pg := dialect.MustGet("postgresql").Features()
	assert.True(t, pg.MaterializedViews)
	assert.True(t, pg.RefreshConcurrently)
	assert.True(t, pg.DropCascade)
	assert.False(t, pg.ViewIfNotExists)

	lite := dialect.MustGet("sqlite").Features()
	assert.False(t, lite.MaterializedViews)
	assert.False(t, lite.DropCascade)
	assert.False(t, lite.CreateOrReplaceView)
	assert.True(t, lite.ViewIfNotExists)

	ch := dialect.MustGet("clickhouse").Features()
	assert.True(t, ch.MaterializedViews)
	assert.False(t, ch.RefreshConcurrently)
	assert.False(t, ch.StandaloneIndexes)
}

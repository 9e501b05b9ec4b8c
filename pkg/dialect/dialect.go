package dialect

import (
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/utils"
)

// Generic type names understood by TypeName. The schema package builds its
// types from these and lets each dialect pick the concrete spelling.
const (
	TypeInteger      = "INTEGER"
	TypeBigInteger   = "BIGINT"
	TypeSmallInteger = "SMALLINT"
	TypeString       = "VARCHAR"
	TypeText         = "TEXT"
	TypeBoolean      = "BOOLEAN"
	TypeFloat        = "FLOAT"
	TypeNumeric      = "NUMERIC"
	TypeDate         = "DATE"
	TypeDateTime     = "TIMESTAMP"
)

var (
	// ErrUnsupported is returned when a statement needs a feature the active
	// dialect does not have (materialized views on SQLite, for example).
	ErrUnsupported = errors.New("not supported by dialect")

	// ErrUnsupportedLiteral is returned by Literal for values that have no SQL
	// literal form.
	ErrUnsupportedLiteral = errors.New("unsupported literal type")

	// ErrUnknownDialect is returned by Get for names that aren't registered.
	ErrUnknownDialect = errors.New("unknown dialect")

	bareIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

type (
	// Features lists the optional DDL capabilities of a dialect.
	Features struct {
		MaterializedViews           bool
		CreateOrReplaceView         bool
		ViewIfNotExists             bool
		MaterializedViewIfNotExists bool
		DropCascade                 bool
		RefreshConcurrently         bool
		DropIndexIfExists           bool
		// StandaloneIndexes is false where secondary indexes are declared as
		// part of the table (ClickHouse data skipping indexes).
		StandaloneIndexes bool
	}

	// Dialect renders the dialect-specific pieces of a statement.
	Dialect interface {
		// Name returns the canonical dialect name (e.g. postgresql).
		Name() string
		// Quote always quotes ident.
		Quote(ident string) string
		// QuoteIfNeeded quotes ident only when it isn't a plain lower case
		// identifier or collides with a reserved word.
		QuoteIfNeeded(ident string) string
		// Placeholder returns the bind marker for the n-th (1-based) parameter.
		Placeholder(n int) string
		// Literal renders v as an inline SQL literal.
		Literal(v any) (string, error)
		// TypeName returns the dialect spelling of a generic type.
		TypeName(name string, args ...int) string
		Features() Features
	}

	typeSpec struct {
		name string
		args bool
	}

	dialect struct {
		name        string
		quote       rune
		numbered    bool
		bytesFormat string
		// backslash is set where \ is an escape character inside string
		// literals.
		backslash   bool
		types       map[string]typeSpec
		features    Features
	}
)

var reserved = map[string]bool{
	"all": true, "and": true, "as": true, "asc": true, "between": true,
	"by": true, "case": true, "check": true, "column": true, "constraint": true,
	"create": true, "cross": true, "default": true, "delete": true, "desc": true,
	"distinct": true, "drop": true, "else": true, "end": true, "exists": true,
	"false": true, "foreign": true, "from": true, "full": true, "group": true,
	"having": true, "in": true, "index": true, "inner": true, "insert": true,
	"into": true, "is": true, "join": true, "key": true, "left": true,
	"like": true, "limit": true, "not": true, "null": true, "offset": true,
	"on": true, "or": true, "order": true, "outer": true, "primary": true,
	"references": true, "right": true, "select": true, "set": true,
	"table": true, "then": true, "to": true, "true": true, "union": true,
	"unique": true, "update": true, "user": true, "using": true, "values": true,
	"view": true, "when": true, "where": true, "with": true,
}

var registry = map[string]*dialect{
	"postgresql": {
		name:        "postgresql",
		quote:       '"',
		numbered:    true,
		bytesFormat: `'\x%s'`,
		types: map[string]typeSpec{
			TypeFloat:   {name: "DOUBLE PRECISION"},
			TypeString:  {name: "VARCHAR", args: true},
			TypeNumeric: {name: "NUMERIC", args: true},
		},
		features: Features{
			MaterializedViews:           true,
			CreateOrReplaceView:         true,
			MaterializedViewIfNotExists: true,
			DropCascade:                 true,
			RefreshConcurrently:         true,
			DropIndexIfExists:           true,
			StandaloneIndexes:           true,
		},
	},
	"sqlite": {
		name:        "sqlite",
		quote:       '"',
		bytesFormat: "X'%s'",
		types: map[string]typeSpec{
			TypeString:   {name: "VARCHAR", args: true},
			TypeFloat:    {name: "REAL"},
			TypeNumeric:  {name: "NUMERIC", args: true},
			TypeDateTime: {name: "DATETIME"},
		},
		features: Features{
			ViewIfNotExists:   true,
			DropIndexIfExists: true,
			StandaloneIndexes: true,
		},
	},
	"duckdb": {
		name:        "duckdb",
		quote:       '"',
		bytesFormat: `'\x%s'::BLOB`,
		types: map[string]typeSpec{
			TypeString:  {name: "VARCHAR", args: true},
			TypeFloat:   {name: "DOUBLE"},
			TypeNumeric: {name: "DECIMAL", args: true},
		},
		features: Features{
			CreateOrReplaceView: true,
			ViewIfNotExists:     true,
			DropCascade:         true,
			DropIndexIfExists:   true,
			StandaloneIndexes:   true,
		},
	},
	"clickhouse": {
		name:        "clickhouse",
		quote:       '`',
		bytesFormat: "unhex('%s')",
		backslash:   true,
		types: map[string]typeSpec{
			TypeInteger:      {name: "Int32"},
			TypeBigInteger:   {name: "Int64"},
			TypeSmallInteger: {name: "Int16"},
			TypeString:       {name: "String"},
			TypeText:         {name: "String"},
			TypeBoolean:      {name: "Bool"},
			TypeFloat:        {name: "Float64"},
			TypeNumeric:      {name: "Decimal", args: true},
			TypeDate:         {name: "Date"},
			TypeDateTime:     {name: "DateTime"},
		},
		features: Features{
			MaterializedViews:           true,
			CreateOrReplaceView:         true,
			ViewIfNotExists:             true,
			MaterializedViewIfNotExists: true,
		},
	},
	"mysql": {
		name:        "mysql",
		quote:       '`',
		bytesFormat: "X'%s'",
		backslash:   true,
		types: map[string]typeSpec{
			TypeString:   {name: "VARCHAR", args: true},
			TypeFloat:    {name: "DOUBLE"},
			TypeNumeric:  {name: "DECIMAL", args: true},
			TypeDateTime: {name: "DATETIME"},
		},
		features: Features{
			CreateOrReplaceView: true,
			DropCascade:         true,
			StandaloneIndexes:   true,
		},
	},
}

var aliases = map[string]string{
	"postgres": "postgresql",
	"pg":       "postgresql",
	"sqlite3":  "sqlite",
}

// Get returns the dialect registered under name (case-insensitive, aliases
// accepted).
func Get(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}

	d, ok := registry[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDialect, "%q", name)
	}
	return d, nil
}

// MustGet is like Get but panics for unknown names.
func MustGet(name string) Dialect {
	d, err := Get(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names returns the canonical names of all registered dialects, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *dialect) Name() string { return d.name }
func (d *dialect) Features() Features { return d.features }

func (d *dialect) Quote(ident string) string {
	return utils.QuoteIdentifier(ident, d.quote)
}

func (d *dialect) QuoteIfNeeded(ident string) string {
	if bareIdent.MatchString(ident) && !reserved[ident] {
		return ident
	}
	return d.Quote(ident)
}

func (d *dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d *dialect) TypeName(name string, args ...int) string {
	spec, ok := d.types[name]
	if !ok {
		spec = typeSpec{name: name, args: true}
	}

	if !spec.args || len(args) == 0 {
		return spec.name
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.Itoa(a)
	}
	return spec.name + "(" + strings.Join(parts, ", ") + ")"
}

func (d *dialect) Literal(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return d.float(float64(val), 32)
	case float64:
		return d.float(val, 64)
	case string:
		return d.quoteString(val), nil
	case []byte:
		return fmt.Sprintf(d.bytesFormat, hex.EncodeToString(val)), nil
	case time.Time:
		return d.quoteString(val.UTC().Format("2006-01-02 15:04:05.999999")), nil
	case fmt.Stringer:
		return d.quoteString(val.String()), nil
	}

	return "", errors.Wrapf(ErrUnsupportedLiteral, "%T", v)
}

// float renders finite values only; NaN and infinities have no portable
// literal form.
func (d *dialect) float(v float64, bitSize int) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", errors.Wrapf(ErrUnsupportedLiteral, "float %v", v)
	}

	return strconv.FormatFloat(v, 'g', -1, bitSize), nil
}

func (d *dialect) quoteString(s string) string {
	if d.backslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}

	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package schema

import (
	"context"
	"strings"

	"github.com/pseudomuto/viewkeeper/pkg/dialect"
)

// Kind distinguishes the relation kinds a MetaData can hold.
type Kind int

const (
	KindTable Kind = iota
	KindView
	KindMaterializedView
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindMaterializedView:
		return "materialized view"
	}
	return "unknown"
}

// Relation is a named, column bearing schema object such as a table or view.
type Relation interface {
	Name() string
	Schema() string
	// Key identifies the relation within a MetaData: schema.name or name.
	Key() string
	Kind() Kind
	Columns() []*Column
	Indexes() []*Index
	PrimaryKey() []string
	// Dependencies returns the keys of relations that must exist first.
	Dependencies() []string
	Fire(ctx context.Context, ev Event, conn Conn) error
}

// IsView reports whether rel should be handled by view DDL rather than table
// DDL.
func IsView(rel Relation) bool {
	k := rel.Kind()
	return k == KindView || k == KindMaterializedView
}

// TableKey builds a relation key from its schema and name.
func TableKey(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}

// SplitKey is the inverse of TableKey.
func SplitKey(key string) (schema, name string) {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

// QualifiedName quotes name (and schema when set) for use as an object name
// in DDL.
func QualifiedName(d dialect.Dialect, schema, name string) string {
	if schema == "" {
		return d.Quote(name)
	}
	return d.Quote(schema) + "." + d.Quote(name)
}

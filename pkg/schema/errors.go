package schema

import "github.com/pkg/errors"

var (
	// ErrEmptyName is returned when a relation is created without a name.
	ErrEmptyName = errors.New("relation name is required")

	// ErrDuplicateRelation is returned by MetaData.Add for a key that is
	// already registered.
	ErrDuplicateRelation = errors.New("relation already registered")

	// ErrDependencyCycle is returned when foreign keys form a cycle.
	ErrDependencyCycle = errors.New("dependency cycle between relations")

	// ErrNoColumns is returned when DDL is compiled for a relation without
	// columns.
	ErrNoColumns = errors.New("relation has no columns")

	// ErrDetachedIndex is returned when an index isn't attached to a relation.
	ErrDetachedIndex = errors.New("index is not attached to a relation")

	// ErrUnhandledRelation is returned by the table visitors when they are
	// handed a view. View aware visitors live in pkg/view.
	ErrUnhandledRelation = errors.New("no DDL visitor for relation kind")
)

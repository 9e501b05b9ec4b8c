package schema

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

type (
	// MetaData is an ordered registry of relations plus container level
	// lifecycle hooks.
	//
	// A create pass fires BeforeCreate, visits every relation in dependency
	// order and then fires AfterCreate. A drop pass fires BeforeDrop, visits
	// relations in reverse dependency order and fires AfterDrop. Hooks run in
	// the order they were registered with Listen.
	MetaData struct {
		Events

		relations []Relation
		keys      map[string]int
	}

	// PassOption customizes CreateAll and DropAll.
	PassOption func(*passOptions)

	passOptions struct {
		checkFirst bool
		generator  VisitorFactory
		dropper    VisitorFactory
	}
)

// CheckFirst skips relations that already exist (create) or are missing
// (drop).
func CheckFirst() PassOption {
	return func(o *passOptions) { o.checkFirst = true }
}

// WithGenerator replaces the create pass visitor.
func WithGenerator(f VisitorFactory) PassOption {
	return func(o *passOptions) { o.generator = f }
}

// WithDropper replaces the drop pass visitor.
func WithDropper(f VisitorFactory) PassOption {
	return func(o *passOptions) { o.dropper = f }
}

func NewMetaData() *MetaData {
	return &MetaData{keys: make(map[string]int)}
}

// Add registers rel. Keys must be unique.
func (md *MetaData) Add(rel Relation) error {
	if md.keys == nil {
		md.keys = make(map[string]int)
	}

	key := rel.Key()
	if _, ok := md.keys[key]; ok {
		return errors.Wrapf(ErrDuplicateRelation, "%s", key)
	}

	md.keys[key] = len(md.relations)
	md.relations = append(md.relations, rel)
	return nil
}

// Get returns the relation registered under key.
func (md *MetaData) Get(key string) (Relation, bool) {
	i, ok := md.keys[key]
	if !ok {
		return nil, false
	}
	return md.relations[i], true
}

// Relations returns all relations in registration order.
func (md *MetaData) Relations() []Relation {
	out := make([]Relation, len(md.relations))
	copy(out, md.relations)
	return out
}

// Sorted returns relations so that every relation comes after the relations
// it depends on. Ties keep registration order. Dependencies on keys that
// aren't registered are ignored.
func (md *MetaData) Sorted() ([]Relation, error) {
	n := len(md.relations)
	pending := make([]int, n)
	dependents := make([][]int, n)

	for i, rel := range md.relations {
		for _, dep := range rel.Dependencies() {
			j, ok := md.keys[dep]
			if !ok || j == i {
				continue
			}
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	done := make([]bool, n)
	sorted := make([]Relation, 0, n)
	for len(sorted) < n {
		next := -1
		for i := range md.relations {
			if !done[i] && pending[i] == 0 {
				next = i
				break
			}
		}

		if next < 0 {
			var stuck []string
			for i, rel := range md.relations {
				if !done[i] {
					stuck = append(stuck, rel.Key())
				}
			}
			return nil, errors.Wrapf(ErrDependencyCycle, "%s", strings.Join(stuck, ", "))
		}

		done[next] = true
		sorted = append(sorted, md.relations[next])
		for _, dep := range dependents[next] {
			pending[dep]--
		}
	}

	return sorted, nil
}

// CreateAll creates every relation and fires the container's create hooks.
func (md *MetaData) CreateAll(ctx context.Context, conn Conn, opts ...PassOption) error {
	o := newPassOptions(opts)
	sorted, err := md.Sorted()
	if err != nil {
		return err
	}

	ctx = WithCheckFirst(ctx, o.checkFirst)
	return WithDDLEvents(ctx, conn, md, BeforeCreate, AfterCreate, func() error {
		visitor := o.generator(conn, o.checkFirst)
		for _, rel := range sorted {
			if err := visitor.VisitRelation(ctx, rel); err != nil {
				return errors.Wrapf(err, "failed to create %s", rel.Key())
			}
		}
		return nil
	})
}

// DropAll drops every relation in reverse dependency order and fires the
// container's drop hooks.
func (md *MetaData) DropAll(ctx context.Context, conn Conn, opts ...PassOption) error {
	o := newPassOptions(opts)
	sorted, err := md.Sorted()
	if err != nil {
		return err
	}

	ctx = WithCheckFirst(ctx, o.checkFirst)
	return WithDDLEvents(ctx, conn, md, BeforeDrop, AfterDrop, func() error {
		visitor := o.dropper(conn, o.checkFirst)
		for i := len(sorted) - 1; i >= 0; i-- {
			rel := sorted[i]
			if err := visitor.VisitRelation(ctx, rel); err != nil {
				return errors.Wrapf(err, "failed to drop %s", rel.Key())
			}
		}
		return nil
	})
}

func newPassOptions(opts []PassOption) *passOptions {
	o := &passOptions{
		generator: func(conn Conn, checkFirst bool) Visitor { return NewGenerator(conn, checkFirst) },
		dropper:   func(conn Conn, checkFirst bool) Visitor { return NewDropper(conn, checkFirst) },
	}

	for _, opt := range opts {
		opt(o)
	}
	return o
}

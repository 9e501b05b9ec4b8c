package schema

import "github.com/pseudomuto/viewkeeper/pkg/dialect"

// Type is a generic column type. Name is one of the dialect.Type* constants
// (or any dialect specific name) and Args holds length/precision arguments.
type Type struct {
	Name string
	Args []int
}

// Compile returns the type as spelled by d.
func (t Type) Compile(d dialect.Dialect) string {
	return d.TypeName(t.Name, t.Args...)
}

func Integer() Type { return Type{Name: dialect.TypeInteger} }
func BigInteger() Type { return Type{Name: dialect.TypeBigInteger} }
func SmallInteger() Type { return Type{Name: dialect.TypeSmallInteger} }
func Text() Type { return Type{Name: dialect.TypeText} }
func Boolean() Type { return Type{Name: dialect.TypeBoolean} }
func Float() Type { return Type{Name: dialect.TypeFloat} }
func Date() Type { return Type{Name: dialect.TypeDate} }
func DateTime() Type { return Type{Name: dialect.TypeDateTime} }

// String returns a VARCHAR type. A zero length leaves the length off.
func String(length int) Type {
	if length <= 0 {
		return Type{Name: dialect.TypeString}
	}
	return Type{Name: dialect.TypeString, Args: []int{length}}
}

// Numeric returns a fixed point type with the given precision and scale.
func Numeric(precision, scale int) Type {
	return Type{Name: dialect.TypeNumeric, Args: []int{precision, scale}}
}

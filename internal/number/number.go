// Package number provides a small integer value type with addition and a
// plain decimal string form.
package number

import (
	"fmt"
	"reflect"
	"strconv"

	platformerrors "github.com/jmgilman/go/errors"
)

// ErrNoPayload is returned when an operand has no integer payload.
var ErrNoPayload = platformerrors.New(platformerrors.CodeInvalidInput, "operand has no integer payload")

// Valuer is implemented by anything that carries an integer payload.
type Valuer interface {
	Value() int
}

// Number holds a single integer payload.
type Number struct {
	value int
}

// New creates a Number with payload i.
func New(i int) Number {
	return Number{value: i}
}

// Value returns the payload.
func (n Number) Value() int {
	return n.value
}

// Add returns a new Number whose payload is n + other.
func (n Number) Add(other Number) Number {
	return Number{value: n.value + other.value}
}

// AddValue adds any operand exposing a payload.
// Operands that do not implement Valuer, and nil pointers that do,
// yield ErrNoPayload.
func (n Number) AddValue(other any) (Number, error) {
	v, ok := other.(Valuer)
	if !ok {
		return Number{}, fmt.Errorf("%w: %T", ErrNoPayload, other)
	}
	if rv := reflect.ValueOf(other); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Number{}, fmt.Errorf("%w: nil %T", ErrNoPayload, other)
	}
	return Number{value: n.value + v.Value()}, nil
}

// String renders the payload in decimal with no decoration.
func (n Number) String() string {
	return strconv.Itoa(n.value)
}

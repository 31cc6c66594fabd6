// Package objects holds small helpers for reading pdfcpu object graphs
// through an indirect-reference resolver.
package objects

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrNotStream is returned when a stream was expected
var ErrNotStream = errors.New("object is not a stream")

// Resolver resolves indirect references. *model.XRefTable and *model.Context
// satisfy it.
type Resolver interface {
	Dereference(o types.Object) (types.Object, error)
}

// NopResolver returns every object unchanged. It serves object graphs built
// without an xref table, such as inline dictionaries and converted pages.
type NopResolver struct{}

// Dereference implements Resolver
func (NopResolver) Dereference(o types.Object) (types.Object, error) {
	return o, nil
}

// Locked serializes Dereference calls on a resolver that is not safe for
// concurrent use
type Locked struct {
	mu       sync.Mutex
	resolver Resolver
}

// NewLocked wraps r
func NewLocked(r Resolver) *Locked {
	return &Locked{resolver: r}
}

// Dereference implements Resolver
func (l *Locked) Dereference(o types.Object) (types.Object, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolver.Dereference(o)
}

// Resolve follows indirect references, including pointers to them, until a
// direct object is reached. Resolution errors yield nil.
func Resolve(r Resolver, o types.Object) types.Object {
	for i := 0; i < 16; i++ {
		switch v := o.(type) {
		case *types.IndirectRef:
			if v == nil {
				return nil
			}
			o = *v
		case types.IndirectRef:
			if r == nil {
				return nil
			}
			next, err := r.Dereference(v)
			if err != nil {
				return nil
			}
			o = next
		default:
			return o
		}
	}
	return nil
}

// Dict resolves o to a dictionary. A stream yields its dictionary.
func Dict(r Resolver, o types.Object) (types.Dict, bool) {
	switch v := Resolve(r, o).(type) {
	case types.Dict:
		return v, true
	case types.StreamDict:
		return v.Dict, true
	case *types.StreamDict:
		if v != nil {
			return v.Dict, true
		}
	}
	return nil, false
}

// Array resolves o to an array
func Array(r Resolver, o types.Object) (types.Array, bool) {
	a, ok := Resolve(r, o).(types.Array)
	return a, ok
}

// Number resolves o to a float
func Number(r Resolver, o types.Object) (float64, bool) {
	switch v := Resolve(r, o).(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

// Name resolves o to a name
func Name(r Resolver, o types.Object) (string, bool) {
	n, ok := Resolve(r, o).(types.Name)
	return string(n), ok
}

// Numbers resolves an array of numbers. Non-numeric entries read as zero.
func Numbers(r Resolver, o types.Object) ([]float64, bool) {
	a, ok := Array(r, o)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(a))
	for i, item := range a {
		out[i], _ = Number(r, item)
	}
	return out, true
}

// StringBytes returns the raw bytes of a literal or hex string
func StringBytes(r Resolver, o types.Object) ([]byte, bool) {
	switch v := Resolve(r, o).(type) {
	case types.StringLiteral:
		b, err := types.Unescape(string(v))
		if err != nil {
			return []byte(v), true
		}
		return b, true
	case types.HexLiteral:
		b, err := v.Bytes()
		if err != nil {
			return nil, false
		}
		return b, true
	}
	return nil, false
}

// Stream resolves o to a stream dictionary
func Stream(r Resolver, o types.Object) (*types.StreamDict, bool) {
	switch v := Resolve(r, o).(type) {
	case types.StreamDict:
		return &v, true
	case *types.StreamDict:
		return v, v != nil
	}
	return nil, false
}

// StreamContent resolves o to a stream and returns its decoded bytes. The
// stream is decoded on a copy so shared xref entries are left untouched.
func StreamContent(r Resolver, o types.Object) ([]byte, error) {
	sd, ok := Stream(r, o)
	if !ok {
		return nil, ErrNotStream
	}
	if len(sd.Content) > 0 {
		return sd.Content, nil
	}
	decoded := *sd
	if err := decoded.Decode(); err != nil {
		return nil, errors.Wrap(err, "decode stream")
	}
	return decoded.Content, nil
}

// Key identifies an object for caching and cycle detection. Indirect
// references key by object number; direct dictionaries and streams by
// identity.
func Key(o types.Object) (string, bool) {
	switch v := o.(type) {
	case types.IndirectRef:
		return fmt.Sprintf("R%d.%d", v.ObjectNumber.Value(), v.GenerationNumber.Value()), true
	case *types.IndirectRef:
		if v != nil {
			return fmt.Sprintf("R%d.%d", v.ObjectNumber.Value(), v.GenerationNumber.Value()), true
		}
	case types.Dict:
		return fmt.Sprintf("D%p", v), v != nil
	case *types.StreamDict:
		return fmt.Sprintf("S%p", v), v != nil
	case types.StreamDict:
		return fmt.Sprintf("D%p", v.Dict), v.Dict != nil
	}
	return "", false
}

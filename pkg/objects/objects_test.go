package objects

import (
	"sync"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapResolver resolves references by object number
type mapResolver map[int]types.Object

func (m mapResolver) Dereference(o types.Object) (types.Object, error) {
	ref, ok := o.(types.IndirectRef)
	if !ok {
		return o, nil
	}
	return m[ref.ObjectNumber.Value()], nil
}

func ref(n int) types.IndirectRef {
	return *types.NewIndirectRef(n, 0)
}

func TestResolve(t *testing.T) {
	r := mapResolver{
		1: ref(2),
		2: types.Integer(7),
		3: ref(3),
	}

	assert.Equal(t, types.Integer(7), Resolve(r, ref(1)))
	assert.Equal(t, types.Integer(7), Resolve(r, types.NewIndirectRef(2, 0)))
	assert.Equal(t, types.Name("F1"), Resolve(r, types.Name("F1")))
	assert.Nil(t, Resolve(r, ref(3)), "self reference")
	assert.Nil(t, Resolve(nil, ref(1)))
	assert.Nil(t, Resolve(r, (*types.IndirectRef)(nil)))
}

func TestTypedLookups(t *testing.T) {
	r := mapResolver{
		1: types.Array{types.Integer(1), types.Float(2.5), types.Name("x")},
		2: types.StreamDict{Dict: types.Dict{"Length": types.Integer(3)}, Content: []byte("abc")},
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"numbers", must(Numbers(r, ref(1))), []float64{1, 2.5, 0}},
		{"float", must(Number(r, types.Float(1.5))), 1.5},
		{"name", must(Name(r, types.Name("Artifact"))), "Artifact"},
		{"stream dict", must(Dict(r, ref(2))), types.Dict{"Length": types.Integer(3)}},
		{"literal", must(StringBytes(r, types.StringLiteral(`a\(b\)`))), []byte("a(b)")},
		{"hex", must(StringBytes(r, types.HexLiteral("4869"))), []byte("Hi")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	_, ok := Number(r, types.Name("x"))
	assert.False(t, ok)
	_, ok = Dict(r, ref(1))
	assert.False(t, ok)
	_, ok = Array(r, ref(9))
	assert.False(t, ok)
}

func must[T any](v T, ok bool) T {
	if !ok {
		var zero T
		return zero
	}
	return v
}

func TestStreamContent(t *testing.T) {
	r := mapResolver{
		1: types.StreamDict{Content: []byte("BT ET")},
		2: types.Dict{},
	}

	data, err := StreamContent(r, ref(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("BT ET"), data)

	_, err = StreamContent(r, ref(2))
	assert.ErrorIs(t, err, ErrNotStream)
}

func TestKey(t *testing.T) {
	k1, ok := Key(ref(4))
	require.True(t, ok)
	k2, _ := Key(types.NewIndirectRef(4, 0))
	assert.Equal(t, k1, k2)

	d := types.Dict{"A": types.Integer(1)}
	kd1, ok := Key(d)
	require.True(t, ok)
	kd2, _ := Key(d)
	assert.Equal(t, kd1, kd2)

	_, ok = Key(types.Integer(1))
	assert.False(t, ok)
}

func TestLocked(t *testing.T) {
	l := NewLocked(mapResolver{1: types.Integer(42)})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, types.Integer(42), Resolve(l, ref(1)))
		}()
	}
	wg.Wait()

	o, err := NopResolver{}.Dereference(types.Boolean(true))
	require.NoError(t, err)
	assert.Equal(t, types.Boolean(true), o)
}

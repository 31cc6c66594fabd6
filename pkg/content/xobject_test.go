package content

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func form(content string, entries types.Dict) types.StreamDict {
	dict := types.Dict{
		"Type":    types.Name("XObject"),
		"Subtype": types.Name("Form"),
	}
	for k, v := range entries {
		dict[k] = v
	}
	return types.StreamDict{Dict: dict, Content: []byte(content)}
}

func xobjects(entries types.Dict) *Resources {
	return testResources(types.Dict{"XObject": entries})
}

func TestFormXObject(t *testing.T) {
	fm := form("BT /F1 10 Tf (A) Tj ET", types.Dict{
		"Matrix": types.Array{
			types.Integer(1), types.Integer(0), types.Integer(0),
			types.Integer(1), types.Integer(50), types.Integer(50),
		},
	})
	rec, _ := run(t, "q 2 0 0 2 0 0 cm /Fm1 Do Q BT /F1 10 Tf (B) Tj ET", xobjects(types.Dict{"Fm1": fm}))

	require.Equal(t, []string{"A", "B"}, rec.texts())
	assert.Equal(t, Vector{X: 100, Y: 100}, rec.chunks[0].start)
	assert.Equal(t, Vector{X: 110, Y: 100}, rec.chunks[0].end)
	assert.Equal(t, Vector{}, rec.chunks[1].start)
}

func TestFormXObjectResources(t *testing.T) {
	own := form("BT /F9 10 Tf (A) Tj ET", types.Dict{
		"Resources": types.Dict{"Font": types.Dict{"F9": testFont()}},
	})
	inherited := form("BT /F1 10 Tf (B) Tj ET", nil)

	rec, _ := run(t, "/Own Do /Inherited Do", xobjects(types.Dict{"Own": own, "Inherited": inherited}))
	assert.Equal(t, []string{"A", "B"}, rec.texts())
}

func TestFormXObjectRestoresState(t *testing.T) {
	fm := form("q q 5 Tc 1 0 0 1 30 30 cm BT /F1 10 Tf 7 0 Td (A) Tj", nil)
	rec, p := run(t, "BT /F1 10 Tf 1 0 0 1 10 0 Tm /Fm1 Do (B) Tj ET", xobjects(types.Dict{"Fm1": fm}))

	require.Equal(t, []string{"A", "B"}, rec.texts())
	assert.Equal(t, Vector{X: 10}, rec.chunks[1].start)
	assert.Equal(t, 0.0, p.State().CharSpacing)
	assert.Equal(t, IdentityMatrix(), p.State().CTM)
}

func TestFormXObjectUnbalanced(t *testing.T) {
	t.Run("extra Q", func(t *testing.T) {
		fm := form("Q 2 0 0 2 0 0 cm", nil)
		rec, p := run(t, "/Fm1 Do BT /F1 10 Tf 10 10 Td (B) Tj ET", xobjects(types.Dict{"Fm1": fm}))

		require.Equal(t, []string{"B"}, rec.texts())
		assert.Equal(t, Vector{X: 10, Y: 10}, rec.chunks[0].start)
		assert.Equal(t, IdentityMatrix(), p.State().CTM)
	})

	t.Run("extra Q under saved state", func(t *testing.T) {
		fm := form("Q Q 3 Tc", nil)
		rec, p := run(t, "q 1 0 0 1 5 5 cm /Fm1 Do BT /F1 10 Tf (B) Tj ET Q", xobjects(types.Dict{"Fm1": fm}))

		require.Equal(t, []string{"B"}, rec.texts())
		assert.Equal(t, Vector{X: 5, Y: 5}, rec.chunks[0].start)
		assert.Equal(t, 0.0, p.State().CharSpacing)
		assert.Equal(t, IdentityMatrix(), p.State().CTM)
	})

	t.Run("extra EMC", func(t *testing.T) {
		fm := form("EMC BT /F1 10 Tf (Y) Tj ET", nil)
		rec, _ := run(t, "/Artifact BMC /Fm1 Do BT /F1 10 Tf (X) Tj ET EMC BT /F1 10 Tf (Z) Tj ET",
			xobjects(types.Dict{"Fm1": fm}))

		assert.Equal(t, []string{"Z"}, rec.texts())
	})

	t.Run("unclosed BMC", func(t *testing.T) {
		fm := form("/Span BMC BT /F1 10 Tf (A) Tj ET", nil)
		rec, _ := run(t, "/Fm1 Do BT /F1 10 Tf (B) Tj ET", xobjects(types.Dict{"Fm1": fm}))

		require.Equal(t, []string{"A", "B"}, rec.texts())
		assert.Equal(t, []string{"Span"}, rec.chunks[0].tags)
		assert.Empty(t, rec.chunks[1].tags)
		assert.Equal(t, []string{"begin Span", "end"}, rec.events)
	})

	t.Run("actual text across a form", func(t *testing.T) {
		fm := form("BT /F1 10 Tf (X) Tj ET", nil)
		rec, _ := run(t, "/Span <</ActualText (fi)>> BDC /Fm1 Do BT /F1 10 Tf (Y) Tj ET EMC",
			xobjects(types.Dict{"Fm1": fm}))

		assert.Equal(t, []string{"fi"}, rec.texts())
	})
}

func TestFormXObjectCycle(t *testing.T) {
	self := form("BT /F1 10 Tf (A) Tj ET /Self Do", nil)
	self.Dict["Resources"] = types.Dict{
		"Font":    types.Dict{"F1": testFont()},
		"XObject": types.Dict{"Self": self},
	}

	rec, _ := run(t, "/Self Do", xobjects(types.Dict{"Self": self}))
	assert.Equal(t, []string{"A"}, rec.texts())
}

func TestFormXObjectDepthLimit(t *testing.T) {
	inner := form("BT /F1 10 Tf (B) Tj ET", nil)
	outer := form("BT /F1 10 Tf (A) Tj ET /Inner Do", types.Dict{
		"Resources": types.Dict{
			"Font":    types.Dict{"F1": testFont()},
			"XObject": types.Dict{"Inner": inner},
		},
	})
	res := xobjects(types.Dict{"Outer": outer})

	rec, _ := run(t, "/Outer Do", res)
	assert.Equal(t, []string{"A", "B"}, rec.texts())

	rec, _ = run(t, "/Outer Do", res, WithMaxFormDepth(1))
	assert.Equal(t, []string{"A"}, rec.texts())
}

func TestImageXObject(t *testing.T) {
	img := types.StreamDict{
		Dict: types.Dict{
			"Type":    types.Name("XObject"),
			"Subtype": types.Name("Image"),
			"Width":   types.Integer(20),
			"Height":  types.Integer(10),
		},
		Content: []byte{0},
	}
	rec, _ := run(t, "q 100 0 0 50 10 20 cm /Im1 Do Q /Missing Do", xobjects(types.Dict{"Im1": img}))

	require.Len(t, rec.images, 1)
	info := rec.images[0]
	assert.Equal(t, "Im1", info.Name)
	assert.False(t, info.Inline)
	assert.Equal(t, 20, info.Width)
	assert.Equal(t, 10, info.Height)
	assert.Equal(t, [4]float64{10, 20, 110, 70}, info.Bounds())
}

func TestInlineImage(t *testing.T) {
	src := "q 10 0 0 10 0 0 cm BI /W 4 /H 2 /BPC 8 /CS /G ID \x01\x02Tj\x03(\x04\x05 EI Q BT /F1 10 Tf (A) Tj ET"
	rec, _ := run(t, src, testResources(nil))

	assert.Equal(t, []string{"A"}, rec.texts())
	require.Len(t, rec.images, 1)
	assert.True(t, rec.images[0].Inline)
	assert.Equal(t, 4, rec.images[0].Width)
	assert.Equal(t, 2, rec.images[0].Height)
}

func TestParseShading(t *testing.T) {
	fn := types.Dict{"FunctionType": types.Integer(2)}
	tests := []struct {
		name     string
		dict     types.Dict
		expected error
	}{
		{
			name: "axial",
			dict: types.Dict{
				"ShadingType": types.Integer(2),
				"ColorSpace":  types.Name("DeviceRGB"),
				"Coords":      types.Array{types.Integer(0), types.Integer(0), types.Integer(1), types.Integer(1)},
				"Function":    fn,
			},
		},
		{
			name: "free-form mesh needs no function",
			dict: types.Dict{"ShadingType": types.Integer(4), "ColorSpace": types.Name("DeviceGray")},
		},
		{
			name:     "no type",
			dict:     types.Dict{"ColorSpace": types.Name("DeviceRGB")},
			expected: &StructureError{Dict: "Shading", Key: "ShadingType"},
		},
		{
			name:     "no color space",
			dict:     types.Dict{"ShadingType": types.Integer(1), "Function": fn},
			expected: &StructureError{Dict: "Shading", Key: "ColorSpace"},
		},
		{
			name:     "radial without coords",
			dict:     types.Dict{"ShadingType": types.Integer(3), "ColorSpace": types.Name("DeviceRGB"), "Function": fn},
			expected: &StructureError{Dict: "Shading", Key: "Coords"},
		},
		{
			name:     "function-based without function",
			dict:     types.Dict{"ShadingType": types.Integer(1), "ColorSpace": types.Name("DeviceRGB")},
			expected: &StructureError{Dict: "Shading", Key: "Function"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, err := ParseShading(NopResolver{}, tt.dict)
			if tt.expected != nil {
				assert.Equal(t, tt.expected, err)
				assert.Nil(t, sh)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sh)
		})
	}
}

func TestParsePattern(t *testing.T) {
	_, err := ParsePattern(NopResolver{}, types.Dict{"PatternType": types.Integer(2)})
	assert.Equal(t, &StructureError{Dict: "Pattern", Key: "Shading"}, err)

	_, err = ParsePattern(NopResolver{}, types.Dict{"Matrix": types.Array{}})
	assert.Equal(t, &StructureError{Dict: "Pattern", Key: "PatternType"}, err)

	pat, err := ParsePattern(NopResolver{}, types.Dict{
		"PatternType": types.Integer(1),
		"Matrix": types.Array{
			types.Integer(2), types.Integer(0), types.Integer(0),
			types.Integer(2), types.Integer(0), types.Integer(0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Scale(2, 2), pat.Matrix)

	_, err = ParsePattern(NopResolver{}, types.Integer(1))
	assert.Error(t, err)
	_, isStructure := err.(*StructureError)
	assert.False(t, isStructure)
}

package content

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// StructureError reports a shading or pattern dictionary missing a required
// entry
type StructureError struct {
	Dict string
	Key  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("content: %s dictionary has no /%s", e.Dict, e.Key)
}

// Shading holds the entries of a shading dictionary the interpreter checks
type Shading struct {
	ShadingType int
	ColorSpace  types.Object
	Coords      []float64
	Function    types.Object
	Dict        types.Dict
}

// ParseShading validates a shading dictionary or stream. Types 2 and 3
// need /Coords; types 1 to 3 need /Function.
func ParseShading(r Resolver, obj types.Object) (*Shading, error) {
	dict, ok := objects.Dict(r, obj)
	if !ok {
		return nil, errors.Errorf("content: shading %v is not a dictionary", obj)
	}
	st, ok := objects.Number(r, dict["ShadingType"])
	if !ok {
		return nil, &StructureError{Dict: "Shading", Key: "ShadingType"}
	}
	sh := &Shading{ShadingType: int(st), Dict: dict}

	if sh.ColorSpace = dict["ColorSpace"]; sh.ColorSpace == nil {
		return nil, &StructureError{Dict: "Shading", Key: "ColorSpace"}
	}
	if sh.ShadingType == 2 || sh.ShadingType == 3 {
		if sh.Coords, ok = objects.Numbers(r, dict["Coords"]); !ok {
			return nil, &StructureError{Dict: "Shading", Key: "Coords"}
		}
	}
	if sh.ShadingType >= 1 && sh.ShadingType <= 3 {
		if sh.Function = dict["Function"]; sh.Function == nil {
			return nil, &StructureError{Dict: "Shading", Key: "Function"}
		}
	}
	return sh, nil
}

// Pattern holds a tiling (type 1) or shading (type 2) pattern
type Pattern struct {
	PatternType int
	Matrix      Matrix
	Shading     *Shading
	Dict        types.Dict
}

// ParsePattern validates a pattern dictionary or stream. Shading patterns
// need a valid /Shading.
func ParsePattern(r Resolver, obj types.Object) (*Pattern, error) {
	dict, ok := objects.Dict(r, obj)
	if !ok {
		return nil, errors.Errorf("content: pattern %v is not a dictionary", obj)
	}
	pt, ok := objects.Number(r, dict["PatternType"])
	if !ok {
		return nil, &StructureError{Dict: "Pattern", Key: "PatternType"}
	}
	pat := &Pattern{PatternType: int(pt), Matrix: IdentityMatrix(), Dict: dict}
	if m, ok := objects.Numbers(r, dict["Matrix"]); ok && len(m) == 6 {
		pat.Matrix = matrixOf(m)
	}

	if pat.PatternType == 2 {
		if dict["Shading"] == nil {
			return nil, &StructureError{Dict: "Pattern", Key: "Shading"}
		}
		sh, err := ParseShading(r, dict["Shading"])
		if err != nil {
			return nil, err
		}
		pat.Shading = sh
	}
	return pat, nil
}

package content

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// Resolver resolves indirect references while walking resources.
// *model.XRefTable and *model.Context satisfy it.
type Resolver = objects.Resolver

// NopResolver serves resource dictionaries that hold no indirect references
type NopResolver = objects.NopResolver

// Resources is a page or form resource dictionary with the resolver used to
// follow its references
type Resources struct {
	Dict     types.Dict
	Resolver Resolver
}

// NewResources wraps a resource dictionary. A nil resolver means the
// dictionary holds only direct objects.
func NewResources(dict types.Dict, r Resolver) *Resources {
	if r == nil {
		r = NopResolver{}
	}
	return &Resources{Dict: dict, Resolver: r}
}

// lookup returns the unresolved entry name of the category dictionary, so
// callers can key on its reference
func (r *Resources) lookup(category, name string) (types.Object, bool) {
	if r == nil || r.Dict == nil {
		return nil, false
	}
	sub, ok := objects.Dict(r.Resolver, r.Dict[category])
	if !ok {
		return nil, false
	}
	obj, ok := sub[name]
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

// Font returns the font object named name
func (r *Resources) Font(name string) (types.Object, bool) {
	return r.lookup("Font", name)
}

// XObject returns the external object named name
func (r *Resources) XObject(name string) (types.Object, bool) {
	return r.lookup("XObject", name)
}

// ExtGState returns the resolved graphics state parameter dictionary
func (r *Resources) ExtGState(name string) (types.Dict, bool) {
	obj, ok := r.lookup("ExtGState", name)
	if !ok {
		return nil, false
	}
	return objects.Dict(r.Resolver, obj)
}

// Properties returns the resolved marked-content property list
func (r *Resources) Properties(name string) (types.Dict, bool) {
	obj, ok := r.lookup("Properties", name)
	if !ok {
		return nil, false
	}
	return objects.Dict(r.Resolver, obj)
}

// Shading returns the shading object named name
func (r *Resources) Shading(name string) (types.Object, bool) {
	return r.lookup("Shading", name)
}

// Pattern returns the pattern object named name
func (r *Resources) Pattern(name string) (types.Object, bool) {
	return r.lookup("Pattern", name)
}

// resolver returns the resolver, never nil
func (r *Resources) resolver() Resolver {
	if r == nil || r.Resolver == nil {
		return NopResolver{}
	}
	return r.Resolver
}

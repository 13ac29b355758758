package x3d

import (
	"fmt"

	"github.com/Faultbox/x3dscene/pkg/scene"
)

// Resolver maps identity labels to produced objects. Lookups search the
// current pass first and then the fallback scene.
type Resolver struct {
	current  map[string]scene.Labeled
	fallback *scene.Node
}

// NewResolver returns a resolver whose fallback scope is the subtree at
// fallback, which may be nil.
func NewResolver(fallback *scene.Node) *Resolver {
	return &Resolver{
		current:  make(map[string]scene.Labeled),
		fallback: fallback,
	}
}

// Register makes obj addressable by label in the current pass. A later
// registration of the same label replaces the earlier one.
func (r *Resolver) Register(label string, obj scene.Labeled) {
	if label == "" || obj == nil {
		return
	}
	r.current[label] = obj
}

// Merge adds label to obj's identity set and registers it.
func (r *Resolver) Merge(label string, obj scene.Labeled) {
	if label == "" || obj == nil {
		return
	}
	obj.LabelSet().Add(label)
	r.Register(label, obj)
}

// Resolve returns the object registered under label. It fails with
// ErrReferenceNotFound when neither scope knows the label.
func (r *Resolver) Resolve(label string) (scene.Labeled, error) {
	if obj, ok := r.current[label]; ok {
		return obj, nil
	}
	if r.fallback != nil {
		if obj := r.fallback.FindLabeled(label); obj != nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrReferenceNotFound, label)
}

// Lookup returns the object registered in the current pass only.
func (r *Resolver) Lookup(label string) (scene.Labeled, bool) {
	obj, ok := r.current[label]
	return obj, ok
}

// Len returns the number of labels registered in the current pass.
func (r *Resolver) Len() int {
	return len(r.current)
}

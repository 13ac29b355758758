package scene

import (
	"slices"
	"strings"
)

// Labels is the ordered set of identity labels carried by a produced object.
// Several source nodes may collapse into one object; each of their labels
// stays an independent lookup key.
type Labels []string

// Labeled is implemented by every object that can be addressed by label.
type Labeled interface {
	LabelSet() *Labels
}

// LabelSet returns the receiver so embedding types satisfy Labeled.
func (l *Labels) LabelSet() *Labels {
	return l
}

// Add appends label unless it is empty or already present.
func (l *Labels) Add(label string) {
	if label == "" || slices.Contains(*l, label) {
		return
	}
	*l = append(*l, label)
}

// Merge adds every label of other.
func (l *Labels) Merge(other Labels) {
	for _, label := range other {
		l.Add(label)
	}
}

// Has reports whether label is in the set.
func (l Labels) Has(label string) bool {
	return slices.Contains(l, label)
}

// String joins the labels with ';' for display.
func (l Labels) String() string {
	return strings.Join(l, ";")
}

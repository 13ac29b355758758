// Package x3d decodes X3D scene documents into a scene graph.
//
// A Decoder walks the element tree depth-first, building transform, group
// and switch containers, shapes with their geometry and material, and
// lights. Viewpoint, Background, Fog and WorldInfo are written into the host
// container instead of the returned roots. DEF/id labels are registered as
// objects are produced and USE references are resolved against the current
// pass first and the host's root second. Recoverable problems never abort a
// decode; they are collected as Diagnostics.
package x3d

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// TextureResolver supplies image cells for texture references. Resolve must
// be idempotent: repeated calls for the same reference return the same cell.
// The cell may still be pending; the decoder never waits on it.
type TextureResolver interface {
	Resolve(ref string) *scene.ImageCell
}

// Default tuning values.
const (
	DefaultDirectionalScale = 0.5
	DefaultPointSize        = 4
	DefaultRootLabel        = "n0"
)

// Decoder converts documents into scene nodes for one host container.
type Decoder struct {
	host             *scene.Container
	textures         TextureResolver
	log              *zap.Logger
	directionalScale float32
	pointSize        float32
	rootLabel        string
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// WithTextures sets the texture resolution service. Without one, textures
// get pending image cells that are never completed.
func WithTextures(r TextureResolver) Option {
	return func(d *Decoder) { d.textures = r }
}

// WithDirectionalScale sets the factor applied to directional light
// intensities.
func WithDirectionalScale(s float32) Option {
	return func(d *Decoder) { d.directionalScale = s }
}

// WithPointSize sets the size of the default point-set material.
func WithPointSize(s float32) Option {
	return func(d *Decoder) { d.pointSize = s }
}

// WithRootLabel sets the label given to the root built for a Scene element.
func WithRootLabel(label string) Option {
	return func(d *Decoder) { d.rootLabel = label }
}

// NewDecoder returns a decoder writing into host. A nil host gets a fresh
// container.
func NewDecoder(host *scene.Container, opts ...Option) *Decoder {
	if host == nil {
		host = scene.NewContainer()
	}
	d := &Decoder{
		host:             host,
		log:              zap.NewNop(),
		directionalScale: DefaultDirectionalScale,
		pointSize:        DefaultPointSize,
		rootLabel:        DefaultRootLabel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Host returns the container the decoder writes into.
func (d *Decoder) Host() *scene.Container {
	return d.host
}

// Result is the output of one decode pass.
type Result struct {
	// Roots holds one root for a document with a Scene element, otherwise one
	// root per top-level element in document order.
	Roots []*scene.Node
	// DirectionalLights lists the directional light nodes for the caller's
	// framing stage (see scene.FrameDirectionalLights).
	DirectionalLights []*scene.Node
	Diagnostics       []*Diagnostic

	names *Resolver
}

// Err folds all diagnostics into one error, or nil.
func (r *Result) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = multierr.Append(err, d)
	}
	return err
}

// Lookup returns the object registered under label during this pass.
func (r *Result) Lookup(label string) (scene.Labeled, bool) {
	if r.names == nil {
		return nil, false
	}
	return r.names.Lookup(label)
}

// Decode converts a parsed document. Only a document without any element
// is a hard failure.
func (d *Decoder) Decode(doc *xmltree.Document) (*Result, error) {
	if doc == nil || len(doc.Roots) == 0 {
		return nil, ErrNoRoot
	}
	p := &pass{
		Decoder: d,
		res:     NewResolver(d.host.Root),
		out:     &Result{},
	}
	p.out.names = p.res

	if sc := doc.Find("Scene"); sc != nil {
		root := scene.NewNode(scene.KindGroup)
		p.res.Merge(d.rootLabel, root)
		p.out.Roots = append(p.out.Roots, root)
		p.decodeChildren(root, sc)
	} else {
		for _, el := range doc.Roots {
			root := scene.NewNode(scene.KindGroup)
			p.out.Roots = append(p.out.Roots, root)
			p.decodeNode(root, el)
		}
	}

	d.log.Debug("decoded",
		zap.Int("roots", len(p.out.Roots)),
		zap.Int("labels", p.res.Len()),
		zap.Int("directional_lights", len(p.out.DirectionalLights)),
		zap.Int("diagnostics", len(p.out.Diagnostics)))
	return p.out, nil
}

// DecodeReader parses and decodes a document from r.
func (d *Decoder) DecodeReader(r io.Reader) (*Result, error) {
	doc, err := xmltree.Parse(r)
	if errors.Is(err, xmltree.ErrEmpty) {
		return nil, ErrNoRoot
	}
	if err != nil {
		return nil, fmt.Errorf("x3d: parse: %w", err)
	}
	return d.Decode(doc)
}

// DecodeBytes parses and decodes an in-memory document.
func (d *Decoder) DecodeBytes(data []byte) (*Result, error) {
	return d.DecodeReader(bytes.NewReader(data))
}

// DecodeFile parses and decodes the document at path.
func (d *Decoder) DecodeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("x3d: open: %w", err)
	}
	defer f.Close()
	return d.DecodeReader(f)
}

// pass holds the state of one decode.
type pass struct {
	*Decoder
	res *Resolver
	out *Result
}

// report records a recoverable condition.
func (p *pass) report(err error, n *xmltree.Node, label, detail string) {
	diag := &Diagnostic{Err: err, Label: label, Detail: detail}
	if n != nil {
		diag.Node = n.Name
		diag.Line = n.Line
	}
	p.out.Diagnostics = append(p.out.Diagnostics, diag)
	p.log.Warn(err.Error(),
		zap.String("node", diag.Node),
		zap.Int("line", diag.Line),
		zap.String("label", label),
		zap.String("detail", detail))
}

// assign attaches the labels declared on n to obj.
func (p *pass) assign(n *xmltree.Node, obj scene.Labeled) {
	if n == nil || obj == nil {
		return
	}
	for _, label := range labelsOf(n) {
		p.res.Merge(label, obj)
	}
}

// resolveUse resolves the USE reference declared on n. ok is false when n
// declares none; obj is nil when resolution failed and was reported.
func (p *pass) resolveUse(n *xmltree.Node) (obj scene.Labeled, ok bool) {
	label, ok := useOf(n)
	if !ok {
		return nil, false
	}
	obj, err := p.res.Resolve(label)
	if err != nil {
		p.report(ErrReferenceNotFound, n, label, "no matching DEF")
		return nil, true
	}
	return obj, true
}

func (p *pass) texture(ref string) *scene.ImageCell {
	if p.textures != nil {
		if c := p.textures.Resolve(ref); c != nil {
			return c
		}
	}
	return scene.NewImageCell(ref)
}

package scene

import (
	"context"
	"image"
	"sync"

	"github.com/Faultbox/x3dscene/pkg/math"
)

// ImageCell is a write-once image handle. The texture resolution service
// creates it and completes it exactly once, possibly after the decode that
// referenced it has returned. Readers never block unless they call Wait.
type ImageCell struct {
	ref  string
	once sync.Once
	done chan struct{}
	img  image.Image
	err  error
}

// NewImageCell returns a pending cell for ref.
func NewImageCell(ref string) *ImageCell {
	return &ImageCell{ref: ref, done: make(chan struct{})}
}

// ReadyImageCell returns a cell already completed with img.
func ReadyImageCell(ref string, img image.Image) *ImageCell {
	c := NewImageCell(ref)
	c.Complete(img, nil)
	return c
}

// Ref returns the reference the cell was created for.
func (c *ImageCell) Ref() string {
	return c.ref
}

// Complete stores the result. Only the first call has an effect; it reports
// whether this call completed the cell.
func (c *ImageCell) Complete(img image.Image, err error) bool {
	completed := false
	c.once.Do(func() {
		c.img, c.err = img, err
		close(c.done)
		completed = true
	})
	return completed
}

// Done is closed once the cell is complete.
func (c *ImageCell) Done() <-chan struct{} {
	return c.done
}

// Ready reports whether the cell has been completed.
func (c *ImageCell) Ready() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Image returns the decoded image and true once the cell completed without
// error.
func (c *ImageCell) Image() (image.Image, bool) {
	if !c.Ready() {
		return nil, false
	}
	return c.img, c.err == nil && c.img != nil
}

// Err returns the completion error, or nil while pending.
func (c *ImageCell) Err() error {
	if !c.Ready() {
		return nil
	}
	return c.err
}

// Wait blocks until the cell completes or ctx ends.
func (c *ImageCell) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-c.done:
		return c.img, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// UVTransform is a texture-coordinate transform and its resolved matrix.
type UVTransform struct {
	Center      math.Vec2
	Rotation    float32
	Scale       math.Vec2
	Translation math.Vec2
	Matrix      math.Affine2
}

// NewUVTransform builds the transform and computes its matrix.
func NewUVTransform(center math.Vec2, rotation float32, scale, translation math.Vec2) *UVTransform {
	return &UVTransform{
		Center:      center,
		Rotation:    rotation,
		Scale:       scale,
		Translation: translation,
		Matrix:      math.UVTransform(center, rotation, scale, translation),
	}
}

// Texture references an image through a write-once cell.
type Texture struct {
	Labels
	URL   string
	Image *ImageCell
	WrapS Wrap
	WrapT Wrap
	// Transform is nil when no TextureTransform applies.
	Transform *UVTransform
	// Transparent marks an alpha-transparent image.
	Transparent bool
}

// Package texture resolves texture references to image cells. Images are
// read from directories and GRF archives, decoded on a bounded worker pool
// and delivered by completing the cell handed out earlier.
package texture

import (
	"context"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/x3dscene/pkg/scene"
)

// Loader implements the decoder's texture resolution service. Resolve is
// idempotent per cleaned reference and never blocks on I/O.
type Loader struct {
	src  *Sources
	log  *zap.Logger
	opts DecodeOptions

	workers int
	sem     *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu    sync.Mutex
	cells map[string]*scene.ImageCell

	loaded atomic.Int64
	failed atomic.Int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger for load results.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithWorkers bounds the number of concurrent reads and decodes.
func WithWorkers(n int) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.workers = n
		}
	}
}

// WithFlipY mirrors every decoded image vertically.
func WithFlipY(flip bool) Option {
	return func(ld *Loader) { ld.opts.FlipY = flip }
}

// WithColorKey makes magenta pixels transparent.
func WithColorKey(key bool) Option {
	return func(ld *Loader) { ld.opts.ColorKey = key }
}

// NewLoader returns a loader reading from src.
func NewLoader(src *Sources, opts ...Option) *Loader {
	if src == nil {
		src = NewSources()
	}
	l := &Loader{
		src:     src,
		log:     zap.NewNop(),
		workers: runtime.NumCPU(),
		cells:   make(map[string]*scene.ImageCell),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.sem = semaphore.NewWeighted(int64(l.workers))
	l.ctx, l.cancel = context.WithCancel(context.Background())
	return l
}

// Resolve returns the cell for ref, starting a load on first request.
// References that cannot name a file complete with fs.ErrInvalid.
func (l *Loader) Resolve(ref string) *scene.ImageCell {
	key, ok := cleanRef(ref)
	if !ok {
		key = ref
	}

	l.mu.Lock()
	if c, found := l.cells[key]; found {
		l.mu.Unlock()
		return c
	}
	c := scene.NewImageCell(ref)
	l.cells[key] = c
	l.wg.Add(1)
	l.mu.Unlock()

	go l.load(c)
	return c
}

func (l *Loader) load(c *scene.ImageCell) {
	defer l.wg.Done()
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		l.finish(c, nil, "", "", err, 0)
		return
	}
	defer l.sem.Release(1)

	start := time.Now()
	data, from, err := l.src.ReadFile(c.Ref())
	if err != nil {
		l.finish(c, nil, from, "", err, time.Since(start))
		return
	}
	img, format, err := Decode(data, c.Ref(), l.opts)
	l.finish(c, img, from, format, err, time.Since(start))
}

func (l *Loader) finish(c *scene.ImageCell, img image.Image, from, format string, err error, took time.Duration) {
	c.Complete(img, err)
	if err != nil {
		l.failed.Add(1)
		l.log.Warn("texture load failed",
			zap.String("ref", c.Ref()),
			zap.String("source", from),
			zap.Error(err))
		return
	}
	l.loaded.Add(1)
	b := img.Bounds()
	l.log.Debug("texture loaded",
		zap.String("ref", c.Ref()),
		zap.String("source", from),
		zap.String("format", format),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Duration("took", took))
}

// Preload resolves refs and waits until all of them complete or ctx ends.
// It returns the first load error.
func (l *Loader) Preload(ctx context.Context, refs ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		c := l.Resolve(ref)
		g.Go(func() error {
			_, err := c.Wait(ctx)
			return err
		})
	}
	return g.Wait()
}

// Wait blocks until every started load has completed.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Stats returns the number of successful and failed loads so far.
func (l *Loader) Stats() (loaded, failed int) {
	return int(l.loaded.Load()), int(l.failed.Load())
}

// Len returns the number of distinct references resolved.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cells)
}

// Close cancels pending loads, waits for running ones and closes the
// sources. Pending cells complete with context.Canceled.
func (l *Loader) Close() error {
	l.cancel()
	l.wg.Wait()
	return l.src.Close()
}

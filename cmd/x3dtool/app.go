package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/Faultbox/x3dscene/internal/config"
	"github.com/Faultbox/x3dscene/internal/texture"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/x3d"
)

// app carries what every command needs.
type app struct {
	cfg *config.Config
	out *termenv.Output
	log *zap.Logger
}

func newApp(cfg *config.Config, w io.Writer, log *zap.Logger) *app {
	profile := termenv.Ascii
	if cfg.Output.Color {
		profile = termenv.EnvColorProfile()
	}
	return &app{
		cfg: cfg,
		out: termenv.NewOutput(w, termenv.WithProfile(profile)),
		log: log,
	}
}

// decoded is one decode of a file together with the host it wrote into.
type decoded struct {
	path   string
	host   *scene.Container
	result *x3d.Result
	loader *texture.Loader
	took   time.Duration
}

// openSources builds the texture source set from the configured roots and
// packs. Missing roots are logged and skipped.
func (a *app) openSources() *texture.Sources {
	src := texture.NewSources()
	for _, dir := range a.cfg.Textures.Roots {
		if err := src.AddDir(dir); err != nil {
			a.log.Warn("skipping texture root", zap.String("dir", dir), zap.Error(err))
		}
	}
	for _, pack := range a.cfg.Textures.Packs {
		if err := src.AddArchive(pack); err != nil {
			a.log.Warn("skipping texture pack", zap.String("pack", pack), zap.Error(err))
		}
	}
	return src
}

// decode decodes path into a fresh host. The caller closes d.loader.
func (a *app) decode(path string) (*decoded, error) {
	loader := texture.NewLoader(a.openSources(),
		texture.WithLogger(a.log.Named("texture")),
		texture.WithWorkers(a.cfg.Textures.Workers),
		texture.WithFlipY(a.cfg.Textures.FlipY),
		texture.WithColorKey(a.cfg.Textures.ColorKey),
	)
	dec := x3d.NewDecoder(nil,
		x3d.WithLogger(a.log.Named("x3d")),
		x3d.WithTextures(loader),
		x3d.WithDirectionalScale(a.cfg.Decoder.DirectionalScale),
		x3d.WithPointSize(a.cfg.Decoder.PointSize),
		x3d.WithRootLabel(a.cfg.Decoder.RootLabel),
	)

	start := time.Now()
	res, err := dec.DecodeFile(path)
	if err != nil {
		loader.Close()
		return nil, err
	}
	if a.cfg.Decoder.FrameLights && len(res.DirectionalLights) > 0 {
		scene.FrameDirectionalLights(res.DirectionalLights, res.Roots...)
	}
	return &decoded{path: path, host: dec.Host(), result: res, loader: loader, took: time.Since(start)}, nil
}

// waitTextures blocks until every texture load finishes or the configured
// timeout passes.
func (a *app) waitTextures(d *decoded) {
	ctx := context.Background()
	if a.cfg.Textures.PreloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Textures.PreloadTimeout)
		defer cancel()
	}
	done := make(chan struct{})
	go func() {
		d.loader.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.log.Warn("texture loads still pending", zap.Duration("timeout", a.cfg.Textures.PreloadTimeout))
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) styled(s, color string) string {
	return a.out.String(s).Foreground(a.out.Color(color)).String()
}

func (a *app) bold(s string) string {
	return a.out.String(s).Bold().String()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

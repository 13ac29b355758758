package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/Faultbox/x3dscene/pkg/grf"
	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/scene"
)

var errUsage = errors.New("missing arguments")

// summary counts what a decoded scene contains.
type summary struct {
	nodes      map[scene.NodeKind]int
	geometries map[scene.GeometryKind]int
	lights     map[scene.LightKind]int
	primitives int
	vertices   int
	labels     int
}

func summarize(roots []*scene.Node) summary {
	s := summary{
		nodes:      make(map[scene.NodeKind]int),
		geometries: make(map[scene.GeometryKind]int),
		lights:     make(map[scene.LightKind]int),
	}
	for _, r := range roots {
		r.Traverse(func(n *scene.Node) bool {
			s.nodes[n.Kind]++
			s.labels += len(n.Labels)
			if n.Geometry != nil {
				s.geometries[n.Geometry.Kind]++
				if m := n.Geometry.Mesh; m != nil {
					s.primitives += m.PrimitiveCount()
					s.vertices += m.VertexCount()
				}
			}
			if n.Light != nil {
				s.lights[n.Light.Kind]++
			}
			return true
		})
	}
	return s
}

// kind is any of the scene enums counted by summarize.
type kind interface {
	comparable
	fmt.Stringer
}

// sortedCounts renders a kind->count map as "Name n" pairs in name order.
func sortedCounts[K kind](m map[K]int) []string {
	out := make([]string, 0, len(m))
	for k, n := range m {
		out = append(out, fmt.Sprintf("%s %d", k, n))
	}
	sort.Strings(out)
	return out
}

func (a *app) cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: info <file.x3d>", errUsage)
	}
	d, err := a.decode(args[0])
	if err != nil {
		return err
	}
	defer d.loader.Close()
	a.waitTextures(d)
	a.printInfo(d)
	return nil
}

func (a *app) printInfo(d *decoded) {
	s := summarize(d.result.Roots)

	a.printf("%s %s\n", a.bold("Scene:"), d.path)
	a.printf("Decoded in %s\n\n", d.took.Round(time.Microsecond))

	a.printf("%s\n", a.bold("Nodes"))
	for _, line := range sortedCounts(s.nodes) {
		a.printf("  %s\n", line)
	}
	if len(s.geometries) > 0 {
		a.printf("%s\n", a.bold("Geometry"))
		for _, line := range sortedCounts(s.geometries) {
			a.printf("  %s\n", line)
		}
		a.printf("  primitives %d, vertices %d\n", s.primitives, s.vertices)
	}
	if len(s.lights) > 0 {
		a.printf("%s\n", a.bold("Lights"))
		for _, line := range sortedCounts(s.lights) {
			a.printf("  %s\n", line)
		}
	}
	a.printf("Labels: %d\n", s.labels)

	box := boundsOf(d.result.Roots)
	if !box.IsEmpty() {
		c, size := box.Center(), box.Size()
		a.printf("Bounds: center (%.3g, %.3g, %.3g) size (%.3g, %.3g, %.3g)\n",
			c.X, c.Y, c.Z, size.X, size.Y, size.Z)
	}

	host := d.host
	a.printf("\n%s\n", a.bold("Environment"))
	cam := host.Camera
	a.printf("  camera fov %.4g near %.4g far %.4g", cam.FOV, cam.Near, cam.Far)
	if cam.Position != nil {
		a.printf(" at (%.3g, %.3g, %.3g)", cam.Position.X, cam.Position.Y, cam.Position.Z)
	}
	if cam.FollowedID != "" {
		a.printf(" following %s", cam.FollowedID)
	}
	a.printf("\n")
	if bg := host.Background; bg != nil {
		switch {
		case bg.HDRURL != "":
			a.printf("  background hdr %s\n", bg.HDRURL)
		case bg.HasCubeMap():
			a.printf("  background cube map (ready: %t)\n", bg.CubeMapReady())
		default:
			a.printf("  background %s\n", a.swatch(bg.SkyColor))
		}
	}
	if f := host.Fog; f != nil {
		if f.Kind == scene.FogExponential {
			a.printf("  fog %s density %.4g\n", f.Kind, f.Density)
		} else {
			a.printf("  fog %s %.4g..%.4g\n", f.Kind, f.Near, f.Far)
		}
	}
	if host.World.Title != "" {
		a.printf("  title %q\n", host.World.Title)
	}

	if loaded, failed := d.loader.Stats(); loaded+failed > 0 {
		a.printf("\nTextures: %d loaded, %d failed\n", loaded, failed)
	}
	a.printDiagnostics(d)
}

func (a *app) printDiagnostics(d *decoded) {
	if len(d.result.Diagnostics) == 0 {
		return
	}
	a.printf("\n%s\n", a.styled(fmt.Sprintf("Diagnostics (%d)", len(d.result.Diagnostics)), "#E5C07B"))
	for _, diag := range d.result.Diagnostics {
		a.printf("  %s\n", diag)
	}
}

func (a *app) swatch(c math.Color) string {
	hex := fmt.Sprintf("#%06X", c.Hex())
	return a.styled("■", hex) + " " + hex
}

func boundsOf(roots []*scene.Node) math.Box3 {
	box := math.EmptyBox()
	for _, r := range roots {
		box = box.Union(r.WorldBounds())
	}
	return box
}

func (a *app) cmdTree(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: tree <file.x3d>", errUsage)
	}
	d, err := a.decode(args[0])
	if err != nil {
		return err
	}
	defer d.loader.Close()
	for _, r := range d.result.Roots {
		a.printTree(r, "", true, true)
	}
	a.printDiagnostics(d)
	return nil
}

// printTree prints n and its children with box-drawing connectors.
func (a *app) printTree(n *scene.Node, prefix string, last, root bool) {
	line := prefix
	childPrefix := prefix
	if !root {
		if last {
			line += "└── "
			childPrefix += "    "
		} else {
			line += "├── "
			childPrefix += "│   "
		}
	}
	a.printf("%s%s\n", line, a.describe(n))
	for i, c := range n.Children {
		a.printTree(c, childPrefix, i == len(n.Children)-1, false)
	}
}

func (a *app) describe(n *scene.Node) string {
	var b strings.Builder
	b.WriteString(a.styled(n.Kind.String(), kindColor(n.Kind)))
	if len(n.Labels) > 0 {
		b.WriteString(" ")
		b.WriteString(a.bold("[" + n.Labels.String() + "]"))
	}
	if g := n.Geometry; g != nil && g.Mesh != nil {
		fmt.Fprintf(&b, " %s %s×%d", g.Kind, n.RenderMode, g.Mesh.PrimitiveCount())
	}
	if m := n.Material; m != nil {
		fmt.Fprintf(&b, " %s", m.Kind)
	}
	if l := n.Light; l != nil {
		fmt.Fprintf(&b, " %s %.3g", l.Kind, l.Intensity)
		if l.CastsShadow() {
			b.WriteString(" shadows")
		}
	}
	if !n.Visible {
		b.WriteString(a.styled(" hidden", "#5C6370"))
	}
	return b.String()
}

func kindColor(k scene.NodeKind) string {
	switch k {
	case scene.KindShape:
		return "#98C379"
	case scene.KindLight, scene.KindLightTarget:
		return "#E5C07B"
	case scene.KindSwitch:
		return "#C678DD"
	default:
		return "#61AFEF"
	}
}

func (a *app) cmdLabels(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: labels <file.x3d> [pattern]", errUsage)
	}
	var g glob.Glob
	if len(args) > 1 {
		var err error
		if g, err = glob.Compile(args[1]); err != nil {
			return fmt.Errorf("bad pattern %q: %w", args[1], err)
		}
	}
	d, err := a.decode(args[0])
	if err != nil {
		return err
	}
	defer d.loader.Close()
	for _, e := range collectLabels(d.result.Roots, g) {
		a.printf("%-24s %s\n", a.bold(e.label), e.what)
	}
	return nil
}

type labelEntry struct {
	label string
	what  string
}

// collectLabels lists every label in the subtrees in traversal order.
// Shared objects are reported once. A nil glob matches everything.
func collectLabels(roots []*scene.Node, g glob.Glob) []labelEntry {
	var out []labelEntry
	seen := make(map[scene.Labeled]bool)
	add := func(obj scene.Labeled, what string) {
		if obj == nil || seen[obj] {
			return
		}
		seen[obj] = true
		for _, l := range *obj.LabelSet() {
			if g == nil || g.Match(l) {
				out = append(out, labelEntry{label: l, what: what})
			}
		}
	}
	for _, r := range roots {
		r.Traverse(func(n *scene.Node) bool {
			add(n, n.Kind.String())
			if n.Geometry != nil {
				add(n.Geometry, n.Geometry.Kind.String())
			}
			if n.Material != nil {
				add(n.Material, n.Material.Kind.String()+" material")
				for _, t := range n.Material.Textures() {
					add(t, "texture "+t.URL)
				}
			}
			return true
		})
	}
	return out
}

func (a *app) cmdLights(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: lights <file.x3d>", errUsage)
	}
	d, err := a.decode(args[0])
	if err != nil {
		return err
	}
	defer d.loader.Close()
	a.printLights(d)
	return nil
}

func (a *app) printLights(d *decoded) {
	count := 0
	for _, r := range d.result.Roots {
		r.Traverse(func(n *scene.Node) bool {
			if n.Light == nil {
				return true
			}
			count++
			l := n.Light
			p := n.WorldMatrix().TransformPoint(math.Vec3{})
			a.printf("%s %s intensity %.3g at (%.3g, %.3g, %.3g)\n",
				a.styled(l.Kind.String(), "#E5C07B"), a.swatch(l.Color), l.Intensity, p.X, p.Y, p.Z)
			if len(n.Labels) > 0 {
				a.printf("  labels %s\n", n.Labels)
			}
			if l.CastsShadow() {
				s := l.Shadow
				a.printf("  shadow map %d bias %.3g near %.3g far %.3g\n", s.MapSize, s.Bias, s.Near, s.Far)
				if l.Kind == scene.LightDirectional {
					a.printf("  shadow camera [%.3g, %.3g]x[%.3g, %.3g]\n", s.Left, s.Right, s.Bottom, s.Top)
				}
			}
			return true
		})
	}
	for _, amb := range d.host.Ambient {
		count++
		a.printf("%s %s intensity %.3g\n", a.styled(amb.Kind.String(), "#E5C07B"), a.swatch(amb.Color), amb.Intensity)
	}
	if count == 0 {
		a.printf("no lights\n")
	}
}

// cmdWatch re-decodes a file whenever it changes until interrupted.
func (a *app) cmdWatch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: watch <file.x3d>", errUsage)
	}
	path := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	a.reload(path)

	const debounce = 100 * time.Millisecond
	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", zap.Error(err))
		case <-timer:
			timer = nil
			a.reload(path)
		}
	}
}

func (a *app) reload(path string) {
	d, err := a.decode(path)
	if err != nil {
		a.printf("%s %v\n", a.styled("error", "#E06C75"), err)
		return
	}
	defer d.loader.Close()
	s := summarize(d.result.Roots)
	a.printf("%s %s: %d nodes, %d primitives, %d diagnostics (%s)\n",
		a.styled(time.Now().Format("15:04:05"), "#5C6370"), filepath.Base(path),
		total(s.nodes), s.primitives, len(d.result.Diagnostics), d.took.Round(time.Microsecond))
	for _, diag := range d.result.Diagnostics {
		a.printf("  %s\n", diag)
	}
}

func total[K comparable](m map[K]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// cmdPack builds a GRF archive from a directory tree, e.g. a texture set.
func (a *app) cmdPack(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: pack <out.grf> <dir>", errUsage)
	}
	out, dir := args[0], args[1]

	n, err := packDir(out, dir)
	if err != nil {
		return err
	}
	a.printf("Packed %d files into %s\n", n, out)
	return nil
}

func packDir(out, dir string) (int, error) {
	w := grf.NewWriter()
	count := 0
	err := filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil || e.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w.Add(filepath.ToSlash(rel), data)
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("writing %s: %w", out, err)
	}
	return count, f.Close()
}

func (a *app) cmdList(args []string) error {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	limit := fset.Int("n", 0, "Limit output to N files (0 = all)")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() < 1 {
		return fmt.Errorf("%w: list <file.grf> [pattern]", errUsage)
	}
	archive, err := grf.Open(fset.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	names, err := matchNames(archive, fset.Arg(1))
	if err != nil {
		return err
	}
	for i, name := range names {
		if *limit > 0 && i >= *limit {
			break
		}
		e, _ := archive.Entry(name)
		a.printf("%10d  %s\n", e.UncompressedSize, name)
	}
	return nil
}

// matchNames returns the archive names matching a case-insensitive glob,
// or every name for an empty pattern.
func matchNames(archive *grf.Archive, pattern string) ([]string, error) {
	if pattern == "" {
		return archive.List(), nil
	}
	g, err := glob.Compile(strings.ToLower(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	var out []string
	for _, name := range archive.List() {
		if g.Match(name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// cmdExtract writes matching archive entries under an output directory,
// keeping their paths.
func (a *app) cmdExtract(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: extract <file.grf> <pattern> [output_dir]", errUsage)
	}
	outputDir := "."
	if len(args) > 2 {
		outputDir = args[2]
	}

	archive, err := grf.Open(args[0])
	if err != nil {
		return err
	}
	defer archive.Close()

	names, err := matchNames(archive, args[1])
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: %s", fs.ErrNotExist, args[1])
	}

	extracted := 0
	for _, name := range names {
		data, err := archive.ReadFile(name)
		if err != nil {
			a.log.Warn("skipping entry", zap.String("name", name), zap.Error(err))
			continue
		}
		outputPath := filepath.Join(outputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return err
		}
		a.printf("Extracted: %s (%d bytes)\n", outputPath, len(data))
		extracted++
	}
	a.printf("\nExtracted %d files\n", extracted)
	return nil
}

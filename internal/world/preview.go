package world

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	normalTop   = r3.Vec{Y: 1}
	normalLeft  = r3.Vec{Z: 1} // screen-left faces point toward +Z
	normalRight = r3.Vec{X: 1}
)

// IsometricRenderer paints the scene as an isometric PNG, back to front.
type IsometricRenderer struct {
	Path string
}

func (r *IsometricRenderer) Name() string {
	return "isometric"
}

type isoLayout struct {
	frame      Bounds
	tileWidth  int
	tileHeight int
	blockHigh  int
	offsetX    int
	offsetY    int
}

type voxelPreview struct {
	localX int
	localY int
	localZ int
	voxel  Voxel
}

func newIsoLayout(frame Bounds, tileWidth int) isoLayout {
	if tileWidth < 2 {
		tileWidth = 2
	}
	size := frame.Size()
	return isoLayout{
		frame:      frame,
		tileWidth:  tileWidth,
		tileHeight: tileWidth / 2,
		blockHigh:  tileWidth / 2,
		offsetX:    size.Z*tileWidth/2 + tileWidth/2,
		offsetY:    size.Y * (tileWidth / 2),
	}
}

func (l isoLayout) imageSize() (int, int) {
	size := l.frame.Size()
	width := (size.X+size.Z)*l.tileWidth/2 + l.tileWidth
	height := (size.X+size.Z)*l.tileHeight/2 + size.Y*l.blockHigh + l.tileHeight
	return width, height
}

// corner projects the grid corner (x, z) at the top of layer y.
func (l isoLayout) corner(x, y, z int) image.Point {
	return image.Point{
		X: l.offsetX + (x-z)*l.tileWidth/2,
		Y: l.offsetY + (x+z)*l.tileHeight/2 - y*l.blockHigh - l.blockHigh,
	}
}

func (r *IsometricRenderer) Render(ctx context.Context, scene *Scene) error {
	if scene == nil {
		return fmt.Errorf("scene is nil")
	}
	env := scene.Environment()
	frame, ok := renderFrame(scene)
	if !ok {
		frame = Bounds{}
	}
	layout := newIsoLayout(frame, env.TileWidth)
	width, height := layout.imageSize()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{env.Background.NRGBA(env.Gamma)}, image.Point{}, draw.Src)

	if env.FloorHeight >= frame.Min.Y && env.FloorHeight <= frame.Max.Y {
		r.drawFloor(img, layout, env)
	}

	voxels := collectVoxelPreviews(scene, frame)
	sort.Slice(voxels, func(i, j int) bool {
		a, b := voxels[i], voxels[j]
		da, db := a.localX+a.localZ, b.localX+b.localZ
		if da != db {
			return da < db
		}
		if a.localY != b.localY {
			return a.localY < b.localY
		}
		return a.localX < b.localX
	})

	for i, info := range voxels {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		renderVoxelPreview(img, layout, env, info)
	}
	return writePNG(r.Path, img)
}

func (r *IsometricRenderer) drawFloor(img *image.NRGBA, layout isoLayout, env Environment) {
	size := layout.frame.Size()
	y := env.FloorHeight - layout.frame.Min.Y
	plane := []image.Point{
		layout.corner(0, y, 0),
		layout.corner(size.X, y, 0),
		layout.corner(size.X, y, size.Z),
		layout.corner(0, y, size.Z),
	}
	fill := env.FloorColor.Mul(env.Shade(normalTop)).NRGBA(env.Gamma)
	fillPolygon(img, plane, fill)
}

func collectVoxelPreviews(scene *Scene, frame Bounds) []voxelPreview {
	out := make([]voxelPreview, 0, 1024)
	scene.ForEachVoxel(func(pos BlockCoord, voxel Voxel) bool {
		if voxel.Empty() || !frame.Contains(pos) {
			return true
		}
		out = append(out, voxelPreview{
			localX: pos.X - frame.Min.X,
			localY: pos.Y - frame.Min.Y,
			localZ: pos.Z - frame.Min.Z,
			voxel:  voxel,
		})
		return true
	})
	return out
}

func renderVoxelPreview(img *image.NRGBA, layout isoLayout, env Environment, info voxelPreview) {
	x, y, z := info.localX, info.localY, info.localZ
	base := info.voxel.Color

	topColor := base.Mul(env.Shade(normalTop)).NRGBA(env.Gamma)
	leftColor := base.Mul(env.Shade(normalLeft)).NRGBA(env.Gamma)
	rightColor := base.Mul(env.Shade(normalRight)).NRGBA(env.Gamma)

	back := layout.corner(x, y, z)
	east := layout.corner(x+1, y, z)
	front := layout.corner(x+1, y, z+1)
	west := layout.corner(x, y, z+1)
	drop := image.Point{Y: layout.blockHigh}

	top := []image.Point{back, east, front, west}
	left := []image.Point{west, front, front.Add(drop), west.Add(drop)}
	right := []image.Point{east, front, front.Add(drop), east.Add(drop)}

	fillPolygon(img, left, leftColor)
	fillPolygon(img, right, rightColor)
	fillPolygon(img, top, topColor)

	if env.Edges {
		for _, face := range [][]image.Point{left, right, top} {
			outlinePolygon(img, face, darken(topColor, 0.55))
		}
	}
}

func darken(c color.NRGBA, factor float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// fillPolygon scanline-fills a convex or concave polygon.
func fillPolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	bounds := img.Bounds()
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, bounds.Min.Y)
	maxY = min(maxY, bounds.Max.Y-1)

	crossings := make([]int, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		crossings = crossings[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if a.Y == b.Y || y < min(a.Y, b.Y) || y >= max(a.Y, b.Y) {
				continue
			}
			crossings = append(crossings, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
		sort.Ints(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			x0 := max(crossings[i], bounds.Min.X)
			x1 := min(crossings[i+1], bounds.Max.X-1)
			for x := x0; x <= x1; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func outlinePolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA) {
	for i := range pts {
		drawLine(img, pts[i], pts[(i+1)%len(pts)], col)
	}
}

// drawLine is Bresenham's line; out-of-bounds pixels are ignored by SetNRGBA.
func drawLine(img *image.NRGBA, a, b image.Point, col color.NRGBA) {
	dx := absInt(b.X - a.X)
	dy := -absInt(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		img.SetNRGBA(x, y, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package terminal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// Clip-space w below this is treated as behind the camera.
const nearW float32 = 1e-5

var (
	gridColor     = mustHex("#333344")
	gridMainColor = mustHex("#4a4a60")
	axisColors    = [3]colorful.Color{mustHex("#e05050"), mustHex("#50c050"), mustHex("#5080e0")}
)

type geometryData struct {
	edges [][2]math.Vec3
}

/**
 * @brief Draws render packets as braille wireframes into a block of text.
 * Initialize and Resized take the raster size in dots; every terminal cell
 * holds 2x4 dots.
 */
type Backend struct {
	appName string
	canvas  *canvas

	mutex sync.RWMutex
	frame string

	geometries map[uint32]*geometryData
}

func New() *Backend {
	return &Backend{
		geometries: make(map[uint32]*geometryData),
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.appName = appName
	return b.Resized(uint16(appWidth), uint16(appHeight))
}

func (b *Backend) Shutdown() error {
	b.geometries = make(map[uint32]*geometryData)
	return nil
}

func (b *Backend) Resized(width, height uint16) error {
	cw, ch := int(width)/2, int(height)/4
	if cw < 1 || ch < 1 {
		return fmt.Errorf("terminal raster too small: %dx%d dots", width, height)
	}
	b.canvas = newCanvas(cw, ch)
	core.LogDebug("terminal raster resized to %dx%d cells", cw, ch)
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	if b.canvas == nil {
		return fmt.Errorf("terminal backend not initialized")
	}
	b.canvas.clear()
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	frame := strings.Join(b.canvas.lines(), "\n")
	b.mutex.Lock()
	b.frame = frame
	b.mutex.Unlock()
	return nil
}

func (b *Backend) CreateGeometry(geometry *metadata.Geometry, mesh *metadata.MeshData) error {
	if _, ok := b.geometries[geometry.ID]; ok {
		return fmt.Errorf("geometry %d already uploaded", geometry.ID)
	}
	data := &geometryData{edges: featureEdges(mesh)}
	b.geometries[geometry.ID] = data
	geometry.InternalData = data
	return nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	delete(b.geometries, geometry.ID)
	geometry.InternalData = nil
}

func (b *Backend) DrawNodes(packet *metadata.RenderPacket) error {
	viewProj := packet.View.Mul(packet.Projection)
	background := toColorful(packet.Background)

	b.drawGrid(packet.Grid, viewProj)

	// Opaque nodes first so transparent ones test against their depth.
	for pass := 0; pass < 2; pass++ {
		for _, n := range packet.Nodes {
			opaque := n.BlendMode == metadata.BlendModeOpaque
			if opaque != (pass == 0) || n.Geometry == nil {
				continue
			}
			data, ok := n.Geometry.InternalData.(*geometryData)
			if !ok {
				continue
			}
			color := toColorful(n.Color).BlendRgb(toColorful(n.Emissive), float64(n.EmissiveIntensity))
			s := stroke{
				color:      background.BlendRgb(color, float64(n.Opacity)),
				depthTest:  true,
				depthWrite: n.DepthWrite,
			}
			mvp := n.World.Mul(viewProj)
			for _, e := range data.edges {
				b.segment(e[0], e[1], mvp, s)
			}
		}
	}
	return nil
}

// Frame returns the last completed frame.
func (b *Backend) Frame() string {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.frame
}

func (b *Backend) drawGrid(grid metadata.GridHelper, viewProj math.Mat4) {
	if grid.Size <= 0 || grid.Divisions <= 0 {
		return
	}
	half := grid.Size / 2
	step := grid.Size / float32(grid.Divisions)
	for i := 0; i <= grid.Divisions; i++ {
		p := -half + float32(i)*step
		s := stroke{color: gridColor, depthTest: true}
		if i == grid.Divisions/2 {
			s.color = gridMainColor
		}
		b.segment(math.NewVec3(p, 0, -half), math.NewVec3(p, 0, half), viewProj, s)
		b.segment(math.NewVec3(-half, 0, p), math.NewVec3(half, 0, p), viewProj, s)
	}
	axes := [3]math.Vec3{{X: grid.AxisLength}, {Y: grid.AxisLength}, {Z: grid.AxisLength}}
	for i, a := range axes {
		b.segment(math.NewVec3Zero(), a, viewProj, stroke{color: axisColors[i], depthTest: true, depthWrite: true})
	}
}

// segment projects a world-space segment, clips it against the camera plane
// and rasterizes it.
func (b *Backend) segment(p0, p1 math.Vec3, mvp math.Mat4, s stroke) {
	c0, w0 := p0.TransformClip(mvp)
	c1, w1 := p1.TransformClip(mvp)
	if w0 < nearW && w1 < nearW {
		return
	}
	if w0 < nearW {
		t := (nearW - w0) / (w1 - w0)
		c0 = c0.Add(c1.Sub(c0).MulScalar(t))
		w0 = nearW
	} else if w1 < nearW {
		t := (nearW - w1) / (w0 - w1)
		c1 = c1.Add(c0.Sub(c1).MulScalar(t))
		w1 = nearW
	}
	n0 := c0.MulScalar(1 / w0)
	n1 := c1.MulScalar(1 / w1)
	x0, y0 := b.toDots(n0)
	x1, y1 := b.toDots(n1)
	b.canvas.line(x0, y0, n0.Z, x1, y1, n1.Z, s)
}

// toDots maps NDC x/y to raster dot coordinates, +y up. The result may lie
// far outside the raster; the canvas clips.
func (b *Backend) toDots(ndc math.Vec3) (float32, float32) {
	wDots := float32(b.canvas.w*2 - 1)
	hDots := float32(b.canvas.h*4 - 1)
	x := (ndc.X*0.5 + 0.5) * wDots
	y := (0.5 - ndc.Y*0.5) * hDots
	return x, y
}

func toColorful(c metadata.Color) colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		core.LogError("invalid color constant %s: %s", hex, err)
	}
	return c
}

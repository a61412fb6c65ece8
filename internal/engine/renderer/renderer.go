// Package renderer draws the globe wireframe and its markers with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/engine/geo"
	"github.com/Faultbox/midgard-globe/internal/globe"
	"github.com/Faultbox/midgard-globe/internal/logger"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Config sizes the renderer and the static geometry it builds.
type Config struct {
	Width  int // Drawable size in pixels
	Height int

	GlobeRadius float32
	GridStep    float32 // Degrees between wireframe lines, 15 when unset
	MarkerSize  float32 // Point size in pixels
}

var (
	gridColor   = [3]float32{0.2, 0.35, 0.6}
	markerColor = [3]float32{1, 1, 1}
	clearColor  = [3]float32{0x11 / 255.0, 0x11 / 255.0, 0x11 / 255.0}
)

// mesh is a position-only vertex array drawn with a single primitive type.
type mesh struct {
	vao, vbo uint32
	count    int32
	mode     uint32
}

func newMesh(mode uint32, vertices []float32) mesh {
	m := mesh{mode: mode, count: int32(len(vertices) / 3)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return m
}

func (m *mesh) draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
}

func (m *mesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	*m = mesh{}
}

// Renderer implements globe.Renderer on the current GL context.
type Renderer struct {
	cfg     Config
	shader  *flatShader
	grid    mesh
	markers mesh
	log     *zap.Logger
}

// New loads GL entry points and uploads the grid and marker geometry. The
// window's GL context must be current.
func New(cfg Config, markers []globe.Marker) (*Renderer, error) {
	log := logger.Named("renderer")

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init GL: %w", err)
	}
	log.Info("GL ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("device", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	shader, err := newFlatShader()
	if err != nil {
		return nil, fmt.Errorf("flat shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	points := make([]float32, 0, 3*len(markers))
	for _, m := range markers {
		points = append(points, m.Position.X, m.Position.Y, m.Position.Z)
	}

	r := &Renderer{
		cfg:     cfg,
		shader:  shader,
		grid:    newMesh(gl.LINES, gridLines(cfg.GlobeRadius, cfg.GridStep)),
		markers: newMesh(gl.POINTS, points),
		log:     log,
	}
	log.Debug("geometry uploaded",
		zap.Int32("grid_vertices", r.grid.count),
		zap.Int32("markers", r.markers.count),
	)
	return r, nil
}

func (r *Renderer) Close() {
	r.grid.delete()
	r.markers.delete()
	r.shader.delete()
	r.log.Debug("renderer closed")
}

// Resize sets the GL viewport to the new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.cfg.Width, r.cfg.Height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("viewport", zap.Int("width", width), zap.Int("height", height))
}

// Render draws f. Markers are children of the globe, so both meshes share
// the globe transform.
func (r *Renderer) Render(f *globe.Frame) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	mvp := f.Projection.Mul(f.View).Mul(f.GlobeTransform)
	s := r.shader
	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.mvp, 1, false, mvp.Ptr())

	gl.Uniform3fv(s.color, 1, &gridColor[0])
	gl.Uniform1f(s.pointSize, 1)
	r.grid.draw()

	gl.Uniform3fv(s.color, 1, &markerColor[0])
	gl.Uniform1f(s.pointSize, r.cfg.MarkerSize)
	r.markers.draw()

	gl.BindVertexArray(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x in frame %d", code, f.Index)
	}
	return nil
}

// gridLines returns parallels every step degrees and meridians every step
// degrees as GL_LINES vertex pairs.
func gridLines(radius, step float32) []float32 {
	if step <= 0 {
		step = 15
	}
	const arc = 2 // Degrees per line segment

	var out []float32
	segment := func(a, b math.Vec3) {
		out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	for lat := -90 + step; lat < 90; lat += step {
		for lon := float32(-180); lon < 180; lon += arc {
			segment(geo.Project(lat, lon, radius, 0), geo.Project(lat, lon+arc, radius, 0))
		}
	}
	for lon := float32(-180); lon < 180; lon += step {
		for lat := float32(-90); lat < 90; lat += arc {
			segment(geo.Project(lat, lon, radius, 0), geo.Project(lat+arc, lon, radius, 0))
		}
	}
	return out
}

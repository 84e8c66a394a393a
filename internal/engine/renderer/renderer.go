// Package renderer draws the playground scene: a ground grid and flat-shaded boxes.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/engine/shader"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
}

// Color is a linear RGB color.
type Color struct{ R, G, B float32 }

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config     Config
	projection math.Mat4
	view       math.Mat4

	program *shader.Program

	cubeVAO, cubeVBO uint32
	gridVAO, gridVBO uint32
	gridVerts        int32

	log *zap.Logger
}

const vertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProjection * uView * uModel * vec4(aPos, 1.0);
}
`

const fragmentSrc = `#version 410 core
in vec3 vNormal;
out vec4 FragColor;

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform float uFlat;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	float shade = mix(0.35 + 0.65 * diffuse, 1.0, uFlat);
	FragColor = vec4(uColor * shade, 1.0);
}
`

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if cfg.Near == 0 {
		cfg.Near = 0.1
	}
	if cfg.Far == 0 {
		cfg.Far = 500
	}
	r := &Renderer{
		config: cfg,
		view:   math.Identity(),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.Compile(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createCube()
	r.createGrid(50, 1)
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, vao := range []*uint32{&r.cubeVAO, &r.gridVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.cubeVBO, &r.gridVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport and projection.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.projection = math.Perspective(
		math.Deg2Rad(r.config.FOV),
		float32(width)/float32(height),
		r.config.Near, r.config.Far,
	)
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the frame and binds the camera view.
func (r *Renderer) Begin(view math.Mat4) {
	r.view = view
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uProjection", (*[16]float32)(&r.projection))
	r.program.SetMat4("uView", (*[16]float32)(&r.view))
	light := math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize()
	r.program.SetVec3("uLightDir", light.X, light.Y, light.Z)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// DrawGrid draws the ground grid at height y.
func (r *Renderer) DrawGrid(y float32, c Color) {
	model := math.Translate(0, y, 0)
	r.program.SetMat4("uModel", (*[16]float32)(&model))
	r.program.SetVec3("uColor", c.R, c.G, c.B)
	gl.Uniform1f(r.program.Uniform("uFlat"), 1)
	gl.BindVertexArray(r.gridVAO)
	gl.DrawArrays(gl.LINES, 0, r.gridVerts)
}

// DrawBox draws a unit cube transformed by model and scaled by size.
func (r *Renderer) DrawBox(model math.Mat4, size math.Vec3, c Color) {
	m := model.Mul(math.Scale(size.X, size.Y, size.Z))
	r.program.SetMat4("uModel", (*[16]float32)(&m))
	r.program.SetVec3("uColor", c.R, c.G, c.B)
	gl.Uniform1f(r.program.Uniform("uFlat"), 0)
	gl.BindVertexArray(r.cubeVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) createCube() {
	// Per face: normal, then the two triangles in CCW order.
	faces := []struct {
		n       math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},
		{math.Vec3{X: 1}, [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
	}
	vertices := make([]float32, 0, 36*6)
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			p := f.corners[i].Scale(0.5)
			vertices = append(vertices, p.X, p.Y, p.Z, f.n.X, f.n.Y, f.n.Z)
		}
	}
	r.cubeVAO, r.cubeVBO = upload(vertices)
}

func (r *Renderer) createGrid(halfExtent int, step float32) {
	ext := float32(halfExtent) * step
	vertices := make([]float32, 0, (2*halfExtent+1)*4*6)
	for i := -halfExtent; i <= halfExtent; i++ {
		o := float32(i) * step
		vertices = append(vertices,
			o, 0, -ext, 0, 1, 0,
			o, 0, ext, 0, 1, 0,
			-ext, 0, o, 0, 1, 0,
			ext, 0, o, 0, 1, 0,
		)
	}
	r.gridVerts = int32(len(vertices) / 6)
	r.gridVAO, r.gridVBO = upload(vertices)
}

// upload creates a VAO with interleaved position and normal attributes.
func upload(vertices []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

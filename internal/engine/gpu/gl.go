package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/crystal/internal/engine/shader"
)

const meshVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
}
`

const meshFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform bool uUseTexture;
uniform vec3 uFallbackColor;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

out vec4 fragColor;

void main() {
    vec3 base;
    float alpha = 1.0;
    if (uUseTexture) {
        vec4 tex = texture(uTexture, vTexCoord);
        base = tex.rgb;
        alpha = tex.a;
    } else {
        base = uFallbackColor;
    }
    float ndl = max(dot(normalize(vNormal), normalize(-uLightDir)), 0.0);
    vec3 lit = base * (uAmbient + uDiffuse * ndl);
    fragColor = vec4(lit, alpha);
}
`

const quadVertexShader = `#version 410 core
layout(location = 0) in vec2 aOffset;
layout(location = 1) in vec2 aTexCoord;

uniform vec2 uScreenSize;
uniform vec2 uPosition;
uniform vec2 uSize;

out vec2 vTexCoord;

void main() {
    vec2 px = uPosition + aOffset * uSize;
    // Pixel coordinates to clip space, origin top-left.
    vec2 clip = vec2(px.x / uScreenSize.x * 2.0 - 1.0,
                     1.0 - px.y / uScreenSize.y * 2.0);
    gl_Position = vec4(clip, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
`

const quadFragmentShader = `#version 410 core
in vec2 vTexCoord;

uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
    fragColor = texture(uTexture, vTexCoord);
}
`

// GLDevice renders through OpenGL 4.1 core. It must be created and used on
// the thread that owns the GL context.
type GLDevice struct {
	meshProgram uint32
	quadProgram uint32

	locMVP           int32
	locModel         int32
	locTexture       int32
	locUseTexture    int32
	locFallbackColor int32
	locLightDir      int32
	locAmbient       int32
	locDiffuse       int32

	locScreenSize   int32
	locQuadPosition int32
	locQuadSize     int32
	locQuadTexture  int32

	quadVAO uint32
	quadVBO uint32
}

// NewGLDevice compiles the engine pipelines. The GL context must already be
// current.
func NewGLDevice() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	d := &GLDevice{}

	program, err := shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	d.meshProgram = program
	d.locMVP = shader.GetUniform(program, "uMVP")
	d.locModel = shader.GetUniform(program, "uModel")
	d.locTexture = shader.GetUniform(program, "uTexture")
	d.locUseTexture = shader.GetUniform(program, "uUseTexture")
	d.locFallbackColor = shader.GetUniform(program, "uFallbackColor")
	d.locLightDir = shader.GetUniform(program, "uLightDir")
	d.locAmbient = shader.GetUniform(program, "uAmbient")
	d.locDiffuse = shader.GetUniform(program, "uDiffuse")

	program, err = shader.CompileProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		d.Destroy()
		return nil, fmt.Errorf("quad shader: %w", err)
	}
	d.quadProgram = program
	d.locScreenSize = shader.GetUniform(program, "uScreenSize")
	d.locQuadPosition = shader.GetUniform(program, "uPosition")
	d.locQuadSize = shader.GetUniform(program, "uSize")
	d.locQuadTexture = shader.GetUniform(program, "uTexture")

	d.createQuadGeometry()

	return d, nil
}

func (d *GLDevice) createQuadGeometry() {
	// Unit quad in offset space, two triangles.
	quad := []float32{
		// offset   texcoord
		0, 0, 0, 0,
		1, 0, 1, 0,
		1, 1, 1, 1,
		0, 0, 0, 0,
		1, 1, 1, 1,
		0, 1, 0, 1,
	}

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.BindVertexArray(d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 16, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 16, 8)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
}

type glVertexBuffer struct {
	vao   uint32
	vbo   uint32
	count int
}

func (b *glVertexBuffer) Len() int { return b.count }

func (b *glVertexBuffer) Destroy() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
}

type glIndexBuffer struct {
	ebo   uint32
	count int
}

func (b *glIndexBuffer) Len() int { return b.count }

func (b *glIndexBuffer) Destroy() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
}

type glTexture struct {
	id     uint32
	width  uint32
	height uint32
}

func (t *glTexture) Size() (uint32, uint32) { return t.width, t.height }

func (t *glTexture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
	}
}

// completedUpload is the trivial future: GL uploads are synchronous, so the
// upload has already completed by the time the future exists.
type completedUpload struct{}

func (completedUpload) Wait() {}

// CreateVertexBuffer uploads vertices into a VAO/VBO pair.
func (d *GLDevice) CreateVertexBuffer(verts []Vertex) (VertexBuffer, error) {
	if len(verts) == 0 {
		return nil, errors.New("empty vertex data")
	}

	b := &glVertexBuffer{count: len(verts)}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*vertexSize, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return b, nil
}

// CreateIndexBuffer uploads a triangle index list.
func (d *GLDevice) CreateIndexBuffer(indices []uint32) (IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, errors.New("empty index data")
	}

	b := &glIndexBuffer{count: len(indices)}
	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	return b, nil
}

// CreateTexture uploads RGBA pixels into an immutable 2D texture.
func (d *GLDevice) CreateTexture(width, height uint32, rgba []byte) (Texture, UploadFuture, error) {
	if uint32(len(rgba)) != width*height*4 {
		return nil, nil, fmt.Errorf("texture data length %d does not match %dx%d RGBA", len(rgba), width, height)
	}

	t := &glTexture{width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return t, completedUpload{}, nil
}

// BeginFrame clears the default framebuffer and sets up 3D state.
func (d *GLDevice) BeginFrame(width, height int32, clearColor [4]float32) {
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// DrawMesh issues one lit mesh group draw.
func (d *GLDevice) DrawMesh(draw MeshDraw) {
	vb, ok := draw.Vertices.(*glVertexBuffer)
	if !ok || vb == nil {
		return
	}

	gl.UseProgram(d.meshProgram)
	mvp := draw.MVP
	model := draw.Model
	gl.UniformMatrix4fv(d.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(d.locModel, 1, false, model.Ptr())
	gl.Uniform3f(d.locLightDir, draw.Lights.Direction[0], draw.Lights.Direction[1], draw.Lights.Direction[2])
	gl.Uniform3f(d.locAmbient, draw.Lights.Ambient[0], draw.Lights.Ambient[1], draw.Lights.Ambient[2])
	gl.Uniform3f(d.locDiffuse, draw.Lights.Diffuse[0], draw.Lights.Diffuse[1], draw.Lights.Diffuse[2])

	if tex, ok := draw.Texture.(*glTexture); ok && tex != nil {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Uniform1i(d.locTexture, 0)
		gl.Uniform1i(d.locUseTexture, 1)
	} else {
		gl.Uniform1i(d.locUseTexture, 0)
		gl.Uniform3f(d.locFallbackColor, draw.Fallback[0], draw.Fallback[1], draw.Fallback[2])
	}

	gl.BindVertexArray(vb.vao)
	if ib, ok := draw.Index.(*glIndexBuffer); ok && ib != nil {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ebo)
		gl.DrawElements(gl.TRIANGLES, int32(ib.count), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(vb.count))
	}
	gl.BindVertexArray(0)
}

// DrawQuad issues one screen-space GUI quad draw. Depth testing is off so
// quads layer in submission order.
func (d *GLDevice) DrawQuad(draw QuadDraw) {
	tex, ok := draw.Texture.(*glTexture)
	if !ok || tex == nil {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(d.quadProgram)
	gl.Uniform2f(d.locScreenSize, float32(draw.ScreenW), float32(draw.ScreenH))
	gl.Uniform2f(d.locQuadPosition, float32(draw.X), float32(draw.Y))
	gl.Uniform2f(d.locQuadSize, float32(draw.W), float32(draw.H))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.Uniform1i(d.locQuadTexture, 0)

	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// EndFrame is a no-op for GL; the window swaps buffers.
func (d *GLDevice) EndFrame() {}

// Destroy releases the pipelines and shared geometry.
func (d *GLDevice) Destroy() {
	if d.quadVBO != 0 {
		gl.DeleteBuffers(1, &d.quadVBO)
	}
	if d.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &d.quadVAO)
	}
	if d.meshProgram != 0 {
		gl.DeleteProgram(d.meshProgram)
	}
	if d.quadProgram != 0 {
		gl.DeleteProgram(d.quadProgram)
	}
}

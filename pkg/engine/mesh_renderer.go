package engine

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"flycam/pkg/assets"
	"flycam/pkg/scene"
)

// MeshRenderer draws one textured, indexed mesh with a single shader program
type MeshRenderer struct {
	program       *ShaderProgram
	vertexArray   uint32
	vertexBuffer  uint32
	elementBuffer uint32
	texture       uint32
	indexCount    int32

	placement  scene.Placement
	lens       scene.Lens
	clearColor [4]float32
}

// NewMeshRenderer uploads mesh and pixels and publishes the static model and projection
func NewMeshRenderer(program *ShaderProgram, mesh assets.Mesh, pixels *image.NRGBA,
	placement scene.Placement, lens scene.Lens, clearColor [4]float32, width, height int) (*MeshRenderer, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	r := &MeshRenderer{
		program:    program,
		indexCount: int32(len(mesh.Indices)),
		placement:  placement,
		lens:       lens,
		clearColor: clearColor,
	}

	gl.Enable(gl.DEPTH_TEST)
	r.uploadMesh(mesh)
	r.uploadTexture(pixels)

	if err := program.SetInt(uniformTexture, 0); err != nil {
		r.Close()
		return nil, err
	}
	if err := program.SetMat4(uniformModel, placement.Model()); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.Resize(width, height); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// uploadMesh creates the VAO with position (location 0) and uv (location 1) attributes
func (r *MeshRenderer) uploadMesh(mesh assets.Mesh) {
	gl.GenVertexArrays(1, &r.vertexArray)
	gl.GenBuffers(1, &r.vertexBuffer)
	gl.GenBuffers(1, &r.elementBuffer)

	gl.BindVertexArray(r.vertexArray)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elementBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(assets.FloatsPerVertex * 4)
	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Texture coord attribute
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (r *MeshRenderer) uploadTexture(pixels *image.NRGBA) {
	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.MIRRORED_REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.MIRRORED_REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	size := pixels.Bounds().Size()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Render clears the framebuffer and draws the mesh through view
func (r *MeshRenderer) Render(view mgl32.Mat4) error {
	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if err := r.program.SetMat4(uniformView, view); err != nil {
		return err
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.BindVertexArray(r.vertexArray)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return nil
}

// Resize updates the viewport and republishes the projection
func (r *MeshRenderer) Resize(width, height int) error {
	gl.Viewport(0, 0, int32(width), int32(height))
	if err := r.program.SetMat4(uniformProjection, r.lens.Projection(width, height)); err != nil {
		return fmt.Errorf("failed to update projection: %w", err)
	}
	return nil
}

// Close releases GPU resources
func (r *MeshRenderer) Close() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.elementBuffer != 0 {
		gl.DeleteBuffers(1, &r.elementBuffer)
		r.elementBuffer = 0
	}
	if r.vertexBuffer != 0 {
		gl.DeleteBuffers(1, &r.vertexBuffer)
		r.vertexBuffer = 0
	}
	if r.vertexArray != 0 {
		gl.DeleteVertexArrays(1, &r.vertexArray)
		r.vertexArray = 0
	}
}

package engine

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileError is returned when a shader stage fails to compile
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError is returned when a shader program fails to link
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

// UniformError is returned when the active program has no uniform with the given name
type UniformError struct {
	Name string
}

func (e *UniformError) Error() string {
	return fmt.Sprintf("no such uniform %q", e.Name)
}

// ShaderProgram is a linked vertex/fragment program
type ShaderProgram struct {
	id       uint32
	uniforms map[string]int32
}

// NewShaderProgram compiles both stages and links them
func NewShaderProgram(vertexSource, fragmentSource string) (*ShaderProgram, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	if program == 0 {
		return nil, fmt.Errorf("failed to create shader program")
	}
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return nil, &LinkError{Log: strings.TrimRight(log, "\x00")}
	}

	return &ShaderProgram{id: program, uniforms: make(map[string]int32)}, nil
}

// compileShader compiles one stage; source must be NUL terminated
func compileShader(source string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}

	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, fmt.Errorf("failed to create %s shader", stageName(shaderType))
	}

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, &CompileError{Stage: stageName(shaderType), Log: strings.TrimRight(log, "\x00")}
	}

	return shader, nil
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("0x%x", shaderType)
	}
}

// Use makes the program current
func (p *ShaderProgram) Use() {
	gl.UseProgram(p.id)
}

// SetInt sets an int (or sampler) uniform
func (p *ShaderProgram) SetInt(name string, value int32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	gl.Uniform1i(loc, value)
	return nil
}

// SetFloat sets a float uniform
func (p *ShaderProgram) SetFloat(name string, value float32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	gl.Uniform1f(loc, value)
	return nil
}

// SetMat4 sets a 4x4 matrix uniform; mgl32 matrices are already column-major
func (p *ShaderProgram) SetMat4(name string, value mgl32.Mat4) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	gl.UniformMatrix4fv(loc, 1, false, &value[0])
	return nil
}

// location activates the program and resolves name, caching the result
func (p *ShaderProgram) location(name string) (int32, error) {
	p.Use()
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}

	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc == -1 {
		return -1, &UniformError{Name: name}
	}
	p.uniforms[name] = loc
	return loc, nil
}

// Delete releases the GL program
func (p *ShaderProgram) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

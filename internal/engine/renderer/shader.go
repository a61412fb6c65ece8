package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const flatVertexSource = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 uMVP;
uniform float uPointSize;
void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
}
` + "\x00"

const flatFragmentSource = `#version 410 core
uniform vec3 uColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(uColor, 1.0);
}
` + "\x00"

// flatShader draws untextured geometry in one colour.
type flatShader struct {
	program   uint32
	mvp       int32
	color     int32
	pointSize int32
}

func newFlatShader() (*flatShader, error) {
	program, err := linkProgram(flatVertexSource, flatFragmentSource)
	if err != nil {
		return nil, err
	}
	return &flatShader{
		program:   program,
		mvp:       gl.GetUniformLocation(program, gl.Str("uMVP\x00")),
		color:     gl.GetUniformLocation(program, gl.Str("uColor\x00")),
		pointSize: gl.GetUniformLocation(program, gl.Str("uPointSize\x00")),
	}, nil
}

func (s *flatShader) delete() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	stages := []struct {
		kind uint32
		name string
		src  string
	}{
		{gl.VERTEX_SHADER, "vertex", vertexSrc},
		{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	}

	program := gl.CreateProgram()
	for _, st := range stages {
		shader, err := compile(st.kind, st.src)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, fmt.Errorf("%s shader: %w", st.name, err)
		}
		gl.AttachShader(program, shader)
		// Flagged for deletion; freed when the program is.
		gl.DeleteShader(shader)
	}
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}
	return program, nil
}

func compile(kind uint32, src string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return shader, nil
}

func infoLog(
	obj uint32,
	param func(uint32, uint32, *int32),
	read func(uint32, int32, *int32, *uint8),
) string {
	var n int32
	param(obj, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "no info log"
	}
	buf := strings.Repeat("\x00", int(n)+1)
	read(obj, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00\n")
}

package engine

// Built-in shader pair used when the config names no shader files

// Vertex shader: textured geometry transformed by model, view and projection
const defaultVertexShaderSource = `
#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

// Fragment shader: plain texture lookup
const defaultFragmentShaderSource = `
#version 330 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D texture0;

void main() {
    FragColor = texture(texture0, TexCoord);
}
`

// Uniform names shared by the built-in shaders and any replacement pair
const (
	uniformModel      = "model"
	uniformView       = "view"
	uniformProjection = "projection"
	uniformTexture    = "texture0"
)

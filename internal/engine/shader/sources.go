package shader

import (
	"fmt"
	"os"
)

// Uniform names of the lit program.
const (
	ViewProjection     = "viewProjection"
	ModelMatrix        = "modelMatrix"
	AmbientReflectance = "ambientReflectance"
	DiffuseReflectance = "diffuseReflectance"
	AmbientLight       = "ambientLight"
	LightPosition      = "lightPosition"
	LightColor         = "lightColor"
)

// LitUniforms lists every uniform the renderer uploads to the lit program.
var LitUniforms = []string{
	ViewProjection,
	ModelMatrix,
	AmbientReflectance,
	DiffuseReflectance,
	AmbientLight,
	LightPosition,
	LightColor,
}

// LitVertexSource evaluates single-light Gouraud shading per vertex.
const LitVertexSource = `#version 410 core

layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;

uniform mat4 viewProjection;
uniform mat4 modelMatrix;
uniform vec4 ambientReflectance;
uniform vec4 diffuseReflectance;
uniform vec4 ambientLight;
uniform vec3 lightPosition;
uniform vec4 lightColor;

out vec4 vertexColor;

void main() {
    vec4 P = modelMatrix * vec4(position, 1.0);
    vec3 N = mat3(modelMatrix) * normal;
    if (length(N) > 0.0) {
        N = normalize(N);
    }
    vec3 L = normalize(P.xyz - lightPosition);

    vec4 color = ambientReflectance * ambientLight;
    float c = -dot(N, L);
    if (c > 0.0) {
        color += diffuseReflectance * lightColor * c;
    }

    gl_Position = viewProjection * P;
    vertexColor = vec4(color.rgb, 1.0);
}
`

// LitFragmentSource passes the interpolated vertex color through.
const LitFragmentSource = `#version 410 core

in vec4 vertexColor;
out vec4 fragColor;

void main() {
    fragColor = vertexColor;
}
`

// LineVertexSource draws points already in clip space.
const LineVertexSource = `#version 410 core

layout(location = 0) in vec4 position;

void main() {
    gl_Position = position;
}
`

// LineFragmentSource fills lines with a flat color.
const LineFragmentSource = `#version 410 core

uniform vec4 lineColor;
out vec4 fragColor;

void main() {
    fragColor = lineColor;
}
`

// Sources returns the lit program sources, reading each from its file when
// a path is given and falling back to the built-in source otherwise.
func Sources(vertexPath, fragmentPath string) (vertex, fragment string, err error) {
	vertex, err = readOr(vertexPath, LitVertexSource)
	if err != nil {
		return "", "", err
	}
	fragment, err = readOr(fragmentPath, LitFragmentSource)
	if err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

func readOr(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return string(data), nil
}

package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Light is a directional light plus a flat ambient term
type Light struct {
	Direction rl.Vector3
	Color     rl.Color
	Intensity float32
	Ambient   float32
	// Shadows enables blob shadows under CastShadow meshes
	Shadows bool
}

// NewDirectionalLight shines from position towards the origin
func NewDirectionalLight(position rl.Vector3, color rl.Color, intensity, ambient float32) Light {
	return Light{
		Direction: rl.Vector3Normalize(rl.Vector3Negate(position)),
		Color:     color,
		Intensity: intensity,
		Ambient:   ambient,
		Shadows:   true,
	}
}

// ColorFloat is the light color scaled by intensity
func (l Light) ColorFloat() []float32 {
	return scaledColor(l.Color, l.Intensity)
}

// AmbientFloat is the light color scaled by the ambient factor
func (l Light) AmbientFloat() []float32 {
	return scaledColor(l.Color, l.Ambient)
}

// Diffuse is the brightness of a surface with the given normal, before the
// final clamp in the shader.
func (l Light) Diffuse(normal rl.Vector3) float32 {
	d := -rl.Vector3DotProduct(rl.Vector3Normalize(normal), l.Direction)
	if d < 0 {
		d = 0
	}
	return l.Ambient + l.Intensity*d
}

func scaledColor(c rl.Color, k float32) []float32 {
	return []float32{
		float32(c.R) / 255 * k,
		float32(c.G) / 255 * k,
		float32(c.B) / 255 * k,
		1,
	}
}

const lightingVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;

out vec3 fragPosition;
out vec3 fragNormal;

void main()
{
    fragPosition = vec3(matModel*vec4(vertexPosition, 1.0));
    fragNormal = normalize(vec3(matNormal*vec4(vertexNormal, 1.0)));
    gl_Position = mvp*vec4(vertexPosition, 1.0);
}
`

const lightingFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;

uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform vec4 lightColor;
uniform vec4 ambient;
uniform vec3 viewPos;
uniform float metalness;
uniform float roughness;

out vec4 finalColor;

void main()
{
    vec3 n = normalize(fragNormal);
    vec3 l = -normalize(lightDir);
    float diff = max(dot(n, l), 0.0);

    float spec = 0.0;
    if (diff > 0.0) {
        vec3 v = normalize(viewPos - fragPosition);
        vec3 h = normalize(l + v);
        spec = pow(max(dot(n, h), 0.0), mix(96.0, 4.0, roughness))*mix(0.04, 0.5, metalness);
    }

    vec3 lit = colDiffuse.rgb*(ambient.rgb + lightColor.rgb*diff*(1.0 - 0.5*metalness)) + lightColor.rgb*spec;
    finalColor = vec4(min(lit, vec3(1.0)), colDiffuse.a);
}
`

// lightingShader holds the compiled program and its uniform locations
type lightingShader struct {
	shader       rl.Shader
	lightDirLoc  int32
	lightColLoc  int32
	ambientLoc   int32
	viewPosLoc   int32
	metalnessLoc int32
	roughnessLoc int32
}

func loadLightingShader() (*lightingShader, bool) {
	shader := rl.LoadShaderFromMemory(lightingVS, lightingFS)
	if !rl.IsShaderValid(shader) {
		return nil, false
	}
	return &lightingShader{
		shader:       shader,
		lightDirLoc:  rl.GetShaderLocation(shader, "lightDir"),
		lightColLoc:  rl.GetShaderLocation(shader, "lightColor"),
		ambientLoc:   rl.GetShaderLocation(shader, "ambient"),
		viewPosLoc:   rl.GetShaderLocation(shader, "viewPos"),
		metalnessLoc: rl.GetShaderLocation(shader, "metalness"),
		roughnessLoc: rl.GetShaderLocation(shader, "roughness"),
	}, true
}

func (s *lightingShader) setLight(l Light) {
	rl.SetShaderValue(s.shader, s.lightDirLoc, []float32{l.Direction.X, l.Direction.Y, l.Direction.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(s.shader, s.lightColLoc, l.ColorFloat(), rl.ShaderUniformVec4)
	rl.SetShaderValue(s.shader, s.ambientLoc, l.AmbientFloat(), rl.ShaderUniformVec4)
}

func (s *lightingShader) setView(eye rl.Vector3) {
	rl.SetShaderValue(s.shader, s.viewPosLoc, []float32{eye.X, eye.Y, eye.Z}, rl.ShaderUniformVec3)
}

func (s *lightingShader) setSurface(metalness, roughness float32) {
	rl.SetShaderValue(s.shader, s.metalnessLoc, []float32{metalness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.roughnessLoc, []float32{roughness}, rl.ShaderUniformFloat)
}

func (s *lightingShader) unload() {
	rl.UnloadShader(s.shader)
}

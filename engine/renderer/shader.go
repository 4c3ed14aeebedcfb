package renderer

import "fmt"

// forwardShaderSource is the single forward-lit pipeline used by the wgpu backend.
// The lighting and tone-mapping mirror shade and camera.Tonemapping.Apply so both
// backends produce the same image up to rasterization and bloom.
//
// Bind groups:
//
//	group 0: binding 0 camera (GPUCameraUniform), binding 1 lights (MarshalLightBuffer)
//	group 1: binding 0 model (GPUModelUniform), binding 1 material (GPUMaterial)
const forwardShaderSource = `
const ENCODE_SRGB: bool = %t;
const PI: f32 = 3.14159265;

struct Camera {
    view_proj: mat4x4<f32>,
    position: vec3<f32>,
    exposure: f32,
    tonemapping: u32,
    hdr: u32,
    pad0: u32,
    pad1: u32,
};

struct Light {
    position: vec3<f32>,
    light_type: u32,
    color: vec3<f32>,
    intensity: f32,
    direction: vec3<f32>,
    range: f32,
    inner_cone: f32,
    outer_cone: f32,
    casts_shadows: u32,
    pad0: u32,
};

struct Lights {
    ambient: vec3<f32>,
    count: u32,
    items: array<Light, %d>,
};

struct Model {
    model: mat4x4<f32>,
    normal: mat4x4<f32>,
};

struct Material {
    base_color: vec4<f32>,
    metallic: f32,
    roughness: f32,
    pad0: f32,
    pad1: f32,
};

@group(0) @binding(0) var<uniform> camera: Camera;
@group(0) @binding(1) var<uniform> lights: Lights;
@group(1) @binding(0) var<uniform> object: Model;
@group(1) @binding(1) var<uniform> material: Material;

struct VertexIn {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

struct VertexOut {
    @builtin(position) clip: vec4<f32>,
    @location(0) world_pos: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexIn) -> VertexOut {
    var out: VertexOut;
    let world = object.model * vec4<f32>(in.position, 1.0);
    out.clip = camera.view_proj * world;
    out.world_pos = world.xyz;
    out.normal = (object.normal * vec4<f32>(in.normal, 0.0)).xyz;
    out.uv = in.uv;
    return out;
}

fn luminance(c: vec3<f32>) -> f32 {
    return dot(c, vec3<f32>(0.2126, 0.7152, 0.0722));
}

fn tonemap(c: vec3<f32>) -> vec3<f32> {
    var out = c;
    switch camera.tonemapping {
        case 1u: {
            out = c / (vec3<f32>(1.0) + c);
        }
        case 2u: {
            let l = luminance(c);
            if (l > 0.0) {
                out = c * ((l / (1.0 + l)) / l);
            }
        }
        case 3u: {
            out = (c * (2.51 * c + 0.03)) / (c * (2.43 * c + 0.59) + 0.14);
        }
        case 4u: {
            let l = luminance(c);
            if (l <= 0.0) {
                out = vec3<f32>(0.0);
            } else {
                let mapped = l * l / (l * l + 0.18 * l + 0.02);
                out = mix(c / l * mapped, vec3<f32>(mapped), smoothstep(0.6, 4.0, l));
            }
        }
        default: {}
    }
    return clamp(out, vec3<f32>(0.0), vec3<f32>(1.0));
}

fn linear_to_srgb(c: vec3<f32>) -> vec3<f32> {
    let lo = c * 12.92;
    let hi = 1.055 * pow(c, vec3<f32>(1.0 / 2.4)) - 0.055;
    return select(hi, lo, c <= vec3<f32>(0.0031308));
}

fn range_attenuation(dist: f32, range: f32) -> f32 {
    let ratio = dist / range;
    let window = clamp(1.0 - ratio * ratio * ratio * ratio, 0.0, 1.0);
    return window * window / max(dist * dist, 1e-4);
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    var n = normalize(in.normal);
    let v = normalize(camera.position - in.world_pos);
    if (dot(n, v) < 0.0) {
        n = -n;
    }

    let base = material.base_color.rgb;
    let alpha = material.roughness * material.roughness;
    let diffuse = base * (1.0 - material.metallic);
    let specular = mix(vec3<f32>(0.04), base, material.metallic);
    let shininess = clamp(2.0 / max(alpha * alpha, 1e-6) - 2.0, 1.0, 256.0);
    let spec_norm = (shininess + 8.0) / (8.0 * PI);

    var color = lights.ambient * (diffuse + specular);
    for (var i = 0u; i < lights.count; i = i + 1u) {
        let l = lights.items[i];
        var to_light = -l.direction;
        var irradiance = l.intensity;
        if (l.light_type != 0u) {
            let d = l.position - in.world_pos;
            let dist = length(d);
            if (dist <= 0.0 || dist >= l.range) {
                continue;
            }
            to_light = d / dist;
            irradiance = l.intensity * range_attenuation(dist, l.range);
            if (l.light_type == 2u) {
                let scale = 1.0 / max(l.inner_cone - l.outer_cone, 1e-4);
                let a = clamp(dot(l.direction, -to_light) * scale - l.outer_cone * scale, 0.0, 1.0);
                irradiance = irradiance * a * a;
            }
        }
        let n_dot_l = dot(n, to_light);
        if (n_dot_l <= 0.0 || irradiance <= 0.0) {
            continue;
        }
        let h = normalize(to_light + v);
        let spec = spec_norm * pow(max(dot(n, h), 0.0), shininess);
        color += (diffuse / PI + specular * spec) * l.color * irradiance * n_dot_l;
    }

    var exposed = color * camera.exposure;
    if (camera.hdr == 0u) {
        exposed = min(exposed, vec3<f32>(1.0));
    }
    var mapped = tonemap(exposed);
    if (ENCODE_SRGB) {
        mapped = linear_to_srgb(mapped);
    }
    return vec4<f32>(mapped, 1.0);
}
`

// forwardShader returns the WGSL source for a surface that does or does not apply the
// sRGB transfer itself.
//
// Parameters:
//   - encodeSRGB: true when the surface format is linear and the shader must encode
//   - maxLights: the light array length, matching light.MaxGPULights
//
// Returns:
//   - string: WGSL source
func forwardShader(encodeSRGB bool, maxLights int) string {
	return fmt.Sprintf(forwardShaderSource, encodeSRGB, maxLights)
}

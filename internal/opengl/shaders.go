package opengl

// Built-in shader sources, keyed by the file name a shader directory may
// override them with.
var builtinShaders = map[string]string{
	"pbr.vs":          pbrVertSrc,
	"pbr.fs":          pbrFragSrc,
	"light.vs":        lightVertSrc,
	"light.fs":        lightFragSrc,
	"skybox.vs":       skyboxVertSrc,
	"skybox.fs":       skyboxFragSrc,
	"shadow_depth.vs": depthVertSrc,
	"shadow_depth.gs": depthGeomSrc,
	"shadow_depth.fs": depthFragSrc,
	"cubemap.vs":      cubemapVertSrc,
	"equirect.fs":     equirectFragSrc,
	"irradiance.fs":   irradianceFragSrc,
	"prefilter.fs":    prefilterFragSrc,
	"quad.vs":         quadVertSrc,
	"brdf.fs":         brdfFragSrc,
	"blur.fs":         blurFragSrc,
	"composite.fs":    compositeFragSrc,
}

// ── Lighting ──────────────────────────────────────────────────────────────────

// pbrVertSrc builds the TBN basis and moves light and camera into tangent
// space for parallax mapping.
const pbrVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoords;
layout(location = 4) in vec3 aTangent;
layout(location = 5) in vec3 aBitangent;

layout(std140) uniform Matrices {
    mat4 projection;
    mat4 view;
};

uniform mat4 model;
uniform mat4 normalMatrix;
uniform vec3 lightPos;
uniform vec3 viewPos;

out VS_OUT {
    vec3 FragPos;
    vec2 TexCoords;
    vec3 TangentLightPos;
    vec3 TangentViewPos;
    vec3 TangentFragPos;
    mat3 TBN;
} vs_out;

void main() {
    vec4 world = model * vec4(aPos, 1.0);
    vs_out.FragPos   = world.xyz;
    vs_out.TexCoords = aTexCoords;

    mat3 nm = mat3(normalMatrix);
    vec3 N = normalize(nm * aNormal);
    vec3 T = normalize(nm * aTangent);
    T = normalize(T - dot(T, N) * N);
    vec3 B = cross(N, T);
    if (dot(B, nm * aBitangent) < 0.0) {
        B = -B;
    }
    vs_out.TBN = mat3(T, B, N);

    mat3 toTangent = transpose(vs_out.TBN);
    vs_out.TangentLightPos = toTangent * lightPos;
    vs_out.TangentViewPos  = toTangent * viewPos;
    vs_out.TangentFragPos  = toTangent * vs_out.FragPos;

    gl_Position = projection * view * world;
}
` + "\x00"

// pbrFragSrc: Burley diffuse, GGX/Smith/Schlick specular, split-sum IBL,
// PCF cube shadows and parallax occlusion mapping. BrightColor receives the
// full shaded colour; the blur chain spreads all of it.
const pbrFragSrc = `
#version 410 core
layout(location = 0) out vec4 FragColor;
layout(location = 1) out vec4 BrightColor;

in VS_OUT {
    vec3 FragPos;
    vec2 TexCoords;
    vec3 TangentLightPos;
    vec3 TangentViewPos;
    vec3 TangentFragPos;
    mat3 TBN;
} fs_in;

struct PointLight {
    vec3 position_world;
    vec3 color;
};
uniform PointLight pointLights[1];

uniform sampler2D albedoMap;
uniform sampler2D normalMap;
uniform sampler2D metallicMap;
uniform sampler2D roughnessMap;
uniform sampler2D aoMap;
uniform sampler2D heightMap;

uniform samplerCube shadowMap;
uniform samplerCube irradianceMap;
uniform samplerCube prefilterMap;
uniform sampler2D   brdfLUT;

uniform vec3  viewPos_world;
uniform float far_plane;
uniform bool  shadows;
uniform bool  parallax;
uniform float height_scale;
uniform float maxReflectionLod;

const float PI = 3.14159265359;

const vec3 gridSamplingDisk[20] = vec3[](
    vec3(1, 1,  1), vec3( 1, -1,  1), vec3(-1, -1,  1), vec3(-1, 1,  1),
    vec3(1, 1, -1), vec3( 1, -1, -1), vec3(-1, -1, -1), vec3(-1, 1, -1),
    vec3(1, 1,  0), vec3( 1, -1,  0), vec3(-1, -1,  0), vec3(-1, 1,  0),
    vec3(1, 0,  1), vec3(-1,  0,  1), vec3( 1,  0, -1), vec3(-1, 0, -1),
    vec3(0, 1,  1), vec3( 0, -1,  1), vec3( 0, -1, -1), vec3( 0, 1, -1)
);

vec2 parallaxMapping(vec2 texCoords, vec3 viewDir) {
    const float minLayers = 8.0;
    const float maxLayers = 32.0;
    float numLayers  = mix(maxLayers, minLayers, abs(dot(vec3(0.0, 0.0, 1.0), viewDir)));
    float layerDepth = 1.0 / numLayers;
    vec2  deltaUV    = viewDir.xy / max(viewDir.z, 0.05) * height_scale / numLayers;

    vec2  uv           = texCoords;
    float depth        = textureLod(heightMap, uv, 0.0).r;
    float currentLayer = 0.0;
    for (int i = 0; i < 32 && currentLayer < depth; ++i) {
        uv    -= deltaUV;
        depth  = textureLod(heightMap, uv, 0.0).r;
        currentLayer += layerDepth;
    }

    vec2  prevUV = uv + deltaUV;
    float after  = depth - currentLayer;
    float before = textureLod(heightMap, prevUV, 0.0).r - currentLayer + layerDepth;
    float weight = after / (after - before);
    return mix(uv, prevUV, weight);
}

float shadowCalculation(vec3 fragPos) {
    vec3  fragToLight  = fragPos - pointLights[0].position_world;
    float currentDepth = length(fragToLight);
    float bias         = 0.15;
    float viewDistance = length(viewPos_world - fragPos);
    float diskRadius   = (1.0 + viewDistance / far_plane) / 25.0;

    float shadow = 0.0;
    for (int i = 0; i < 20; ++i) {
        float closest = texture(shadowMap, fragToLight + gridSamplingDisk[i] * diskRadius).r * far_plane;
        if (currentDepth - bias > closest) {
            shadow += 1.0;
        }
    }
    return shadow / 20.0;
}

vec3 normalFromMap(vec2 uv) {
    vec3 tangentNormal = texture(normalMap, uv).xyz * 2.0 - 1.0;
    return normalize(fs_in.TBN * tangentNormal);
}

float distributionGGX(vec3 N, vec3 H, float roughness) {
    float a     = roughness * roughness;
    float a2    = a * a;
    float NdotH = max(dot(N, H), 0.0);
    float denom = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * denom * denom);
}

float geometrySchlickGGX(float NdotV, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return NdotV / (NdotV * (1.0 - k) + k);
}

float geometrySmith(float NdotV, float NdotL, float roughness) {
    return geometrySchlickGGX(NdotV, roughness) * geometrySchlickGGX(NdotL, roughness);
}

vec3 fresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 fresnelSchlickRoughness(float cosTheta, vec3 F0, float roughness) {
    return F0 + (max(vec3(1.0 - roughness), F0) - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

// Burley diffuse term, already divided by PI.
float disneyDiffuse(float NdotV, float NdotL, float LdotH, float roughness) {
    float fd90 = 0.5 + 2.0 * LdotH * LdotH * roughness;
    float lightScatter = 1.0 + (fd90 - 1.0) * pow(1.0 - NdotL, 5.0);
    float viewScatter  = 1.0 + (fd90 - 1.0) * pow(1.0 - NdotV, 5.0);
    return lightScatter * viewScatter / PI;
}

void main() {
    vec2 uv = fs_in.TexCoords;
    if (parallax) {
        vec3 tangentView = normalize(fs_in.TangentViewPos - fs_in.TangentFragPos);
        uv = parallaxMapping(uv, tangentView);
    }

    vec3  albedo    = texture(albedoMap, uv).rgb;
    float metallic  = texture(metallicMap, uv).r;
    float roughness = clamp(texture(roughnessMap, uv).r, 0.04, 1.0);
    float ao        = texture(aoMap, uv).r;

    vec3 N = normalFromMap(uv);
    vec3 V = normalize(viewPos_world - fs_in.FragPos);
    vec3 R = reflect(-V, N);
    vec3 F0 = mix(vec3(0.04), albedo, metallic);
    float NdotV = max(dot(N, V), 1e-4);

    // Direct light.
    vec3  toLight  = pointLights[0].position_world - fs_in.FragPos;
    float dist     = length(toLight);
    vec3  L        = toLight / dist;
    vec3  H        = normalize(V + L);
    float NdotL    = max(dot(N, L), 0.0);
    float LdotH    = max(dot(L, H), 0.0);
    float falloff  = 1.0 / (1.0 + 0.022 * dist + 0.0019 * dist * dist);
    vec3  radiance = pointLights[0].color * falloff;

    float NDF = distributionGGX(N, H, roughness);
    float G   = geometrySmith(NdotV, NdotL, roughness);
    vec3  F   = fresnelSchlick(max(dot(H, V), 0.0), F0);

    vec3 specular = NDF * G * F / (4.0 * NdotV * NdotL + 1e-4);
    vec3 kD = (vec3(1.0) - F) * (1.0 - metallic);
    vec3 diffuse = kD * albedo * disneyDiffuse(NdotV, NdotL, LdotH, roughness);

    float shadow = shadows ? shadowCalculation(fs_in.FragPos) : 0.0;
    vec3 Lo = (1.0 - shadow) * (diffuse + specular) * radiance * NdotL;

    // Image-based ambient.
    vec3 Fa  = fresnelSchlickRoughness(NdotV, F0, roughness);
    vec3 kDa = (vec3(1.0) - Fa) * (1.0 - metallic);
    vec3 irradiance = texture(irradianceMap, N).rgb;
    vec3 prefiltered = textureLod(prefilterMap, R, roughness * maxReflectionLod).rgb;
    vec2 envBRDF = texture(brdfLUT, vec2(NdotV, roughness)).rg;
    vec3 ambient = (kDa * irradiance * albedo + prefiltered * (Fa * envBRDF.x + envBRDF.y)) * ao;

    vec3 color = ambient + Lo;
    FragColor   = vec4(color, 1.0);
    BrightColor = vec4(color, 1.0);
}
` + "\x00"

// lightVertSrc/lightFragSrc draw the emissive light marker.
const lightVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;

layout(std140) uniform Matrices {
    mat4 projection;
    mat4 view;
};

uniform mat4 model;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
` + "\x00"

const lightFragSrc = `
#version 410 core
layout(location = 0) out vec4 FragColor;
layout(location = 1) out vec4 BrightColor;

uniform vec3 lightColor;

void main() {
    FragColor   = vec4(lightColor, 1.0);
    BrightColor = vec4(lightColor, 1.0);
}
` + "\x00"

// skyboxVertSrc forces depth to the far plane via the xyww trick.
const skyboxVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;

layout(std140) uniform Matrices {
    mat4 projection;
    mat4 unusedView;
};

uniform mat4 view;

out vec3 worldPos;

void main() {
    worldPos = aPos;
    vec4 clip = projection * view * vec4(aPos, 1.0);
    gl_Position = clip.xyww;
}
` + "\x00"

const skyboxFragSrc = `
#version 410 core
layout(location = 0) out vec4 FragColor;
layout(location = 1) out vec4 BrightColor;

in vec3 worldPos;

uniform samplerCube environmentMap;

void main() {
    FragColor   = vec4(textureLod(environmentMap, worldPos, 0.0).rgb, 1.0);
    BrightColor = vec4(0.0, 0.0, 0.0, 1.0);
}
` + "\x00"

// ── Shadow ────────────────────────────────────────────────────────────────────

const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;

uniform mat4 model;

void main() {
    gl_Position = model * vec4(aPos, 1.0);
}
` + "\x00"

// depthGeomSrc emits each triangle once per cube face.
const depthGeomSrc = `
#version 410 core
layout(triangles) in;
layout(triangle_strip, max_vertices = 18) out;

uniform mat4 shadowMatrices[6];

out vec4 FragPos;

void main() {
    for (int face = 0; face < 6; ++face) {
        gl_Layer = face;
        for (int i = 0; i < 3; ++i) {
            FragPos = gl_in[i].gl_Position;
            gl_Position = shadowMatrices[face] * FragPos;
            EmitVertex();
        }
        EndPrimitive();
    }
}
` + "\x00"

const depthFragSrc = `
#version 410 core
in vec4 FragPos;

uniform vec3  lightPos;
uniform float far_plane;

void main() {
    gl_FragDepth = length(FragPos.xyz - lightPos) / far_plane;
}
` + "\x00"

// ── IBL ───────────────────────────────────────────────────────────────────────

const cubemapVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;

uniform mat4 projection;
uniform mat4 view;

out vec3 worldPos;

void main() {
    worldPos = aPos;
    gl_Position = projection * view * vec4(aPos, 1.0);
}
` + "\x00"

const equirectFragSrc = `
#version 410 core
out vec4 FragColor;
in vec3 worldPos;

uniform sampler2D equirectangularMap;

const vec2 invAtan = vec2(0.1591, 0.3183);

vec2 sampleSphericalMap(vec3 v) {
    vec2 uv = vec2(atan(v.z, v.x), asin(v.y));
    return uv * invAtan + 0.5;
}

void main() {
    vec2 uv = sampleSphericalMap(normalize(worldPos));
    FragColor = vec4(texture(equirectangularMap, uv).rgb, 1.0);
}
` + "\x00"

const irradianceFragSrc = `
#version 410 core
out vec4 FragColor;
in vec3 worldPos;

uniform samplerCube environmentMap;

const float PI = 3.14159265359;

void main() {
    vec3 N = normalize(worldPos);
    vec3 up    = vec3(0.0, 1.0, 0.0);
    vec3 right = normalize(cross(up, N));
    up = normalize(cross(N, right));

    vec3  irradiance   = vec3(0.0);
    float sampleDelta  = 0.025;
    float nrSamples    = 0.0;
    for (float phi = 0.0; phi < 2.0 * PI; phi += sampleDelta) {
        for (float theta = 0.0; theta < 0.5 * PI; theta += sampleDelta) {
            vec3 tangentSample = vec3(sin(theta) * cos(phi), sin(theta) * sin(phi), cos(theta));
            vec3 sampleVec = tangentSample.x * right + tangentSample.y * up + tangentSample.z * N;
            irradiance += texture(environmentMap, sampleVec).rgb * cos(theta) * sin(theta);
            nrSamples++;
        }
    }
    FragColor = vec4(PI * irradiance / nrSamples, 1.0);
}
` + "\x00"

// brdfCommonSrc is shared by the prefilter and BRDF integration stages.
const brdfCommonSrc = `
const float PI = 3.14159265359;

float radicalInverseVdC(uint bits) {
    bits = (bits << 16u) | (bits >> 16u);
    bits = ((bits & 0x55555555u) << 1u) | ((bits & 0xAAAAAAAAu) >> 1u);
    bits = ((bits & 0x33333333u) << 2u) | ((bits & 0xCCCCCCCCu) >> 2u);
    bits = ((bits & 0x0F0F0F0Fu) << 4u) | ((bits & 0xF0F0F0F0u) >> 4u);
    bits = ((bits & 0x00FF00FFu) << 8u) | ((bits & 0xFF00FF00u) >> 8u);
    return float(bits) * 2.3283064365386963e-10;
}

vec2 hammersley(uint i, uint n) {
    return vec2(float(i) / float(n), radicalInverseVdC(i));
}

vec3 importanceSampleGGX(vec2 Xi, vec3 N, float roughness) {
    float a = roughness * roughness;
    float phi = 2.0 * PI * Xi.x;
    float cosTheta = sqrt((1.0 - Xi.y) / (1.0 + (a * a - 1.0) * Xi.y));
    float sinTheta = sqrt(1.0 - cosTheta * cosTheta);
    vec3 H = vec3(cos(phi) * sinTheta, sin(phi) * sinTheta, cosTheta);

    vec3 up = abs(N.z) < 0.999 ? vec3(0.0, 0.0, 1.0) : vec3(1.0, 0.0, 0.0);
    vec3 tangent   = normalize(cross(up, N));
    vec3 bitangent = cross(N, tangent);
    return normalize(tangent * H.x + bitangent * H.y + N * H.z);
}
`

const prefilterFragSrc = `
#version 410 core
out vec4 FragColor;
in vec3 worldPos;

uniform samplerCube environmentMap;
uniform float roughness;
uniform float resolution;
` + brdfCommonSrc + `
float distributionGGX(float NdotH, float roughness) {
    float a  = roughness * roughness;
    float a2 = a * a;
    float denom = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * denom * denom);
}

void main() {
    vec3 N = normalize(worldPos);
    vec3 R = N;
    vec3 V = R;

    const uint SAMPLE_COUNT = 1024u;
    vec3  color  = vec3(0.0);
    float weight = 0.0;
    for (uint i = 0u; i < SAMPLE_COUNT; ++i) {
        vec2 Xi = hammersley(i, SAMPLE_COUNT);
        vec3 H  = importanceSampleGGX(Xi, N, roughness);
        vec3 L  = normalize(2.0 * dot(V, H) * H - V);

        float NdotL = max(dot(N, L), 0.0);
        if (NdotL > 0.0) {
            // Sample a blurrier mip where the PDF is low to avoid bright dots.
            float NdotH = max(dot(N, H), 0.0);
            float HdotV = max(dot(H, V), 0.0);
            float pdf = distributionGGX(NdotH, roughness) * NdotH / (4.0 * HdotV) + 0.0001;
            float saTexel  = 4.0 * PI / (6.0 * resolution * resolution);
            float saSample = 1.0 / (float(SAMPLE_COUNT) * pdf + 0.0001);
            float mip = roughness == 0.0 ? 0.0 : 0.5 * log2(saSample / saTexel);

            color  += textureLod(environmentMap, L, mip).rgb * NdotL;
            weight += NdotL;
        }
    }
    FragColor = vec4(color / weight, 1.0);
}
` + "\x00"

// quadVertSrc feeds the screen-space passes from the shared quad.
const quadVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 2) in vec2 aTexCoords;

out vec2 TexCoords;

void main() {
    TexCoords = aTexCoords;
    gl_Position = vec4(aPos, 1.0);
}
` + "\x00"

const brdfFragSrc = `
#version 410 core
out vec2 FragColor;
in vec2 TexCoords;
` + brdfCommonSrc + `
float geometrySchlickGGX(float NdotV, float roughness) {
    float k = (roughness * roughness) / 2.0;
    return NdotV / (NdotV * (1.0 - k) + k);
}

vec2 integrateBRDF(float NdotV, float roughness) {
    vec3 V = vec3(sqrt(1.0 - NdotV * NdotV), 0.0, NdotV);
    vec3 N = vec3(0.0, 0.0, 1.0);

    float A = 0.0;
    float B = 0.0;
    const uint SAMPLE_COUNT = 1024u;
    for (uint i = 0u; i < SAMPLE_COUNT; ++i) {
        vec2 Xi = hammersley(i, SAMPLE_COUNT);
        vec3 H  = importanceSampleGGX(Xi, N, roughness);
        vec3 L  = normalize(2.0 * dot(V, H) * H - V);

        float NdotL = max(L.z, 0.0);
        float NdotH = max(H.z, 0.0);
        float VdotH = max(dot(V, H), 0.0);
        if (NdotL > 0.0) {
            float G = geometrySchlickGGX(NdotV, roughness) * geometrySchlickGGX(NdotL, roughness);
            float G_Vis = (G * VdotH) / (NdotH * NdotV);
            float Fc = pow(1.0 - VdotH, 5.0);
            A += (1.0 - Fc) * G_Vis;
            B += Fc * G_Vis;
        }
    }
    return vec2(A, B) / float(SAMPLE_COUNT);
}

void main() {
    FragColor = integrateBRDF(TexCoords.x, TexCoords.y);
}
` + "\x00"

// ── Post ──────────────────────────────────────────────────────────────────────

// blurFragSrc is one axis of a 9-tap separable Gaussian.
const blurFragSrc = `
#version 410 core
out vec4 FragColor;
in vec2 TexCoords;

uniform sampler2D image;
uniform bool horizontal;

const float weight[5] = float[](0.2270270270, 0.1945945946, 0.1216216216, 0.0540540541, 0.0162162162);

void main() {
    vec2 texel  = 1.0 / vec2(textureSize(image, 0));
    vec3 result = texture(image, TexCoords).rgb * weight[0];
    vec2 stepUV = horizontal ? vec2(texel.x, 0.0) : vec2(0.0, texel.y);
    for (int i = 1; i < 5; ++i) {
        result += texture(image, TexCoords + stepUV * float(i)).rgb * weight[i];
        result += texture(image, TexCoords - stepUV * float(i)).rgb * weight[i];
    }
    FragColor = vec4(result, 1.0);
}
` + "\x00"

// compositeFragSrc adds bloom and tonemaps; gamma comes from the sRGB
// framebuffer.
const compositeFragSrc = `
#version 410 core
out vec4 FragColor;
in vec2 TexCoords;

uniform sampler2D scene;
uniform sampler2D bloomBlur;
uniform bool  bloom;
uniform float exposure;

void main() {
    vec3 hdrColor = texture(scene, TexCoords).rgb;
    if (bloom) {
        hdrColor += texture(bloomBlur, TexCoords).rgb;
    }
    vec3 mapped = vec3(1.0) - exp(-hdrColor * exposure);
    FragColor = vec4(mapped, 1.0);
}
` + "\x00"

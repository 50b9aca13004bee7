package scene

import (
	"fmt"

	"github.com/achilleasa/hitscan/types"
)

type MaterialType uint8

const (
	LambertianMaterial MaterialType = iota
	MetalMaterial
	DielectricMaterial
	EmissiveMaterial
	TexturedMaterial
)

func (mt MaterialType) String() string {
	switch mt {
	case LambertianMaterial:
		return "lambertian"
	case MetalMaterial:
		return "metal"
	case DielectricMaterial:
		return "dielectric"
	case EmissiveMaterial:
		return "emissive"
	case TexturedMaterial:
		return "textured"
	}
	return fmt.Sprintf("material(%d)", uint8(mt))
}

// Texture index value for texture slots that are not in use.
const NoTexture int32 = -1

// Material holds the shading parameters for all supported material types.
// Texture slots are indices into the scene texture list.
type Material struct {
	Type MaterialType

	// Lambertian, metal and dielectric albedo.
	Albedo types.Vec3

	// Emissive radiance.
	Radiance types.Vec3

	// Metal fuzziness.
	Fuzziness float32

	// Dielectric index of refraction.
	IOR float32

	// Textured material maps.
	AlbedoTex    int32
	NormalTex    int32
	RoughnessTex int32
	OcclusionTex int32

	// Set for textured materials whose albedo map is emitted rather than reflected.
	Emissive bool

	// Dimensions of the albedo map.
	TexWidth  uint32
	TexHeight uint32
}

func untextured(mt MaterialType) Material {
	return Material{
		Type:         mt,
		AlbedoTex:    NoTexture,
		NormalTex:    NoTexture,
		RoughnessTex: NoTexture,
		OcclusionTex: NoTexture,
	}
}

// Create a diffuse material.
func NewLambertian(albedo types.Vec3) Material {
	m := untextured(LambertianMaterial)
	m.Albedo = albedo
	return m
}

// Create a metal material. Fuzziness controls the roughness of reflections.
func NewMetal(albedo types.Vec3, fuzziness float32) Material {
	m := untextured(MetalMaterial)
	m.Albedo = albedo
	m.Fuzziness = fuzziness
	return m
}

// Create a refractive material.
func NewDielectric(ior float32, albedo types.Vec3) Material {
	m := untextured(DielectricMaterial)
	m.Albedo = albedo
	m.IOR = ior
	return m
}

// Create a light-emitting material.
func NewEmissive(radiance types.Vec3) Material {
	m := untextured(EmissiveMaterial)
	m.Radiance = radiance
	return m
}

// Create a texture-mapped material. Pass NoTexture for unused maps.
func NewTextured(albedoTex, normalTex, roughnessTex, occlusionTex int32, emissive bool, width, height uint32) Material {
	return Material{
		Type:         TexturedMaterial,
		AlbedoTex:    albedoTex,
		NormalTex:    normalTex,
		RoughnessTex: roughnessTex,
		OcclusionTex: occlusionTex,
		Emissive:     emissive,
		TexWidth:     width,
		TexHeight:    height,
	}
}

// Returns true if the material emits light.
func (m *Material) IsEmissive() bool {
	return m.Type == EmissiveMaterial || (m.Type == TexturedMaterial && m.Emissive)
}

func (m *Material) String() string {
	switch m.Type {
	case LambertianMaterial:
		return fmt.Sprintf("lambertian albedo: %v", m.Albedo)
	case MetalMaterial:
		return fmt.Sprintf("metal albedo: %v, fuzziness: %.3f", m.Albedo, m.Fuzziness)
	case DielectricMaterial:
		return fmt.Sprintf("dielectric albedo: %v, ior: %.3f", m.Albedo, m.IOR)
	case EmissiveMaterial:
		return fmt.Sprintf("emissive radiance: %v", m.Radiance)
	default:
		return fmt.Sprintf(
			"textured %dx%d albedo: %d, normal: %d, roughness: %d, occlusion: %d, emissive: %t",
			m.TexWidth, m.TexHeight, m.AlbedoTex, m.NormalTex, m.RoughnessTex, m.OcclusionTex, m.Emissive,
		)
	}
}

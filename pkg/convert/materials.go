package convert

import (
	gomath "math"

	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

func convertMaterials(doc *formats.TDSDocument) []scene.Material {
	out := make([]scene.Material, len(doc.Materials))
	for i := range doc.Materials {
		out[i] = convertMaterial(&doc.Materials[i], doc)
	}
	// The background image has no place of its own in a scene; it rides on
	// the first material.
	if len(out) > 0 && doc.HasBackground && doc.BackgroundImage != "" {
		out[0].BackgroundImage = doc.BackgroundImage
	}
	return out
}

func convertMaterial(m *formats.TDSMaterial, doc *formats.TDSDocument) scene.Material {
	out := scene.Material{
		Name:        m.Name,
		Ambient:     m.Ambient.Add(doc.Ambient),
		Diffuse:     m.Diffuse,
		Specular:    m.Specular,
		Emissive:    m.Emissive,
		Opacity:     m.Transparency,
		BumpScaling: m.BumpHeight,
		TwoSided:    m.TwoSided,
	}

	shading := m.Shading
	if shading == formats.TDSShadingPhong || shading == formats.TDSShadingMetal {
		if m.SpecularExponent == 0 || m.ShininessStrength == 0 {
			shading = formats.TDSShadingGouraud
		} else {
			out.Shininess = m.SpecularExponent
			out.ShininessStrength = m.ShininessStrength
		}
	}

	switch shading {
	case formats.TDSShadingFlat:
		out.Shading = scene.ShadingFlat
	case formats.TDSShadingWire:
		out.Wireframe = true
		out.Shading = scene.ShadingGouraud
	case formats.TDSShadingGouraud:
		out.Shading = scene.ShadingGouraud
	case formats.TDSShadingPhong:
		out.Shading = scene.ShadingPhong
	case formats.TDSShadingMetal:
		out.Shading = scene.ShadingCookTorrance
	case formats.TDSShadingBlinn:
		out.Shading = scene.ShadingBlinn
	default:
		out.Shading = scene.ShadingNone
	}

	slots := []struct {
		tex *formats.TDSTexture
		typ scene.TextureType
	}{
		{&m.DiffuseMap, scene.TextureDiffuse},
		{&m.SpecularMap, scene.TextureSpecular},
		{&m.OpacityMap, scene.TextureOpacity},
		{&m.EmissiveMap, scene.TextureEmissive},
		{&m.BumpMap, scene.TextureHeight},
		{&m.ShininessMap, scene.TextureShininess},
		{&m.ReflectionMap, scene.TextureReflection},
	}
	for _, s := range slots {
		if s.tex.IsSet() {
			out.Textures = append(out.Textures, convertTexture(*s.tex, s.typ))
		}
	}
	return out
}

func convertTexture(t formats.TDSTexture, typ scene.TextureType) scene.Texture {
	out := scene.Texture{
		Type:     typ,
		Path:     t.MapName,
		HasBlend: !gomath.IsNaN(float64(t.Blend)),
		ScaleU:   t.ScaleU,
		ScaleV:   t.ScaleV,
		OffsetU:  t.OffsetU,
		OffsetV:  t.OffsetV,
		Rotation: t.Rotation,
	}
	if out.HasBlend {
		out.Blend = t.Blend
	}

	switch t.MapMode {
	case formats.TDSMapMirror:
		out.MapMode = scene.MapMirror
		// Mirrored tiling repeats every two units.
		out.ScaleU *= 2
		out.ScaleV *= 2
		out.OffsetU /= 2
		out.OffsetV /= 2
	case formats.TDSMapDecal:
		out.MapMode = scene.MapDecal
	default:
		out.MapMode = scene.MapWrap
	}
	return out
}

package formats

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

// Default material settings.
const (
	DefaultMaterialToken = "default"
	DefaultMaterialGray  = 0.3
	DefaultMaterialName  = "%%%DEFAULT"
)

// DefaultMaterialOptions configures ResolveDefaultMaterial. Zero fields take
// the package defaults.
type DefaultMaterialOptions struct {
	Token string  // Case-insensitive marker a default material's name contains
	Gray  float32 // Diffuse level of a synthesized default material
}

func (o DefaultMaterialOptions) withDefaults() DefaultMaterialOptions {
	if o.Token == "" {
		o.Token = DefaultMaterialToken
	}
	if o.Gray <= 0 {
		o.Gray = DefaultMaterialGray
	}
	return o
}

// IsDefaultMaterialCandidate reports whether m looks like an exporter-written
// default material: its name contains token, its diffuse color is gray and
// it has no diffuse, bump, opacity, emissive, specular or shininess map.
func IsDefaultMaterialCandidate(m *TDSMaterial, token string) bool {
	if !strings.Contains(strings.ToLower(m.Name), strings.ToLower(token)) {
		return false
	}
	if !m.Diffuse.IsGray() {
		return false
	}
	return !m.DiffuseMap.IsSet() && !m.BumpMap.IsSet() && !m.OpacityMap.IsSet() &&
		!m.EmissiveMap.IsSet() && !m.SpecularMap.IsSet() && !m.ShininessMap.IsSet()
}

// ResolveDefaultMaterial assigns a default material to every face without a
// valid material index. The last candidate material is used; if there is
// none and a face needs it, a gray material is appended. It returns the
// default material's index, or -1 if no face needed one.
func ResolveDefaultMaterial(doc *TDSDocument, opts DefaultMaterialOptions, log *zap.Logger) int {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()

	idx := -1
	for i := range doc.Materials {
		if IsDefaultMaterialCandidate(&doc.Materials[i], opts.Token) {
			idx = i
		}
	}
	synthesize := idx < 0
	if synthesize {
		idx = len(doc.Materials)
	}

	count := uint32(len(doc.Materials))
	replaced := 0
	for mi := range doc.Meshes {
		m := &doc.Meshes[mi]
		for fi, mat := range m.FaceMaterials {
			switch {
			case mat == NoMaterial:
			case mat >= count:
				log.Warn("material index overflow, using default material",
					zap.String("mesh", m.Name),
					zap.Int("face", fi),
					zap.Uint32("material", mat))
			default:
				continue
			}
			m.FaceMaterials[fi] = uint32(idx)
			replaced++
		}
	}

	if replaced == 0 {
		return -1
	}
	if synthesize {
		mat := NewTDSMaterial(DefaultMaterialName)
		mat.Diffuse = math.Gray(opts.Gray)
		doc.Materials = append(doc.Materials, mat)
		log.Info("generating default material", zap.Int("faces", replaced))
	}
	return idx
}

package formats

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

func (p *tdsParser) parseMaterial(chunk) error {
	name := fmt.Sprintf("UNNAMED_%d", len(p.doc.Materials))
	p.doc.Materials = append(p.doc.Materials, NewTDSMaterial(name))
	return p.parseChunks(materialHandlers)
}

// material returns the material being built.
func (p *tdsParser) material() *TDSMaterial {
	return &p.doc.Materials[len(p.doc.Materials)-1]
}

var materialHandlers = map[ChunkID]chunkHandler{
	ChunkMatName: func(p *tdsParser, _ chunk) error {
		name := p.readName()
		if name == "" {
			p.log.Error("empty material name", zap.String("material", p.material().Name))
			return nil
		}
		p.material().Name = name
		return nil
	},
	ChunkMatAmbient:   materialColor(func(m *TDSMaterial) *math.Color3 { return &m.Ambient }, 0, true),
	ChunkMatDiffuse:   materialColor(func(m *TDSMaterial) *math.Color3 { return &m.Diffuse }, 1, false),
	ChunkMatSpecular:  materialColor(func(m *TDSMaterial) *math.Color3 { return &m.Specular }, 1, false),
	ChunkMatSelfIllum: materialColor(func(m *TDSMaterial) *math.Color3 { return &m.Emissive }, 0, false),

	ChunkMatTransparency: func(p *tdsParser, _ chunk) error {
		pct, err := p.readPercentage()
		if err != nil {
			return err
		}
		// The chunk stores transparency; keep opacity.
		if isNaN(pct) {
			p.material().Transparency = 1
		} else {
			p.material().Transparency = 1 - pct*0xFFFF/100
		}
		return nil
	},
	ChunkMatShading: func(p *tdsParser, _ chunk) error {
		p.material().Shading = TDSShading(p.r.U16())
		return nil
	},
	ChunkMatTwoSided: func(p *tdsParser, _ chunk) error {
		p.material().TwoSided = true
		return nil
	},
	ChunkMatShininess: func(p *tdsParser, _ chunk) error {
		pct, err := p.readPercentage()
		if err != nil {
			return err
		}
		if isNaN(pct) {
			pct = 0
		}
		p.material().SpecularExponent = pct * 0xFFFF
		return nil
	},
	ChunkMatShininessPct: func(p *tdsParser, _ chunk) error {
		pct, err := p.readPercentage()
		if err != nil {
			return err
		}
		if isNaN(pct) {
			pct = 0
		}
		p.material().ShininessStrength = pct * 0xFFFF / 100
		return nil
	},
	ChunkMatSelfIllumPct: func(p *tdsParser, _ chunk) error {
		pct, err := p.readPercentage()
		if err != nil {
			return err
		}
		if isNaN(pct) {
			pct = 0
		}
		p.material().Emissive = math.Gray(pct * 0xFFFF / 100)
		return nil
	},

	ChunkMatTexture:       textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.DiffuseMap }),
	ChunkMatBumpMap:       textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.BumpMap }),
	ChunkMatOpacityMap:    textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.OpacityMap }),
	ChunkMatShininessMap:  textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.ShininessMap }),
	ChunkMatSpecularMap:   textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.SpecularMap }),
	ChunkMatSelfIllumMap:  textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.EmissiveMap }),
	ChunkMatReflectionMap: textureSlot(func(m *TDSMaterial) *TDSTexture { return &m.ReflectionMap }),
}

// materialColor returns a handler reading a color sub-chunk into the field
// selected by field. Unreadable colors fall back to gray(fallback).
func materialColor(field func(*TDSMaterial) *math.Color3, fallback float32, acceptPercent bool) chunkHandler {
	return func(p *tdsParser, c chunk) error {
		clr, ok, err := p.readColor(acceptPercent)
		if err != nil {
			return err
		}
		if !ok {
			p.log.Error("unable to read material color",
				zap.Stringer("chunk", c.ID),
				zap.String("material", p.material().Name))
			clr = math.Gray(fallback)
		}
		*field(p.material()) = clr
		return nil
	}
}

// textureSlot returns a handler decoding a texture chunk into the slot
// selected by slot.
func textureSlot(slot func(*TDSMaterial) *TDSTexture) chunkHandler {
	return func(p *tdsParser, _ chunk) error {
		p.texture = slot(p.material())
		defer func() { p.texture = nil }()
		return p.parseChunks(textureHandlers)
	}
}

var textureHandlers = map[ChunkID]chunkHandler{
	ChunkMapFile: func(p *tdsParser, _ chunk) error {
		p.texture.MapName = p.readName()
		return nil
	},
	ChunkPercentD: func(p *tdsParser, _ chunk) error {
		p.texture.Blend = float32(p.r.F64())
		return nil
	},
	ChunkPercentF: func(p *tdsParser, _ chunk) error {
		p.texture.Blend = p.r.F32()
		return nil
	},
	ChunkPercentW: func(p *tdsParser, _ chunk) error {
		p.texture.Blend = float32(p.r.U16()) / 100
		return nil
	},
	ChunkMapUScale: func(p *tdsParser, _ chunk) error {
		p.texture.ScaleU = p.r.F32()
		if p.texture.ScaleU == 0 {
			p.log.Warn("texture U scale is zero, assuming 1", zap.String("map", p.texture.MapName))
			p.texture.ScaleU = 1
		}
		return nil
	},
	ChunkMapVScale: func(p *tdsParser, _ chunk) error {
		p.texture.ScaleV = p.r.F32()
		if p.texture.ScaleV == 0 {
			p.log.Warn("texture V scale is zero, assuming 1", zap.String("map", p.texture.MapName))
			p.texture.ScaleV = 1
		}
		return nil
	},
	ChunkMapUOffset: func(p *tdsParser, _ chunk) error {
		p.texture.OffsetU = -p.r.F32()
		return nil
	},
	ChunkMapVOffset: func(p *tdsParser, _ chunk) error {
		p.texture.OffsetV = p.r.F32()
		return nil
	},
	ChunkMapAngle: func(p *tdsParser, _ chunk) error {
		// Stored counter-clockwise in degrees.
		p.texture.Rotation = -math.DegToRad(p.r.F32())
		return nil
	},
	ChunkMapTiling: func(p *tdsParser, _ chunk) error {
		flags := p.r.U16()
		switch {
		case flags&0x2 != 0:
			p.texture.MapMode = TDSMapMirror
		case flags&0x10 != 0:
			p.texture.MapMode = TDSMapDecal
		default:
			p.texture.MapMode = TDSMapWrap
		}
		return nil
	},
}

// readPercentage reads a PERCENTF or PERCENTW sub-chunk. Any other chunk
// yields NaN.
func (p *tdsParser) readPercentage() (float32, error) {
	if p.r.RemainingToLimit() < chunkHeaderSize {
		return nan(), nil
	}
	c, err := p.readHeader()
	if err != nil {
		return 0, err
	}
	switch c.ID {
	case ChunkPercentF:
		return p.r.F32() * 100 / 0xFFFF, nil
	case ChunkPercentW:
		return float32(p.r.U16()) / 0xFFFF, nil
	}
	return nan(), nil
}

// readColor reads the first color sub-chunk of the current payload, skipping
// unrelated chunks before it. ok is false if no valid color was found.
// Percentage chunks are read as gray levels when acceptPercent is set.
func (p *tdsParser) readColor(acceptPercent bool) (math.Color3, bool, error) {
	for p.r.RemainingToLimit() >= chunkHeaderSize {
		c, err := p.readHeader()
		if err != nil {
			return math.Color3{}, false, err
		}

		switch c.ID {
		case ChunkRGBF, ChunkLinRGBF:
			if c.Size < 12 {
				return math.Color3{}, false, nil
			}
			return math.Color3{R: p.r.F32(), G: p.r.F32(), B: p.r.F32()}, true, nil

		case ChunkRGBB, ChunkLinRGBB:
			if c.Size < 3 {
				return math.Color3{}, false, nil
			}
			const inv = 1.0 / 255.0
			return math.Color3{
				R: float32(p.r.U8()) * inv,
				G: float32(p.r.U8()) * inv,
				B: float32(p.r.U8()) * inv,
			}, true, nil

		case ChunkPercentF:
			if !acceptPercent || c.Size < 4 {
				return math.Color3{}, false, nil
			}
			return math.Gray(p.r.F32()), true, nil

		case ChunkPercentW:
			if !acceptPercent || c.Size < 1 {
				return math.Color3{}, false, nil
			}
			return math.Gray(float32(p.r.U8()) / 255), true, nil

		default:
			p.r.Skip(c.Size)
		}
	}
	return math.Color3{}, false, nil
}

func nan() float32 {
	return float32(gomath.NaN())
}

func isNaN(f float32) bool {
	return f != f
}

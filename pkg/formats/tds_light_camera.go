package formats

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

func (p *tdsParser) parseLight(chunk) error {
	p.doc.Lights = append(p.doc.Lights, TDSLight{
		Name:              p.objectName,
		Type:              TDSLightPoint,
		Position:          p.readVec3(),
		ColorDiffuse:      math.Gray(1),
		AngleInnerCone:    2 * gomath.Pi,
		AngleOuterCone:    2 * gomath.Pi,
		AttenuationLinear: 1,
	})

	// Sub-chunks are not decoded for project files.
	if !p.doc.IsProject {
		if err := p.parseChunks(lightHandlers); err != nil {
			return err
		}
	}

	light := p.light()
	light.ColorSpecular = light.ColorDiffuse
	light.ColorAmbient = p.doc.Ambient
	return nil
}

// light returns the light being built.
func (p *tdsParser) light() *TDSLight {
	return &p.doc.Lights[len(p.doc.Lights)-1]
}

var lightHandlers = map[ChunkID]chunkHandler{
	ChunkSpotlight: func(p *tdsParser, _ chunk) error {
		light := p.light()
		light.Type = TDSLightSpot
		light.Direction = p.readVec3().Sub(light.Position).Normalize()

		// Hotspot and falloff in degrees; falloff is relative to the hotspot.
		light.AngleInnerCone = math.DegToRad(p.r.F32())
		light.AngleOuterCone = light.AngleInnerCone + math.DegToRad(p.r.F32())
		return nil
	},
	ChunkMultiplier: func(p *tdsParser, _ chunk) error {
		light := p.light()
		light.ColorDiffuse = light.ColorDiffuse.Scale(p.r.F32())
		return nil
	},
	ChunkRGBF:    (*tdsParser).parseLightColor,
	ChunkLinRGBF: (*tdsParser).parseLightColor,
	ChunkAttenuate: func(p *tdsParser, _ chunk) error {
		p.light().AttenuationLinear = p.r.F32()
		return nil
	},
}

func (p *tdsParser) parseLightColor(chunk) error {
	light := p.light()
	light.ColorDiffuse.R *= p.r.F32()
	light.ColorDiffuse.G *= p.r.F32()
	light.ColorDiffuse.B *= p.r.F32()
	return nil
}

func (p *tdsParser) parseCamera(chunk) error {
	cam := TDSCamera{
		Name:          p.objectName,
		Position:      p.readVec3(),
		ClipPlaneNear: 0.1,
		ClipPlaneFar:  1000,
	}

	cam.LookAt = p.readVec3().Sub(cam.Position)
	if cam.LookAt.Length() < 1e-5 {
		p.log.Error("unable to read proper camera look-at vector", zap.String("camera", cam.Name))
		cam.LookAt = math.Vec3{Y: 1}
	} else {
		cam.LookAt = cam.LookAt.Normalize()
	}

	// Roll angle around the view direction, counter-clockwise in degrees.
	roll := math.DegToRad(p.r.F32())
	cam.Up = math.QuatFromAxisAngle(cam.LookAt, roll).Rotate(math.Vec3{Y: 1})

	cam.HorizontalFOV = math.DegToRad(p.r.F32())
	if cam.HorizontalFOV < 0.001 {
		cam.HorizontalFOV = math.DegToRad(45)
	}

	p.doc.Cameras = append(p.doc.Cameras, cam)

	if p.doc.IsProject {
		return nil
	}
	return p.parseChunks(cameraHandlers)
}

// camera returns the camera being built.
func (p *tdsParser) camera() *TDSCamera {
	return &p.doc.Cameras[len(p.doc.Cameras)-1]
}

var cameraHandlers = map[ChunkID]chunkHandler{
	ChunkCameraRanges: func(p *tdsParser, _ chunk) error {
		cam := p.camera()
		cam.ClipPlaneNear = p.r.F32()
		cam.ClipPlaneFar = p.r.F32()
		return nil
	},
}

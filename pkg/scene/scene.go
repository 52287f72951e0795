// Package scene holds the renderer-ready scene produced by the importer:
// triangle meshes with one material each, a node tree with baked local
// transforms and keyframe animation channels.
package scene

import (
	"fmt"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

// Shading is a material's lighting model.
type Shading int

const (
	ShadingNone Shading = iota
	ShadingFlat
	ShadingGouraud
	ShadingPhong
	ShadingBlinn
	ShadingCookTorrance
)

// String returns a human-readable shading model name.
func (s Shading) String() string {
	switch s {
	case ShadingNone:
		return "None"
	case ShadingFlat:
		return "Flat"
	case ShadingGouraud:
		return "Gouraud"
	case ShadingPhong:
		return "Phong"
	case ShadingBlinn:
		return "Blinn"
	case ShadingCookTorrance:
		return "CookTorrance"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// TextureType identifies the material channel a texture feeds.
type TextureType int

const (
	TextureDiffuse TextureType = iota
	TextureSpecular
	TextureOpacity
	TextureEmissive
	TextureHeight
	TextureShininess
	TextureReflection
)

// String returns a human-readable texture type name.
func (t TextureType) String() string {
	switch t {
	case TextureDiffuse:
		return "Diffuse"
	case TextureSpecular:
		return "Specular"
	case TextureOpacity:
		return "Opacity"
	case TextureEmissive:
		return "Emissive"
	case TextureHeight:
		return "Height"
	case TextureShininess:
		return "Shininess"
	case TextureReflection:
		return "Reflection"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// MapMode is how texture coordinates outside [0, 1] are handled.
type MapMode int

const (
	MapWrap MapMode = iota
	MapMirror
	MapDecal
)

// String returns a human-readable mapping mode name.
func (m MapMode) String() string {
	switch m {
	case MapWrap:
		return "Wrap"
	case MapMirror:
		return "Mirror"
	case MapDecal:
		return "Decal"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Texture is an image bound to one material channel.
type Texture struct {
	Type     TextureType
	Path     string
	Blend    float32 // Valid if HasBlend
	HasBlend bool
	MapMode  MapMode
	ScaleU   float32
	ScaleV   float32
	OffsetU  float32
	OffsetV  float32
	Rotation float32 // Radians
}

// Material describes the surface of a mesh.
type Material struct {
	Name     string
	Ambient  math.Color3
	Diffuse  math.Color3
	Specular math.Color3
	Emissive math.Color3
	Shading  Shading

	Shininess         float32 // 0 unless Phong or CookTorrance
	ShininessStrength float32
	Opacity           float32
	BumpScaling       float32
	TwoSided          bool
	Wireframe         bool

	Textures []Texture

	// BackgroundImage is the scene's background bitmap. Only the first
	// material of a scene carries it.
	BackgroundImage string
}

// Texture returns the material's texture of type t, if any.
func (m *Material) Texture(t TextureType) (Texture, bool) {
	for _, tex := range m.Textures {
		if tex.Type == t {
			return tex, true
		}
	}
	return Texture{}, false
}

// Mesh is a triangle mesh with one vertex per face corner.
type Mesh struct {
	Name          string
	Positions     []math.Vec3
	Normals       []math.Vec3
	TexCoords     []math.Vec2 // nil if the mesh has no UVs
	Faces         [][3]uint32
	MaterialIndex int
}

// LightType is the kind of a light source.
type LightType int

const (
	LightPoint LightType = iota
	LightSpot
	LightDirectional
)

// String returns a human-readable light type name.
func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "Point"
	case LightSpot:
		return "Spot"
	case LightDirectional:
		return "Directional"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Light is a light source. Position and direction are relative to the node
// of the same name, if there is one.
type Light struct {
	Name           string
	Type           LightType
	Position       math.Vec3
	Direction      math.Vec3
	AngleInnerCone float32 // Radians
	AngleOuterCone float32 // Radians
	ColorDiffuse   math.Color3
	ColorSpecular  math.Color3
	ColorAmbient   math.Color3

	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
}

// Camera is a viewpoint. Like lights, cameras are placed by the node of the
// same name.
type Camera struct {
	Name          string
	Position      math.Vec3
	LookAt        math.Vec3
	Up            math.Vec3
	HorizontalFOV float32 // Radians
	ClipPlaneNear float32
	ClipPlaneFar  float32
	Aspect        float32 // 0 if unknown
}

// Scene is a converted scene. It owns all of its data.
type Scene struct {
	Materials  []Material
	Meshes     []Mesh
	Lights     []Light
	Cameras    []Camera
	Root       *Node
	Animations []*Animation
}

// FaceCount returns the number of triangles across all meshes.
func (s *Scene) FaceCount() int {
	n := 0
	for i := range s.Meshes {
		n += len(s.Meshes[i].Faces)
	}
	return n
}

// NodeCount returns the number of nodes in the tree.
func (s *Scene) NodeCount() int {
	n := 0
	s.Root.Walk(func(*Node, int) { n++ })
	return n
}

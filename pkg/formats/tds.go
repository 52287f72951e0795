// 3DS (3D Studio) binary scene format: data model and errors.
package formats

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

// 3DS format errors. Every fatal decode failure wraps one of these in a
// *DecodeError.
var (
	ErrTruncatedTDSData       = errors.New("3DS file is either empty or corrupt")
	ErrChunkTooLarge          = errors.New("chunk is too large")
	ErrFacesWithoutVertices   = errors.New("mesh contains faces but no vertices")
	ErrNoFaces                = errors.New("no faces loaded, the mesh is empty")
	ErrTooManySmoothingGroups = errors.New("more smoothing groups than faces")
)

// DecodeError is returned for every condition that aborts a decode.
type DecodeError struct {
	Msg string // Context, e.g. the offending chunk or mesh
	Err error  // One of the Err* sentinels
}

func (e *DecodeError) Error() string {
	if e.Msg == "" {
		return "3ds: " + e.Err.Error()
	}
	return fmt.Sprintf("3ds: %s: %v", e.Msg, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeError(err error, format string, args ...any) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// NoMaterial marks a face without a material assignment.
const NoMaterial uint32 = 0xcdcdcdcd

// TDSShading is the shading model stored in a material.
type TDSShading uint16

const (
	TDSShadingWire    TDSShading = 0
	TDSShadingFlat    TDSShading = 1
	TDSShadingGouraud TDSShading = 2
	TDSShadingPhong   TDSShading = 3
	TDSShadingMetal   TDSShading = 4
	TDSShadingBlinn   TDSShading = 5 // Never written by 3DS itself
)

// String returns a human-readable shading name.
func (s TDSShading) String() string {
	switch s {
	case TDSShadingWire:
		return "Wire"
	case TDSShadingFlat:
		return "Flat"
	case TDSShadingGouraud:
		return "Gouraud"
	case TDSShadingPhong:
		return "Phong"
	case TDSShadingMetal:
		return "Metal"
	case TDSShadingBlinn:
		return "Blinn"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// TDSMapMode is the texture tiling mode.
type TDSMapMode int

const (
	TDSMapWrap TDSMapMode = iota
	TDSMapMirror
	TDSMapDecal
)

// String returns a human-readable map mode name.
func (m TDSMapMode) String() string {
	switch m {
	case TDSMapWrap:
		return "Wrap"
	case TDSMapMirror:
		return "Mirror"
	case TDSMapDecal:
		return "Decal"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// TDSTexture is one texture slot of a material.
type TDSTexture struct {
	MapName  string     // Image file name, empty if the slot is unused
	Blend    float32    // Blend factor, NaN if not given
	MapMode  TDSMapMode // Tiling mode
	ScaleU   float32
	ScaleV   float32
	OffsetU  float32
	OffsetV  float32
	Rotation float32 // Radians
}

// NewTDSTexture returns an unused texture slot with neutral UV transform.
func NewTDSTexture() TDSTexture {
	return TDSTexture{
		Blend:  float32(gomath.NaN()),
		ScaleU: 1,
		ScaleV: 1,
	}
}

// IsSet reports whether the slot references an image.
func (t TDSTexture) IsSet() bool {
	return t.MapName != ""
}

// TDSMaterial is a material definition (MAT_MATERIAL chunk).
type TDSMaterial struct {
	Name     string
	Ambient  math.Color3
	Diffuse  math.Color3
	Specular math.Color3
	Emissive math.Color3
	Shading  TDSShading

	Transparency      float32 // Stored as opacity: 1 is fully opaque
	SpecularExponent  float32
	ShininessStrength float32
	BumpHeight        float32
	TwoSided          bool

	DiffuseMap    TDSTexture
	SpecularMap   TDSTexture
	OpacityMap    TDSTexture
	EmissiveMap   TDSTexture
	BumpMap       TDSTexture
	ShininessMap  TDSTexture
	ReflectionMap TDSTexture
}

// NewTDSMaterial returns a material with the format's default values.
func NewTDSMaterial(name string) TDSMaterial {
	return TDSMaterial{
		Name:              name,
		Diffuse:           math.Gray(0.6),
		Specular:          math.Gray(0.6),
		Shading:           TDSShadingGouraud,
		Transparency:      1,
		ShininessStrength: 1,
		BumpHeight:        1,
		DiffuseMap:        NewTDSTexture(),
		SpecularMap:       NewTDSTexture(),
		OpacityMap:        NewTDSTexture(),
		EmissiveMap:       NewTDSTexture(),
		BumpMap:           NewTDSTexture(),
		ShininessMap:      NewTDSTexture(),
		ReflectionMap:     NewTDSTexture(),
	}
}

// TDSFace is a triangle.
type TDSFace struct {
	Indices     [3]uint32
	SmoothGroup uint32 // Bit n set means smoothing group n
}

// TDSMesh is a triangle mesh (TRIMESH chunk).
// Positions are stored in world space; Matrix is the mesh's authored local
// transform.
type TDSMesh struct {
	Name          string
	Positions     []math.Vec3
	TexCoords     []math.Vec2 // nil if the mesh has no UVs
	Faces         []TDSFace
	FaceMaterials []uint32 // Per face, NoMaterial if unassigned
	Matrix        math.Mat4
	Normals       []math.Vec3 // Per position, filled by ComputeNormals
}

// NewTDSMesh returns an empty mesh with an identity transform.
func NewTDSMesh(name string) TDSMesh {
	return TDSMesh{Name: name, Matrix: math.Identity()}
}

// TDSLightType is the kind of a light source.
type TDSLightType int

const (
	TDSLightPoint TDSLightType = iota
	TDSLightSpot
)

// String returns a human-readable light type name.
func (t TDSLightType) String() string {
	switch t {
	case TDSLightPoint:
		return "Point"
	case TDSLightSpot:
		return "Spot"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// TDSLight is a light source (LIGHT chunk).
type TDSLight struct {
	Name           string
	Type           TDSLightType
	Position       math.Vec3
	Direction      math.Vec3 // Spot lights only
	AngleInnerCone float32   // Radians
	AngleOuterCone float32   // Radians
	ColorDiffuse   math.Color3
	ColorSpecular  math.Color3
	ColorAmbient   math.Color3

	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
}

// TDSCamera is a camera (CAMERA chunk).
type TDSCamera struct {
	Name          string
	Position      math.Vec3
	LookAt        math.Vec3 // Unit view direction
	Up            math.Vec3
	HorizontalFOV float32 // Radians
	ClipPlaneNear float32
	ClipPlaneFar  float32
	Aspect        float32 // 0 if unknown
}

// VectorKey is a position or scale keyframe.
type VectorKey struct {
	Time  float64
	Value math.Vec3
}

// QuatKey is a rotation keyframe.
type QuatKey struct {
	Time  float64
	Value math.Quat
}

// FloatKey is a scalar keyframe, used for camera roll in degrees.
type FloatKey struct {
	Time  float64
	Value float32
}

// KeyTime returns the key's frame time.
func (k VectorKey) KeyTime() float64 { return k.Time }

// KeyTime returns the key's frame time.
func (k QuatKey) KeyTime() float64 { return k.Time }

// KeyTime returns the key's frame time.
func (k FloatKey) KeyTime() float64 { return k.Time }

// TDSNode is an entry of the keyframer hierarchy.
// Nodes live in TDSDocument.Nodes and reference each other by index.
type TDSNode struct {
	Name           string
	HierarchyPos   int // Position ordinal from the stream, -1 for the root
	HierarchyIndex int // Running hierarchy counter when the node was read
	InstanceNumber int // 1 for the first node of a name, then 2, 3, ...
	InstanceCount  int // Number of nodes sharing this node's name
	Pivot          math.Vec3

	PositionKeys       []VectorKey
	RotationKeys       []QuatKey // Per-key deltas, see AccumulateRotations
	ScalingKeys        []VectorKey
	RollKeys           []FloatKey
	TargetPositionKeys []VectorKey

	Parent   int // -1 for the root
	Children []int
}

// IsAnimated reports whether any track has more than one key.
func (n *TDSNode) IsAnimated() bool {
	return len(n.PositionKeys) > 1 || len(n.RotationKeys) > 1 ||
		len(n.ScalingKeys) > 1 || len(n.RollKeys) > 1 ||
		len(n.TargetPositionKeys) > 1
}

// RootNodeName is the name of the synthetic hierarchy root.
const RootNodeName = "UNNAMED"

// TDSDocument is a decoded 3DS file.
type TDSDocument struct {
	Meshes    []TDSMesh
	Materials []TDSMaterial
	Lights    []TDSLight
	Cameras   []TDSCamera
	Nodes     []TDSNode // Nodes[0] is the synthetic root

	Ambient         math.Color3
	MasterScale     float32
	BackgroundImage string
	HasBackground   bool
	IsProject       bool // Decoded from a PRJ container
	Version         uint16
}

func newTDSDocument() *TDSDocument {
	return &TDSDocument{
		MasterScale: 1,
		Nodes: []TDSNode{{
			Name:           RootNodeName,
			HierarchyPos:   -1,
			HierarchyIndex: -1,
			InstanceNumber: 1,
			InstanceCount:  1,
			Parent:         -1,
		}},
	}
}

// HasHierarchy reports whether the keyframer section produced any node.
func (d *TDSDocument) HasHierarchy() bool {
	return len(d.Nodes) > 0 && len(d.Nodes[0].Children) > 0
}

// FaceCount returns the number of faces across all meshes.
func (d *TDSDocument) FaceCount() int {
	n := 0
	for i := range d.Meshes {
		n += len(d.Meshes[i].Faces)
	}
	return n
}

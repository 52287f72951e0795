// Package convert turns a decoded 3DS document into a scene.
//
// Import runs the whole pipeline: decode, mesh post-processing, default
// material resolution, conversion and master scale normalization. Convert
// and ApplyMasterScale are the last two steps on their own.
package convert

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/encoding"
	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/math"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

// Names given to generated nodes and animations.
const (
	DummyRootName     = "<3DSDummyRoot>"
	RootName          = "<3DSRoot>"
	MasterAnimName    = "3DSMasterAnim"
	dummyMeshNodeName = "3DSMesh_%d"
	instanceSuffix    = "%s_inst_%d"
)

// axisCorrection turns the Z-up source basis into a Y-up one:
// (x, y, z) becomes (x, z, -y).
var axisCorrection = math.Mat4{
	1, 0, 0, 0,
	0, 0, -1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// Options configures an import. The zero value is usable.
type Options struct {
	// Logger receives recoverable problems. nil discards them.
	Logger *zap.Logger
	// NameEncoding decodes names stored in the file.
	NameEncoding encoding.NameEncoding
	// DefaultMaterial configures the material given to unassigned faces.
	DefaultMaterial formats.DefaultMaterialOptions
	// SkipAxisCorrection keeps the source Z-up basis.
	SkipAxisCorrection bool
	// SkipMasterScale ignores the file's master scale.
	SkipMasterScale bool
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// origin tracks which source mesh an output mesh was split from and whether
// its vertices have already been moved into node-local space.
type origin struct {
	source int
	baked  bool
}

// converter holds the state of a single conversion.
type converter struct {
	doc     *formats.TDSDocument
	log     *zap.Logger
	out     *scene.Scene
	origins []origin // Parallel to out.Meshes
	anim    *scene.Animation
}

// Convert builds a scene from doc. doc should have been post-processed and
// have its default material resolved; it is not modified.
func Convert(doc *formats.TDSDocument, opts Options) (*scene.Scene, error) {
	c := &converter{
		doc: doc,
		log: opts.logger(),
		out: &scene.Scene{},
	}

	c.out.Materials = convertMaterials(doc)
	if err := c.splitMeshes(); err != nil {
		return nil, err
	}
	c.out.Lights = convertLights(doc.Lights)
	c.out.Cameras = convertCameras(doc.Cameras)

	if doc.HasHierarchy() {
		c.buildNodeGraph()
	} else {
		c.buildFlatGraph()
	}

	root := c.out.Root
	if !opts.SkipAxisCorrection {
		root.Transform = axisCorrection.Mul(root.Transform)
	}
	if strings.Contains(root.Name, formats.RootNodeName) || strings.HasPrefix(root.Name, "$$") {
		root.Name = RootName
	}
	return c.out, nil
}

// buildFlatGraph creates a root with one child per mesh, camera and light for
// files without keyframer data. Meshes keep their global coordinates.
func (c *converter) buildFlatGraph() {
	c.log.Warn("no hierarchy information found, generating a flat node graph")

	root := scene.NewNode(DummyRootName)
	for i := range c.out.Meshes {
		n := scene.NewNode(fmt.Sprintf(dummyMeshNodeName, i))
		n.Meshes = []int{i}
		root.AddChild(n)
	}
	for _, cam := range c.out.Cameras {
		root.AddChild(scene.NewNode(cam.Name))
	}
	for _, l := range c.out.Lights {
		root.AddChild(scene.NewNode(l.Name))
	}
	c.out.Root = root
}

func convertLights(lights []formats.TDSLight) []scene.Light {
	if len(lights) == 0 {
		return nil
	}
	out := make([]scene.Light, len(lights))
	for i, l := range lights {
		typ := scene.LightPoint
		if l.Type == formats.TDSLightSpot {
			typ = scene.LightSpot
		}
		out[i] = scene.Light{
			Name:                 l.Name,
			Type:                 typ,
			Position:             l.Position,
			Direction:            l.Direction,
			AngleInnerCone:       l.AngleInnerCone,
			AngleOuterCone:       l.AngleOuterCone,
			ColorDiffuse:         l.ColorDiffuse,
			ColorSpecular:        l.ColorSpecular,
			ColorAmbient:         l.ColorAmbient,
			AttenuationConstant:  l.AttenuationConstant,
			AttenuationLinear:    l.AttenuationLinear,
			AttenuationQuadratic: l.AttenuationQuadratic,
		}
	}
	return out
}

func convertCameras(cameras []formats.TDSCamera) []scene.Camera {
	if len(cameras) == 0 {
		return nil
	}
	out := make([]scene.Camera, len(cameras))
	for i, cam := range cameras {
		out[i] = scene.Camera(cam)
	}
	return out
}

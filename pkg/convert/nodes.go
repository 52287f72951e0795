package convert

import (
	"fmt"

	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/math"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

// buildNodeGraph converts the keyframer hierarchy, starting at the
// document's synthetic root.
func (c *converter) buildNodeGraph() {
	if n := countChannels(c.doc.Nodes, 0); n > 0 {
		c.anim = &scene.Animation{
			Name:     MasterAnimName,
			Channels: make([]scene.NodeAnim, 0, n),
		}
		c.out.Animations = []*scene.Animation{c.anim}
	}
	c.out.Root = c.addNode(0)
}

// countChannels returns the number of animated nodes in the subtree at i.
func countChannels(nodes []formats.TDSNode, i int) int {
	n := 0
	if nodes[i].IsAnimated() {
		n++
	}
	for _, child := range nodes[i].Children {
		n += countChannels(nodes, child)
	}
	return n
}

func (c *converter) addNode(i int) *scene.Node {
	src := &c.doc.Nodes[i]
	out := &scene.Node{
		Name:      nodeName(src),
		Transform: staticTransform(src),
	}

	for mi, o := range c.origins {
		if c.doc.Meshes[o.source].Name != src.Name {
			continue
		}
		c.bake(mi, src.Pivot)
		out.Meshes = append(out.Meshes, mi)
	}

	if src.IsAnimated() {
		c.addChannel(src, out.Name)
	}

	for _, child := range src.Children {
		out.AddChild(c.addNode(child))
	}
	return out
}

// nodeName keeps the first instance's name and suffixes later ones so that
// every output node name is distinct.
func nodeName(n *formats.TDSNode) string {
	if n.InstanceNumber > 1 {
		return fmt.Sprintf(instanceSuffix, n.Name, n.InstanceNumber)
	}
	return n.Name
}

// staticTransform composes the node's local matrix from the first key of
// each track: rotation (or camera roll), then scale, then translation.
func staticTransform(n *formats.TDSNode) math.Mat4 {
	m := math.Identity()
	switch {
	case len(n.RotationKeys) > 0:
		m = targetQuat(n.RotationKeys[0].Value).ToMat4()
	case len(n.RollKeys) > 0:
		m = math.RotateZ(math.DegToRad(-n.RollKeys[0].Value))
	}
	if len(n.ScalingKeys) > 0 {
		m = m.ScaleColumns(n.ScalingKeys[0].Value)
	}
	if len(n.PositionKeys) > 0 {
		m = m.AddTranslation(n.PositionKeys[0].Value)
	}
	return m
}

// targetQuat converts a stored rotation to the scene's handedness.
func targetQuat(q math.Quat) math.Quat {
	q.W = -q.W
	return q
}

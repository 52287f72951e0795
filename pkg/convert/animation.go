package convert

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/math"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

// addChannel appends the animation channel of n, output as the node named
// name.
func (c *converter) addChannel(n *formats.TDSNode, name string) {
	ch := scene.NodeAnim{
		NodeName:     name,
		PositionKeys: vectorKeys(n.PositionKeys),
		ScalingKeys:  vectorKeys(n.ScalingKeys),
	}

	deltas := make([]formats.QuatKey, len(n.RotationKeys))
	for i, k := range n.RotationKeys {
		deltas[i] = formats.QuatKey{Time: k.Time, Value: targetQuat(k.Value)}
	}
	if len(deltas) == 0 && len(n.RollKeys) > 1 {
		c.log.Debug("converting camera roll track", zap.String("node", name))
		deltas = rollToRotation(n.RollKeys)
	}
	for _, k := range formats.AccumulateRotations(deltas) {
		ch.RotationKeys = append(ch.RotationKeys, scene.QuatKey{Time: k.Time, Value: k.Value})
	}

	// Animated cameras and lights take their orientation from the node.
	for i := range c.out.Cameras {
		if c.out.Cameras[i].Name == name {
			c.out.Cameras[i].LookAt = math.Vec3{Z: 1}
		}
	}
	for i := range c.out.Lights {
		if c.out.Lights[i].Name == name {
			c.out.Lights[i].Direction = math.Vec3{Z: 1}
		}
	}

	c.anim.Channels = append(c.anim.Channels, ch)
	c.anim.Duration = max(c.anim.Duration, lastTime(ch))
}

// rollToRotation turns camera roll angles in degrees into rotations about
// the view axis.
func rollToRotation(keys []formats.FloatKey) []formats.QuatKey {
	out := make([]formats.QuatKey, len(keys))
	for i, k := range keys {
		out[i] = formats.QuatKey{
			Time:  k.Time,
			Value: math.QuatFromAxisAngle(math.Vec3{Z: 1}, math.DegToRad(k.Value)),
		}
	}
	return out
}

func vectorKeys(keys []formats.VectorKey) []scene.VectorKey {
	if len(keys) == 0 {
		return nil
	}
	out := make([]scene.VectorKey, len(keys))
	for i, k := range keys {
		out[i] = scene.VectorKey{Time: k.Time, Value: k.Value}
	}
	return out
}

// lastTime returns the latest key time of the channel.
func lastTime(ch scene.NodeAnim) float64 {
	t := 0.0
	if n := len(ch.PositionKeys); n > 0 {
		t = max(t, ch.PositionKeys[n-1].Time)
	}
	if n := len(ch.RotationKeys); n > 0 {
		t = max(t, ch.RotationKeys[n-1].Time)
	}
	if n := len(ch.ScalingKeys); n > 0 {
		t = max(t, ch.ScalingKeys[n-1].Time)
	}
	return t
}

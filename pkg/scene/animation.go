package scene

import "github.com/Faultbox/midgard-3ds/pkg/math"

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

// NodeAnim animates the node named NodeName.
type NodeAnim struct {
	NodeName     string
	PositionKeys []VectorKey
	RotationKeys []QuatKey // Absolute rotations
	ScalingKeys  []VectorKey
}

// Animation is a set of node channels sharing one timeline. Times are in
// frames.
type Animation struct {
	Name     string
	Duration float64
	Channels []NodeAnim
}

// Channel returns the channel animating the named node, or nil.
func (a *Animation) Channel(node string) *NodeAnim {
	for i := range a.Channels {
		if a.Channels[i].NodeName == node {
			return &a.Channels[i]
		}
	}
	return nil
}

package formats

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

// TCB flags preceding the value of every key.
const (
	keyUseTension    = 0x01
	keyUseContinuity = 0x02
	keyUseBias       = 0x04
	keyUseEaseTo     = 0x08
	keyUseEaseFrom   = 0x10
)

// Smallest on-wire key: frame, TCB flags and one float.
const minKeySize = 4 + 2 + 4

func (p *tdsParser) parseKeyframer(chunk) error {
	return p.parseChunks(keyframerHandlers)
}

var keyframerHandlers = map[ChunkID]chunkHandler{
	ChunkTrackInfo:      (*tdsParser).parseNodeBlock,
	ChunkTrackCamera:    (*tdsParser).parseNodeBlock,
	ChunkTrackCameraTgt: (*tdsParser).parseNodeBlock,
	ChunkTrackLight:     (*tdsParser).parseNodeBlock,
	ChunkTrackLightTgt:  (*tdsParser).parseNodeBlock,
	ChunkTrackSpotlight: (*tdsParser).parseNodeBlock,
}

// parseNodeBlock decodes one node block. Track data goes to the node named by
// the block's NODE_HDR chunk.
func (p *tdsParser) parseNodeBlock(c chunk) error {
	p.trackType = c.ID
	p.current = p.lastPlaced
	return p.parseChunks(hierarchyHandlers)
}

var hierarchyHandlers = map[ChunkID]chunkHandler{
	ChunkTrackObjName:   (*tdsParser).parseNodeHeader,
	ChunkTrackDummyName: func(p *tdsParser, _ chunk) error {
		name := p.readName()
		if node := &p.doc.Nodes[p.current]; node.Name == "$$$DUMMY" {
			node.Name = name
		}
		return nil
	},
	ChunkTrackPivot: func(p *tdsParser, _ chunk) error {
		if p.trackType != ChunkTrackInfo {
			p.log.Warn("skipping pivot for non-object node", zap.Stringer("block", p.trackType))
			return nil
		}
		p.doc.Nodes[p.current].Pivot = p.readVec3()
		return nil
	},
	ChunkTrackPos: func(p *tdsParser, _ chunk) error {
		p.r.Skip(10)
		n := p.capCount(int(p.r.U32()), minKeySize+8, "position keys")

		node := &p.doc.Nodes[p.current]
		track := &node.PositionKeys
		// Targeted cameras and lights store the target path separately.
		if p.trackType == ChunkTrackCameraTgt || p.trackType == ChunkTrackLightTgt {
			track = &node.TargetPositionKeys
		}
		*track = readTrack(p, *track, n, func(t float64) VectorKey {
			return VectorKey{Time: t, Value: p.readVec3()}
		})
		return nil
	},
	ChunkTrackRoll: func(p *tdsParser, _ chunk) error {
		if p.trackType != ChunkTrackCamera {
			p.log.Warn("ignoring roll track for non-camera node", zap.Stringer("block", p.trackType))
			return nil
		}
		p.r.Skip(10)
		n := p.capCount(int(p.r.U32()), minKeySize, "roll keys")

		node := &p.doc.Nodes[p.current]
		node.RollKeys = readTrack(p, node.RollKeys, n, func(t float64) FloatKey {
			return FloatKey{Time: t, Value: p.r.F32()}
		})
		return nil
	},
	ChunkTrackFOV: func(p *tdsParser, _ chunk) error {
		p.log.Error("skipping FOV animation track, not supported",
			zap.String("node", p.doc.Nodes[p.current].Name))
		return nil
	},
	ChunkTrackRotate: func(p *tdsParser, _ chunk) error {
		p.r.Skip(10)
		n := p.capCount(int(p.r.U32()), minKeySize+12, "rotation keys")

		node := &p.doc.Nodes[p.current]
		node.RotationKeys = readTrack(p, node.RotationKeys, n, func(t float64) QuatKey {
			angle := p.r.F32()
			axis := p.readVec3()
			if axis.IsZero() {
				axis.Y = 1
			}
			return QuatKey{Time: t, Value: math.QuatFromAxisAngle(axis, angle)}
		})
		return nil
	},
	ChunkTrackScale: func(p *tdsParser, _ chunk) error {
		p.r.Skip(10)
		n := int(p.r.U16())
		p.r.Skip(2)
		n = p.capCount(n, minKeySize+8, "scale keys")

		node := &p.doc.Nodes[p.current]
		node.ScalingKeys = readTrack(p, node.ScalingKeys, n, func(t float64) VectorKey {
			return VectorKey{Time: t, Value: p.clampScale(p.readVec3())}
		})
		return nil
	},
}

// parseNodeHeader reads a NODE_HDR chunk: the node name and its hierarchy
// position. A name seen before either selects the existing node (for target,
// camera and light blocks) or creates a new instance of it (object blocks).
func (p *tdsParser) parseNodeHeader(chunk) error {
	name := p.readName()
	instance := 1

	if existing := findNode(p.doc.Nodes, 0, name); existing >= 0 {
		if p.trackType != ChunkTrackInfo {
			p.current = existing
			return nil
		}
		p.doc.Nodes[existing].InstanceCount++
		instance = p.doc.Nodes[existing].InstanceCount
	}

	p.r.Skip(4) // two unknown words
	pos := int(p.r.U16() + 1)

	node := TDSNode{
		Name:           name,
		HierarchyPos:   pos,
		HierarchyIndex: p.lastIndex,
		InstanceNumber: instance,
		InstanceCount:  1,
	}

	var parent int
	parent, p.lastIndex = placeNode(p.doc.Nodes, p.lastPlaced, p.lastIndex, pos)
	idx := p.doc.addNode(node, parent)

	p.current = idx
	p.lastPlaced = idx
	return nil
}

// clampScale replaces zero scale components, which some exporters write by
// mistake, with 1.
func (p *tdsParser) clampScale(v math.Vec3) math.Vec3 {
	if v.X != 0 && v.Y != 0 && v.Z != 0 {
		return v
	}
	p.log.Debug("zero scale component clamped to 1", zap.String("node", p.doc.Nodes[p.current].Name))
	if v.X == 0 {
		v.X = 1
	}
	if v.Y == 0 {
		v.Y = 1
	}
	if v.Z == 0 {
		v.Z = 1
	}
	return v
}

// skipTCB skips the optional spline parameters of a key.
func (p *tdsParser) skipTCB() {
	flags := p.r.U16()
	if flags == 0 {
		return
	}
	p.log.Debug("skipping TCB animation info", zap.Uint16("flags", flags))
	for _, bit := range []uint16{keyUseTension, keyUseContinuity, keyUseBias, keyUseEaseTo, keyUseEaseFrom} {
		if flags&bit != 0 {
			p.r.Skip(4)
		}
	}
}

type timedKey interface {
	VectorKey | QuatKey | FloatKey
	KeyTime() float64
}

// readTrack appends n keys to keys. read decodes the value following the
// frame number and TCB info. Keys that do not arrive in strictly increasing
// time order trigger a stable sort and removal of duplicate times.
func readTrack[K timedKey](p *tdsParser, keys []K, n int, read func(t float64) K) []K {
	unsorted := false
	for i := 0; i < n; i++ {
		frame := p.r.U32()
		p.skipTCB()
		k := read(float64(frame))

		if len(keys) > 0 && k.KeyTime() <= keys[len(keys)-1].KeyTime() {
			unsorted = true
		}
		keys = append(keys, k)
	}
	if unsorted {
		keys = SortKeys(keys)
	}
	return keys
}

// SortKeys sorts keys by time, keeping arrival order among equal times, and
// then drops every key whose time equals its predecessor's.
func SortKeys[K timedKey](keys []K) []K {
	slices.SortStableFunc(keys, func(a, b K) int {
		return cmp.Compare(a.KeyTime(), b.KeyTime())
	})
	return slices.CompactFunc(keys, func(a, b K) bool {
		return a.KeyTime() == b.KeyTime()
	})
}

// AccumulateRotations converts rotation keys holding per-key deltas into
// absolute rotations: out[0] = keys[0], out[n] = normalize(out[n-1] * keys[n]).
// The input is not modified.
func AccumulateRotations(keys []QuatKey) []QuatKey {
	out := make([]QuatKey, len(keys))
	var abs math.Quat
	for i, k := range keys {
		if i == 0 {
			abs = k.Value
		} else {
			abs = abs.Mul(k.Value)
		}
		abs = abs.Normalize()
		out[i] = QuatKey{Time: k.Time, Value: abs}
	}
	return out
}

package formats

import (
	gomath "math"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/midgard-3ds/pkg/formats/tdstest"
	"github.com/Faultbox/midgard-3ds/pkg/math"
)

func childNames(doc *TDSDocument, i int) []string {
	var names []string
	for _, c := range doc.Nodes[i].Children {
		names = append(names, doc.Nodes[c].Name)
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseTDS_Hierarchy(t *testing.T) {
	data := tdstest.File(nil, [][]byte{
		tdstest.NodeBlock(tdstest.TrackInfo, "A", 0),
		tdstest.NodeBlock(tdstest.TrackInfo, "B", 1),
		tdstest.NodeBlock(tdstest.TrackInfo, "C", 1),
		tdstest.NodeBlock(tdstest.TrackInfo, "D", 0),
		tdstest.NodeBlock(tdstest.TrackInfo, "E", 4),
	})

	doc := mustParse(t, data)
	if len(doc.Nodes) != 6 {
		t.Fatalf("nodes = %d, want 6", len(doc.Nodes))
	}

	tests := []struct {
		node int
		want []string
	}{
		{0, []string{"A", "D"}},
		{1, []string{"B", "C"}},
		{4, []string{"E"}},
		{2, nil},
	}
	for _, tt := range tests {
		if got := childNames(doc, tt.node); !equalNames(got, tt.want) {
			t.Errorf("children of %s = %v, want %v", doc.Nodes[tt.node].Name, got, tt.want)
		}
	}

	// HierarchyIndex records the counter before each node was placed.
	wantIndex := []int{-1, -1, 0, 1, 2, 3}
	for i, want := range wantIndex {
		if got := doc.Nodes[i].HierarchyIndex; got != want {
			t.Errorf("node %d HierarchyIndex = %d, want %d", i, got, want)
		}
	}
}

func TestParseTDS_Instances(t *testing.T) {
	data := tdstest.File(nil, [][]byte{
		tdstest.NodeBlock(tdstest.TrackInfo, "Box", 0),
		tdstest.NodeBlock(tdstest.TrackInfo, "Box", 0),
	})

	doc := mustParse(t, data)
	if got := childNames(doc, 0); !equalNames(got, []string{"Box", "Box"}) {
		t.Fatalf("root children = %v", got)
	}
	first, second := doc.Nodes[1], doc.Nodes[2]
	if first.InstanceNumber != 1 || first.InstanceCount != 2 {
		t.Errorf("first instance = %d/%d, want 1/2", first.InstanceNumber, first.InstanceCount)
	}
	if second.InstanceNumber != 2 {
		t.Errorf("second InstanceNumber = %d, want 2", second.InstanceNumber)
	}
}

func TestParseTDS_CameraTarget(t *testing.T) {
	data := tdstest.File(nil, [][]byte{
		tdstest.NodeBlock(tdstest.TrackCamera, "Cam", 0,
			tdstest.PosTrack(tdstest.VecKey{Frame: 0, Value: [3]float32{1, 2, 3}}),
			tdstest.RollTrack(tdstest.RollKey{Frame: 0, Angle: 10}, tdstest.RollKey{Frame: 5, Angle: 20})),
		tdstest.NodeBlock(tdstest.TrackCameraTgt, "Cam", 1,
			tdstest.PosTrack(
				tdstest.VecKey{Frame: 0, Value: [3]float32{0, 0, 0}},
				tdstest.VecKey{Frame: 10, Value: [3]float32{0, 0, 5}})),
	})

	doc := mustParse(t, data)
	if len(doc.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2 (target must not create a node)", len(doc.Nodes))
	}
	cam := doc.Nodes[1]
	if len(cam.PositionKeys) != 1 || cam.PositionKeys[0].Value != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("PositionKeys = %v", cam.PositionKeys)
	}
	if len(cam.TargetPositionKeys) != 2 || cam.TargetPositionKeys[1].Time != 10 {
		t.Errorf("TargetPositionKeys = %v", cam.TargetPositionKeys)
	}
	if len(cam.RollKeys) != 2 || cam.RollKeys[1].Value != 20 {
		t.Errorf("RollKeys = %v", cam.RollKeys)
	}
	if !cam.IsAnimated() {
		t.Error("camera should be animated")
	}
}

func TestParseTDS_NodeBlockDiagnostics(t *testing.T) {
	data := tdstest.File(nil, [][]byte{
		tdstest.NodeBlock(tdstest.TrackInfo, "$$$DUMMY", 0,
			tdstest.Chunk(uint16(ChunkTrackDummyName), tdstest.CString("Helper")),
			tdstest.Pivot(1, 2, 3),
			tdstest.RollTrack(tdstest.RollKey{Frame: 0, Angle: 10})),
		tdstest.NodeBlock(tdstest.TrackLight, "Lamp", 0,
			tdstest.Pivot(4, 5, 6),
			tdstest.Chunk(uint16(ChunkTrackFOV), make([]byte, 4))),
	})

	log, logs := observedLogger()
	doc, err := ParseTDS(data, ParseOptions{Logger: log})
	if err != nil {
		t.Fatalf("ParseTDS: %v", err)
	}

	helper := doc.Nodes[1]
	if helper.Name != "Helper" {
		t.Errorf("dummy name = %q, want Helper", helper.Name)
	}
	if helper.Pivot != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("pivot = %v", helper.Pivot)
	}
	if len(helper.RollKeys) != 0 {
		t.Errorf("roll keys on object node = %v", helper.RollKeys)
	}
	if lamp := doc.Nodes[2]; !lamp.Pivot.IsZero() {
		t.Errorf("light pivot = %v, want zero", lamp.Pivot)
	}

	checks := []struct {
		msg   string
		level zapcore.Level
	}{
		{"ignoring roll track for non-camera node", zapcore.WarnLevel},
		{"skipping pivot for non-object node", zapcore.WarnLevel},
		{"skipping FOV animation track, not supported", zapcore.ErrorLevel},
	}
	for _, c := range checks {
		if logs.FilterMessage(c.msg).FilterLevelExact(c.level).Len() != 1 {
			t.Errorf("expected %s log %q", c.level, c.msg)
		}
	}
}

func TestParseTDS_Tracks(t *testing.T) {
	data := tdstest.File(nil, [][]byte{
		tdstest.NodeBlock(tdstest.TrackInfo, "Obj", 0,
			tdstest.PosTrack(
				tdstest.VecKey{Frame: 10, Value: [3]float32{1, 0, 0}},
				tdstest.VecKey{Frame: 0, Value: [3]float32{2, 0, 0}},
				tdstest.VecKey{Frame: 10, Value: [3]float32{3, 0, 0}}),
			tdstest.RotTrack(tdstest.RotKey{Frame: 0, Angle: gomath.Pi}),
			tdstest.ScaleTrack(tdstest.VecKey{Frame: 0, Value: [3]float32{2, 0, 3}})),
	})

	log, logs := observedLogger()
	doc, err := ParseTDS(data, ParseOptions{Logger: log})
	if err != nil {
		t.Fatalf("ParseTDS: %v", err)
	}
	n := doc.Nodes[1]

	if len(n.PositionKeys) != 2 {
		t.Fatalf("PositionKeys = %v, want 2 keys", n.PositionKeys)
	}
	if n.PositionKeys[0].Time != 0 || n.PositionKeys[1].Time != 10 {
		t.Errorf("key times = %v, %v", n.PositionKeys[0].Time, n.PositionKeys[1].Time)
	}
	// The first key read at a duplicated time survives.
	if n.PositionKeys[1].Value.X != 1 {
		t.Errorf("kept key value = %v, want X=1", n.PositionKeys[1].Value)
	}

	rot := n.RotationKeys[0].Value
	if gomath.Abs(float64(rot.Y)-1) > 1e-5 || gomath.Abs(float64(rot.W)) > 1e-5 {
		t.Errorf("zero-axis rotation = %v, want 180 degrees about Y", rot)
	}

	if got := n.ScalingKeys[0].Value; got != (math.Vec3{X: 2, Y: 1, Z: 3}) {
		t.Errorf("scale = %v, want (2, 1, 3)", got)
	}
	if logs.FilterMessage("zero scale component clamped to 1").FilterLevelExact(zapcore.DebugLevel).Len() != 1 {
		t.Error("expected scale clamp debug log")
	}
}

func TestParseTDS_TCBKeys(t *testing.T) {
	track := tdstest.Chunk(uint16(ChunkTrackPos),
		make([]byte, 10),
		tdstest.LE(uint32(1)),
		tdstest.LE(uint32(5), uint16(keyUseTension|keyUseContinuity), float32(0.1), float32(0.2)),
		tdstest.LE([3]float32{1, 2, 3}))
	data := tdstest.File(nil, [][]byte{
		tdstest.NodeBlock(tdstest.TrackInfo, "Obj", 0, track),
	})

	log, logs := observedLogger()
	doc, err := ParseTDS(data, ParseOptions{Logger: log})
	if err != nil {
		t.Fatalf("ParseTDS: %v", err)
	}
	keys := doc.Nodes[1].PositionKeys
	if len(keys) != 1 || keys[0].Time != 5 || keys[0].Value != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("PositionKeys = %v", keys)
	}
	if logs.FilterMessage("skipping TCB animation info").Len() != 1 {
		t.Error("expected TCB debug log")
	}
}

func TestSortKeys(t *testing.T) {
	keys := []FloatKey{{5, 1}, {1, 2}, {5, 3}, {3, 4}, {1, 5}}
	got := SortKeys(keys)

	want := []FloatKey{{1, 2}, {3, 4}, {5, 1}}
	if len(got) != len(want) {
		t.Fatalf("SortKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAccumulateRotations(t *testing.T) {
	z := math.Vec3{Z: 1}
	keys := []QuatKey{
		{Time: 0, Value: math.QuatFromAxisAngle(z, 0)},
		{Time: 10, Value: math.QuatFromAxisAngle(z, math.DegToRad(90))},
		{Time: 20, Value: math.QuatFromAxisAngle(z, math.DegToRad(90))},
	}
	orig := keys[2].Value

	got := AccumulateRotations(keys)

	if keys[2].Value != orig {
		t.Error("input keys were modified")
	}
	if got[0].Value != math.QuatIdentity() {
		t.Errorf("first key = %v, want identity", got[0].Value)
	}
	if a := got[1].Value.Angle(); gomath.Abs(float64(a)-gomath.Pi/2) > 1e-4 {
		t.Errorf("second key angle = %v, want pi/2", a)
	}
	last := got[2].Value
	if gomath.Abs(gomath.Abs(float64(last.Z))-1) > 1e-5 || gomath.Abs(float64(last.W)) > 1e-5 {
		t.Errorf("last key = %v, want 180 degrees about Z", last)
	}
	if got[2].Time != 20 {
		t.Errorf("time = %v", got[2].Time)
	}
}

//go:build ignore

// This program generates a test 3DS file for unit tests.
// Run with: go run generate_tds.go
package main

import (
	"os"

	"github.com/Faultbox/midgard-3ds/pkg/formats/tdstest"
)

func main() {
	vertices := [][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	faces := []tdstest.Face{
		{A: 0, B: 2, C: 1}, {A: 0, B: 3, C: 2}, // bottom
		{A: 4, B: 5, C: 6}, {A: 4, B: 6, C: 7}, // top
		{A: 0, B: 1, C: 5}, {A: 0, B: 5, C: 4}, // front
		{A: 1, B: 2, C: 6}, {A: 1, B: 6, C: 5}, // right
		{A: 2, B: 3, C: 7}, {A: 2, B: 7, C: 6}, // back
		{A: 3, B: 0, C: 4}, {A: 3, B: 4, C: 7}, // left
	}
	all := make([]uint16, len(faces))
	for i := range all {
		all[i] = uint16(i)
	}

	data := tdstest.File(
		[][]byte{
			tdstest.Material("Default", tdstest.Chunk(0xA020, tdstest.ColorB(153, 153, 153))),
			tdstest.Object("Cube", tdstest.TriMesh(vertices, faces, [][]byte{
				tdstest.FaceMaterial("Default", all...),
			})),
		},
		[][]byte{
			tdstest.NodeBlock(tdstest.TrackInfo, "Cube", 0,
				tdstest.PosTrack(
					tdstest.VecKey{Frame: 0},
					tdstest.VecKey{Frame: 10, Value: [3]float32{0, 0, 2}}),
				tdstest.RotTrack(tdstest.RotKey{Frame: 0, Axis: [3]float32{0, 0, 1}}),
				tdstest.ScaleTrack(tdstest.VecKey{Frame: 0, Value: [3]float32{1, 1, 1}})),
		},
	)

	if err := os.WriteFile("cube.3ds", data, 0644); err != nil {
		panic(err)
	}

	println("Generated cube.3ds:", len(data), "bytes")
	println("  - 1 material (Default)")
	println("  - 1 mesh (Cube: 8 vertices, 12 faces)")
	println("  - 1 keyframer node (Cube, 2 position keys)")
}

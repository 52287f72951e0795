// Package tdstest builds 3DS byte streams for tests.
//
// Chunk ids are plain uint16 values so that the package can be used from the
// formats package's own tests.
package tdstest

import (
	"bytes"
	"encoding/binary"
)

// Chunk ids used by the helpers below.
const (
	idMain        = 0x4D4D
	idEditor      = 0x3D3D
	idKeyframer   = 0xB000
	idObject      = 0x4000
	idTriMesh     = 0x4100
	idVertexList  = 0x4110
	idFaceList    = 0x4120
	idFaceMat     = 0x4130
	idMapList     = 0x4140
	idSmoothList  = 0x4150
	idMeshMatrix  = 0x4160
	idMaterial    = 0xAFFF
	idMatName     = 0xA000
	idRGBF        = 0x0010
	idRGBB        = 0x0011
	idPercentW    = 0x0030
	idTrackObj    = 0xB010
	idTrackPivot  = 0xB013
	idTrackPos    = 0xB020
	idTrackRotate = 0xB021
	idTrackScale  = 0xB022
	idTrackRoll   = 0xB024
)

// Node block kinds.
const (
	TrackInfo      = 0xB002
	TrackCamera    = 0xB003
	TrackCameraTgt = 0xB004
	TrackLight     = 0xB005
)

// Chunk encodes a chunk: id, total length and the concatenated payload parts.
func Chunk(id uint16, payload ...[]byte) []byte {
	var body bytes.Buffer
	for _, p := range payload {
		body.Write(p)
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, id)
	binary.Write(&buf, binary.LittleEndian, uint32(body.Len()+6))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// LE encodes fixed-size values in little-endian order.
func LE(values ...any) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

// CString encodes a NUL-terminated string.
func CString(s string) []byte {
	return append([]byte(s), 0)
}

// File wraps editor and keyframer chunks into a MAIN chunk. A nil keyframer
// omits the keyframer section.
func File(editor [][]byte, keyframer [][]byte) []byte {
	parts := [][]byte{Chunk(idEditor, editor...)}
	if keyframer != nil {
		parts = append(parts, Chunk(idKeyframer, keyframer...))
	}
	return Chunk(idMain, parts...)
}

// Object encodes a named object block.
func Object(name string, body ...[]byte) []byte {
	return Chunk(idObject, append([][]byte{CString(name)}, body...)...)
}

// Face is a triangle given by three vertex indices.
type Face struct {
	A, B, C uint16
}

// TriMesh encodes a TRIMESH chunk with a vertex list and a face list. Extra
// face sub-chunks (see SmoothList and FaceMaterial) are appended to the face
// list payload; extra mesh sub-chunks are appended after it.
func TriMesh(vertices [][3]float32, faces []Face, faceSub [][]byte, meshSub ...[]byte) []byte {
	vl := LE(uint16(len(vertices)))
	for _, v := range vertices {
		vl = append(vl, LE(v)...)
	}

	fl := LE(uint16(len(faces)))
	for _, f := range faces {
		fl = append(fl, LE(f.A, f.B, f.C, uint16(0))...)
	}
	fl = append(fl, bytes.Join(faceSub, nil)...)

	parts := [][]byte{Chunk(idVertexList, vl), Chunk(idFaceList, fl)}
	return Chunk(idTriMesh, append(parts, meshSub...)...)
}

// MapList encodes a texture coordinate list.
func MapList(uvs [][2]float32) []byte {
	b := LE(uint16(len(uvs)))
	for _, uv := range uvs {
		b = append(b, LE(uv)...)
	}
	return Chunk(idMapList, b)
}

// MeshMatrix encodes a TRMATRIX chunk: X, Y, Z axes then translation.
func MeshMatrix(m [12]float32) []byte {
	return Chunk(idMeshMatrix, LE(m))
}

// SmoothList encodes per-face smoothing group masks.
func SmoothList(groups ...uint32) []byte {
	return Chunk(idSmoothList, LE(groups))
}

// FaceMaterial encodes a material assignment for the given faces.
func FaceMaterial(name string, faces ...uint16) []byte {
	return Chunk(idFaceMat, CString(name), LE(uint16(len(faces))), LE(faces))
}

// Material encodes a MAT_MATERIAL chunk with a name and extra sub-chunks.
func Material(name string, sub ...[]byte) []byte {
	return Chunk(idMaterial, append([][]byte{Chunk(idMatName, CString(name))}, sub...)...)
}

// ColorF encodes an RGBF color sub-chunk.
func ColorF(r, g, b float32) []byte {
	return Chunk(idRGBF, LE(r, g, b))
}

// ColorB encodes an RGBB color sub-chunk.
func ColorB(r, g, b uint8) []byte {
	return Chunk(idRGBB, []byte{r, g, b})
}

// PercentW encodes an integer percentage sub-chunk.
func PercentW(v uint16) []byte {
	return Chunk(idPercentW, LE(v))
}

// NodeBlock encodes a keyframer node block of the given kind. pos is the
// hierarchy position; it is written as pos-1 as the format requires.
func NodeBlock(kind uint16, name string, pos int, tracks ...[]byte) []byte {
	hdr := Chunk(idTrackObj, CString(name), LE(uint16(0), uint16(0), uint16(pos-1)))
	return Chunk(kind, append([][]byte{hdr}, tracks...)...)
}

// Pivot encodes a pivot chunk.
func Pivot(x, y, z float32) []byte {
	return Chunk(idTrackPivot, LE(x, y, z))
}

// VecKey is a position or scale key.
type VecKey struct {
	Frame uint32
	Value [3]float32
}

// RotKey is an axis-angle rotation key.
type RotKey struct {
	Frame uint32
	Angle float32 // Radians
	Axis  [3]float32
}

// RollKey is a camera roll key.
type RollKey struct {
	Frame uint32
	Angle float32 // Degrees
}

func trackHeader(n int) []byte {
	return append(make([]byte, 10), LE(uint32(n))...)
}

// PosTrack encodes a position track. Keys carry no TCB data.
func PosTrack(keys ...VecKey) []byte {
	b := trackHeader(len(keys))
	for _, k := range keys {
		b = append(b, LE(k.Frame, uint16(0), k.Value)...)
	}
	return Chunk(idTrackPos, b)
}

// RotTrack encodes a rotation track.
func RotTrack(keys ...RotKey) []byte {
	b := trackHeader(len(keys))
	for _, k := range keys {
		b = append(b, LE(k.Frame, uint16(0), k.Angle, k.Axis)...)
	}
	return Chunk(idTrackRotate, b)
}

// ScaleTrack encodes a scale track.
func ScaleTrack(keys ...VecKey) []byte {
	b := append(make([]byte, 10), LE(uint16(len(keys)), uint16(0))...)
	for _, k := range keys {
		b = append(b, LE(k.Frame, uint16(0), k.Value)...)
	}
	return Chunk(idTrackScale, b)
}

// RollTrack encodes a camera roll track.
func RollTrack(keys ...RollKey) []byte {
	b := trackHeader(len(keys))
	for _, k := range keys {
		b = append(b, LE(k.Frame, uint16(0), k.Angle)...)
	}
	return Chunk(idTrackRoll, b)
}

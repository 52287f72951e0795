package formats

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/math"
)

// PostProcess prepares every mesh of doc for conversion: indices are
// validated, the mesh is expanded to one vertex per face corner and normals
// are generated from the smoothing groups.
func PostProcess(doc *TDSDocument, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	for i := range doc.Meshes {
		m := &doc.Meshes[i]
		if len(m.Faces) > 0 && len(m.Positions) == 0 {
			return decodeError(ErrFacesWithoutVertices, "mesh %q", m.Name)
		}
		CheckIndices(m, log)
		MakeUnique(m)
		ComputeNormals(m)
	}
	return nil
}

// CheckIndices clamps face indices that point past the position (or, if
// present, texture coordinate) array to the last valid element. A mesh
// without positions has nothing to clamp to and is left untouched.
func CheckIndices(m *TDSMesh, log *zap.Logger) {
	np := uint32(len(m.Positions))
	nt := uint32(len(m.TexCoords))
	if np == 0 {
		return
	}

	for fi := range m.Faces {
		f := &m.Faces[fi]
		for a := range f.Indices {
			if f.Indices[a] >= np {
				log.Warn("vertex index overflow",
					zap.String("mesh", m.Name),
					zap.Int("face", fi),
					zap.Uint32("index", f.Indices[a]),
					zap.Uint32("vertices", np))
				f.Indices[a] = np - 1
			}
			if nt > 0 && f.Indices[a] >= nt {
				log.Warn("texture coordinate index overflow",
					zap.String("mesh", m.Name),
					zap.Int("face", fi),
					zap.Uint32("index", f.Indices[a]),
					zap.Uint32("texcoords", nt))
				f.Indices[a] = nt - 1
			}
		}
	}
}

// MakeUnique expands an indexed mesh so that every face corner owns its own
// vertex. Face i then references vertices 3i, 3i+1 and 3i+2. Meshes without
// positions are left unchanged.
func MakeUnique(m *TDSMesh) {
	if len(m.Positions) == 0 {
		return
	}
	positions := make([]math.Vec3, len(m.Faces)*3)
	var uvs []math.Vec2
	if len(m.TexCoords) > 0 {
		uvs = make([]math.Vec2, len(m.Faces)*3)
	}

	base := uint32(0)
	for fi := range m.Faces {
		f := &m.Faces[fi]
		for a := range f.Indices {
			positions[base] = m.Positions[f.Indices[a]]
			if uvs != nil {
				uvs[base] = m.TexCoords[f.Indices[a]]
			}
			f.Indices[a] = base
			base++
		}
	}

	m.Positions = positions
	m.TexCoords = uvs
}

// ComputeNormals fills m.Normals with one normal per vertex.
//
// A corner's normal is the normalized sum of the area-weighted normals of all
// faces that touch the same position and share at least one smoothing group
// with the corner's face. Faces without any smoothing group get their flat
// normal.
func ComputeNormals(m *TDSMesh) {
	if len(m.Positions) == 0 {
		m.Normals = nil
		return
	}
	faceNormals := make([]math.Vec3, len(m.Faces))
	byPosition := make(map[math.Vec3][]int)

	for fi, f := range m.Faces {
		a := m.Positions[f.Indices[0]]
		b := m.Positions[f.Indices[1]]
		c := m.Positions[f.Indices[2]]
		// Length is twice the face area.
		faceNormals[fi] = b.Sub(a).Cross(c.Sub(a))

		for _, idx := range f.Indices {
			pos := m.Positions[idx]
			faces := byPosition[pos]
			if len(faces) == 0 || faces[len(faces)-1] != fi {
				byPosition[pos] = append(faces, fi)
			}
		}
	}

	m.Normals = make([]math.Vec3, len(m.Positions))
	for fi, f := range m.Faces {
		for _, idx := range f.Indices {
			if f.SmoothGroup == 0 {
				m.Normals[idx] = faceNormals[fi].Normalize()
				continue
			}

			sum := faceNormals[fi]
			for _, other := range byPosition[m.Positions[idx]] {
				if other != fi && m.Faces[other].SmoothGroup&f.SmoothGroup != 0 {
					sum = sum.Add(faceNormals[other])
				}
			}
			m.Normals[idx] = sum.Normalize()
		}
	}
}

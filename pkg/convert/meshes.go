package convert

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/math"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

// splitMeshes emits one output mesh per source mesh and material, in
// material order. Output meshes keep the source mesh's name.
func (c *converter) splitMeshes() error {
	numMaterials := len(c.doc.Materials)
	faces := 0

	for si := range c.doc.Meshes {
		src := &c.doc.Meshes[si]

		byMaterial := make([][]int, numMaterials)
		for fi := range src.Faces {
			mat := formats.NoMaterial
			if fi < len(src.FaceMaterials) {
				mat = src.FaceMaterials[fi]
			}
			if int64(mat) >= int64(numMaterials) {
				c.log.Error("face without a valid material dropped",
					zap.String("mesh", src.Name),
					zap.Int("face", fi),
					zap.Uint32("material", mat))
				continue
			}
			byMaterial[mat] = append(byMaterial[mat], fi)
		}

		for mi, list := range byMaterial {
			if len(list) == 0 {
				continue
			}
			c.out.Meshes = append(c.out.Meshes, subMesh(src, list, mi))
			c.origins = append(c.origins, origin{source: si})
			faces += len(list)
		}
	}

	if faces == 0 {
		return &formats.DecodeError{Msg: "no faces loaded, the mesh is empty", Err: formats.ErrNoFaces}
	}
	return nil
}

// subMesh copies the listed faces of src into a new mesh with its own
// compacted vertex buffers.
func subMesh(src *formats.TDSMesh, faces []int, material int) scene.Mesh {
	n := len(faces) * 3
	out := scene.Mesh{
		Name:          src.Name,
		Positions:     make([]math.Vec3, 0, n),
		Normals:       make([]math.Vec3, 0, n),
		Faces:         make([][3]uint32, 0, len(faces)),
		MaterialIndex: material,
	}
	hasUV := len(src.TexCoords) > 0
	if hasUV {
		out.TexCoords = make([]math.Vec2, 0, n)
	}

	for _, fi := range faces {
		var face [3]uint32
		for a, idx := range src.Faces[fi].Indices {
			face[a] = uint32(len(out.Positions))
			out.Positions = append(out.Positions, src.Positions[idx])
			var normal math.Vec3
			if int(idx) < len(src.Normals) {
				normal = src.Normals[idx]
			}
			out.Normals = append(out.Normals, normal)
			if hasUV {
				out.TexCoords = append(out.TexCoords, src.TexCoords[idx])
			}
		}
		out.Faces = append(out.Faces, face)
	}
	return out
}

// bake moves the vertices of output mesh i from world space into the local
// space of its source mesh's matrix and recenters them on pivot. It runs
// once per mesh, however many nodes reference it.
func (c *converter) bake(i int, pivot math.Vec3) {
	o := &c.origins[i]
	if o.baked {
		return
	}
	o.baked = true

	mesh := &c.out.Meshes[i]
	m := c.doc.Meshes[o.source].Matrix
	inv := m.Inverse()
	normalMat := m.Transpose()

	for v := range mesh.Positions {
		mesh.Positions[v] = inv.TransformPoint(mesh.Positions[v])
	}
	for v := range mesh.Normals {
		mesh.Normals[v] = normalMat.TransformDirection(mesh.Normals[v]).Normalize()
	}

	if m.Determinant() < 0 {
		for v := range mesh.Positions {
			mesh.Positions[v].X = -mesh.Positions[v].X
		}
		for v := range mesh.Normals {
			mesh.Normals[v].X = -mesh.Normals[v].X
		}
		c.log.Info("flipping mesh X axis", zap.String("mesh", mesh.Name))
	}

	if !pivot.IsZero() {
		for v := range mesh.Positions {
			mesh.Positions[v] = mesh.Positions[v].Sub(pivot)
		}
	}
}

package formats

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/encoding"
	"github.com/Faultbox/midgard-3ds/pkg/math"
	"github.com/Faultbox/midgard-3ds/pkg/stream"
)

// chunkHeaderSize is the size of the id + length prefix of every chunk.
const chunkHeaderSize = 6

// ParseOptions configures a decode. The zero value is usable.
type ParseOptions struct {
	// Logger receives recoverable problems. nil discards them.
	Logger *zap.Logger
	// NameEncoding decodes object, material and map names.
	NameEncoding encoding.NameEncoding
}

// chunk is a decoded chunk header.
type chunk struct {
	ID   ChunkID
	Size int // Payload size, header excluded
}

// chunkHandler decodes the payload of one chunk. The reader is limited to
// the payload while it runs.
type chunkHandler func(p *tdsParser, c chunk) error

// tdsParser holds the state of a single decode.
type tdsParser struct {
	r     *stream.Reader
	log   *zap.Logger
	names encoding.NameEncoding
	doc   *TDSDocument

	objectName string      // Name of the OBJBLOCK being read
	texture    *TDSTexture // Slot of the texture chunk being read
	trackType  ChunkID     // Kind of the keyframer node block being read

	current    int // Node receiving track data
	lastPlaced int // Last node inserted into the hierarchy
	lastIndex  int // Running hierarchy counter
}

// IsTDS reports whether data starts with a 3DS, PRJ or MLI container chunk.
func IsTDS(data []byte) bool {
	if len(data) < chunkHeaderSize {
		return false
	}
	switch ChunkID(binary.LittleEndian.Uint16(data)) {
	case ChunkMain, ChunkProject, ChunkMaterialLibrary:
		return true
	}
	return false
}

// ParseTDS decodes a 3DS file from a byte slice.
//
// The returned document holds the raw decoded data; see PostProcess and
// ResolveDefaultMaterial for the steps that prepare it for conversion.
func ParseTDS(data []byte, opts ParseOptions) (*TDSDocument, error) {
	if len(data) < chunkHeaderSize {
		return nil, decodeError(ErrTruncatedTDSData, "%d bytes", len(data))
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := &tdsParser{
		r:         stream.NewReader(data),
		log:       log,
		names:     opts.NameEncoding,
		doc:       newTDSDocument(),
		lastIndex: -1,
	}

	if err := p.parseChunks(mainHandlers); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// ParseTDSFile decodes a 3DS file from disk.
func ParseTDSFile(path string, opts ParseOptions) (*TDSDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading 3DS file: %w", err)
	}
	return ParseTDS(data, opts)
}

// readHeader reads a chunk header and checks its length against the whole
// stream and the active limit.
func (p *tdsParser) readHeader() (chunk, error) {
	id := ChunkID(p.r.U16())
	size := int64(p.r.U32()) - chunkHeaderSize

	if size > int64(p.r.Remaining()) {
		return chunk{}, decodeError(ErrChunkTooLarge, "chunk %s at offset %d", id, p.r.Pos()-chunkHeaderSize)
	}
	if size > int64(p.r.RemainingToLimit()) {
		p.log.Error("chunk overflows its parent",
			zap.Stringer("chunk", id),
			zap.Int64("size", size),
			zap.Int("available", p.r.RemainingToLimit()))
		size = int64(p.r.RemainingToLimit())
	}
	return chunk{ID: id, Size: int(size)}, nil
}

// parseChunks reads sibling chunks until the active limit is exhausted and
// dispatches each one through handlers. Unknown chunks are skipped.
func (p *tdsParser) parseChunks(handlers map[ChunkID]chunkHandler) error {
	for p.r.RemainingToLimit() >= chunkHeaderSize {
		c, err := p.readHeader()
		if err != nil {
			return err
		}
		if c.Size <= 0 {
			continue
		}

		p.r.PushLimit(p.r.Pos() + c.Size)
		if h, ok := handlers[c.ID]; ok {
			err = h(p, c)
		}
		p.r.PopLimit()
		if err != nil {
			return err
		}
	}
	return nil
}

// readName reads a NUL-terminated string and decodes it.
func (p *tdsParser) readName() string {
	return p.names.Decode(p.r.CString())
}

// readVec3 reads three little-endian floats.
func (p *tdsParser) readVec3() math.Vec3 {
	return math.Vec3{X: p.r.F32(), Y: p.r.F32(), Z: p.r.F32()}
}

// capCount limits an element count read from the stream to what the active
// limit can actually hold.
func (p *tdsParser) capCount(n, elemSize int, what string) int {
	if limit := p.r.RemainingToLimit() / elemSize; n > limit {
		p.log.Warn("element count exceeds chunk size",
			zap.String("what", what),
			zap.Int("count", n),
			zap.Int("available", limit))
		return limit
	}
	return n
}

var mainHandlers = map[ChunkID]chunkHandler{
	ChunkMain:            (*tdsParser).parseEditor,
	ChunkMaterialLibrary: (*tdsParser).parseEditor,
	ChunkProject: func(p *tdsParser, c chunk) error {
		p.doc.IsProject = true
		return p.parseEditor(c)
	},
}

func (p *tdsParser) parseEditor(chunk) error {
	return p.parseChunks(editorHandlers)
}

var editorHandlers = map[ChunkID]chunkHandler{
	ChunkEditor:    (*tdsParser).parseObjects,
	ChunkKeyframer: (*tdsParser).parseKeyframer,
	ChunkVersion: func(p *tdsParser, _ chunk) error {
		p.doc.Version = p.r.U16()
		p.log.Info("3DS file format version", zap.Uint16("version", p.doc.Version))
		return nil
	},
}

func (p *tdsParser) parseObjects(chunk) error {
	return p.parseChunks(objectHandlers)
}

var objectHandlers = map[ChunkID]chunkHandler{
	ChunkObject: func(p *tdsParser, _ chunk) error {
		p.objectName = p.readName()
		return p.parseChunks(namedObjectHandlers)
	},
	ChunkMaterial: (*tdsParser).parseMaterial,
	ChunkAmbientColor: func(p *tdsParser, _ chunk) error {
		clr, ok, err := p.readColor(true)
		if err != nil {
			return err
		}
		if !ok {
			p.log.Error("failed to read ambient base color")
			clr = math.Color3{}
		}
		p.doc.Ambient = clr
		return nil
	},
	ChunkBitmap: func(p *tdsParser, _ chunk) error {
		p.doc.BackgroundImage = p.readName()
		return nil
	},
	ChunkBitmapExists: func(p *tdsParser, _ chunk) error {
		p.doc.HasBackground = true
		return nil
	},
	ChunkMasterScale: func(p *tdsParser, _ chunk) error {
		p.doc.MasterScale = p.r.F32()
		return nil
	},
}

var namedObjectHandlers = map[ChunkID]chunkHandler{
	ChunkTriMesh: func(p *tdsParser, _ chunk) error {
		p.doc.Meshes = append(p.doc.Meshes, NewTDSMesh(p.objectName))
		return p.parseChunks(meshHandlers)
	},
	ChunkLight:  (*tdsParser).parseLight,
	ChunkCamera: (*tdsParser).parseCamera,
}

// mesh returns the mesh being built.
func (p *tdsParser) mesh() *TDSMesh {
	return &p.doc.Meshes[len(p.doc.Meshes)-1]
}

var meshHandlers = map[ChunkID]chunkHandler{
	ChunkVertexList: func(p *tdsParser, _ chunk) error {
		m := p.mesh()
		n := p.capCount(int(p.r.U16()), 12, "vertices")
		m.Positions = make([]math.Vec3, 0, n)
		for i := 0; i < n; i++ {
			m.Positions = append(m.Positions, p.readVec3())
		}
		return nil
	},
	ChunkMeshMatrix: func(p *tdsParser, _ chunk) error {
		var v [12]float32
		for i := range v {
			v[i] = p.r.F32()
		}
		p.mesh().Matrix = math.FromAffine(v)
		return nil
	},
	ChunkMapList: func(p *tdsParser, _ chunk) error {
		m := p.mesh()
		n := p.capCount(int(p.r.U16()), 8, "texture coordinates")
		m.TexCoords = make([]math.Vec2, 0, n)
		for i := 0; i < n; i++ {
			m.TexCoords = append(m.TexCoords, math.Vec2{X: p.r.F32(), Y: p.r.F32()})
		}
		return nil
	},
	ChunkFaceList: (*tdsParser).parseFaceList,
}

func (p *tdsParser) parseFaceList(chunk) error {
	m := p.mesh()
	n := p.capCount(int(p.r.U16()), 8, "faces")
	for i := 0; i < n; i++ {
		var f TDSFace
		f.Indices[0] = uint32(p.r.U16())
		f.Indices[1] = uint32(p.r.U16())
		f.Indices[2] = uint32(p.r.U16())
		p.r.Skip(2) // edge visibility flags
		m.Faces = append(m.Faces, f)
	}

	for len(m.FaceMaterials) < len(m.Faces) {
		m.FaceMaterials = append(m.FaceMaterials, NoMaterial)
	}

	// Smoothing groups and material assignments follow inside the same payload.
	if p.r.RemainingToLimit() > chunkHeaderSize {
		return p.parseChunks(faceHandlers)
	}
	return nil
}

var faceHandlers = map[ChunkID]chunkHandler{
	ChunkSmoothList: func(p *tdsParser, c chunk) error {
		m := p.mesh()
		n := c.Size / 4
		if n > len(m.Faces) {
			return decodeError(ErrTooManySmoothingGroups, "mesh %q: %d groups for %d faces", m.Name, n, len(m.Faces))
		}
		for i := 0; i < n; i++ {
			m.Faces[i].SmoothGroup = p.r.U32()
		}
		return nil
	},
	ChunkFaceMaterial: func(p *tdsParser, _ chunk) error {
		m := p.mesh()
		name := p.readName()

		idx := NoMaterial
		for i := range p.doc.Materials {
			if mn := p.doc.Materials[i].Name; mn != "" && strings.EqualFold(mn, name) {
				idx = uint32(i)
				break
			}
		}
		if idx == NoMaterial {
			p.log.Error("unknown material", zap.String("material", name), zap.String("mesh", m.Name))
		}

		n := p.capCount(int(p.r.U16()), 2, "face material indices")
		for i := 0; i < n; i++ {
			face := int(p.r.U16())
			if face >= len(m.FaceMaterials) {
				p.log.Error("invalid face index in face material list",
					zap.String("mesh", m.Name), zap.Int("face", face))
				continue
			}
			m.FaceMaterials[face] = idx
		}
		return nil
	},
}

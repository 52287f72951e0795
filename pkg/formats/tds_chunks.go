package formats

import "fmt"

// ChunkID identifies a 3DS chunk.
type ChunkID uint16

// Container chunks.
const (
	ChunkMain            ChunkID = 0x4D4D
	ChunkProject         ChunkID = 0xC23D // .prj files
	ChunkMaterialLibrary ChunkID = 0x3DAA // .mli files
	ChunkVersion         ChunkID = 0x0002
	ChunkEditor          ChunkID = 0x3D3D
	ChunkKeyframer       ChunkID = 0xB000
)

// Editor chunks.
const (
	ChunkMasterScale  ChunkID = 0x0100
	ChunkAmbientColor ChunkID = 0x2100
	ChunkBitmap       ChunkID = 0x1100
	ChunkBitmapExists ChunkID = 0x1101
	ChunkObject       ChunkID = 0x4000
	ChunkTriMesh      ChunkID = 0x4100
	ChunkVertexList   ChunkID = 0x4110
	ChunkFaceList     ChunkID = 0x4120
	ChunkFaceMaterial ChunkID = 0x4130
	ChunkMapList      ChunkID = 0x4140
	ChunkSmoothList   ChunkID = 0x4150
	ChunkMeshMatrix   ChunkID = 0x4160
	ChunkLight        ChunkID = 0x4600
	ChunkSpotlight    ChunkID = 0x4610
	ChunkAttenuate    ChunkID = 0x4625
	ChunkMultiplier   ChunkID = 0x465B
	ChunkCamera       ChunkID = 0x4700
	ChunkCameraRanges ChunkID = 0x4720
)

// Color and percentage sub-chunks.
const (
	ChunkRGBF     ChunkID = 0x0010
	ChunkRGBB     ChunkID = 0x0011
	ChunkLinRGBB  ChunkID = 0x0012
	ChunkLinRGBF  ChunkID = 0x0013
	ChunkPercentW ChunkID = 0x0030
	ChunkPercentF ChunkID = 0x0031
	ChunkPercentD ChunkID = 0x0032
)

// Material chunks.
const (
	ChunkMaterial         ChunkID = 0xAFFF
	ChunkMatName          ChunkID = 0xA000
	ChunkMatAmbient       ChunkID = 0xA010
	ChunkMatDiffuse       ChunkID = 0xA020
	ChunkMatSpecular      ChunkID = 0xA030
	ChunkMatShininess     ChunkID = 0xA040
	ChunkMatShininessPct  ChunkID = 0xA041
	ChunkMatTransparency  ChunkID = 0xA050
	ChunkMatSelfIllum     ChunkID = 0xA080
	ChunkMatTwoSided      ChunkID = 0xA081
	ChunkMatSelfIllumPct  ChunkID = 0xA084
	ChunkMatShading       ChunkID = 0xA100
	ChunkMatTexture       ChunkID = 0xA200
	ChunkMatSpecularMap   ChunkID = 0xA204
	ChunkMatOpacityMap    ChunkID = 0xA210
	ChunkMatReflectionMap ChunkID = 0xA220
	ChunkMatBumpMap       ChunkID = 0xA230
	ChunkMatShininessMap  ChunkID = 0xA33C
	ChunkMatSelfIllumMap  ChunkID = 0xA33D
	ChunkMapFile          ChunkID = 0xA300
	ChunkMapTiling        ChunkID = 0xA351
	ChunkMapUScale        ChunkID = 0xA354
	ChunkMapVScale        ChunkID = 0xA356
	ChunkMapUOffset       ChunkID = 0xA358
	ChunkMapVOffset       ChunkID = 0xA35A
	ChunkMapAngle         ChunkID = 0xA35C
)

// Keyframer chunks.
const (
	ChunkTrackInfo      ChunkID = 0xB002
	ChunkTrackCamera    ChunkID = 0xB003
	ChunkTrackCameraTgt ChunkID = 0xB004
	ChunkTrackLight     ChunkID = 0xB005
	ChunkTrackLightTgt  ChunkID = 0xB006
	ChunkTrackSpotlight ChunkID = 0xB007
	ChunkTrackObjName   ChunkID = 0xB010
	ChunkTrackDummyName ChunkID = 0xB011
	ChunkTrackPivot     ChunkID = 0xB013
	ChunkTrackPos       ChunkID = 0xB020
	ChunkTrackRotate    ChunkID = 0xB021
	ChunkTrackScale     ChunkID = 0xB022
	ChunkTrackFOV       ChunkID = 0xB023
	ChunkTrackRoll      ChunkID = 0xB024
)

var chunkNames = map[ChunkID]string{
	ChunkMain:             "MAIN",
	ChunkProject:          "PRJ",
	ChunkMaterialLibrary:  "MLI",
	ChunkVersion:          "VERSION",
	ChunkEditor:           "EDITOR",
	ChunkKeyframer:        "KEYFRAMER",
	ChunkMasterScale:      "MASTER_SCALE",
	ChunkAmbientColor:     "AMBIENT_COLOR",
	ChunkBitmap:           "BIT_MAP",
	ChunkBitmapExists:     "BIT_MAP_EXISTS",
	ChunkObject:           "OBJBLOCK",
	ChunkTriMesh:          "TRIMESH",
	ChunkVertexList:       "VERTLIST",
	ChunkFaceList:         "FACELIST",
	ChunkFaceMaterial:     "FACEMAT",
	ChunkMapList:          "MAPLIST",
	ChunkSmoothList:       "SMOOLIST",
	ChunkMeshMatrix:       "TRMATRIX",
	ChunkLight:            "LIGHT",
	ChunkSpotlight:        "DL_SPOTLIGHT",
	ChunkAttenuate:        "DL_ATTENUATE",
	ChunkMultiplier:       "DL_MULTIPLIER",
	ChunkCamera:           "CAMERA",
	ChunkCameraRanges:     "CAM_RANGES",
	ChunkRGBF:             "RGBF",
	ChunkRGBB:             "RGBB",
	ChunkLinRGBB:          "LINRGBB",
	ChunkLinRGBF:          "LINRGBF",
	ChunkPercentW:         "PERCENTW",
	ChunkPercentF:         "PERCENTF",
	ChunkPercentD:         "PERCENTD",
	ChunkMaterial:         "MAT_MATERIAL",
	ChunkMatName:          "MAT_NAME",
	ChunkMatAmbient:       "MAT_AMBIENT",
	ChunkMatDiffuse:       "MAT_DIFFUSE",
	ChunkMatSpecular:      "MAT_SPECULAR",
	ChunkMatShininess:     "MAT_SHININESS",
	ChunkMatShininessPct:  "MAT_SHIN2PCT",
	ChunkMatTransparency:  "MAT_TRANSPARENCY",
	ChunkMatSelfIllum:     "MAT_SELF_ILLUM",
	ChunkMatTwoSided:      "MAT_TWO_SIDE",
	ChunkMatSelfIllumPct:  "MAT_SELF_ILPCT",
	ChunkMatShading:       "MAT_SHADING",
	ChunkMatTexture:       "MAT_TEXMAP",
	ChunkMatSpecularMap:   "MAT_SPECMAP",
	ChunkMatOpacityMap:    "MAT_OPACMAP",
	ChunkMatReflectionMap: "MAT_REFLMAP",
	ChunkMatBumpMap:       "MAT_BUMPMAP",
	ChunkMatShininessMap:  "MAT_SHINMAP",
	ChunkMatSelfIllumMap:  "MAT_SELFIMAP",
	ChunkMapFile:          "MAT_MAPNAME",
	ChunkMapTiling:        "MAT_MAP_TILING",
	ChunkMapUScale:        "MAT_MAP_USCALE",
	ChunkMapVScale:        "MAT_MAP_VSCALE",
	ChunkMapUOffset:       "MAT_MAP_UOFFSET",
	ChunkMapVOffset:       "MAT_MAP_VOFFSET",
	ChunkMapAngle:         "MAT_MAP_ANG",
	ChunkTrackInfo:        "OBJECT_NODE_TAG",
	ChunkTrackCamera:      "CAMERA_NODE_TAG",
	ChunkTrackCameraTgt:   "TARGET_NODE_TAG",
	ChunkTrackLight:       "LIGHT_NODE_TAG",
	ChunkTrackLightTgt:    "L_TARGET_NODE_TAG",
	ChunkTrackSpotlight:   "SPOTLIGHT_NODE_TAG",
	ChunkTrackObjName:     "NODE_HDR",
	ChunkTrackDummyName:   "INSTANCE_NAME",
	ChunkTrackPivot:       "PIVOT",
	ChunkTrackPos:         "POS_TRACK_TAG",
	ChunkTrackRotate:      "ROT_TRACK_TAG",
	ChunkTrackScale:       "SCL_TRACK_TAG",
	ChunkTrackFOV:         "FOV_TRACK_TAG",
	ChunkTrackRoll:        "ROLL_TRACK_TAG",
}

// String returns the conventional chunk name, or the hex id for unknown chunks.
func (id ChunkID) String() string {
	if name, ok := chunkNames[id]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint16(id))
}

// Package formats decodes Autodesk 3D Studio (.3ds, .prj, .mli) files.
//
// A 3DS file is a tree of chunks, each a 16-bit id and a 32-bit length
// followed by a payload that holds fields and nested chunks. ParseTDS walks
// that tree into a TDSDocument: meshes, materials, lights, cameras and the
// keyframer node hierarchy with its animation tracks. Unknown chunks are
// skipped; malformed content is reported through the logger and replaced by
// defaults wherever decoding can continue.
//
// The decoded document stays close to the file. PostProcess and
// ResolveDefaultMaterial prepare it for conversion into a scene.
package formats

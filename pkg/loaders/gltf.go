package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/segfall/prism/pkg/core"
	"github.com/segfall/prism/pkg/geometry"
)

// LoadMesh reads a glTF or GLB file and builds a triangle mesh sharing one
// vertex/normal buffer. Only triangle primitives are imported; meshes without
// normals fall back to geometric normals at intersection time. The whole
// document collapses into a single mesh under the given material.
func LoadMesh(path string, mat core.Material) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var vertices, normals []core.Vec3
	var faces []int

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			// Mode 0 shows up for documents that omit the field
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q positions: %w", m.Name, err)
			}

			var primNormals []core.Vec3
			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				primNormals, err = readVec3Accessor(doc, normIdx)
				if err != nil {
					return nil, fmt.Errorf("mesh %q normals: %w", m.Name, err)
				}
				if len(primNormals) != len(positions) {
					return nil, fmt.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(primNormals), len(positions))
				}
			}

			// Mixing primitives with and without normals would desync the
			// parallel buffers, so drop normals entirely in that case
			base := len(vertices)
			if base > 0 && (len(normals) > 0) != (primNormals != nil) {
				normals = nil
				primNormals = nil
			}

			vertices = append(vertices, positions...)
			normals = append(normals, primNormals...)

			if prim.Indices != nil {
				indices, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q indices: %w", m.Name, err)
				}
				for _, idx := range indices {
					faces = append(faces, base+idx)
				}
			} else {
				for i := range positions {
					faces = append(faces, base+i)
				}
			}
		}
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("no triangle geometry in %q", path)
	}

	data := geometry.NewMeshData(vertices, normals)
	normalFaces := faces
	if len(normals) == 0 {
		normalFaces = nil
	}
	return geometry.NewTriangleMesh(data, faces, normalFaces, mat), nil
}

// LoadMeshPrimitives loads a mesh and flattens it into per-triangle
// primitives for direct BVH partitioning.
func LoadMeshPrimitives(path string, mat core.Material) ([]geometry.Primitive, error) {
	mesh, err := LoadMesh(path, mat)
	if err != nil {
		return nil, err
	}
	return geometry.NewTriangleMeshPrimitive(mesh).Decompose(), nil
}

// readVec3Accessor reads VEC3 float data from a glTF accessor
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := i * stride
		result[i] = core.NewVec3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads scalar index data, widening to int
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	var componentSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		componentSize = 1
	case gltf.ComponentUshort:
		componentSize = 2
	case gltf.ComponentUint:
		componentSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, componentSize)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := i * stride
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result[i] = int(data[offset])
		case gltf.ComponentUshort:
			result[i] = int(uint16(data[offset]) | uint16(data[offset+1])<<8)
		case gltf.ComponentUint:
			result[i] = int(uint32(data[offset]) | uint32(data[offset+1])<<8 |
				uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24)
		}
	}
	return result, nil
}

// accessorBytes resolves an accessor to its backing bytes and element stride
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffer %q not supported", buffer.URI)
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elementSize
	}

	start := view.ByteOffset + accessor.ByteOffset
	need := start + (accessor.Count-1)*stride + elementSize
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer: need %d bytes, have %d", need, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}

// readFloat32 reads a little-endian float32
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

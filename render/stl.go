//-----------------------------------------------------------------------------
/*

STL Load/Save

Binary STL only. Loading merges duplicate vertices so the result can feed
the triangle-mesh field.

*/
//-----------------------------------------------------------------------------

package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// stlHeader defines the binary STL file header.
type stlHeader struct {
	_     [80]uint8 // header
	Count uint32    // number of triangles
}

// stlTriangle defines the binary STL triangle record.
type stlTriangle struct {
	Normal, Vertex1, Vertex2, Vertex3 [3]float32
	AttrByteCount                     uint16
}

//-----------------------------------------------------------------------------

// SaveSTL writes a mesh to a binary STL file.
func SaveSTL(path string, mesh *Mesh) error {
	if mesh == nil {
		return errors.New("no mesh")
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	buf := bufio.NewWriter(file)

	header := stlHeader{Count: uint32(len(mesh.Faces))}
	if err := binary.Write(buf, binary.LittleEndian, &header); err != nil {
		return err
	}

	var d stlTriangle
	for _, t := range mesh.Triangles() {
		n := t.Normal()
		d.Normal[0] = float32(n.X)
		d.Normal[1] = float32(n.Y)
		d.Normal[2] = float32(n.Z)
		d.Vertex1[0] = float32(t.V[0].X)
		d.Vertex1[1] = float32(t.V[0].Y)
		d.Vertex1[2] = float32(t.V[0].Z)
		d.Vertex2[0] = float32(t.V[1].X)
		d.Vertex2[1] = float32(t.V[1].Y)
		d.Vertex2[2] = float32(t.V[1].Z)
		d.Vertex3[0] = float32(t.V[2].X)
		d.Vertex3[1] = float32(t.V[2].Y)
		d.Vertex3[2] = float32(t.V[2].Z)
		if err := binary.Write(buf, binary.LittleEndian, &d); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// LoadSTL reads a binary STL file into a mesh, merging equal vertices.
func LoadSTL(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	buf := bufio.NewReader(file)

	header := stlHeader{}
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	mesh := &Mesh{}
	index := make(map[[3]float32]int)
	lookup := func(v [3]float32) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(mesh.Vertices)
		index[v] = i
		mesh.Vertices = append(mesh.Vertices, v3.Vec{
			X: float64(v[0]),
			Y: float64(v[1]),
			Z: float64(v[2]),
		})
		return i
	}

	var d stlTriangle
	for i := uint32(0); i < header.Count; i++ {
		if err := binary.Read(buf, binary.LittleEndian, &d); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		mesh.Faces = append(mesh.Faces, [3]int{
			lookup(d.Vertex1),
			lookup(d.Vertex2),
			lookup(d.Vertex3),
		})
	}
	return mesh, nil
}

//-----------------------------------------------------------------------------

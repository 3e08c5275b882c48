//-----------------------------------------------------------------------------
/*

3MF Save

*/
//-----------------------------------------------------------------------------

package render

import (
	"errors"
	"os"

	"github.com/hpinc/go3mf"
)

//-----------------------------------------------------------------------------

// Save3MF writes a mesh to a 3MF file.
func Save3MF(path string, mesh *Mesh) error {
	if mesh == nil {
		return errors.New("no mesh")
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	obj := &go3mf.Object{ID: 1}
	obj.Mesh = new(go3mf.Mesh)
	for _, v := range mesh.Vertices {
		obj.Mesh.Vertices.Vertex = append(obj.Mesh.Vertices.Vertex, go3mf.Point3D{
			float32(v.X), float32(v.Y), float32(v.Z),
		})
	}
	for _, f := range mesh.Faces {
		obj.Mesh.Triangles.Triangle = append(obj.Mesh.Triangles.Triangle, go3mf.Triangle{
			V1: uint32(f[0]),
			V2: uint32(f[1]),
			V3: uint32(f[2]),
		})
	}

	model := new(go3mf.Model)
	model.Units = go3mf.UnitMillimeter
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})

	return go3mf.NewEncoder(file).Encode(model)
}

//-----------------------------------------------------------------------------

package scene

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	primCounts := make(map[PrimitiveType]int)
	var primTotal, faceTotal int
	for meshIndex := range sc.Meshes {
		mesh := &sc.Meshes[meshIndex]
		for primIndex := range mesh.Primitives {
			primCounts[mesh.Primitives[primIndex].Type]++
		}
		primTotal += len(mesh.Primitives)
		faceTotal += len(mesh.BoundingFaces)
	}

	matCounts := make(map[MaterialType]int)
	for index := range sc.Materials {
		matCounts[sc.Materials[index].Type]++
	}

	var texelTotal int
	for index := range sc.Textures {
		texelTotal += len(sc.Textures[index].Colors)
	}

	primSize := sizeOf(Primitive{})
	texelSize := uint64(12)
	geometrySize := uint64(primTotal+faceTotal) * primSize
	materialSize := uint64(len(sc.Materials)) * sizeOf(Material{})
	textureSize := uint64(texelTotal) * texelSize

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})

	table.Append([]string{"Geometry", "---", itoa(len(sc.Meshes)), humanize.Bytes(geometrySize)})
	for _, pt := range []PrimitiveType{SpherePrimitive, TrianglePrimitive, RectanglePrimitive, PlanePrimitive} {
		table.Append([]string{"", pt.String(), itoa(primCounts[pt]), humanize.Bytes(uint64(primCounts[pt]) * primSize)})
	}
	table.Append([]string{"", "bounding faces", itoa(faceTotal), humanize.Bytes(uint64(faceTotal) * primSize)})
	table.Append([]string{" ", " ", " ", " "})

	table.Append([]string{"Materials", "---", itoa(len(sc.Materials)), humanize.Bytes(materialSize)})
	for _, mt := range []MaterialType{LambertianMaterial, MetalMaterial, DielectricMaterial, EmissiveMaterial, TexturedMaterial} {
		table.Append([]string{"", mt.String(), itoa(matCounts[mt]), ""})
	}
	table.Append([]string{" ", " ", " ", " "})

	table.Append([]string{"Textures", "---", itoa(len(sc.Textures)), humanize.Bytes(textureSize)})
	for index := range sc.Textures {
		tex := &sc.Textures[index]
		table.Append([]string{"", fmt.Sprintf("%s (%dx%d)", tex.Path, tex.Width, tex.Height), "1", humanize.Bytes(uint64(len(tex.Colors)) * texelSize)})
	}

	table.SetFooter([]string{"Total", " ", " ", humanize.Bytes(geometrySize + materialSize + textureSize)})
	table.Render()
	return buf.String()
}

func sizeOf(item interface{}) uint64 {
	return uint64(reflect.TypeOf(item).Size())
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}

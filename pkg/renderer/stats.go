package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Tiles      int
	Workers    int
	Pixels     int64 // pixels sampled, including the filter margin
	Samples    int64
	CameraRays int64 // samples whose camera ray had non-zero weight
	Rejected   int64 // samples replaced by black for bad radiance
	Elapsed    time.Duration

	BVH    geometry.BVHStats
	HasBVH bool
}

// Table formats the statistics for the log
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stage", "Metric", "Value"})
	if s.HasBVH {
		table.Append([]string{"BVH", "Primitives", fmt.Sprintf("%d", s.BVH.TotalShapes)})
		table.Append([]string{"", "Nodes", fmt.Sprintf("%d", s.BVH.TotalNodes)})
		table.Append([]string{"", "Leaves", fmt.Sprintf("%d", s.BVH.LeafNodes)})
		table.Append([]string{"", "Max depth", fmt.Sprintf("%d", s.BVH.MaxDepth)})
		table.Append([]string{" ", " ", " "})
	}
	table.Append([]string{"Render", "Tiles", fmt.Sprintf("%d", s.Tiles)})
	table.Append([]string{"", "Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"", "Pixels", fmt.Sprintf("%d", s.Pixels)})
	table.Append([]string{"", "Samples", fmt.Sprintf("%d", s.Samples)})
	table.Append([]string{"", "Camera rays", fmt.Sprintf("%d", s.CameraRays)})
	table.Append([]string{"", "Rejected samples", fmt.Sprintf("%d", s.Rejected)})
	table.SetFooter([]string{"Total", " ", s.Elapsed.Round(time.Millisecond).String()})

	table.Render()
	return buf.String()
}

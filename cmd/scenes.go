package cmd

import (
	"bytes"

	"github.com/df07/go-pbrt-renderer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes logs a table of the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	logger.Noticef("available scenes\n%s", sceneTable())
	return nil
}

func sceneTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Title", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.Name, info.DisplayName, info.Description})
	}
	table.Render()
	return buf.String()
}

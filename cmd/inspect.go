package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/segfall/prism/pkg/accel"
)

// InspectScene builds the scene's BVH with every split strategy and prints
// the resulting tree shapes side by side
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Split", "Primitives", "Nodes", "Leafs", "Max depth", "Build time"})

	for _, split := range []accel.SplitType{accel.SplitMiddle, accel.SplitEqualCounts, accel.SplitSAH} {
		stats := sc.BuildBVH(split).Stats()
		table.Append([]string{
			split.String(),
			fmt.Sprintf("%d", stats.Primitives),
			fmt.Sprintf("%d", stats.Nodes),
			fmt.Sprintf("%d", stats.Leafs),
			fmt.Sprintf("%d", stats.MaxDepth),
			stats.BuildTime.String(),
		})
	}

	table.Render()
	logger.Noticef("scene %q acceleration structures\n%s", sc.Name, buf.String())
	return nil
}

package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/segfall/prism/pkg/accel"
	"github.com/segfall/prism/pkg/imageio"
	"github.com/segfall/prism/pkg/renderer"
	"github.com/segfall/prism/pkg/scene"
)

// loadScene builds the scene named by the command flags
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	name := ctx.String("scene")
	if name == "mesh" {
		model := ctx.String("model")
		if model == "" {
			return nil, fmt.Errorf("the mesh scene needs --model pointing to a glTF/GLB file")
		}
		return scene.NewMeshScene(model)
	}

	builder, err := scene.ByName(name)
	if err != nil {
		return nil, err
	}
	return builder()
}

// RenderScene renders the selected scene to an image file
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Int("width")
	height := ctx.Int("height")
	samples := ctx.Int("spp")
	if width <= 0 || height <= 0 || samples <= 0 {
		return fmt.Errorf("width, height and spp must be positive")
	}

	split, err := accel.ParseSplitType(ctx.String("split"))
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	logger.Noticef("rendering scene %q at %dx%d, %d samples per pixel", sc.Name, width, height, samples)

	bvh := sc.BuildBVH(split)
	camera := sc.BuildCamera(float64(width) / float64(height))
	sampler := renderer.NewSampler(renderer.Config{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samples,
		NumWorkers:      ctx.Int("workers"),
	}, camera, sc.Sky, bvh)

	// Each pass buffer is presented exactly once: passes 1..n-1 while the
	// next pass computes, the last one after the render. Fold them into a
	// running average as they arrive.
	average := make([]float64, width*height*3)
	presented := 0
	_, stats := sampler.SampleImage(func(progress *renderer.SamplerProgress, sampleIndex int) {
		presented++
		for i, v := range progress.CurrentImage {
			average[i] += (v - average[i]) / float64(presented)
		}
		logger.Infof("pass %d/%d done", sampleIndex, samples)
	})

	out := ctx.String("out")
	pixels := make([]uint8, len(average))
	for i, v := range average {
		pixels[i] = renderer.ToneMapChannel(v)
	}
	if err := imageio.Write(out, width, height, pixels); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	displayRenderStats(sc, bvh, stats)
	return nil
}

func displayRenderStats(sc *scene.Scene, bvh *accel.BVH, stats renderer.RenderStats) {
	bvhStats := bvh.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Primitives", "BVH nodes", "Samples", "Rays", "Render time", "Mrays/s"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%d", bvhStats.Primitives),
		fmt.Sprintf("%d", bvhStats.Nodes),
		fmt.Sprintf("%d", stats.Samples),
		fmt.Sprintf("%d", stats.TotalRays),
		stats.Elapsed.String(),
		fmt.Sprintf("%.2f", stats.RaysPerSecond()/1e6),
	})
	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}

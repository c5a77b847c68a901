package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/segfall/prism/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "prism"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	sceneFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "default",
			Usage: "scene to build (default, cornell, mesh)",
		},
		cli.StringFlag{
			Name:  "model",
			Usage: "glTF/GLB file for the mesh scene",
		},
		cli.StringFlag{
			Name:  "split",
			Value: "sah",
			Usage: "BVH split strategy (middle, equal-counts, sah)",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Build the selected scene, construct its acceleration structure and render it
progressively, one sample per pixel per pass. The output format is picked
from the file extension (png, jpg, tiff, bmp, ppm).`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 30,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "render workers (0 = CPU count)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "out.png",
					Usage: "image filename for the rendered frame",
				},
			}, sceneFlags...),
			Action: cmd.RenderScene,
		},
		{
			Name:   "inspect",
			Usage:  "print acceleration structure statistics for a scene",
			Flags:  sceneFlags,
			Action: cmd.InspectScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

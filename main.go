package main

import (
	"math"
	"os"

	"github.com/achilleasa/hitscan/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "hitscan"
	app.Usage = "load ray tracing scenes and run nearest-hit queries against them"
	app.Version = "0.0.1"
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
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "print scene statistics",
			ArgsUsage: "scene_file",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "compile",
			Usage: "compile text scene representation into a binary compressed format",
			Description: `
Parse a scene description, load any referenced OBJ models and textures and
calculate the mesh bounding volumes.

The loaded scene is then written to a zip archive next to the scene file which
can be supplied as an argument to the other commands.`,
			ArgsUsage: "scene_file1.txt scene_file2.txt ...",
			Action:    cmd.CompileScene,
		},
		{
			Name:        "trace",
			Usage:       "trace a single ray",
			Description: `Find the nearest intersection of a ray with the scene geometry.`,
			ArgsUsage:   "scene_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "origin, o",
					Value: "0,0,0",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "dir, d",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z",
				},
				cli.Float64Flag{
					Name:  "tmin",
					Value: 0.001,
					Usage: "minimum hit distance",
				},
				cli.Float64Flag{
					Name:  "tmax",
					Value: math.MaxFloat32,
					Usage: "maximum hit distance",
				},
				cli.BoolFlag{
					Name:  "brute-force",
					Usage: "test every primitive without bounding volume pruning",
				},
			},
			Action: cmd.TraceRay,
		},
		{
			Name:  "probe",
			Usage: "cast one primary ray per pixel and report hit statistics",
			Description: `
Generate a primary ray for each pixel of the scene image using the scene camera
and run a nearest-hit query for each one. Queries are distributed to a pool of
workers sized by the scene NUM_THREADS parameter unless overridden.`,
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "threads, t",
					Value: 0,
					Usage: "number of workers (0 = use scene NUM_THREADS)",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 90,
					Usage: "vertical camera field of view in degrees",
				},
				cli.Float64Flag{
					Name:  "tmin",
					Value: 0.001,
					Usage: "minimum hit distance",
				},
			},
			Action: cmd.ProbeScene,
		},
	}

	app.Run(os.Args)
}

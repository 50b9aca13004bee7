package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/asset/scene/reader"
	"github.com/achilleasa/hitscan/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Cast a single ray into the scene and display the nearest hit.
func TraceRay(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	origin, err := parseVec3Flag(ctx.String("origin"))
	if err != nil {
		return fmt.Errorf("invalid ray origin: %s", err.Error())
	}
	dir, err := parseVec3Flag(ctx.String("dir"))
	if err != nil {
		return fmt.Errorf("invalid ray direction: %s", err.Error())
	}
	if dir.IsZero() {
		return errors.New("ray direction must not be zero")
	}
	tMin, tMax := float32(ctx.Float64("tmin")), float32(ctx.Float64("tmax"))
	if tMin >= tMax {
		return fmt.Errorf("invalid t range (%f, %f)", tMin, tMax)
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	r := types.NewRay(origin, dir)
	var rec scene.HitRecord
	var hit bool
	if ctx.Bool("brute-force") {
		rec, hit = sc.AnythingHitBruteForce(r, tMin, tMax)
	} else {
		rec, hit = sc.AnythingHit(r, tMin, tMax)
	}

	if !hit {
		logger.Noticef("ray %v -> %v does not hit anything in (%f, %f)", origin, dir, tMin, tMax)
		return nil
	}

	logger.Noticef("ray %v -> %v hit\n%s", origin, dir, hitRecordTable(sc, rec))
	return nil
}

func hitRecordTable(sc *scene.Scene, rec scene.HitRecord) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"t", fmt.Sprintf("%f", rec.T)},
		{"Point", fmt.Sprintf("%v", rec.Point)},
		{"Normal", fmt.Sprintf("%v", rec.Normal)},
		{"UV", fmt.Sprintf("%v", rec.UV)},
		{"Tangent", fmt.Sprintf("%v", rec.Tangent)},
		{"Bitangent", fmt.Sprintf("%v", rec.Bitangent)},
		{"Material", fmt.Sprintf("%d: %s", rec.MaterialIndex, sc.MaterialFor(rec).String())},
	})
	table.Render()
	return buf.String()
}

// Parse a vector given as "x,y,z".
func parseVec3Flag(val string) (types.Vec3, error) {
	tokens := strings.Split(val, ",")
	if len(tokens) != 3 {
		return types.Vec3{}, fmt.Errorf(`expected 3 comma-separated components; got "%s"`, val)
	}

	v := types.Vec3{}
	for idx, token := range tokens {
		coord, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return v, err
		}
		v[idx] = float32(coord)
	}
	return v, nil
}

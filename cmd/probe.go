package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/asset/scene/reader"
	"github.com/chewxy/math32"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

// Aggregated results of casting one primary ray per pixel.
type probeStats struct {
	Rays   uint64
	Hits   uint64
	MinT   float32
	MaxT   float32
	PerMat map[uint32]uint64
}

func newProbeStats() *probeStats {
	return &probeStats{
		MinT:   math32.MaxFloat32,
		MaxT:   0,
		PerMat: make(map[uint32]uint64),
	}
}

func (ps *probeStats) record(rec scene.HitRecord) {
	ps.Hits++
	ps.MinT = math32.Min(ps.MinT, rec.T)
	ps.MaxT = math32.Max(ps.MaxT, rec.T)
	ps.PerMat[rec.MaterialIndex]++
}

func (ps *probeStats) merge(other *probeStats) {
	ps.Rays += other.Rays
	ps.Hits += other.Hits
	ps.MinT = math32.Min(ps.MinT, other.MinT)
	ps.MaxT = math32.Max(ps.MaxT, other.MaxT)
	for matIndex, hits := range other.PerMat {
		ps.PerMat[matIndex] += hits
	}
}

// Cast one primary ray per pixel of the scene image and report hit statistics.
func ProbeScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	if sc.ImageWidth == 0 || sc.ImageHeight == 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", sc.ImageWidth, sc.ImageHeight)
	}

	workers := ctx.Int("threads")
	if workers <= 0 {
		workers = int(sc.NumThreads)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cam := scene.NewCamera(sc.CameraPos, sc.CameraLook, float32(ctx.Float64("fov")), float32(sc.ImageWidth)/float32(sc.ImageHeight))

	// Abort on interrupt
	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Noticef("probing %dx%d primary rays using %d workers", sc.ImageWidth, sc.ImageHeight, workers)
	start := time.Now()
	stats, err := probe(runCtx, sc, cam, workers, float32(ctx.Float64("tmin")))
	if err != nil {
		return err
	}

	logger.Noticef("probe completed in %s\n%s", time.Since(start), probeReport(sc, stats))
	return nil
}

// Cast one ray per pixel distributing image rows to workers. The scene is
// only read so workers query it concurrently without locking.
func probe(ctx context.Context, sc *scene.Scene, cam *scene.Camera, workers int, tMin float32) (*probeStats, error) {
	workerStats := make([]*probeStats, workers)
	group, gctx := errgroup.WithContext(ctx)
	for worker := 0; worker < workers; worker++ {
		worker := worker
		workerStats[worker] = newProbeStats()
		group.Go(func() error {
			stats := workerStats[worker]
			for y := uint32(worker); y < sc.ImageHeight; y += uint32(workers) {
				if err := gctx.Err(); err != nil {
					return err
				}
				for x := uint32(0); x < sc.ImageWidth; x++ {
					r := cam.Ray(
						(float32(x)+0.5)/float32(sc.ImageWidth),
						(float32(y)+0.5)/float32(sc.ImageHeight),
					)
					r.Dir = r.Dir.Normalize()

					stats.Rays++
					if rec, hit := sc.AnythingHit(r, tMin, math32.MaxFloat32); hit {
						stats.record(rec)
					}
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	total := newProbeStats()
	for _, stats := range workerStats {
		total.merge(stats)
	}
	return total, nil
}

func probeReport(sc *scene.Scene, stats *probeStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Rays", "Hits", "% hit", "Min t", "Max t"})
	minT, maxT := "-", "-"
	var hitPercent float64
	if stats.Hits > 0 {
		minT = fmt.Sprintf("%f", stats.MinT)
		maxT = fmt.Sprintf("%f", stats.MaxT)
	}
	if stats.Rays > 0 {
		hitPercent = 100.0 * float64(stats.Hits) / float64(stats.Rays)
	}
	table.Append([]string{
		humanize.Comma(int64(stats.Rays)),
		humanize.Comma(int64(stats.Hits)),
		fmt.Sprintf("%02.1f %%", hitPercent),
		minT,
		maxT,
	})
	table.Render()

	matIndices := make([]int, 0, len(stats.PerMat))
	for matIndex := range stats.PerMat {
		matIndices = append(matIndices, int(matIndex))
	}
	sort.Ints(matIndices)

	table = tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Material", "Type", "Hits", "% of hits"})
	for _, matIndex := range matIndices {
		hits := stats.PerMat[uint32(matIndex)]
		table.Append([]string{
			fmt.Sprintf("%d", matIndex),
			sc.Materials[matIndex].Type.String(),
			humanize.Comma(int64(hits)),
			fmt.Sprintf("%02.1f %%", 100.0*float64(hits)/float64(stats.Hits)),
		})
	}
	table.Render()

	return buf.String()
}

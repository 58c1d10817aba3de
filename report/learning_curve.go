// Package report renders training diagnostics of the maze generator.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LearningCurve writes an HTML chart of the per-episode step counts of
// the two learners. Converging agents show the curve flattening toward
// the shortest-path length of their target.
func LearningCurve(path string, prizeSteps, finishSteps []int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Episode length per training trial",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	numEpisodes := len(prizeSteps)
	if len(finishSteps) > numEpisodes {
		numEpisodes = len(finishSteps)
	}

	var episodes []string
	for i := 0; i < numEpisodes; i++ {
		episodes = append(episodes, fmt.Sprintf("%d", i))
	}

	line = line.SetXAxis(episodes)
	line.AddSeries("prize-seeker", lineData(prizeSteps))
	line.AddSeries("finish-seeker", lineData(finishSteps))

	page := components.NewPage()
	page.AddCharts(line)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return page.Render(f)
}

func lineData(steps []int) []opts.LineData {
	items := make([]opts.LineData, 0, len(steps))
	for _, s := range steps {
		items = append(items, opts.LineData{Value: s})
	}
	return items
}

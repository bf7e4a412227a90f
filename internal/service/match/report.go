package match

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gopkg.in/yaml.v3"
)

// Summary is the YAML form of a tally.
type Summary struct {
	Red        string        `yaml:"red"`
	Yellow     string        `yaml:"yellow"`
	Games      int           `yaml:"games"`
	RedWins    int           `yaml:"red_wins"`
	YellowWins int           `yaml:"yellow_wins"`
	Draws      int           `yaml:"draws"`
	RedScore   float64       `yaml:"red_score"`
	Interval   [2]float64    `yaml:"interval_95,flow"`
	RedElo     float64       `yaml:"red_elo"`
	YellowElo  float64       `yaml:"yellow_elo"`
	MeanLength float64       `yaml:"mean_length"`
	GameList   []GameSummary `yaml:"games_played"`
}

type GameSummary struct {
	ID      string `yaml:"id"`
	Outcome string `yaml:"outcome"`
	Moves   []int  `yaml:"moves,flow"`
}

func (t *Tally) Summary() Summary {
	lo95, hi95 := t.ScoreInterval(95)
	s := Summary{
		Red:        t.Red,
		Yellow:     t.Yellow,
		Games:      t.Games(),
		RedWins:    t.RedWins,
		YellowWins: t.YellowWins,
		Draws:      t.Draws,
		RedScore:   t.RedScore(),
		Interval:   [2]float64{lo95, hi95},
		RedElo:     t.RedElo,
		YellowElo:  t.YellowElo,
		MeanLength: t.MeanLength(),
	}
	for _, r := range t.Records {
		s.GameList = append(s.GameList, GameSummary{
			ID:      r.GameID,
			Outcome: r.Outcome.String(),
			Moves:   r.Moves,
		})
	}
	return s
}

func WriteReport(w io.Writer, t *Tally) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Summary()); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteChart renders an HTML page with the outcome counts and the length of
// every game.
func WriteChart(w io.Writer, t *Tally) error {
	outcomes := charts.NewBar()
	outcomes.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Outcomes",
			Subtitle: fmt.Sprintf("%s (red) vs %s (yellow)", t.Red, t.Yellow),
		}),
	)
	outcomes.SetXAxis([]string{"red wins", "yellow wins", "draws"}).
		AddSeries("games", []opts.BarData{
			{Value: t.RedWins},
			{Value: t.YellowWins},
			{Value: t.Draws},
		})

	lengths := charts.NewLine()
	lengths.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Game length",
		}),
	)
	var games []string
	items := make([]opts.LineData, 0, t.Games())
	for i, r := range t.Records {
		games = append(games, fmt.Sprintf("%d", i+1))
		items = append(items, opts.LineData{Value: r.Length()})
	}
	lengths.SetXAxis(games).AddSeries("moves", items)

	page := components.NewPage()
	page.AddCharts(
		outcomes,
		lengths,
	)
	return page.Render(w)
}

// WriteFile creates path, including its directory, and fills it with write.
func WriteFile(path string, t *Tally, write func(io.Writer, *Tally) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

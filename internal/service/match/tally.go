package match

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

// Tally accumulates the results of a series from red's point of view.
type Tally struct {
	Red        string
	Yellow     string
	RedWins    int
	YellowWins int
	Draws      int
	RedElo     float64
	YellowElo  float64
	Records    []*GameRecord
}

func NewTally(red, yellow string) *Tally {
	return &Tally{
		Red:       red,
		Yellow:    yellow,
		RedElo:    domain.InitialRating,
		YellowElo: domain.InitialRating,
	}
}

// Add counts a finished game and moves both ratings.
func (t *Tally) Add(record *GameRecord) {
	var score float64
	switch record.Outcome {
	case domain.RedWins:
		t.RedWins++
		score = domain.ScoreWin
	case domain.YellowWins:
		t.YellowWins++
		score = domain.ScoreLoss
	default:
		t.Draws++
		score = domain.ScoreDraw
	}
	t.RedElo, t.YellowElo = domain.EloUpdate(t.RedElo, t.YellowElo, score)
	t.Records = append(t.Records, record)
}

func (t *Tally) Games() int { return len(t.Records) }

// RedScore is red's points per game, a draw counting half.
func (t *Tally) RedScore() float64 {
	if t.Games() == 0 {
		return 0
	}
	return (float64(t.RedWins) + float64(t.Draws)/2) / float64(t.Games())
}

// ZVal returns the two-tailed Z-value for a confidence level given in
// percent.
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidence / 100)) / 2
	return dist.Quantile(area)
}

// ScoreInterval is the normal-approximation confidence interval around
// RedScore, clamped to [0, 1].
func (t *Tally) ScoreInterval(confidence float64) (float64, float64) {
	n := float64(t.Games())
	if n == 0 {
		return 0, 1
	}
	p := t.RedScore()
	margin := ZVal(confidence) * math.Sqrt(p*(1-p)/n)
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

func (t *Tally) Lengths() []float64 {
	return lo.Map(t.Records, func(r *GameRecord, _ int) float64 {
		return float64(r.Length())
	})
}

func (t *Tally) MeanLength() float64 {
	if t.Games() == 0 {
		return 0
	}
	return lo.SumBy(t.Records, func(r *GameRecord) float64 {
		return float64(r.Length())
	}) / float64(t.Games())
}

// FprintHistogram draws the distribution of game lengths in moves.
func (t *Tally) FprintHistogram(w io.Writer, bins int) error {
	if t.Games() == 0 {
		return nil
	}
	hist := histogram.Hist(bins, t.Lengths())
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

func (t *Tally) String() string {
	var ss strings.Builder
	games := t.Games()
	pct := func(n int) float64 {
		if games == 0 {
			return 0
		}
		return float64(n) / float64(games) * 100
	}
	lo95, hi95 := t.ScoreInterval(95)

	fmt.Fprintf(&ss, "%s (red) vs %s (yellow), %d games\n", t.Red, t.Yellow, games)
	fmt.Fprintf(&ss, "Wins:   %d (%.1f%%)\n", t.RedWins, pct(t.RedWins))
	fmt.Fprintf(&ss, "Losses: %d (%.1f%%)\n", t.YellowWins, pct(t.YellowWins))
	fmt.Fprintf(&ss, "Draws:  %d (%.1f%%)\n", t.Draws, pct(t.Draws))
	fmt.Fprintf(&ss, "Score:  %.3f (95%% CI %.3f - %.3f)\n", t.RedScore(), lo95, hi95)
	fmt.Fprintf(&ss, "Elo:    %s %.0f, %s %.0f\n", t.Red, t.RedElo, t.Yellow, t.YellowElo)
	fmt.Fprintf(&ss, "Mean game length: %.1f moves\n", t.MeanLength())
	return ss.String()
}

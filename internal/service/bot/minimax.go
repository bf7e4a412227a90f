package bot

import (
	"context"
	"fmt"
	"math"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

const (
	MINIMAX_WIN  = 1000000
	MINIMAX_DRAW = 0
)

// WinScore maps the remaining depth at which a win is found to its score.
// Losses score the negation.
type WinScore func(depth int) float64

// DepthAdjustedWin prefers quicker wins and slower losses.
func DepthAdjustedWin(depth int) float64 {
	return float64(MINIMAX_WIN + depth)
}

// InfiniteWin scores every win alike.
func InfiniteWin(int) float64 {
	return math.Inf(1)
}

// SearchResult is the move picked at the root with its score.
type SearchResult struct {
	Column  int
	Score   float64
	Nodes   int
	Leaves  int
	Cutoffs int
}

type Option func(s *Searcher)

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithMoveOrder(order []int) Option {
	return func(s *Searcher) {
		if len(order) > 0 {
			s.order = append([]int(nil), order...)
		}
	}
}

func WithWinScore(win WinScore) Option {
	return func(s *Searcher) {
		if win != nil {
			s.winScore = win
		}
	}
}

// WithRandomTieBreak makes equally scored root moves compete by coin flip.
func WithRandomTieBreak(src RandomSource) Option {
	return func(s *Searcher) {
		if src != nil {
			s.tieBreak = coinTieBreak{src: src}
		}
	}
}

// WithPruning toggles alpha-beta cutoffs. Without them the search visits
// the full tree; it exists to check the pruned search against.
func WithPruning(enabled bool) Option {
	return func(s *Searcher) {
		s.pruning = enabled
	}
}

// Searcher is a depth-limited minimax search with alpha-beta pruning. It
// plays speculative moves on the board it is given and always takes them
// back before returning, so the caller should hand it a private clone.
type Searcher struct {
	self      domain.Slot
	evaluator Evaluator
	depth     int
	order     []int
	winScore  WinScore
	tieBreak  tieBreaker
	pruning   bool

	nodes, leaves, cutoffs int
}

// NewSearcher defaults to depth 1, left-to-right order, depth adjusted win
// scores, stable tie-breaks and pruning.
func NewSearcher(self domain.Slot, evaluator Evaluator, options ...Option) (*Searcher, error) {
	if !self.IsColor() {
		return nil, domain.ErrInvalidColor
	}
	if evaluator == nil {
		return nil, fmt.Errorf("searcher needs an evaluator")
	}
	s := &Searcher{
		self:      self,
		evaluator: evaluator,
		depth:     1,
		winScore:  DepthAdjustedWin,
		tieBreak:  stableTieBreak{},
		pruning:   true,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *Searcher) Depth() int { return s.depth }

// Search returns the best column for self on b. Column is -1 when b has no
// legal move. The board is restored on every return path, including
// cancellation through ctx.
func (s *Searcher) Search(ctx context.Context, b *domain.Board) (SearchResult, error) {
	s.nodes, s.leaves, s.cutoffs = 0, 0, 0
	order := s.order
	if len(order) == 0 {
		order = NaturalOrder(b.Columns())
	}

	best := SearchResult{Column: -1, Score: math.Inf(-1)}
	// the best a root move can do is win on the spot
	ceiling := s.winScore(s.depth - 1)
	alpha, beta := math.Inf(-1), math.Inf(1)

	for _, col := range order {
		if b.IsColumnFull(col) {
			continue
		}

		childAlpha := alpha
		if s.tieBreak.exact() {
			childAlpha = math.Inf(-1)
		}
		score, err := s.trial(b, col, s.self, func() (float64, error) {
			return s.minimax(ctx, b, s.depth-1, childAlpha, beta, false)
		})
		if err != nil {
			return s.result(best), err
		}

		if best.Column == -1 || score > best.Score || (score == best.Score && s.tieBreak.replace()) {
			best.Column = col
			best.Score = score
		}
		if s.pruning {
			alpha = math.Max(alpha, best.Score)
		}
		if best.Score >= ceiling {
			break
		}
	}

	return s.result(best), nil
}

func (s *Searcher) result(r SearchResult) SearchResult {
	r.Nodes, r.Leaves, r.Cutoffs = s.nodes, s.leaves, s.cutoffs
	return r
}

// minimax scores b for self with depth plies left.
func (s *Searcher) minimax(ctx context.Context, b *domain.Board, depth int, alpha, beta float64, maximizing bool) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	s.nodes++

	switch outcome := b.Outcome(); {
	case outcome == domain.Draw:
		return MINIMAX_DRAW, nil
	case outcome.Winner() == s.self:
		return s.winScore(depth), nil
	case outcome.Winner() == s.self.Opponent():
		return -s.winScore(depth), nil
	}

	if depth <= 0 {
		s.leaves++
		return s.evaluator.Evaluate(b, s.self), nil
	}

	order := s.order
	if len(order) == 0 {
		order = NaturalOrder(b.Columns())
	}

	if maximizing {
		highest := math.Inf(-1)
		for _, col := range order {
			if b.IsColumnFull(col) {
				continue
			}
			score, err := s.trial(b, col, s.self, func() (float64, error) {
				return s.minimax(ctx, b, depth-1, alpha, beta, false)
			})
			if err != nil {
				return 0, err
			}
			highest = math.Max(highest, score)
			alpha = math.Max(alpha, highest)
			if s.pruning && beta <= alpha {
				s.cutoffs++
				break
			}
		}
		return highest, nil
	}

	lowest := math.Inf(1)
	for _, col := range order {
		if b.IsColumnFull(col) {
			continue
		}
		score, err := s.trial(b, col, s.self.Opponent(), func() (float64, error) {
			return s.minimax(ctx, b, depth-1, alpha, beta, true)
		})
		if err != nil {
			return 0, err
		}
		lowest = math.Min(lowest, score)
		beta = math.Min(beta, lowest)
		if s.pruning && beta <= alpha {
			s.cutoffs++
			break
		}
	}
	return lowest, nil
}

// trial plays color in col, runs next and takes the move back whatever next
// returns.
func (s *Searcher) trial(b *domain.Board, col int, color domain.Slot, next func() (float64, error)) (float64, error) {
	if _, err := b.Place(col, color); err != nil {
		// the order/skip logic let a full column through
		return 0, fmt.Errorf("search place column %d: %w", col, err)
	}
	defer func() {
		if err := b.Unplace(col); err != nil {
			panic(fmt.Sprintf("search lost track of column %d: %v", col, err))
		}
	}()
	return next()
}

package wall

import "fmt"

// GenStats reports how difference placement went.
type GenStats struct {
	Requested int // Differences asked for
	Placed    int // Differences actually committed
	Attempts  int // Coordinates sampled
	Budget    int // Sampling budget (2 * cells)
}

// Degraded reports whether fewer differences were placed than requested.
func (s GenStats) Degraded() bool {
	return s.Placed < s.Requested
}

// GenerateGrid fills a w x h grid with colors sampled uniformly from palette.
// Palette entries with no mutation rule are rejected and resampled, so every
// cell can originate a difference.
func GenerateGrid(w, h int, palette []Color, rules RuleTable, rng Rand) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, &ConfigError{Field: "grid size", Value: w * h, Reason: "width and height must be positive"}
	}

	// Rejection sampling only terminates if something is accepted.
	mutable := false
	for _, c := range palette {
		if rules.CanMutate(c) {
			mutable = true
			break
		}
	}
	if !mutable {
		return nil, ErrNoMutableColor
	}

	g := NewGrid(w, h, palette[0])
	for i := range g.Cells {
		var c Color
		for {
			c = palette[rng.Intn(len(palette))]
			if rules.CanMutate(c) {
				break
			}
		}
		g.Cells[i] = c
	}
	return g, nil
}

// DeriveDifferences copies base and recolors up to count distinct cells
// according to rules. Sampling is bounded by 2*W*H attempts; when the budget
// runs out the partial result is returned and stats.Degraded() is true.
func DeriveDifferences(base *Grid, count int, rules RuleTable, rng Rand) (*Grid, *DiffSet, GenStats) {
	variant := base.Clone()
	diffs := NewDiffSet()
	stats := GenStats{
		Requested: count,
		Budget:    2 * base.W * base.H,
	}

	for diffs.Len() < count && stats.Attempts < stats.Budget {
		stats.Attempts++
		c := C(rng.Intn(base.W), rng.Intn(base.H))
		if diffs.Has(c) {
			continue
		}

		current := base.At(c.X, c.Y)
		allowed := rules[current]
		if len(allowed) == 0 {
			continue
		}

		next := allowed[rng.Intn(len(allowed))]
		if next == current {
			continue
		}
		variant.Set(c, next)
		diffs.add(c)
	}

	stats.Placed = diffs.Len()
	return variant, diffs, stats
}

// Puzzle is a generated base/variant pair.
type Puzzle struct {
	Base    *Grid
	Variant *Grid
	Diffs   *DiffSet
	Stats   GenStats
}

// GeneratePuzzle runs both generators for the given configuration.
// It does not validate cfg; callers gate it with RoundConfig.Validate.
func GeneratePuzzle(cfg RoundConfig, rules RuleTable, rng Rand) (*Puzzle, error) {
	base, err := GenerateGrid(cfg.Width, cfg.Height, cfg.Scheme.Palette(), rules, rng)
	if err != nil {
		return nil, fmt.Errorf("wall: generate grid: %w", err)
	}
	variant, diffs, stats := DeriveDifferences(base, cfg.DiffCount, rules, rng)
	return &Puzzle{
		Base:    base,
		Variant: variant,
		Diffs:   diffs,
		Stats:   stats,
	}, nil
}

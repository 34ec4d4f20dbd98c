package wall

import "fmt"

// RuleTable maps a source color to the ordered set of colors it may be
// recolored into when a difference is placed.
// A color without an entry can occupy a cell but never originates a difference.
type RuleTable map[Color][]Color

// DefaultRules returns the fixed compatibility table used by the game.
func DefaultRules() RuleTable {
	return RuleTable{
		ColorYellow:    {ColorRed, ColorBlue},
		ColorWhite:     {ColorRed, ColorBlue},
		ColorLimeGreen: {ColorRed, ColorBlue},
		ColorOrange:    {ColorBlue},
		ColorRed:       {ColorWhite, ColorYellow, ColorLimeGreen, ColorBlue},
		ColorBlue:      {ColorLimeGreen, ColorYellow, ColorWhite, ColorRed, ColorOrange},
	}
}

// AllowedMutations returns a copy of the replacement colors for c.
// An empty slice means c can never be the origin of a difference.
func (r RuleTable) AllowedMutations(c Color) []Color {
	allowed := r[c]
	out := make([]Color, len(allowed))
	copy(out, allowed)
	return out
}

// CanMutate reports whether c has at least one allowed replacement.
func (r RuleTable) CanMutate(c Color) bool {
	return len(r[c]) > 0
}

// IsValidChange reports whether recoloring from -> to is allowed.
func (r RuleTable) IsValidChange(from, to Color) bool {
	for _, c := range r[from] {
		if c == to {
			return true
		}
	}
	return false
}

// Validate checks that every entry is non-empty, contains no self-transition
// and no duplicates.
func (r RuleTable) Validate() error {
	for from, targets := range r {
		if len(targets) == 0 {
			return fmt.Errorf("wall: rule for %s is empty", from)
		}
		seen := make(map[Color]bool, len(targets))
		for _, to := range targets {
			if to == from {
				return fmt.Errorf("wall: rule for %s maps to itself", from)
			}
			if !to.Valid() {
				return fmt.Errorf("wall: rule for %s has invalid target %d", from, to)
			}
			if seen[to] {
				return fmt.Errorf("wall: rule for %s repeats %s", from, to)
			}
			seen[to] = true
		}
	}
	return nil
}

package recipe

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Summary is a single hit from a find-by-ingredients search.
type Summary struct {
	ID                    int64  `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
}

// Ingredient is one line of a recipe's ingredient breakdown.
type Ingredient struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Original string       `json:"original"`
	Amount   *json.Number `json:"amount"`
	Unit     string       `json:"unit"`
}

// Quantity renders the amount as free text. Integer literals are kept as
// sent ("2"); fractional or exponent literals render as floats, so "2.0"
// stays "2.0" and "1.50" becomes "1.5". A missing amount is "".
func (i Ingredient) Quantity() string {
	if i.Amount == nil || *i.Amount == "" {
		return ""
	}

	raw := i.Amount.String()
	if !strings.ContainsAny(raw, ".eE") {
		return raw
	}

	f, err := i.Amount.Float64()
	if err != nil {
		return raw
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Detail is the full recipe information returned by the provider.
// Summary and Instructions are provider HTML; use PlainSummary and Steps
// for display.
type Detail struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	Summary             string       `json:"summary"`
	Instructions        string       `json:"instructions"`
	ReadyInMinutes      int          `json:"readyInMinutes"`
	Servings            int          `json:"servings"`
	SourceURL           string       `json:"sourceUrl"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

// PlainSummary returns the summary stripped of markup.
func (d Detail) PlainSummary() string {
	return PlainText(d.Summary)
}

// Steps returns the instructions as display-ready steps.
func (d Detail) Steps() []string {
	return Steps(d.Instructions)
}

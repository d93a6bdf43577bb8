package classifier

import (
	"fmt"
	"strings"

	"github.com/arbovm/levenshtein"
)

// Pixel is an 8-bit RGB triple. It exists only during a scan pass and as a
// histogram key; alpha is ignored throughout.
type Pixel struct {
	R, G, B uint8
}

// Variation returns max(R,G,B) - min(R,G,B), used as a saturation proxy.
func (p Pixel) Variation() int {
	max := p.R
	if p.G > max {
		max = p.G
	}
	if p.B > max {
		max = p.B
	}
	min := p.R
	if p.G < min {
		min = p.G
	}
	if p.B < min {
		min = p.B
	}
	return int(max) - int(min)
}

// Term identifies a quantity derived from a pixel's channels. Conditions
// compare terms instead of hardcoding channel arithmetic per color.
type Term uint8

const (
	// TermZero always evaluates to 0, so the right side of a condition
	// reduces to its offset. Used for plain numeric thresholds.
	TermZero Term = iota
	TermR
	TermG
	TermB
	TermMaxRG
	TermMaxRB
	TermMaxGB
	TermMaxRGB
	TermMinRG
	TermMinRGB
	TermVariation
)

var termNames = map[Term]string{
	TermZero:      "0",
	TermR:         "R",
	TermG:         "G",
	TermB:         "B",
	TermMaxRG:     "max(R,G)",
	TermMaxRB:     "max(R,B)",
	TermMaxGB:     "max(G,B)",
	TermMaxRGB:    "max(R,G,B)",
	TermMinRG:     "min(R,G)",
	TermMinRGB:    "min(R,G,B)",
	TermVariation: "variation",
}

// String returns the display form of the term.
func (t Term) String() string {
	if name, ok := termNames[t]; ok {
		return name
	}
	return fmt.Sprintf("term(%d)", t)
}

// Value evaluates the term against a pixel.
func (t Term) Value(p Pixel) float64 {
	r, g, b := float64(p.R), float64(p.G), float64(p.B)
	switch t {
	case TermR:
		return r
	case TermG:
		return g
	case TermB:
		return b
	case TermMaxRG:
		return maxf(r, g)
	case TermMaxRB:
		return maxf(r, b)
	case TermMaxGB:
		return maxf(g, b)
	case TermMaxRGB:
		return maxf(r, maxf(g, b))
	case TermMinRG:
		return minf(r, g)
	case TermMinRGB:
		return minf(r, minf(g, b))
	case TermVariation:
		return float64(p.Variation())
	default:
		return 0
	}
}

// Op is a comparison operator between the two sides of a condition.
// Strictness matters: a pixel exactly at a strict threshold does not match.
type Op uint8

const (
	OpGT Op = iota
	OpGE
	OpLT
	OpLE
)

// String returns the display form of the operator.
func (o Op) String() string {
	switch o {
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	default:
		return "?"
	}
}

// Condition is one named inequality in a rule's conjunction. It compares
// Left against Scale*Right + Offset (Scale of 0 is treated as 1 so plain
// term-vs-term and term-vs-constant conditions need no explicit scale).
//
// When AnyOf is non-empty the comparison fields are ignored and the
// condition passes if any listed group passes, each group being a
// conjunction. This covers rules with one alternative clause, like green's
// "bright, or dominant over red".
type Condition struct {
	Name   string
	Left   Term
	Op     Op
	Right  Term
	Scale  float64
	Offset float64
	AnyOf  [][]Condition
}

// Eval evaluates the condition against a pixel.
func (c Condition) Eval(p Pixel) bool {
	if len(c.AnyOf) > 0 {
		for _, group := range c.AnyOf {
			if evalAll(group, p) {
				return true
			}
		}
		return false
	}

	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	left := c.Left.Value(p)
	right := scale*c.Right.Value(p) + c.Offset

	switch c.Op {
	case OpGT:
		return left > right
	case OpGE:
		return left >= right
	case OpLT:
		return left < right
	case OpLE:
		return left <= right
	default:
		return false
	}
}

// String renders the condition as a readable inequality.
func (c Condition) String() string {
	if len(c.AnyOf) > 0 {
		groups := make([]string, 0, len(c.AnyOf))
		for _, group := range c.AnyOf {
			parts := make([]string, 0, len(group))
			for _, sub := range group {
				parts = append(parts, sub.String())
			}
			groups = append(groups, "("+strings.Join(parts, " && ")+")")
		}
		return strings.Join(groups, " || ")
	}

	scale := c.Scale
	if scale == 0 {
		scale = 1
	}

	var right string
	switch {
	case c.Right == TermZero:
		right = trimFloat(c.Offset)
	case scale == 1 && c.Offset == 0:
		right = c.Right.String()
	case c.Offset == 0:
		right = fmt.Sprintf("%s*%s", trimFloat(scale), c.Right)
	case scale == 1:
		right = fmt.Sprintf("%s+%s", c.Right, trimFloat(c.Offset))
	default:
		right = fmt.Sprintf("%s*%s+%s", trimFloat(scale), c.Right, trimFloat(c.Offset))
	}
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, right)
}

func evalAll(conditions []Condition, p Pixel) bool {
	for _, c := range conditions {
		if !c.Eval(p) {
			return false
		}
	}
	return true
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// ColorRule is a named predicate over a pixel: the conjunction of its
// conditions. Rules are pure functions of the three channel values with no
// shared state and no ordering dependency between rules.
type ColorRule struct {
	Name        string
	Description string
	Conditions  []Condition
}

// Match reports whether the pixel satisfies every condition of the rule.
func (r ColorRule) Match(p Pixel) bool {
	return evalAll(r.Conditions, p)
}

// Summary renders the whole conjunction on one line, for reports.
func (r ColorRule) Summary() string {
	parts := make([]string, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " && ")
}

// builtinRules holds the hand-tuned threshold tables for the chart marker
// colors. The numbers come from inspecting trading chart screenshots and
// are deliberately literal; editing a threshold means editing this table.
var builtinRules = []ColorRule{
	{
		Name:        "purple",
		Description: "Colors with significant blue, present red, and low green",
		Conditions: []Condition{
			{Name: "blue significant", Left: TermB, Op: OpGE, Right: TermMaxRG, Scale: 0.7},
			{Name: "green below red", Left: TermG, Op: OpLT, Right: TermR},
			{Name: "green below blue", Left: TermG, Op: OpLT, Right: TermB},
			{Name: "color variation", Left: TermVariation, Op: OpGT, Offset: 20},
			{Name: "red present", Left: TermR, Op: OpGT, Offset: 20},
			{Name: "blue present", Left: TermB, Op: OpGT, Offset: 30},
		},
	},
	{
		Name:        "blue",
		Description: "Colors with dominant blue component",
		Conditions: []Condition{
			{Name: "blue dominant", Left: TermB, Op: OpGT, Right: TermMaxRG, Scale: 1.2},
			{Name: "color variation", Left: TermVariation, Op: OpGT, Offset: 15},
			{Name: "blue present", Left: TermB, Op: OpGT, Offset: 40},
		},
	},
	{
		Name:        "yellow",
		Description: "Colors with high red and green, low blue",
		Conditions: []Condition{
			{Name: "high red", Left: TermR, Op: OpGT, Offset: 100},
			{Name: "high green", Left: TermG, Op: OpGT, Offset: 100},
			{Name: "low blue", Left: TermB, Op: OpLT, Right: TermMinRG, Scale: 0.6},
			{Name: "color variation", Left: TermVariation, Op: OpGT, Offset: 20},
			{Name: "red present", Left: TermR, Op: OpGT, Offset: 50},
			{Name: "green present", Left: TermG, Op: OpGT, Offset: 50},
		},
	},
	{
		Name:        "orange",
		Description: "Colors with high red, medium green, low blue",
		Conditions: []Condition{
			{Name: "red above green", Left: TermR, Op: OpGT, Right: TermG},
			{Name: "green above blue", Left: TermG, Op: OpGT, Right: TermB},
			{Name: "high red", Left: TermR, Op: OpGT, Offset: 80},
			{Name: "green present", Left: TermG, Op: OpGT, Offset: 30},
			{Name: "medium green", Left: TermG, Op: OpLT, Right: TermR, Scale: 0.8},
			{Name: "low blue", Left: TermB, Op: OpLT, Right: TermMinRG, Scale: 0.5},
			{Name: "color variation", Left: TermVariation, Op: OpGT, Offset: 25},
		},
	},
	{
		Name:        "red",
		Description: "Colors with strongly dominant red, clear of orange",
		Conditions: []Condition{
			{Name: "red dominant", Left: TermR, Op: OpGT, Right: TermMaxGB, Scale: 1.2},
			{Name: "high red", Left: TermR, Op: OpGT, Offset: 100},
			{Name: "low green", Left: TermG, Op: OpLT, Right: TermR, Scale: 0.6},
			{Name: "low blue", Left: TermB, Op: OpLT, Right: TermR, Scale: 0.6},
			{Name: "red-green gap", Left: TermR, Op: OpGT, Right: TermG, Offset: 50},
			{Name: "color variation", Left: TermVariation, Op: OpGT, Offset: 40},
		},
	},
	{
		Name:        "green",
		Description: "Colors with green as the highest component",
		Conditions: []Condition{
			{Name: "green highest", Left: TermG, Op: OpGT, Right: TermMaxRB},
			{Name: "green present", Left: TermG, Op: OpGT, Offset: 50},
			{Name: "green gap", Left: TermG, Op: OpGT, Right: TermMaxRB, Offset: 10},
			{Name: "color variation", Left: TermVariation, Op: OpGT, Offset: 15},
			{Name: "bright or dominant", AnyOf: [][]Condition{
				{{Name: "bright green", Left: TermG, Op: OpGT, Offset: 80}},
				{
					{Name: "dominant over red", Left: TermG, Op: OpGT, Right: TermR, Scale: 1.5},
					{Name: "holds against blue", Left: TermG, Op: OpGT, Right: TermB, Scale: 0.8},
				},
			}},
		},
	},
}

// BuiltinRules returns a copy of the built-in rule set, in display order.
func BuiltinRules() []ColorRule {
	rules := make([]ColorRule, len(builtinRules))
	copy(rules, builtinRules)
	return rules
}

// RuleByName looks up a built-in rule by its (case-insensitive) name.
func RuleByName(name string) (ColorRule, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, rule := range builtinRules {
		if rule.Name == name {
			return rule, true
		}
	}
	return ColorRule{}, false
}

// RuleNames returns the names of the built-in rules, in display order.
func RuleNames() []string {
	names := make([]string, 0, len(builtinRules))
	for _, rule := range builtinRules {
		names = append(names, rule.Name)
	}
	return names
}

// SuggestRule returns the built-in rule name closest to the given input by
// edit distance, or "" when nothing is plausibly close.
func SuggestRule(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	best := ""
	bestDist := 3 // more than two edits away is not a typo
	for _, rule := range builtinRules {
		if d := levenshtein.Distance(name, rule.Name); d < bestDist {
			best = rule.Name
			bestDist = d
		}
	}
	return best
}

package classifier

import "time"

// Mask is a boolean grid over the image, true where the active rule matched.
type Mask struct {
	width, height int
	bits          []bool
}

// NewMask creates an all-false mask for a width x height image.
func NewMask(width, height int) *Mask {
	return &Mask{width: width, height: height, bits: make([]bool, width*height)}
}

// Set marks (x, y) as matched. Coordinates are relative to the image origin.
func (m *Mask) Set(x, y int) {
	m.bits[y*m.width+x] = true
}

// At reports whether (x, y) matched. Out-of-range coordinates are false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// MatchedCount returns the number of true cells.
func (m *Mask) MatchedCount() int {
	count := 0
	for _, set := range m.bits {
		if set {
			count++
		}
	}
	return count
}

// ScoredColor is one histogram entry with its share of the whole image.
type ScoredColor struct {
	Pixel      Pixel
	Count      int
	Percentage float64
}

// ChannelStats summarizes the channel values of the matched pixels.
type ChannelStats struct {
	MeanR, MeanG, MeanB float64
	StdR, StdG, StdB    float64
}

// Result is the outcome of classifying one image against one rule. It is
// immutable once produced.
type Result struct {
	Rule   ColorRule
	Width  int
	Height int

	// TotalMatched equals the histogram's total count by construction.
	TotalMatched int
	// Percentage is TotalMatched / (Width*Height) * 100.
	Percentage float64
	// MatchedColors is the number of distinct matching triples.
	MatchedColors int

	Top          []ScoredColor
	Histogram    *Histogram
	Mask         *Mask
	ChannelStats *ChannelStats

	Timestamp         time.Time
	ProcessingTimeSec float64
}

package classifier

import (
	"image"
	"sort"
)

// Histogram counts occurrences of exact RGB triples. Keys are exact triples,
// not buckets, so visually identical but slightly distinct colors stay
// separate entries. Insertion order is retained so that ranking ties break
// stable by first-seen order.
type Histogram struct {
	counts map[Pixel]int
	order  []Pixel
}

// NewHistogram creates an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[Pixel]int)}
}

// Add increments the count for the triple.
func (h *Histogram) Add(p Pixel) {
	if _, seen := h.counts[p]; !seen {
		h.order = append(h.order, p)
	}
	h.counts[p]++
}

// Count returns the occurrence count for the triple (0 when absent).
func (h *Histogram) Count(p Pixel) int {
	return h.counts[p]
}

// Len returns the number of distinct triples.
func (h *Histogram) Len() int {
	return len(h.order)
}

// Total returns the sum of all counts, which equals the number of pixels
// the active rule matched.
func (h *Histogram) Total() int {
	total := 0
	for _, count := range h.counts {
		total += count
	}
	return total
}

// Entry is one ranked histogram entry.
type Entry struct {
	Pixel Pixel
	Count int
}

// TopN returns up to n entries ranked by count descending. Ties keep
// first-seen order (stable sort over the insertion sequence), so repeated
// runs over the same image yield identical rankings. n <= 0 returns all
// entries.
func (h *Histogram) TopN(n int) []Entry {
	entries := make([]Entry, 0, len(h.order))
	for _, p := range h.order {
		entries = append(entries, Entry{Pixel: p, Count: h.counts[p]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Entries returns all entries ranked the same way as TopN.
func (h *Histogram) Entries() []Entry {
	return h.TopN(0)
}

// CountUniqueColors returns the number of distinct RGB triples in the whole
// image, regardless of any rule.
func CountUniqueColors(img image.Image) int {
	bounds := img.Bounds()
	seen := make(map[Pixel]struct{})
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			seen[pixelAt(img, x, y)] = struct{}{}
		}
	}
	return len(seen)
}

func pixelAt(img image.Image, x, y int) Pixel {
	r, g, b, _ := img.At(x, y).RGBA()
	return Pixel{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

package models

import "time"

// AnalysisInfo describes the analyzed image and the run itself.
type AnalysisInfo struct {
	Timestamp         time.Time `json:"timestamp"`
	ImagePath         string    `json:"image_path"`
	Width             int       `json:"width"`
	Height            int       `json:"height"`
	TotalPixels       int       `json:"total_pixels"`
	UniqueColors      int       `json:"unique_colors"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`
}

// TopColor is one ranked matched color with its share of the image area.
type TopColor struct {
	R          uint8   `json:"r"`
	G          uint8   `json:"g"`
	B          uint8   `json:"b"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ChannelStats summarizes the channel values of the matched pixels.
type ChannelStats struct {
	MeanR float64 `json:"mean_r"`
	MeanG float64 `json:"mean_g"`
	MeanB float64 `json:"mean_b"`
	StdR  float64 `json:"std_r"`
	StdG  float64 `json:"std_g"`
	StdB  float64 `json:"std_b"`
}

// OutputFiles lists artifacts written alongside the report.
type OutputFiles struct {
	Visualization string `json:"visualization,omitempty"`
	Report        string `json:"report,omitempty"`
}

// AnalysisReport is the serializable result of classifying one image
// against one color rule. Zero matches is a valid report, not an error.
type AnalysisReport struct {
	AnalysisInfo AnalysisInfo `json:"analysis_info"`

	ColorName    string     `json:"color_name"`
	Description  string     `json:"description"`
	RuleSummary  string     `json:"rule_summary"`
	TotalMatched int        `json:"total_matched"`
	Percentage   float64    `json:"percentage"`
	TopColors    []TopColor `json:"top_colors"`

	// MatchedColors is the number of distinct matched triples;
	// TopColors may be a truncated view of them.
	MatchedColors int `json:"matched_colors"`

	ChannelStats *ChannelStats `json:"channel_stats,omitempty"`

	// Palette is the overall image palette (hex strings, median cut),
	// independent of the rule.
	Palette []string `json:"palette,omitempty"`

	OutputFiles *OutputFiles `json:"output_files,omitempty"`
}

// HistoryEntry is one persisted analysis run.
type HistoryEntry struct {
	ID           int64     `json:"id"`
	ImagePath    string    `json:"image_path"`
	ColorName    string    `json:"color_name"`
	TotalMatched int       `json:"total_matched"`
	Percentage   float64   `json:"percentage"`
	CreatedAt    time.Time `json:"created_at"`
}

package classifier

// ClassifyOptions provides flexible configuration for a classification pass.
type ClassifyOptions struct {
	// TopN limits the ranked color list in the result. <= 0 keeps all.
	TopN int

	// ComputeMask builds the highlight mask. Disable when only counts are
	// needed (the HTTP API does not render visualizations).
	ComputeMask bool

	// ComputeChannelStats computes per-channel mean and standard deviation
	// over the matched pixels.
	ComputeChannelStats bool
}

// DefaultClassifyOptions returns the default classification options.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{
		TopN:                10,
		ComputeMask:         true,
		ComputeChannelStats: true,
	}
}

// FastClassifyOptions returns options for count-only classification.
func FastClassifyOptions() ClassifyOptions {
	opts := DefaultClassifyOptions()
	opts.ComputeMask = false
	opts.ComputeChannelStats = false
	return opts
}

// WithTopN returns options with a custom top-N limit.
func (opts ClassifyOptions) WithTopN(n int) ClassifyOptions {
	opts.TopN = n
	return opts
}

// WithoutMask returns options with mask computation disabled.
func (opts ClassifyOptions) WithoutMask() ClassifyOptions {
	opts.ComputeMask = false
	return opts
}

package core

const (
	// DefaultWrapWidth is the comment body width used when none is configured.
	DefaultWrapWidth = 60
	// MinWrapWidth and MaxWrapWidth bound the configurable wrap width.
	MinWrapWidth = 30
	MaxWrapWidth = 120
)

// AlignOptions controls the alignment pass. Range checks happen where the
// options are built (see internal/config); the aligner trusts its input.
type AlignOptions struct {
	WrapWidth     int  `json:"wrapWidth"`
	CaseSensitive bool `json:"caseSensitive"`
}

// DefaultAlignOptions returns the options used when nothing is configured.
func DefaultAlignOptions() AlignOptions {
	return AlignOptions{
		WrapWidth:     DefaultWrapWidth,
		CaseSensitive: false,
	}
}

// ValidWrapWidth reports whether w is inside the supported range.
func ValidWrapWidth(w int) bool {
	return w >= MinWrapWidth && w <= MaxWrapWidth
}

package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds tree list dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list rows.
	// Accounts for: app padding (1) + breadcrumb (1) + spacer (1) + help bar (3) = 6
	HeightReduction int

	// MinHeight is the minimum number of visible rows.
	MinHeight int

	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit int
	Width          int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string

	// TitleMaxLen is the longest title shown in a row before truncation.
	TitleMaxLen int
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 6,
			MinHeight:       3,
			IndentWidth:     2,
		},
		Input: InputConfig{
			TitleCharLimit: 200,
			Width:          40,
		},
		Text: TextConfig{
			Ellipsis:    "...",
			TitleMaxLen: 30,
		},
	}
}

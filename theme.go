package promptsmith

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Prompt  int // Generated prompt border and heading
	Tool    int // Recommended tool name
	Focus   int // Focused form field
	Error   int // Error messages
	Success int // Confirmations such as "Copied!"
	Muted   int // Status bar, placeholders, hints
	Accent  int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Prompt:  4,
		Tool:    3,
		Focus:   6,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}

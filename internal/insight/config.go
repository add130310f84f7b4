package insight

// Config holds insight generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Language the reading is written in.
	Language string
}

// DefaultConfig returns the defaults used by the TUI and CLI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.3,
		Language:    "Brazilian Portuguese",
	}
}

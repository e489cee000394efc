package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Verbose bool

	// Build flags
	LessonsDir  string
	OutputDir   string
	IndexPath   string
	Formats     []string
	SkipAudio   bool
	Workers     int
	Fingerprint bool

	// Audio flags, shared by build and dialogue
	Provider string
	Fallback string
	Locale   string
	Voice    string
	Rate     float64

	// Dialogue flags
	DialogueHTML   string
	DialogueOutput string
	Prefix         string
	Strategy       string
	Force          bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LessonsDir:     "lessons",
		OutputDir:      "build",
		IndexPath:      "index.html",
		Formats:        []string{"html", "md", "csv", "xlsx"},
		Workers:        1,
		Provider:       "google",
		Locale:         "fr-FR",
		Voice:          "fr-FR-Wavenet-D",
		Rate:           0.85,
		DialogueOutput: "audio",
		Prefix:         "restaurant",
		Strategy:       "text",
	}
}

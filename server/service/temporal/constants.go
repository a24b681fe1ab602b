package temporal

const (
	// MaxInputLength is the longest sentence accepted, in characters.
	MaxInputLength = 500

	// DefaultHistoryLimit is the number of rows History returns when asked for none.
	DefaultHistoryLimit = 20
)

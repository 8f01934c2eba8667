package entity

// ObservedAction describes one interactive element visible on the remote
// page at observation time. Observations are transient: produced fresh on
// every poll, pattern-matched against known UI states, never persisted.
type ObservedAction struct {
	ID       string
	Type     string
	Label    string
	Selector string
	Role     string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

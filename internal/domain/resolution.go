package domain

// Result of a name lookup as handed to API callers.
// Cached is set when the coordinate came from a local cache rather than the
// remote name service.
type Resolution struct {
	Name          string
	CanonicalName string
	Coordinate    Coordinate
	Cached        bool
}

// A named object of interest seeded into the target repository.
type Target struct {
	Name string
	Note string
}

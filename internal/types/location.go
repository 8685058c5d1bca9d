package types

// Source identifies which tier of the resolution chain produced a location
type Source string

const (
	SourceUnknown Source = ""
	SourceDevice  Source = "device"
	SourceNetwork Source = "network"
)

// Label returns the human readable name shown next to a resolved place
func (s Source) Label() string {
	switch s {
	case SourceDevice:
		return "Browser Geolocation"
	case SourceNetwork:
		return "IP Address"
	default:
		return ""
	}
}

// ResolvedLocation is the outcome of one resolution run.
// It is replaced wholesale by each run, never merged field by field.
type ResolvedLocation struct {
	City    string
	Country string
	Source  Source
}

// Place is a provider-agnostic city/country pair
type Place struct {
	City    string
	Country string
}

// Complete reports whether both the city and the country are known
func (p Place) Complete() bool {
	return p.City != "" && p.Country != ""
}

package location

import "geolocator/internal/types"

// Status messages published while a run is in flight
const (
	StatusDetecting            = "Detecting your location..."
	StatusRequestingPermission = "Requesting location permission..."
	StatusFetchingPrecise      = "Fetching precise location..."
	StatusUsingIP              = "Using IP address for location..."
)

// State is the published state of a resolution run. Exactly one of
// Pending, Resolved or Failed holds at a time; a run starts Pending and
// moves to Resolved or Failed exactly once.
type State interface {
	// Terminal reports whether no further transitions follow
	Terminal() bool
	isState()
}

// Pending is an in-flight run
type Pending struct {
	Status string
}

// Resolved is a run that produced a place
type Resolved struct {
	Location types.ResolvedLocation
	// Position is set when the place came from device coordinates
	Position *types.Coords
}

// Failed is a run whose last tier failed. Reason is user facing.
type Failed struct {
	Reason string
	Err    error
}

func (Pending) Terminal() bool  { return false }
func (Resolved) Terminal() bool { return true }
func (Failed) Terminal() bool   { return true }

func (Pending) isState()  {}
func (Resolved) isState() {}
func (Failed) isState()   {}

// Package card keeps the view model of the location card in step with a
// resolution run.
package card

import (
	"sync"
	"time"

	"geolocator/internal/location"
	"geolocator/internal/types"
)

// DefaultRevealDelay is how long after a terminal state the card becomes visible
const DefaultRevealDelay = 50 * time.Millisecond

// View is a snapshot of the card
type View struct {
	Loading     bool         `json:"loading"`
	Visible     bool         `json:"visible"`
	Status      string       `json:"status,omitempty"`
	Error       string       `json:"error,omitempty"`
	City        string       `json:"city,omitempty"`
	Country     string       `json:"country,omitempty"`
	Source      types.Source `json:"source,omitempty"`
	SourceLabel string       `json:"source_label,omitempty"`
}

// Card observes a resolution run. It is safe for concurrent use.
type Card struct {
	mu          sync.RWMutex
	view        View
	revealDelay time.Duration
	timer       *time.Timer
	revealed    chan struct{}
}

func New(revealDelay time.Duration) *Card {
	return &Card{
		view: View{
			Loading: true,
			Status:  location.StatusDetecting,
		},
		revealDelay: revealDelay,
		revealed:    make(chan struct{}),
	}
}

// Observe implements location.Observer
func (c *Card) Observe(s location.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch st := s.(type) {
	case location.Pending:
		c.view.Status = st.Status
		return
	case location.Resolved:
		c.view = View{
			City:        st.Location.City,
			Country:     st.Location.Country,
			Source:      st.Location.Source,
			SourceLabel: st.Location.Source.Label(),
		}
	case location.Failed:
		c.view = View{Error: st.Reason}
	}

	if c.timer == nil {
		c.timer = time.AfterFunc(c.revealDelay, c.reveal)
	}
}

func (c *Card) reveal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Visible = true
	close(c.revealed)
}

// View returns the current snapshot
func (c *Card) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// Revealed is closed once the card has become visible
func (c *Card) Revealed() <-chan struct{} {
	return c.revealed
}

// Close stops a pending reveal. Observe must not be called afterwards.
func (c *Card) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
}

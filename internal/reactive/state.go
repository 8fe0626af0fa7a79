package reactive

import (
	"fmt"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// Input identifies one user-controlled dashboard input.
type Input int

const (
	// InputSite is the launch site dropdown.
	InputSite Input = iota
	// InputPayload is the payload range slider.
	InputPayload
)

// String returns the input name used in logs and on the wire.
func (i Input) String() string {
	switch i {
	case InputSite:
		return "site"
	case InputPayload:
		return "payload"
	default:
		return fmt.Sprintf("input(%d)", int(i))
	}
}

// ParseInput maps a wire name back to its Input.
func ParseInput(name string) (Input, error) {
	switch name {
	case "site":
		return InputSite, nil
	case "payload":
		return InputPayload, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInput, name)
	}
}

// State is the current value of every input.
type State struct {
	Site    model.SiteSelection `json:"site"`
	Payload model.PayloadRange  `json:"payload"`
}

// Event is a change to a single input. Only the field matching Input is read.
type Event struct {
	Input   Input
	Site    model.SiteSelection
	Payload model.PayloadRange
}

// SiteChanged returns the event for a new dropdown value.
func SiteChanged(site model.SiteSelection) Event {
	return Event{Input: InputSite, Site: site}
}

// PayloadChanged returns the event for a new slider range.
func PayloadChanged(rng model.PayloadRange) Event {
	return Event{Input: InputPayload, Payload: rng}
}

// apply returns the state with the event's input replaced.
func (s State) apply(e Event) (State, error) {
	switch e.Input {
	case InputSite:
		s.Site = e.Site
	case InputPayload:
		s.Payload = e.Payload
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownInput, e.Input)
	}
	return s, nil
}

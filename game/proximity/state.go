package proximity

import "fmt"

// Phase is the interaction state machine's current state
type Phase int

const (
	Idle Phase = iota
	NearHotspot
	OverlayOpen
)

var phaseNames = map[Phase]string{
	Idle:        "idle",
	NearHotspot: "near_hotspot",
	OverlayOpen: "overlay_open",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Cause names the event that produced a transition
type Cause string

const (
	CauseOverlapBegin Cause = "overlap_begin"
	CauseOverlapEnd   Cause = "overlap_end"
	CauseInspect      Cause = "inspect"
	CauseClose        Cause = "close"
)

// Transition describes one accepted state change
type Transition struct {
	From    Phase  `json:"from"`
	To      Phase  `json:"to"`
	Hotspot string `json:"hotspot"`
	Cause   Cause  `json:"cause"`
	Tick    uint64 `json:"tick"`
}

// InteractionState is the read-only view of the controller the UI layer renders.
// Affordance is set only while a hotspot is current and no overlay is open.
type InteractionState struct {
	Phase          Phase  `json:"phase"`
	CurrentHotspot string `json:"current_hotspot,omitempty"`
	CurrentLabel   string `json:"current_label,omitempty"`
	ActiveOverlay  string `json:"active_overlay,omitempty"`
	OverlayID      string `json:"overlay_id,omitempty"`
	Affordance     string `json:"affordance,omitempty"`
}

// AffordanceText is the prompt offered when the actor stands at a hotspot
func AffordanceText(label string) string {
	return "Inspect " + label
}

package types

// DestinationCandidate is a heuristically extracted place name with its
// cumulative score across all matching heuristics.
type DestinationCandidate struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ResolutionStatus is the display state of one destination cell.
type ResolutionStatus string

const (
	StatusLoading ResolutionStatus = "loading"
	StatusReady   ResolutionStatus = "ready"
	StatusError   ResolutionStatus = "error"
)

// ResolvedDestination is a snapshot of a destination cell: the candidate name,
// the image URLs found for it and which one is on display.
type ResolvedDestination struct {
	Name         string           `json:"name"`
	Images       []string         `json:"images"`
	Status       ResolutionStatus `json:"status"`
	CurrentIndex int              `json:"current_index"`
}

// CurrentImage returns the URL on display, or "" when nothing is displayable.
func (d ResolvedDestination) CurrentImage() string {
	if d.Status != StatusReady || d.CurrentIndex < 0 || d.CurrentIndex >= len(d.Images) {
		return ""
	}
	return d.Images[d.CurrentIndex]
}

// StripSnapshot is the image strip shown below one assistant message.
type StripSnapshot struct {
	ID    string                `json:"id"`
	Cells []ResolvedDestination `json:"cells"`
}

// CellEventType enumerates display-side events a cell reacts to.
type CellEventType string

const (
	CellEventImageError CellEventType = "image_error"
	CellEventNext       CellEventType = "next"
	CellEventPrev       CellEventType = "prev"
	CellEventSelect     CellEventType = "select"
)

// CellEvent is posted by the display surface for a single cell.
type CellEvent struct {
	Type  CellEventType `json:"type" validate:"required,oneof=image_error next prev select"`
	Index int           `json:"index" validate:"gte=0"`
}

package common

import "time"

// StatusKind selects the footer colour of a status message
type StatusKind string

const (
	StatusInfo      StatusKind = "info"
	StatusSuccess   StatusKind = "success"
	StatusError     StatusKind = "error"
	StatusClipboard StatusKind = "clipboard"
)

// StatusMsg shows a transient message in the footer
type StatusMsg struct {
	Text string
	Kind StatusKind
	// TTL defaults to StatusTTL
	TTL time.Duration
}

// ClearStatusMsg hides the footer message with the given id, unless a newer
// one replaced it
type ClearStatusMsg struct {
	ID int
}

// StatusTTL is how long a status message stays visible
const StatusTTL = 3 * time.Second

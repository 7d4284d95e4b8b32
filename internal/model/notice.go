package model

import "time"

// Notice is one posted announcement. Notices are append-only and ordered by
// insertion; the latest notice is the last row.
type Notice struct {
	PostedAt time.Time
	Title    string
	Message  string
	PostedBy string
}

package dto

import "time"

// TimelineEventResponse is one step of the merged tracking timeline. Steps not
// yet reached carry completed=false and no timestamp.
type TimelineEventResponse struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Color       string     `json:"color"`
	Completed   bool       `json:"completed"`
	At          *time.Time `json:"at,omitempty"`
	Origin      string     `json:"origin"`
	Description string     `json:"description,omitempty"`
}

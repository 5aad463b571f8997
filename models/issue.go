package models

import "time"

// IssuePriority enum
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
	PriorityUrgent IssuePriority = "urgent"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusSubmitted    IssueStatus = "submitted"
	StatusAcknowledged IssueStatus = "acknowledged"
	StatusInProgress   IssueStatus = "in_progress"
	StatusResolved     IssueStatus = "resolved"
)

func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusSubmitted, StatusAcknowledged, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch IssuePriority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Location is an optional point plus free-text address.
type Location struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

// UserRef is the minimal creator projection embedded in issue responses.
type UserRef struct {
	ID        string  `json:"id"`
	Username  string  `json:"username,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Issue represents a civic issue reported by a citizen.
type Issue struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	Priority    IssuePriority `json:"priority"`
	Status      IssueStatus   `json:"status"`
	Location    *Location     `json:"location,omitempty"`
	MediaURL    string        `json:"mediaUrl,omitempty"`
	CreatedBy   *UserRef      `json:"createdBy,omitempty"`

	// AssignedNgos holds NGO ids; Ngos carries the full records and is only
	// populated on single-issue fetches.
	AssignedNgos []string `json:"assignedNgos"`
	Ngos         []NGO    `json:"ngos,omitempty"`

	ResolvedAt         *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy         *string    `json:"resolvedBy,omitempty"`
	ResolutionPhotoURL string     `json:"resolutionPhotoUrl,omitempty"`
	ResolutionNote     string     `json:"resolutionNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IssueUpdate carries the mutable fields of an issue; nil means unchanged.
type IssueUpdate struct {
	Title        *string
	Description  *string
	Category     *string
	Priority     *string
	Status       *string
	Location     *Location
	AssignedNgos *[]string
}

// Resolution is the metadata recorded when an issue is resolved.
type Resolution struct {
	PhotoURL   string
	Note       string
	ResolvedBy string // empty when the resolver was anonymous
	At         time.Time
}

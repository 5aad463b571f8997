package models

import "time"

// NGO is a partner organization that can be assigned to issues.
type NGO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	Website    string    `json:"website,omitempty"`
	FocusAreas string    `json:"focus_areas,omitempty"` // CSV or free text
	CreatedAt  time.Time `json:"createdAt"`
}

// NGOUpdate carries the recognized mutable fields; nil means unchanged.
type NGOUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	Website    *string
	FocusAreas *string
}

// Empty reports whether no recognized field was supplied.
func (u NGOUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.Address == nil && u.Website == nil && u.FocusAreas == nil
}

// Assignment links an NGO to an issue with a role label.
type Assignment struct {
	IssueID    string    `json:"issueId"`
	NgoID      string    `json:"ngoId"`
	Role       string    `json:"role,omitempty"` // e.g. "assigned", "partner", "volunteer"
	AssignedAt time.Time `json:"assignedAt"`
}

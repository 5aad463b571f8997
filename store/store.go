package store

import (
	"context"
	"errors"

	"sheharfix-be/models"
)

var (
	// ErrNotFound means no record exists for the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a uniqueness constraint was violated.
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the persistence interface shared by the document and relational
// adapters. The concrete adapter is chosen once at startup and injected into
// the controllers, so tests can substitute the in-memory implementation.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	// SetUserAvatar replaces the user's avatar URL and returns the updated
	// record. The rest of the user stays immutable.
	SetUserAvatar(ctx context.Context, id, url string) (*models.User, error)

	// Issues
	CreateIssue(ctx context.Context, issue *models.Issue) error
	// ListIssues returns issues newest-first, optionally filtered to an exact
	// status, with the creator projected to minimal public fields.
	ListIssues(ctx context.Context, status string) ([]models.Issue, error)
	// IssueByID populates creator and assigned NGO detail.
	IssueByID(ctx context.Context, id string) (*models.Issue, error)
	UpdateIssue(ctx context.Context, id string, upd models.IssueUpdate) (*models.Issue, error)
	ResolveIssue(ctx context.Context, id string, res models.Resolution) (*models.Issue, error)
	DeleteIssue(ctx context.Context, id string) error

	// NGOs
	ListNGOs(ctx context.Context) ([]models.NGO, error)
	CreateNGO(ctx context.Context, ngo *models.NGO) error
	NGOByID(ctx context.Context, id string) (*models.NGO, error)
	UpdateNGO(ctx context.Context, id string, upd models.NGOUpdate) (*models.NGO, error)
	DeleteNGO(ctx context.Context, id string) error

	// Issue-NGO assignments. AssignNGO is idempotent: assigning the same NGO
	// to the same issue twice is a no-op.
	AssignmentsForIssue(ctx context.Context, issueID string) ([]models.Assignment, error)
	AssignNGO(ctx context.Context, issueID, ngoID, role string) error
	UnassignNGO(ctx context.Context, issueID, ngoID string) error
}

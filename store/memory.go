package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sheharfix-be/models"
)

// MemoryStore keeps everything in process memory. It backs the handler tests
// and satisfies the same contract as the database adapters.
type MemoryStore struct {
	mu sync.Mutex

	users       map[string]*models.User
	issues      []*models.Issue
	ngos        []*models.NGO
	assignments []models.Assignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[string]*models.User{}}
}

func copyIssue(issue *models.Issue) models.Issue {
	out := *issue
	out.AssignedNgos = append([]string{}, issue.AssignedNgos...)
	out.Ngos = nil
	if issue.CreatedBy != nil {
		ref := *issue.CreatedBy
		out.CreatedBy = &ref
	}
	if issue.Location != nil {
		loc := *issue.Location
		out.Location = &loc
	}
	return out
}

func (s *MemoryStore) findIssue(id string) *models.Issue {
	for _, issue := range s.issues {
		if issue.ID == id {
			return issue
		}
	}
	return nil
}

func (s *MemoryStore) findNGO(id string) *models.NGO {
	for _, ngo := range s.ngos {
		if ngo.ID == id {
			return ngo
		}
	}
	return nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	s.users[u.ID] = &clone
	return nil
}

func (s *MemoryStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryStore) SetUserAvatar(ctx context.Context, id, url string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	avatar := url
	u.AvatarURL = &avatar
	u.UpdatedAt = time.Now()
	clone := *u
	return &clone, nil
}

func (s *MemoryStore) CreateIssue(ctx context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue.ID = uuid.NewString()
	issue.AssignedNgos = []string{}
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = issue.CreatedAt
	clone := copyIssue(issue)
	s.issues = append(s.issues, &clone)
	return nil
}

func (s *MemoryStore) ListIssues(ctx context.Context, status string) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Insertion order doubles as creation order; walk backwards for
	// newest-first.
	out := []models.Issue{}
	for i := len(s.issues) - 1; i >= 0; i-- {
		issue := s.issues[i]
		if status != "" && string(issue.Status) != status {
			continue
		}
		clone := copyIssue(issue)
		s.populateCreator(&clone)
		out = append(out, clone)
	}
	return out, nil
}

func (s *MemoryStore) populateCreator(issue *models.Issue) {
	if issue.CreatedBy == nil {
		return
	}
	if u, ok := s.users[issue.CreatedBy.ID]; ok {
		issue.CreatedBy.Username = u.Username
		issue.CreatedBy.AvatarURL = u.AvatarURL
	}
}

func (s *MemoryStore) IssueByID(ctx context.Context, id string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findIssue(id)
	if issue == nil {
		return nil, ErrNotFound
	}
	clone := copyIssue(issue)
	s.populateCreator(&clone)
	for _, ngoID := range clone.AssignedNgos {
		if ngo := s.findNGO(ngoID); ngo != nil {
			clone.Ngos = append(clone.Ngos, *ngo)
		}
	}
	return &clone, nil
}

func (s *MemoryStore) UpdateIssue(ctx context.Context, id string, upd models.IssueUpdate) (*models.Issue, error) {
	s.mu.Lock()
	issue := s.findIssue(id)
	if issue == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if upd.Title != nil {
		issue.Title = *upd.Title
	}
	if upd.Description != nil {
		issue.Description = *upd.Description
	}
	if upd.Category != nil {
		issue.Category = *upd.Category
	}
	if upd.Priority != nil {
		issue.Priority = models.IssuePriority(*upd.Priority)
	}
	if upd.Status != nil {
		issue.Status = models.IssueStatus(*upd.Status)
	}
	if upd.Location != nil {
		loc := *upd.Location
		issue.Location = &loc
	}
	if upd.AssignedNgos != nil {
		issue.AssignedNgos = append([]string{}, (*upd.AssignedNgos)...)
		kept := s.assignments[:0]
		for _, a := range s.assignments {
			if a.IssueID != id {
				kept = append(kept, a)
			}
		}
		s.assignments = kept
		for _, ngoID := range issue.AssignedNgos {
			s.assignments = append(s.assignments, models.Assignment{
				IssueID: id, NgoID: ngoID, Role: "assigned", AssignedAt: time.Now(),
			})
		}
	}
	issue.UpdatedAt = time.Now()
	s.mu.Unlock()
	return s.IssueByID(ctx, id)
}

func (s *MemoryStore) ResolveIssue(ctx context.Context, id string, res models.Resolution) (*models.Issue, error) {
	s.mu.Lock()
	issue := s.findIssue(id)
	if issue == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	at := res.At
	issue.Status = models.StatusResolved
	issue.ResolvedAt = &at
	issue.ResolutionPhotoURL = res.PhotoURL
	issue.ResolutionNote = res.Note
	if res.ResolvedBy != "" {
		resolvedBy := res.ResolvedBy
		issue.ResolvedBy = &resolvedBy
	}
	issue.UpdatedAt = time.Now()
	s.mu.Unlock()
	return s.IssueByID(ctx, id)
}

func (s *MemoryStore) DeleteIssue(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, issue := range s.issues {
		if issue.ID == id {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			kept := s.assignments[:0]
			for _, a := range s.assignments {
				if a.IssueID != id {
					kept = append(kept, a)
				}
			}
			s.assignments = kept
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.NGO{}
	for i := len(s.ngos) - 1; i >= 0; i-- {
		out = append(out, *s.ngos[i])
	}
	return out, nil
}

func (s *MemoryStore) CreateNGO(ctx context.Context, ngo *models.NGO) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.ngos {
		if existing.Name == ngo.Name {
			return ErrDuplicate
		}
	}
	ngo.ID = uuid.NewString()
	ngo.CreatedAt = time.Now()
	clone := *ngo
	s.ngos = append(s.ngos, &clone)
	return nil
}

func (s *MemoryStore) NGOByID(ctx context.Context, id string) (*models.NGO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ngo := s.findNGO(id)
	if ngo == nil {
		return nil, ErrNotFound
	}
	clone := *ngo
	return &clone, nil
}

func (s *MemoryStore) UpdateNGO(ctx context.Context, id string, upd models.NGOUpdate) (*models.NGO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ngo := s.findNGO(id)
	if ngo == nil {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		for _, existing := range s.ngos {
			if existing.ID != id && existing.Name == *upd.Name {
				return nil, ErrDuplicate
			}
		}
		ngo.Name = *upd.Name
	}
	if upd.Email != nil {
		ngo.Email = *upd.Email
	}
	if upd.Phone != nil {
		ngo.Phone = *upd.Phone
	}
	if upd.Address != nil {
		ngo.Address = *upd.Address
	}
	if upd.Website != nil {
		ngo.Website = *upd.Website
	}
	if upd.FocusAreas != nil {
		ngo.FocusAreas = *upd.FocusAreas
	}
	clone := *ngo
	return &clone, nil
}

func (s *MemoryStore) DeleteNGO(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ngo := range s.ngos {
		if ngo.ID == id {
			s.ngos = append(s.ngos[:i], s.ngos[i+1:]...)
			kept := s.assignments[:0]
			for _, a := range s.assignments {
				if a.NgoID != id {
					kept = append(kept, a)
				}
			}
			s.assignments = kept
			for _, issue := range s.issues {
				filtered := issue.AssignedNgos[:0]
				for _, ngoID := range issue.AssignedNgos {
					if ngoID != id {
						filtered = append(filtered, ngoID)
					}
				}
				issue.AssignedNgos = filtered
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) AssignmentsForIssue(ctx context.Context, issueID string) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findIssue(issueID) == nil {
		return nil, ErrNotFound
	}
	out := []models.Assignment{}
	for _, a := range s.assignments {
		if a.IssueID == issueID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) AssignNGO(ctx context.Context, issueID, ngoID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findIssue(issueID)
	if issue == nil {
		return ErrNotFound
	}
	if s.findNGO(ngoID) == nil {
		return ErrNotFound
	}
	for _, a := range s.assignments {
		if a.IssueID == issueID && a.NgoID == ngoID {
			return nil // duplicate assignment is a no-op
		}
	}
	s.assignments = append(s.assignments, models.Assignment{
		IssueID: issueID, NgoID: ngoID, Role: role, AssignedAt: time.Now(),
	})
	issue.AssignedNgos = append(issue.AssignedNgos, ngoID)
	return nil
}

func (s *MemoryStore) UnassignNGO(ctx context.Context, issueID, ngoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.assignments {
		if a.IssueID == issueID && a.NgoID == ngoID {
			s.assignments = append(s.assignments[:i], s.assignments[i+1:]...)
			if issue := s.findIssue(issueID); issue != nil {
				filtered := issue.AssignedNgos[:0]
				for _, id := range issue.AssignedNgos {
					if id != ngoID {
						filtered = append(filtered, id)
					}
				}
				issue.AssignedNgos = filtered
			}
			return nil
		}
	}
	return ErrNotFound
}

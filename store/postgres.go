package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sheharfix-be/models"
)

// PostgresStore is the relational adapter.
type PostgresStore struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('citizen','admin')),
	avatar_url    TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS issues (
	id                   SERIAL PRIMARY KEY,
	title                TEXT NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	category             TEXT NOT NULL DEFAULT '',
	priority             TEXT NOT NULL DEFAULT 'medium',
	status               TEXT NOT NULL DEFAULT 'submitted'
	                     CHECK (status IN ('submitted','acknowledged','in_progress','resolved')),
	lat                  DOUBLE PRECISION,
	lng                  DOUBLE PRECISION,
	address              TEXT NOT NULL DEFAULT '',
	media_url            TEXT NOT NULL DEFAULT '',
	created_by           INTEGER REFERENCES users(id),
	resolved_at          TIMESTAMPTZ,
	resolved_by          INTEGER REFERENCES users(id),
	resolution_photo_url TEXT NOT NULL DEFAULT '',
	resolution_note      TEXT NOT NULL DEFAULT '',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ngos (
	id          SERIAL PRIMARY KEY,
	name        TEXT UNIQUE NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	address     TEXT NOT NULL DEFAULT '',
	website     TEXT NOT NULL DEFAULT '',
	focus_areas TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS issue_ngos (
	issue_id    INTEGER NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
	ngo_id      INTEGER NOT NULL REFERENCES ngos(id) ON DELETE CASCADE,
	role        TEXT NOT NULL DEFAULT '',
	assigned_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (issue_id, ngo_id)
);
`

func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

type userRow struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type issueRow struct {
	ID                 int64          `db:"id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Category           string         `db:"category"`
	Priority           string         `db:"priority"`
	Status             string         `db:"status"`
	Lat                *float64       `db:"lat"`
	Lng                *float64       `db:"lng"`
	Address            string         `db:"address"`
	MediaURL           string         `db:"media_url"`
	CreatedBy          sql.NullInt64  `db:"created_by"`
	ResolvedAt         *time.Time     `db:"resolved_at"`
	ResolvedBy         sql.NullInt64  `db:"resolved_by"`
	ResolutionPhotoURL string         `db:"resolution_photo_url"`
	ResolutionNote     string         `db:"resolution_note"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	CreatorUsername    sql.NullString `db:"creator_username"`
	CreatorAvatar      sql.NullString `db:"creator_avatar"`
}

type ngoRow struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Phone      string    `db:"phone"`
	Address    string    `db:"address"`
	Website    string    `db:"website"`
	FocusAreas string    `db:"focus_areas"`
	CreatedAt  time.Time `db:"created_at"`
}

// pgID converts a client-supplied id; a malformed id cannot match any row.
func pgID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func (r *userRow) toModel() *models.User {
	u := &models.User{
		ID:           strconv.FormatInt(r.ID, 10),
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         models.UserRole(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.AvatarURL.Valid {
		u.AvatarURL = &r.AvatarURL.String
	}
	return u
}

func (r *issueRow) toModel() models.Issue {
	issue := models.Issue{
		ID:                 strconv.FormatInt(r.ID, 10),
		Title:              r.Title,
		Description:        r.Description,
		Category:           r.Category,
		Priority:           models.IssuePriority(r.Priority),
		Status:             models.IssueStatus(r.Status),
		MediaURL:           r.MediaURL,
		AssignedNgos:       []string{},
		ResolvedAt:         r.ResolvedAt,
		ResolutionPhotoURL: r.ResolutionPhotoURL,
		ResolutionNote:     r.ResolutionNote,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Lat != nil || r.Lng != nil || r.Address != "" {
		issue.Location = &models.Location{Lat: r.Lat, Lng: r.Lng, Address: r.Address}
	}
	if r.CreatedBy.Valid {
		ref := &models.UserRef{ID: strconv.FormatInt(r.CreatedBy.Int64, 10)}
		if r.CreatorUsername.Valid {
			ref.Username = r.CreatorUsername.String
		}
		if r.CreatorAvatar.Valid {
			ref.AvatarURL = &r.CreatorAvatar.String
		}
		issue.CreatedBy = ref
	}
	if r.ResolvedBy.Valid {
		resolvedBy := strconv.FormatInt(r.ResolvedBy.Int64, 10)
		issue.ResolvedBy = &resolvedBy
	}
	return issue
}

func (r *ngoRow) toModel() models.NGO {
	return models.NGO{
		ID:         strconv.FormatInt(r.ID, 10),
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Website:    r.Website,
		FocusAreas: r.FocusAreas,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO users (username, password_hash, role, avatar_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, password_hash, role, avatar_url, created_at, updated_at`,
		u.Username, u.PasswordHash, string(u.Role), u.AvatarURL)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	*u = *row.toModel()
	return nil
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	userID, err := pgID(id)
	if err != nil {
		return nil, err
	}
	var row userRow
	err = s.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *PostgresStore) SetUserAvatar(ctx context.Context, id, url string) (*models.User, error) {
	userID, err := pgID(id)
	if err != nil {
		return nil, err
	}
	var row userRow
	err = s.db.GetContext(ctx, &row,
		`UPDATE users SET avatar_url = $1, updated_at = now() WHERE id = $2
		 RETURNING id, username, password_hash, role, avatar_url, created_at, updated_at`,
		url, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

const issueColumns = `
	i.id, i.title, i.description, i.category, i.priority, i.status,
	i.lat, i.lng, i.address, i.media_url, i.created_by,
	i.resolved_at, i.resolved_by, i.resolution_photo_url, i.resolution_note,
	i.created_at, i.updated_at,
	u.username AS creator_username, u.avatar_url AS creator_avatar`

func (s *PostgresStore) CreateIssue(ctx context.Context, issue *models.Issue) error {
	var lat, lng *float64
	address := ""
	if issue.Location != nil {
		lat = issue.Location.Lat
		lng = issue.Location.Lng
		address = issue.Location.Address
	}
	var createdBy *int64
	if issue.CreatedBy != nil {
		creatorID, err := pgID(issue.CreatedBy.ID)
		if err != nil {
			return err
		}
		createdBy = &creatorID
	}

	var id int64
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO issues (title, description, category, priority, status, lat, lng, address, media_url, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		issue.Title, issue.Description, issue.Category, string(issue.Priority), string(issue.Status),
		lat, lng, address, issue.MediaURL, createdBy).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return err
	}
	issue.ID = strconv.FormatInt(id, 10)
	issue.AssignedNgos = []string{}
	issue.CreatedAt = createdAt
	issue.UpdatedAt = updatedAt
	return nil
}

func (s *PostgresStore) ListIssues(ctx context.Context, status string) ([]models.Issue, error) {
	query := `SELECT ` + issueColumns + `
		FROM issues i LEFT JOIN users u ON u.id = i.created_by`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE i.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY i.created_at DESC, i.id DESC`

	var rows []issueRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(rows))
	for i := range rows {
		issues = append(issues, rows[i].toModel())
	}
	if err := s.attachAssignedNgoIDs(ctx, issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// attachAssignedNgoIDs fills the AssignedNgos id lists in one query.
func (s *PostgresStore) attachAssignedNgoIDs(ctx context.Context, issues []models.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(issues))
	index := make(map[string]int, len(issues))
	for i := range issues {
		issueID, err := pgID(issues[i].ID)
		if err != nil {
			continue
		}
		ids = append(ids, issueID)
		index[issues[i].ID] = i
	}

	var links []struct {
		IssueID int64 `db:"issue_id"`
		NgoID   int64 `db:"ngo_id"`
	}
	err := s.db.SelectContext(ctx, &links,
		`SELECT issue_id, ngo_id FROM issue_ngos WHERE issue_id = ANY($1) ORDER BY assigned_at`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	for _, link := range links {
		if i, ok := index[strconv.FormatInt(link.IssueID, 10)]; ok {
			issues[i].AssignedNgos = append(issues[i].AssignedNgos, strconv.FormatInt(link.NgoID, 10))
		}
	}
	return nil
}

func (s *PostgresStore) IssueByID(ctx context.Context, id string) (*models.Issue, error) {
	issueID, err := pgID(id)
	if err != nil {
		return nil, err
	}
	var row issueRow
	err = s.db.GetContext(ctx, &row,
		`SELECT `+issueColumns+` FROM issues i LEFT JOIN users u ON u.id = i.created_by WHERE i.id = $1`,
		issueID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	issue := row.toModel()

	var ngoRows []ngoRow
	err = s.db.SelectContext(ctx, &ngoRows,
		`SELECT n.* FROM ngos n
		 JOIN issue_ngos l ON l.ngo_id = n.id
		 WHERE l.issue_id = $1 ORDER BY l.assigned_at`, issueID)
	if err != nil {
		return nil, err
	}
	for i := range ngoRows {
		issue.AssignedNgos = append(issue.AssignedNgos, strconv.FormatInt(ngoRows[i].ID, 10))
		issue.Ngos = append(issue.Ngos, ngoRows[i].toModel())
	}
	return &issue, nil
}

func (s *PostgresStore) UpdateIssue(ctx context.Context, id string, upd models.IssueUpdate) (*models.Issue, error) {
	issueID, err := pgID(id)
	if err != nil {
		return nil, err
	}

	fields := []string{"updated_at = now()"}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Location != nil {
		add("lat", upd.Location.Lat)
		add("lng", upd.Location.Lng)
		add("address", upd.Location.Address)
	}

	args = append(args, issueID)
	query := fmt.Sprintf(`UPDATE issues SET %s WHERE id = $%d`, strings.Join(fields, ", "), len(args))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	if upd.AssignedNgos != nil {
		if err := s.replaceAssignments(ctx, issueID, *upd.AssignedNgos); err != nil {
			return nil, err
		}
	}
	return s.IssueByID(ctx, id)
}

// replaceAssignments rewrites the issue_ngos rows for an issue to match the
// requested id list.
func (s *PostgresStore) replaceAssignments(ctx context.Context, issueID int64, ngoIDs []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM issue_ngos WHERE issue_id = $1`, issueID); err != nil {
		return err
	}
	for _, ngoID := range ngoIDs {
		id, err := pgID(ngoID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO issue_ngos (issue_id, ngo_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			issueID, id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrNotFound
			}
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) ResolveIssue(ctx context.Context, id string, res models.Resolution) (*models.Issue, error) {
	issueID, err := pgID(id)
	if err != nil {
		return nil, err
	}
	var resolvedBy *int64
	if res.ResolvedBy != "" {
		resolverID, err := pgID(res.ResolvedBy)
		if err != nil {
			return nil, err
		}
		resolvedBy = &resolverID
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE issues
		 SET status = 'resolved', resolved_at = $1, resolved_by = $2,
		     resolution_photo_url = $3, resolution_note = $4, updated_at = now()
		 WHERE id = $5`,
		res.At, resolvedBy, res.PhotoURL, res.Note, issueID)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.IssueByID(ctx, id)
}

func (s *PostgresStore) DeleteIssue(ctx context.Context, id string) error {
	issueID, err := pgID(id)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, issueID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	var rows []ngoRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM ngos ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, err
	}
	ngos := make([]models.NGO, 0, len(rows))
	for i := range rows {
		ngos = append(ngos, rows[i].toModel())
	}
	return ngos, nil
}

func (s *PostgresStore) CreateNGO(ctx context.Context, ngo *models.NGO) error {
	var row ngoRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO ngos (name, email, phone, address, website, focus_areas)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING *`,
		ngo.Name, ngo.Email, ngo.Phone, ngo.Address, ngo.Website, ngo.FocusAreas)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	*ngo = row.toModel()
	return nil
}

func (s *PostgresStore) NGOByID(ctx context.Context, id string) (*models.NGO, error) {
	ngoID, err := pgID(id)
	if err != nil {
		return nil, err
	}
	var row ngoRow
	err = s.db.GetContext(ctx, &row, `SELECT * FROM ngos WHERE id = $1`, ngoID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ngo := row.toModel()
	return &ngo, nil
}

func (s *PostgresStore) UpdateNGO(ctx context.Context, id string, upd models.NGOUpdate) (*models.NGO, error) {
	ngoID, err := pgID(id)
	if err != nil {
		return nil, err
	}

	fields := []string{}
	args := []interface{}{}
	add := func(column string, value string) {
		args = append(args, value)
		fields = append(fields, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.Website != nil {
		add("website", *upd.Website)
	}
	if upd.FocusAreas != nil {
		add("focus_areas", *upd.FocusAreas)
	}
	if len(fields) == 0 {
		return s.NGOByID(ctx, id)
	}

	args = append(args, ngoID)
	query := fmt.Sprintf(`UPDATE ngos SET %s WHERE id = $%d`, strings.Join(fields, ", "), len(args))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.NGOByID(ctx, id)
}

func (s *PostgresStore) DeleteNGO(ctx context.Context, id string) error {
	ngoID, err := pgID(id)
	if err != nil {
		return err
	}
	// issue_ngos rows cascade via the foreign key.
	result, err := s.db.ExecContext(ctx, `DELETE FROM ngos WHERE id = $1`, ngoID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AssignmentsForIssue(ctx context.Context, issueID string) ([]models.Assignment, error) {
	id, err := pgID(issueID)
	if err != nil {
		return nil, err
	}
	if _, err := s.IssueByID(ctx, issueID); err != nil {
		return nil, err
	}

	var rows []struct {
		IssueID    int64     `db:"issue_id"`
		NgoID      int64     `db:"ngo_id"`
		Role       string    `db:"role"`
		AssignedAt time.Time `db:"assigned_at"`
	}
	err = s.db.SelectContext(ctx, &rows,
		`SELECT issue_id, ngo_id, role, assigned_at FROM issue_ngos WHERE issue_id = $1 ORDER BY assigned_at`, id)
	if err != nil {
		return nil, err
	}
	assignments := make([]models.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, models.Assignment{
			IssueID:    strconv.FormatInt(row.IssueID, 10),
			NgoID:      strconv.FormatInt(row.NgoID, 10),
			Role:       row.Role,
			AssignedAt: row.AssignedAt,
		})
	}
	return assignments, nil
}

func (s *PostgresStore) AssignNGO(ctx context.Context, issueID, ngoID, role string) error {
	id, err := pgID(issueID)
	if err != nil {
		return err
	}
	ngo, err := pgID(ngoID)
	if err != nil {
		return err
	}
	// ON CONFLICT swallows the duplicate pair, making assignment idempotent.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO issue_ngos (issue_id, ngo_id, role) VALUES ($1, $2, $3)
		 ON CONFLICT (issue_id, ngo_id) DO NOTHING`,
		id, ngo, role)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PostgresStore) UnassignNGO(ctx context.Context, issueID, ngoID string) error {
	id, err := pgID(issueID)
	if err != nil {
		return err
	}
	ngo, err := pgID(ngoID)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM issue_ngos WHERE issue_id = $1 AND ngo_id = $2`, id, ngo)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedDemoData loads a default admin and a few demo NGOs and issues when the
// tables are empty. Development convenience, opt-in from main.
func (s *PostgresStore) SeedDemoData(ctx context.Context) error {
	var adminCount int
	if err := s.db.GetContext(ctx, &adminCount, `SELECT COUNT(*) FROM users WHERE role = 'admin'`); err != nil {
		return err
	}
	if adminCount == 0 {
		admin := &models.User{Username: "admin", Role: models.RoleAdmin}
		if err := admin.SetPassword("admin123"); err != nil {
			return err
		}
		if err := s.CreateUser(ctx, admin); err != nil && err != ErrDuplicate {
			return err
		}
		log.Println("Seeded default admin user: admin / admin123")
	}

	var ngoCount int
	if err := s.db.GetContext(ctx, &ngoCount, `SELECT COUNT(*) FROM ngos`); err != nil {
		return err
	}
	if ngoCount == 0 {
		demoNgos := []models.NGO{
			{Name: "Green City Trust", Email: "contact@greencity.org", Phone: "+91-90000-11111", Address: "MG Road, Bengaluru", Website: "https://greencity.org", FocusAreas: "sanitation,roads"},
			{Name: "LightUp Initiative", Email: "hello@lightup.in", Phone: "+91-90000-22222", Address: "Indiranagar, Bengaluru", Website: "https://lightup.in", FocusAreas: "lighting,safety"},
			{Name: "Clean Drain Foundation", Email: "info@cleandrain.org", Phone: "+91-90000-33333", Address: "BTM Layout, Bengaluru", Website: "https://cleandrain.org", FocusAreas: "drainage,water"},
		}
		for i := range demoNgos {
			if err := s.CreateNGO(ctx, &demoNgos[i]); err != nil && err != ErrDuplicate {
				return err
			}
		}
		log.Println("Seeded demo NGOs")
	}

	var issueCount int
	if err := s.db.GetContext(ctx, &issueCount, `SELECT COUNT(*) FROM issues`); err != nil {
		return err
	}
	if issueCount == 0 {
		coord := func(v float64) *float64 { return &v }
		demoIssues := []models.Issue{
			{Title: "Large pothole on MG Road", Description: "Deep pothole causing traffic congestion near bus stop", Category: "roads", Priority: models.PriorityHigh, Status: models.StatusInProgress, Location: &models.Location{Lat: coord(12.9716), Lng: coord(77.5946)}},
			{Title: "Overflowing garbage bin", Description: "Garbage bin overflowing for 3 days, creating hygiene issues", Category: "sanitation", Priority: models.PriorityMedium, Status: models.StatusAcknowledged, Location: &models.Location{Lat: coord(12.9352), Lng: coord(77.6245)}},
			{Title: "Street light not working", Description: "Multiple street lights not functioning, safety concern", Category: "lighting", Priority: models.PriorityMedium, Status: models.StatusAcknowledged, Location: &models.Location{Lat: coord(12.9719), Lng: coord(77.6412)}},
		}
		for i := range demoIssues {
			if err := s.CreateIssue(ctx, &demoIssues[i]); err != nil {
				return err
			}
		}
		log.Println("Seeded demo issues")
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sheharfix-be/models"
)

// MongoStore is the document adapter.
type MongoStore struct {
	users  *mongo.Collection
	issues *mongo.Collection
	ngos   *mongo.Collection
}

func NewMongoStore(db *mongo.Database) (*MongoStore, error) {
	s := &MongoStore{
		users:  db.Collection("users"),
		issues: db.Collection("issues"),
		ngos:   db.Collection("ngos"),
	}
	if err := s.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("mongo: ensure indexes: %w", err)
	}
	return s, nil
}

// ensureIndexes creates the unique indexes backing the username and NGO name
// invariants.
func (s *MongoStore) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.ngos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"passwordHash"`
	Role         string             `bson:"role"`
	AvatarURL    *string            `bson:"avatarUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type issueDoc struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty"`
	Title              string               `bson:"title"`
	Description        string               `bson:"description,omitempty"`
	Category           string               `bson:"category,omitempty"`
	Priority           string               `bson:"priority"`
	Status             string               `bson:"status"`
	Lat                *float64             `bson:"lat,omitempty"`
	Lng                *float64             `bson:"lng,omitempty"`
	Address            string               `bson:"address,omitempty"`
	MediaURL           string               `bson:"mediaUrl,omitempty"`
	CreatedBy          *primitive.ObjectID  `bson:"createdBy,omitempty"`
	AssignedNgos       []primitive.ObjectID `bson:"assignedNgos"`
	ResolvedAt         *time.Time           `bson:"resolvedAt,omitempty"`
	ResolvedBy         *primitive.ObjectID  `bson:"resolvedBy,omitempty"`
	ResolutionPhotoURL string               `bson:"resolutionPhotoUrl,omitempty"`
	ResolutionNote     string               `bson:"resolutionNote,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt"`
}

type ngoDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty"`
	Address    string             `bson:"address,omitempty"`
	Website    string             `bson:"website,omitempty"`
	FocusAreas string             `bson:"focus_areas,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// oid converts a client-supplied id; a malformed id cannot match any record.
func oid(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return objID, nil
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         models.UserRole(d.Role),
		AvatarURL:    d.AvatarURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d *issueDoc) toModel() models.Issue {
	issue := models.Issue{
		ID:                 d.ID.Hex(),
		Title:              d.Title,
		Description:        d.Description,
		Category:           d.Category,
		Priority:           models.IssuePriority(d.Priority),
		Status:             models.IssueStatus(d.Status),
		MediaURL:           d.MediaURL,
		AssignedNgos:       make([]string, 0, len(d.AssignedNgos)),
		ResolvedAt:         d.ResolvedAt,
		ResolutionPhotoURL: d.ResolutionPhotoURL,
		ResolutionNote:     d.ResolutionNote,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.Lat != nil || d.Lng != nil || d.Address != "" {
		issue.Location = &models.Location{Lat: d.Lat, Lng: d.Lng, Address: d.Address}
	}
	if d.CreatedBy != nil {
		issue.CreatedBy = &models.UserRef{ID: d.CreatedBy.Hex()}
	}
	if d.ResolvedBy != nil {
		hex := d.ResolvedBy.Hex()
		issue.ResolvedBy = &hex
	}
	for _, ngoID := range d.AssignedNgos {
		issue.AssignedNgos = append(issue.AssignedNgos, ngoID.Hex())
	}
	return issue
}

func (d *ngoDoc) toModel() models.NGO {
	return models.NGO{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Address:    d.Address,
		Website:    d.Website,
		FocusAreas: d.FocusAreas,
		CreatedAt:  d.CreatedAt,
	}
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		AvatarURL:    u.AvatarURL,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	u.ID = doc.ID.Hex()
	u.CreatedAt = doc.CreatedAt
	u.UpdatedAt = doc.UpdatedAt
	return nil
}

func (s *MongoStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *MongoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	err = s.users.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *MongoStore) SetUserAvatar(ctx context.Context, id, url string) (*models.User, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"avatarUrl": url, "updatedAt": time.Now()}})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.UserByID(ctx, id)
}

func (s *MongoStore) CreateIssue(ctx context.Context, issue *models.Issue) error {
	doc := issueDoc{
		ID:           primitive.NewObjectID(),
		Title:        issue.Title,
		Description:  issue.Description,
		Category:     issue.Category,
		Priority:     string(issue.Priority),
		Status:       string(issue.Status),
		MediaURL:     issue.MediaURL,
		AssignedNgos: []primitive.ObjectID{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if issue.Location != nil {
		doc.Lat = issue.Location.Lat
		doc.Lng = issue.Location.Lng
		doc.Address = issue.Location.Address
	}
	if issue.CreatedBy != nil {
		creatorID, err := oid(issue.CreatedBy.ID)
		if err != nil {
			return err
		}
		doc.CreatedBy = &creatorID
	}
	if _, err := s.issues.InsertOne(ctx, doc); err != nil {
		return err
	}
	issue.ID = doc.ID.Hex()
	issue.AssignedNgos = []string{}
	issue.CreatedAt = doc.CreatedAt
	issue.UpdatedAt = doc.UpdatedAt
	return nil
}

func (s *MongoStore) ListIssues(ctx context.Context, status string) ([]models.Issue, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.issues.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []issueDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(docs))
	for _, doc := range docs {
		issues = append(issues, doc.toModel())
	}
	s.populateCreators(ctx, issues)
	return issues, nil
}

// populateCreators fills in username and avatar for issue creators with a
// single $in lookup.
func (s *MongoStore) populateCreators(ctx context.Context, issues []models.Issue) {
	ids := make([]primitive.ObjectID, 0, len(issues))
	seen := map[string]bool{}
	for i := range issues {
		if issues[i].CreatedBy == nil || seen[issues[i].CreatedBy.ID] {
			continue
		}
		seen[issues[i].CreatedBy.ID] = true
		if objID, err := primitive.ObjectIDFromHex(issues[i].CreatedBy.ID); err == nil {
			ids = append(ids, objID)
		}
	}
	if len(ids) == 0 {
		return
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return
	}
	defer cursor.Close(ctx)

	var users []userDoc
	if err := cursor.All(ctx, &users); err != nil {
		return
	}
	byID := make(map[string]userDoc, len(users))
	for _, u := range users {
		byID[u.ID.Hex()] = u
	}
	for i := range issues {
		if issues[i].CreatedBy == nil {
			continue
		}
		if u, ok := byID[issues[i].CreatedBy.ID]; ok {
			issues[i].CreatedBy.Username = u.Username
			issues[i].CreatedBy.AvatarURL = u.AvatarURL
		}
	}
}

func (s *MongoStore) IssueByID(ctx context.Context, id string) (*models.Issue, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc issueDoc
	err = s.issues.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	issue := doc.toModel()

	single := []models.Issue{issue}
	s.populateCreators(ctx, single)
	issue = single[0]

	if len(doc.AssignedNgos) > 0 {
		cursor, err := s.ngos.Find(ctx, bson.M{"_id": bson.M{"$in": doc.AssignedNgos}})
		if err == nil {
			var ngoDocs []ngoDoc
			if err := cursor.All(ctx, &ngoDocs); err == nil {
				for _, nd := range ngoDocs {
					issue.Ngos = append(issue.Ngos, nd.toModel())
				}
			}
		}
	}
	return &issue, nil
}

func (s *MongoStore) UpdateIssue(ctx context.Context, id string, upd models.IssueUpdate) (*models.Issue, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Location != nil {
		set["lat"] = upd.Location.Lat
		set["lng"] = upd.Location.Lng
		set["address"] = upd.Location.Address
	}
	if upd.AssignedNgos != nil {
		ngoIDs := make([]primitive.ObjectID, 0, len(*upd.AssignedNgos))
		for _, ngoID := range *upd.AssignedNgos {
			objNgoID, err := oid(ngoID)
			if err != nil {
				return nil, err
			}
			ngoIDs = append(ngoIDs, objNgoID)
		}
		set["assignedNgos"] = ngoIDs
	}

	result, err := s.issues.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.IssueByID(ctx, id)
}

func (s *MongoStore) ResolveIssue(ctx context.Context, id string, res models.Resolution) (*models.Issue, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"status":             string(models.StatusResolved),
		"resolvedAt":         res.At,
		"resolutionPhotoUrl": res.PhotoURL,
		"resolutionNote":     res.Note,
		"updatedAt":          time.Now(),
	}
	if res.ResolvedBy != "" {
		resolverID, err := oid(res.ResolvedBy)
		if err != nil {
			return nil, err
		}
		set["resolvedBy"] = resolverID
	}

	result, err := s.issues.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.IssueByID(ctx, id)
}

func (s *MongoStore) DeleteIssue(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	result, err := s.issues.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.ngos.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ngoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ngos := make([]models.NGO, 0, len(docs))
	for _, doc := range docs {
		ngos = append(ngos, doc.toModel())
	}
	return ngos, nil
}

func (s *MongoStore) CreateNGO(ctx context.Context, ngo *models.NGO) error {
	doc := ngoDoc{
		ID:         primitive.NewObjectID(),
		Name:       ngo.Name,
		Email:      ngo.Email,
		Phone:      ngo.Phone,
		Address:    ngo.Address,
		Website:    ngo.Website,
		FocusAreas: ngo.FocusAreas,
		CreatedAt:  time.Now(),
	}
	if _, err := s.ngos.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	ngo.ID = doc.ID.Hex()
	ngo.CreatedAt = doc.CreatedAt
	return nil
}

func (s *MongoStore) NGOByID(ctx context.Context, id string) (*models.NGO, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc ngoDoc
	err = s.ngos.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ngo := doc.toModel()
	return &ngo, nil
}

func (s *MongoStore) UpdateNGO(ctx context.Context, id string, upd models.NGOUpdate) (*models.NGO, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Website != nil {
		set["website"] = *upd.Website
	}
	if upd.FocusAreas != nil {
		set["focus_areas"] = *upd.FocusAreas
	}

	result, err := s.ngos.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.NGOByID(ctx, id)
}

func (s *MongoStore) DeleteNGO(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	result, err := s.ngos.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	// Cascade: remove the NGO from every issue it was assigned to.
	_, _ = s.issues.UpdateMany(ctx,
		bson.M{"assignedNgos": objID},
		bson.M{"$pull": bson.M{"assignedNgos": objID}})
	return nil
}

func (s *MongoStore) AssignmentsForIssue(ctx context.Context, issueID string) ([]models.Assignment, error) {
	issue, err := s.IssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	// The document adapter stores assignments as an id array; role and
	// timestamp are synthesized for interface parity with the relational
	// adapter.
	assignments := make([]models.Assignment, 0, len(issue.AssignedNgos))
	for _, ngoID := range issue.AssignedNgos {
		assignments = append(assignments, models.Assignment{
			IssueID:    issueID,
			NgoID:      ngoID,
			Role:       "assigned",
			AssignedAt: issue.UpdatedAt,
		})
	}
	return assignments, nil
}

func (s *MongoStore) AssignNGO(ctx context.Context, issueID, ngoID, role string) error {
	objIssueID, err := oid(issueID)
	if err != nil {
		return err
	}
	if _, err := s.NGOByID(ctx, ngoID); err != nil {
		return err
	}
	objNgoID, _ := oid(ngoID)

	// $addToSet makes the double-assign a no-op.
	result, err := s.issues.UpdateOne(ctx,
		bson.M{"_id": objIssueID},
		bson.M{"$addToSet": bson.M{"assignedNgos": objNgoID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) UnassignNGO(ctx context.Context, issueID, ngoID string) error {
	objIssueID, err := oid(issueID)
	if err != nil {
		return err
	}
	objNgoID, err := oid(ngoID)
	if err != nil {
		return err
	}
	result, err := s.issues.UpdateOne(ctx,
		bson.M{"_id": objIssueID},
		bson.M{"$pull": bson.M{"assignedNgos": objNgoID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 || result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

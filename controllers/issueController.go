package controllers

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sheharfix-be/middlewares"
	"sheharfix-be/models"
	"sheharfix-be/store"
	"sheharfix-be/uploads"
)

const (
	reportFolder     = "sheharfix"
	resolutionFolder = "sheharfix-resolutions"
	heatmapLimit     = 50
)

type IssueController struct {
	Store    store.Store
	Uploader uploads.Uploader
}

func NewIssueController(s store.Store, u uploads.Uploader) *IssueController {
	return &IssueController{Store: s, Uploader: u}
}

// decodeMedia accepts raw base64 or a data URL.
func decodeMedia(media string) ([]byte, error) {
	if i := strings.Index(media, ";base64,"); i >= 0 {
		media = media[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(media)
}

// uploadMedia stores the image and returns its URL. Any failure degrades to
// "no media" so the parent operation can proceed.
func (ic *IssueController) uploadMedia(ctx context.Context, media, folder string) string {
	data, err := decodeMedia(media)
	if err != nil {
		log.Println("media decode failed, proceeding without media:", err)
		return ""
	}
	return ic.putMedia(ctx, data, folder)
}

// putMedia stores already-decoded bytes; an upload failure degrades to "no
// media" rather than failing the request.
func (ic *IssueController) putMedia(ctx context.Context, data []byte, folder string) string {
	url, err := ic.Uploader.Put(ctx, data, folder)
	if err != nil {
		log.Println("media upload failed, proceeding without media:", err)
		return ""
	}
	return url
}

// CreateIssue handles report submission. Anonymous creation is allowed; a
// valid bearer token attributes the creator.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input struct {
		Title       string           `json:"title" binding:"required,max=200"`
		Description string           `json:"description"`
		Category    string           `json:"category"`
		Priority    string           `json:"priority"`
		Location    *models.Location `json:"location"`
		Media       string           `json:"media"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		if !models.ValidPriority(input.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		priority = models.IssuePriority(input.Priority)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mediaURL := ""
	if input.Media != "" {
		mediaURL = ic.uploadMedia(ctx, input.Media, reportFolder)
	}

	issue := models.Issue{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    priority,
		Status:      models.StatusSubmitted,
		Location:    input.Location,
		MediaURL:    mediaURL,
	}
	if identity := middlewares.IdentityFrom(c); identity != nil {
		issue.CreatedBy = &models.UserRef{ID: identity.ID}
	}

	if err := ic.Store.CreateIssue(ctx, &issue); err != nil {
		log.Println("Error creating issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// ListIssues returns all issues newest-first, optionally filtered by status.
// Unrecognized filter values are ignored rather than rejected.
func (ic *IssueController) ListIssues(c *gin.Context) {
	status := c.Query("status")
	if !models.ValidStatus(status) {
		status = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := ic.Store.ListIssues(ctx, status)
	if err != nil {
		log.Println("Error listing issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssue returns one issue with creator and assigned NGO detail.
func (ic *IssueController) GetIssue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := ic.Store.IssueByID(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssue applies partial changes to an issue.
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	var input struct {
		Title        *string          `json:"title"`
		Description  *string          `json:"description"`
		Category     *string          `json:"category"`
		Priority     *string          `json:"priority"`
		Status       *string          `json:"status"`
		Location     *models.Location `json:"location"`
		AssignedNgos *[]string        `json:"assignedNgos"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Priority != nil && !models.ValidPriority(*input.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := ic.Store.UpdateIssue(ctx, c.Param("id"), models.IssueUpdate{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Priority:     input.Priority,
		Status:       input.Status,
		Location:     input.Location,
		AssignedNgos: input.AssignedNgos,
	})
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		log.Println("Error updating issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// ResolveIssue marks an issue resolved. A resolution photo is mandatory and
// undecodable media counts as absent; the resolver identity is captured only
// when a valid token was presented.
func (ic *IssueController) ResolveIssue(c *gin.Context) {
	var input struct {
		Media string `json:"media"`
		Note  string `json:"note"`
	}
	// The body may legitimately be empty; only the media check matters.
	_ = c.ShouldBindJSON(&input)

	if input.Media == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resolution photo (media) required"})
		return
	}
	data, err := decodeMedia(input.Media)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resolution photo (media) required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resolution := models.Resolution{
		PhotoURL: ic.putMedia(ctx, data, resolutionFolder),
		Note:     input.Note,
		At:       time.Now(),
	}
	if identity := middlewares.IdentityFrom(c); identity != nil {
		resolution.ResolvedBy = identity.ID
	}

	issue, err := ic.Store.ResolveIssue(ctx, c.Param("id"), resolution)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		log.Println("Error resolving issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// DeleteIssue removes an issue. Only the original non-admin reporter may
// delete; admins are not allowed.
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	identity := middlewares.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := ic.Store.IssueByID(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get issue"})
		return
	}

	if identity.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	isOwner := issue.CreatedBy != nil && issue.CreatedBy.ID == identity.ID
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := ic.Store.DeleteIssue(ctx, issue.ID); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete issue"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Heatmap returns the most recent issues that carry coordinates, projected
// to the fields the map view needs.
func (ic *IssueController) Heatmap(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := ic.Store.ListIssues(ctx, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get issues"})
		return
	}

	type point struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Lat       float64   `json:"lat"`
		Lng       float64   `json:"lng"`
		Address   string    `json:"address,omitempty"`
		Category  string    `json:"category,omitempty"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
	}

	points := []point{}
	for _, issue := range issues {
		if issue.Location == nil || issue.Location.Lat == nil || issue.Location.Lng == nil {
			continue
		}
		points = append(points, point{
			ID:        issue.ID,
			Title:     issue.Title,
			Lat:       *issue.Location.Lat,
			Lng:       *issue.Location.Lng,
			Address:   issue.Location.Address,
			Category:  issue.Category,
			Status:    string(issue.Status),
			CreatedAt: issue.CreatedAt,
		})
		if len(points) == heatmapLimit {
			break
		}
	}

	c.JSON(http.StatusOK, points)
}

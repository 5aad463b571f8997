package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sheharfix-be/models"
	"sheharfix-be/store"
)

type NGOController struct {
	Store store.Store
}

func NewNGOController(s store.Store) *NGOController {
	return &NGOController{Store: s}
}

// ListNGOs returns all partner organizations.
func (nc *NGOController) ListNGOs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ngos, err := nc.Store.ListNGOs(ctx)
	if err != nil {
		log.Println("Error listing ngos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ngos"})
		return
	}

	c.JSON(http.StatusOK, ngos)
}

// CreateNGO registers a partner organization. Admin only (enforced by the
// route middleware).
func (nc *NGOController) CreateNGO(c *gin.Context) {
	var input struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
		Website    string `json:"website"`
		FocusAreas string `json:"focus_areas"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ngo := models.NGO{
		Name:       name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		Website:    input.Website,
		FocusAreas: input.FocusAreas,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := nc.Store.CreateNGO(ctx, &ngo); err != nil {
		if err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "name already exists"})
			return
		}
		log.Println("Error creating ngo:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ngo"})
		return
	}

	c.JSON(http.StatusCreated, ngo)
}

// GetNGO returns one organization.
func (nc *NGOController) GetNGO(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ngo, err := nc.Store.NGOByID(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "ngo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ngo"})
		return
	}

	c.JSON(http.StatusOK, ngo)
}

// UpdateNGO applies the recognized fields of a partial update.
func (nc *NGOController) UpdateNGO(c *gin.Context) {
	var input struct {
		Name       *string `json:"name"`
		Email      *string `json:"email"`
		Phone      *string `json:"phone"`
		Address    *string `json:"address"`
		Website    *string `json:"website"`
		FocusAreas *string `json:"focus_areas"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := models.NGOUpdate{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		Website:    input.Website,
		FocusAreas: input.FocusAreas,
	}
	if upd.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		upd.Name = &trimmed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ngo, err := nc.Store.UpdateNGO(ctx, c.Param("id"), upd)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "ngo not found"})
		case store.ErrDuplicate:
			c.JSON(http.StatusConflict, gin.H{"error": "name already exists"})
		default:
			log.Println("Error updating ngo:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ngo"})
		}
		return
	}

	c.JSON(http.StatusOK, ngo)
}

// DeleteNGO removes an organization; its issue assignments cascade.
func (nc *NGOController) DeleteNGO(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := nc.Store.DeleteNGO(ctx, c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "ngo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ngo"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListIssueNgos returns the assignment rows for one issue.
func (nc *NGOController) ListIssueNgos(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assignments, err := nc.Store.AssignmentsForIssue(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get assignments"})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// AssignNgo links an NGO to an issue. Assigning the same pair twice is a
// no-op.
func (nc *NGOController) AssignNgo(c *gin.Context) {
	var input struct {
		NgoID string `json:"ngoId" binding:"required"`
		Role  string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ngoId is required"})
		return
	}
	role := input.Role
	if role == "" {
		role = "assigned"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := nc.Store.AssignNGO(ctx, c.Param("id"), input.NgoID, role); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue or ngo not found"})
			return
		}
		log.Println("Error assigning ngo:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign ngo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "ngo assigned"})
}

// UnassignNgo removes the link between an NGO and an issue.
func (nc *NGOController) UnassignNgo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := nc.Store.UnassignNGO(ctx, c.Param("id"), c.Param("ngoId")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unassign ngo"})
		return
	}

	c.Status(http.StatusNoContent)
}

package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sheharfix-be/middlewares"
	"sheharfix-be/models"
	"sheharfix-be/store"
	"sheharfix-be/uploads"
	authUtils "sheharfix-be/utils"
)

const avatarFolder = "avatars"

type AuthController struct {
	Store    store.Store
	Uploader uploads.Uploader
}

func NewAuthController(s store.Store, u uploads.Uploader) *AuthController {
	return &AuthController{Store: s, Uploader: u}
}

// Register handles user registration
func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,max=50"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	role := models.RoleCitizen
	if input.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	user := models.User{Username: input.Username, Role: role}
	if err := user.SetPassword(input.Password); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ac.Store.CreateUser(ctx, &user); err != nil {
		if err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login handles user login
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := ac.Store.UserByUsername(ctx, input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := authUtils.GenerateToken(user)
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Me returns the authenticated user's public projection
func (ac *AuthController) Me(c *gin.Context) {
	identity := middlewares.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := ac.Store.UserByID(ctx, identity.ID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UploadAvatar stores a new profile image and saves its URL on the user.
func (ac *AuthController) UploadAvatar(c *gin.Context) {
	identity := middlewares.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Media string `json:"media" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar image (media) required"})
		return
	}
	data, err := decodeMedia(input.Media)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar image (media) required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url, err := ac.Uploader.Put(ctx, data, avatarFolder)
	if err != nil {
		log.Println("Error uploading avatar:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar"})
		return
	}

	user, err := ac.Store.SetUserAvatar(ctx, identity.ID, url)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Println("Error saving avatar:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

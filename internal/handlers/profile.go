package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"smartlist/internal/auth"
	"smartlist/internal/models"
	"smartlist/internal/services"
	"smartlist/internal/storage"
)

type ProfileHandler struct {
	profiles  *services.ProfileService
	files     *storage.Store
	validator *validator.Validate
}

func NewProfileHandler(profiles *services.ProfileService, files *storage.Store) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		files:     files,
		validator: validator.New(),
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A photo reference must point at uploaded bytes.
	if req.PhotoRef != nil && !h.files.Exists(*req.PhotoRef) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown photo reference"})
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RequestUpload is step one of the upload handshake: it hands out a fresh
// reference and the URL to PUT the bytes to.
func (h *ProfileHandler) RequestUpload(c *gin.Context) {
	_, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ref, err := h.files.NewRef()
	if err != nil {
		respondServiceError(c, err, "Failed to issue upload reference")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ref":        ref,
		"upload_url": "/api/storage/upload/" + ref,
	})
}

// Upload is step two: the raw request body is stored under the reference.
func (h *ProfileHandler) Upload(c *gin.Context) {
	_, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ref := c.Param("ref")
	if err := h.files.Save(ref, c.Request.Body); err != nil {
		if errors.Is(err, storage.ErrInvalidRef) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload reference"})
			return
		}
		respondServiceError(c, err, "Failed to store upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref})
}

// GetFile streams stored bytes back to any authenticated user.
func (h *ProfileHandler) GetFile(c *gin.Context) {
	_, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ref := c.Param("ref")
	f, err := h.files.Open(ref)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", f, nil)
}

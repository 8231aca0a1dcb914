package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"smartlist/internal/auth"
	"smartlist/internal/models"
	"smartlist/internal/services"
)

type SharingHandler struct {
	sharing   *services.SharingService
	validator *validator.Validate
}

func NewSharingHandler(sharing *services.SharingService) *SharingHandler {
	return &SharingHandler{
		sharing:   sharing,
		validator: validator.New(),
	}
}

func (h *SharingHandler) ShareList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ShareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := h.sharing.ShareList(c.Request.Context(), userID, listID, req.Email, req.AccessLevel)
	if err != nil {
		respondServiceError(c, err, "Failed to share list")
		return
	}

	c.JSON(http.StatusCreated, share)
}

func (h *SharingHandler) GetShares(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	shares, err := h.sharing.ListShares(c.Request.Context(), userID, listID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch shares")
		return
	}
	if shares == nil {
		shares = []models.ListShare{}
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

func (h *SharingHandler) GetPendingInvites(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invites, err := h.sharing.PendingInvites(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch invites")
		return
	}
	if invites == nil {
		invites = []models.ListShare{}
	}

	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (h *SharingHandler) RespondToInvite(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.RespondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sharing.RespondToInvite(c.Request.Context(), userID, listID, req.Response); err != nil {
		respondServiceError(c, err, "Failed to respond to invite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite " + req.Response})
}

func (h *SharingHandler) RemoveShare(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.sharing.RemoveShare(c.Request.Context(), userID, listID, targetID); err != nil {
		respondServiceError(c, err, "Failed to remove share")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share removed"})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"smartlist/internal/auth"
	"smartlist/internal/models"
	"smartlist/internal/services"
)

type SuggestionHandler struct {
	suggestions *services.SuggestionService
	profiles    *services.ProfileService
	validator   *validator.Validate
}

func NewSuggestionHandler(suggestions *services.SuggestionService, profiles *services.ProfileService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions: suggestions,
		profiles:    profiles,
		validator:   validator.New(),
	}
}

// GetItemSuggestions serves autocomplete for the q query parameter.
func (h *SuggestionHandler) GetItemSuggestions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	suggestions, err := h.suggestions.ItemSuggestions(c.Request.Context(), userID, query)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []models.ItemSuggestion{}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GenerateSmartList builds a full list from a free-form prompt. Dietary
// preferences default to the caller's profile when the request omits them.
func (h *SuggestionHandler) GenerateSmartList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.GenerateSmartListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := req.DietaryPreferences
	if len(prefs) == 0 {
		if _, profile, err := h.profiles.Get(c.Request.Context(), userID); err == nil && profile != nil {
			prefs = profile.DietaryPreferences
		}
	}

	list, err := h.suggestions.GenerateSmartList(c.Request.Context(), req.Prompt, prefs)
	if err != nil {
		respondServiceError(c, err, "Failed to generate list")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *SuggestionHandler) CategorizeItem(c *gin.Context) {
	_, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CategorizeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := h.suggestions.Categorize(c.Request.Context(), req.Name)
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *SuggestionHandler) GetWeeklySuggestions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	suggestions := h.suggestions.WeeklySuggestions(c.Request.Context(), userID)
	if suggestions == nil {
		suggestions = []models.WeeklySuggestion{}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

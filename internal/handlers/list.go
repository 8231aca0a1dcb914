package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"smartlist/internal/auth"
	"smartlist/internal/models"
	"smartlist/internal/services"
)

type ListHandler struct {
	lists     *services.ListService
	validator *validator.Validate
}

func NewListHandler(lists *services.ListService) *ListHandler {
	return &ListHandler{
		lists:     lists,
		validator: validator.New(),
	}
}

func (h *ListHandler) GetLists(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	lists, err := h.lists.Lists(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch lists")
		return
	}
	if lists == nil {
		lists = []models.ShoppingList{}
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

func (h *ListHandler) CreateList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.CreateList(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create list")
		return
	}

	c.JSON(http.StatusCreated, list)
}

func (h *ListHandler) UpdateList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.ListPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.lists.UpdateList(c.Request.Context(), userID, listID, patch); err != nil {
		respondServiceError(c, err, "Failed to update list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List updated"})
}

func (h *ListHandler) DeleteList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.lists.DeleteList(c.Request.Context(), userID, listID); err != nil {
		respondServiceError(c, err, "Failed to delete list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}

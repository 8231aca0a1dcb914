package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"smartlist/internal/auth"
	"smartlist/internal/models"
	"smartlist/internal/services"
)

type ItemHandler struct {
	lists     *services.ListService
	validator *validator.Validate
}

func NewItemHandler(lists *services.ListService) *ItemHandler {
	return &ItemHandler{
		lists:     lists,
		validator: validator.New(),
	}
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.lists.Items(c.Request.Context(), userID, listID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch items")
		return
	}
	if items == nil {
		items = []models.ListItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ItemHandler) AddItem(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.lists.AddItem(c.Request.Context(), userID, listID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to add item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var patch models.ItemPatch
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

	if err := h.lists.UpdateItem(c.Request.Context(), userID, itemID, patch); err != nil {
		respondServiceError(c, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	if err := h.lists.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		respondServiceError(c, err, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *ItemHandler) ReorderItems(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lists.ReorderItems(c.Request.Context(), userID, listID, req.Items); err != nil {
		respondServiceError(c, err, "Failed to reorder items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Items reordered"})
}

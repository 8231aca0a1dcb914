package services

import (
	"context"

	"smartlist/internal/access"
	"smartlist/internal/models"
	"smartlist/internal/store"
)

const defaultCategory = "Outros"

// ListService owns list and item CRUD. Every mutation on shared data goes
// through the access evaluator; notification fan-out and frequency tracking
// run as dispatched side effects after the write.
type ListService struct {
	lists         store.ListStore
	items         store.ItemStore
	evaluator     *access.Evaluator
	dispatcher    Dispatcher
	notifications *NotificationService
	suggestions   *SuggestionService
	events        Broadcaster
}

func NewListService(
	lists store.ListStore,
	items store.ItemStore,
	evaluator *access.Evaluator,
	dispatcher Dispatcher,
	notifications *NotificationService,
	suggestions *SuggestionService,
	events Broadcaster,
) *ListService {
	return &ListService{
		lists:         lists,
		items:         items,
		evaluator:     evaluator,
		dispatcher:    dispatcher,
		notifications: notifications,
		suggestions:   suggestions,
		events:        events,
	}
}

// Lists returns the union of owned lists and accepted shared lists, each
// tagged with the caller's effective access level.
func (s *ListService) Lists(ctx context.Context, userID int) ([]models.ShoppingList, error) {
	owned, err := s.lists.ListsOwnedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range owned {
		owned[i].AccessLevel = string(access.LevelAdmin)
		owned[i].IsShared = false
	}

	shared, err := s.lists.ListsSharedWith(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append(owned, shared...), nil
}

func (s *ListService) CreateList(ctx context.Context, userID int, req models.CreateListRequest) (*models.ShoppingList, error) {
	list, err := s.lists.CreateList(ctx, &models.ShoppingList{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		OwnerID:     userID,
		IsTemplate:  false,
	})
	if err != nil {
		return nil, err
	}

	list.AccessLevel = string(access.LevelAdmin)
	return list, nil
}

func (s *ListService) UpdateList(ctx context.Context, userID, listID int, patch models.ListPatch) error {
	list, err := s.authorizedList(ctx, userID, listID, access.LevelEdit)
	if err != nil {
		return err
	}

	if err := s.lists.UpdateList(ctx, listID, patch); err != nil {
		return err
	}

	s.dispatcher.Dispatch("notify-list-updated", func(ctx context.Context) error {
		return s.notifications.NotifyListUpdated(ctx, listID, userID)
	})
	if s.events != nil {
		s.events.ListChanged(list.ID, changePayload(listID, userID))
	}
	return nil
}

// DeleteList is owner-only and cascades to the list's items and shares.
func (s *ListService) DeleteList(ctx context.Context, userID, listID int) error {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrNotFound
	}
	if list.OwnerID != userID {
		return ErrForbidden
	}

	if err := s.lists.DeleteList(ctx, listID); err != nil {
		return err
	}
	if s.events != nil {
		s.events.ListChanged(listID, changePayload(listID, userID))
	}
	return nil
}

// Items returns the list's items in position order. Callers without view
// access get an empty result, matching the query contract.
func (s *ListService) Items(ctx context.Context, userID, listID int) ([]models.ListItem, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}

	ok, err := s.evaluator.Authorize(ctx, userID, list, access.LevelView)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return s.items.ItemsForList(ctx, listID)
}

func (s *ListService) AddItem(ctx context.Context, userID, listID int, req models.CreateItemRequest) (*models.ListItem, error) {
	if _, err := s.authorizedList(ctx, userID, listID, access.LevelEdit); err != nil {
		return nil, err
	}

	position := 0
	if max, found, err := s.items.MaxPosition(ctx, listID); err != nil {
		return nil, err
	} else if found {
		position = max + 1
	}

	item, err := s.items.CreateItem(ctx, &models.ListItem{
		ListID:      listID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		Category:    req.Category,
		IsCompleted: false,
		AddedBy:     userID,
		Position:    position,
	})
	if err != nil {
		return nil, err
	}

	category := defaultCategory
	if req.Category != nil && *req.Category != "" {
		category = *req.Category
	}
	name := req.Name

	s.dispatcher.Dispatch("record-item-usage", func(ctx context.Context) error {
		return s.suggestions.RecordUsage(ctx, userID, name, category)
	})
	s.dispatcher.Dispatch("notify-item-added", func(ctx context.Context) error {
		return s.notifications.NotifyItemAdded(ctx, listID, name, userID)
	})
	if s.events != nil {
		s.events.ItemChanged(listID, item)
	}

	return item, nil
}

func (s *ListService) UpdateItem(ctx context.Context, userID, itemID int, patch models.ItemPatch) error {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	if _, err := s.authorizedList(ctx, userID, item.ListID, access.LevelEdit); err != nil {
		return err
	}

	if err := s.items.UpdateItem(ctx, itemID, patch); err != nil {
		return err
	}
	if s.events != nil {
		s.events.ItemChanged(item.ListID, changePayload(item.ListID, userID))
	}
	return nil
}

func (s *ListService) DeleteItem(ctx context.Context, userID, itemID int) error {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	if _, err := s.authorizedList(ctx, userID, item.ListID, access.LevelEdit); err != nil {
		return err
	}

	if err := s.items.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	if s.events != nil {
		s.events.ItemChanged(item.ListID, changePayload(item.ListID, userID))
	}
	return nil
}

// ReorderItems applies the supplied positions independently; there is no
// cross-call atomicity and the caller is responsible for a consistent order.
func (s *ListService) ReorderItems(ctx context.Context, userID, listID int, positions []models.ItemPosition) error {
	if _, err := s.authorizedList(ctx, userID, listID, access.LevelEdit); err != nil {
		return err
	}

	for _, p := range positions {
		if err := s.items.SetPosition(ctx, p.ItemID, p.Position); err != nil {
			return err
		}
	}
	if s.events != nil {
		s.events.ItemChanged(listID, changePayload(listID, userID))
	}
	return nil
}

func (s *ListService) authorizedList(ctx context.Context, userID, listID int, level access.Level) (*models.ShoppingList, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNotFound
	}

	ok, err := s.evaluator.Authorize(ctx, userID, list, level)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return list, nil
}

func changePayload(listID, actorID int) map[string]interface{} {
	return map[string]interface{}{"list_id": listID, "by": actorID}
}

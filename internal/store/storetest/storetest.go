// Package storetest provides an in-memory implementation of the store
// interfaces for exercising service logic without a database. Semantics
// mirror the PostgreSQL stores, including cascade deletion of a list's
// items and shares.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartlist/internal/models"
	"smartlist/internal/store"
)

type Store struct {
	mu     sync.Mutex
	nextID int

	Users         map[int]*models.User
	Profiles      map[int]*models.UserProfile // keyed by user ID
	Lists         map[int]*models.ShoppingList
	Items         map[int]*models.ListItem
	Shares        map[int]*models.ListShare
	Notifications map[int]*models.Notification
	Stats         map[int]*models.SuggestionStat
}

func New() *Store {
	return &Store{
		Users:         make(map[int]*models.User),
		Profiles:      make(map[int]*models.UserProfile),
		Lists:         make(map[int]*models.ShoppingList),
		Items:         make(map[int]*models.ListItem),
		Shares:        make(map[int]*models.ListShare),
		Notifications: make(map[int]*models.Notification),
		Stats:         make(map[int]*models.SuggestionStat),
	}
}

// Stores returns the bundle wired entirely to this in-memory store.
func (s *Store) Stores() *store.Stores {
	return &store.Stores{
		Users:         s,
		Profiles:      s,
		Lists:         s,
		Items:         s,
		Shares:        s,
		Notifications: s,
		Suggestions:   s,
	}
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

// --- UserStore ---

func (s *Store) CreateUser(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &models.User{
		ID:           s.id(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.Users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByID(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Users[id], nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByLogin(ctx context.Context, emailOrUsername string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Email == emailOrUsername || u.Username == emailOrUsername {
			return u, nil
		}
	}
	return nil, nil
}

func (s *Store) UserExists(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// --- ProfileStore ---

func (s *Store) GetProfile(_ context.Context, userID int) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Profiles[userID], nil
}

func (s *Store) UpsertProfile(_ context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.Profiles[profile.UserID]
	if existing == nil {
		p := *profile
		p.ID = s.id()
		s.Profiles[p.UserID] = &p
		return &p, nil
	}

	existing.Name = profile.Name
	existing.DietaryPreferences = profile.DietaryPreferences
	existing.Theme = profile.Theme
	if profile.PhotoRef != nil {
		existing.PhotoRef = profile.PhotoRef
	}
	return existing, nil
}

// --- ListStore ---

func (s *Store) CreateList(_ context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := *list
	l.ID = s.id()
	l.CreatedAt = time.Now()
	l.UpdatedAt = time.Now()
	s.Lists[l.ID] = &l
	return &l, nil
}

func (s *Store) GetList(_ context.Context, id int) (*models.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Lists[id], nil
}

func (s *Store) UpdateList(_ context.Context, id int, patch models.ListPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.Lists[id]
	if l == nil {
		return nil
	}
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Description != nil {
		l.Description = patch.Description
	}
	if patch.Category != nil {
		l.Category = patch.Category
	}
	if patch.Color != nil {
		l.Color = patch.Color
	}
	l.UpdatedAt = time.Now()
	return nil
}

func (s *Store) DeleteList(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Lists, id)
	for itemID, it := range s.Items {
		if it.ListID == id {
			delete(s.Items, itemID)
		}
	}
	for shareID, sh := range s.Shares {
		if sh.ListID == id {
			delete(s.Shares, shareID)
		}
	}
	return nil
}

func (s *Store) ListsOwnedBy(_ context.Context, userID int) ([]models.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lists []models.ShoppingList
	for _, l := range s.Lists {
		if l.OwnerID == userID {
			lists = append(lists, *l)
		}
	}
	sortListsByID(lists)
	return lists, nil
}

func (s *Store) ListsSharedWith(_ context.Context, userID int) ([]models.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lists []models.ShoppingList
	for _, sh := range s.Shares {
		if sh.SharedWith != userID || sh.InviteStatus != models.InviteStatusAccepted {
			continue
		}
		if l, ok := s.Lists[sh.ListID]; ok {
			copied := *l
			copied.AccessLevel = sh.AccessLevel
			copied.IsShared = true
			lists = append(lists, copied)
		}
	}
	sortListsByID(lists)
	return lists, nil
}

func sortListsByID(lists []models.ShoppingList) {
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
}

// --- ItemStore ---

func (s *Store) CreateItem(_ context.Context, item *models.ListItem) (*models.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := *item
	it.ID = s.id()
	it.CreatedAt = time.Now()
	s.Items[it.ID] = &it
	return &it, nil
}

func (s *Store) GetItem(_ context.Context, id int) (*models.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Items[id], nil
}

func (s *Store) ItemsForList(_ context.Context, listID int) ([]models.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.ListItem
	for _, it := range s.Items {
		if it.ListID == listID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *Store) MaxPosition(_ context.Context, listID int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max, found := 0, false
	for _, it := range s.Items {
		if it.ListID != listID {
			continue
		}
		if !found || it.Position > max {
			max = it.Position
		}
		found = true
	}
	return max, found, nil
}

func (s *Store) UpdateItem(_ context.Context, id int, patch models.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.Items[id]
	if it == nil {
		return nil
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Quantity != nil {
		it.Quantity = patch.Quantity
	}
	if patch.Notes != nil {
		it.Notes = patch.Notes
	}
	if patch.Category != nil {
		it.Category = patch.Category
	}
	if patch.IsCompleted != nil {
		it.IsCompleted = *patch.IsCompleted
	}
	return nil
}

func (s *Store) DeleteItem(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Items, id)
	return nil
}

func (s *Store) SetPosition(_ context.Context, itemID, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.Items[itemID]; it != nil {
		it.Position = position
	}
	return nil
}

// --- ShareStore ---

func (s *Store) FindShare(_ context.Context, listID, userID int) (*models.ListShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.Shares {
		if sh.ListID == listID && sh.SharedWith == userID {
			return sh, nil
		}
	}
	return nil, nil
}

func (s *Store) SharesForList(_ context.Context, listID int) ([]models.ListShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shares []models.ListShare
	for _, sh := range s.Shares {
		if sh.ListID != listID {
			continue
		}
		copied := *sh
		if u := s.Users[sh.SharedWith]; u != nil {
			copied.Username = u.Username
			copied.Email = u.Email
		}
		shares = append(shares, copied)
	}
	sortSharesByID(shares)
	return shares, nil
}

func (s *Store) AcceptedSharesForList(_ context.Context, listID int) ([]models.ListShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shares []models.ListShare
	for _, sh := range s.Shares {
		if sh.ListID == listID && sh.InviteStatus == models.InviteStatusAccepted {
			shares = append(shares, *sh)
		}
	}
	sortSharesByID(shares)
	return shares, nil
}

func (s *Store) PendingSharesForUser(_ context.Context, userID int) ([]models.ListShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shares []models.ListShare
	for _, sh := range s.Shares {
		if sh.SharedWith != userID || sh.InviteStatus != models.InviteStatusPending {
			continue
		}
		copied := *sh
		if l := s.Lists[sh.ListID]; l != nil {
			copied.ListTitle = l.Title
		}
		if u := s.Users[sh.SharedBy]; u != nil {
			copied.SharedByName = u.Username
			copied.SharedByEmail = u.Email
		}
		shares = append(shares, copied)
	}
	sortSharesByID(shares)
	return shares, nil
}

func sortSharesByID(shares []models.ListShare) {
	sort.Slice(shares, func(i, j int) bool { return shares[i].ID < shares[j].ID })
}

func (s *Store) CreateShare(_ context.Context, share *models.ListShare) (*models.ListShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh := *share
	sh.ID = s.id()
	sh.CreatedAt = time.Now()
	s.Shares[sh.ID] = &sh
	return &sh, nil
}

func (s *Store) ResetShare(_ context.Context, id int, accessLevel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh := s.Shares[id]; sh != nil {
		sh.AccessLevel = accessLevel
		sh.InviteStatus = models.InviteStatusPending
	}
	return nil
}

func (s *Store) SetShareStatus(_ context.Context, id int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh := s.Shares[id]; sh != nil {
		sh.InviteStatus = status
	}
	return nil
}

func (s *Store) DeleteShare(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Shares, id)
	return nil
}

// --- NotificationStore ---

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *n
	created.ID = s.id()
	created.IsRead = false
	created.CreatedAt = time.Now()
	s.Notifications[created.ID] = &created
	return &created, nil
}

func (s *Store) GetNotification(_ context.Context, id int) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Notifications[id], nil
}

func (s *Store) NotificationsForUser(_ context.Context, userID, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notifications []models.Notification
	for _, n := range s.Notifications {
		if n.UserID == userID {
			notifications = append(notifications, *n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (s *Store) UnreadCount(_ context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.Notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkRead(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.Notifications[id]; n != nil {
		n.IsRead = true
	}
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.Notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// --- SuggestionStore ---

func (s *Store) IncrementStat(_ context.Context, userID int, itemName, category string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.Stats {
		// Exact-string match, case-sensitive.
		if st.UserID == userID && st.ItemName == itemName {
			st.Frequency++
			st.Category = category
			st.LastSuggested = now
			return nil
		}
	}
	st := &models.SuggestionStat{
		ID:            s.id(),
		UserID:        userID,
		ItemName:      itemName,
		Category:      category,
		Frequency:     1,
		LastSuggested: now,
	}
	s.Stats[st.ID] = st
	return nil
}

func (s *Store) TopStats(_ context.Context, userID, limit int) ([]models.SuggestionStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats []models.SuggestionStat
	for _, st := range s.Stats {
		if st.UserID == userID && st.Frequency >= 1 {
			stats = append(stats, *st)
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Frequency != stats[j].Frequency {
			return stats[i].Frequency > stats[j].Frequency
		}
		return stats[i].LastSuggested.After(stats[j].LastSuggested)
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (s *Store) FindStat(_ context.Context, userID int, itemName string) (*models.SuggestionStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.Stats {
		if st.UserID == userID && st.ItemName == itemName {
			return st, nil
		}
	}
	return nil, nil
}

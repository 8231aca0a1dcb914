package services

import (
	"context"
	"errors"

	"smartlist/internal/access"
	"smartlist/internal/models"
	"smartlist/internal/store/storetest"
)

// syncDispatcher runs dispatched jobs inline so tests observe their effects
// immediately.
type syncDispatcher struct {
	errs []error
}

func (d *syncDispatcher) Dispatch(name string, fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		d.errs = append(d.errs, err)
	}
}

// fakeCompleter returns a canned response and counts calls.
type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string, _ float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var errUpstreamDown = errors.New("connection refused")

type env struct {
	store         *storetest.Store
	dispatcher    *syncDispatcher
	completer     *fakeCompleter
	lists         *ListService
	sharing       *SharingService
	notifications *NotificationService
	suggestions   *SuggestionService
	profiles      *ProfileService
}

func newEnv() *env {
	st := storetest.New()
	stores := st.Stores()
	evaluator := access.NewEvaluator(stores.Shares)
	dispatcher := &syncDispatcher{}
	completer := &fakeCompleter{}

	notifications := NewNotificationService(stores.Notifications, stores.Shares, stores.Lists, stores.Users, nil)
	suggestions := NewSuggestionService(stores.Suggestions, completer)
	lists := NewListService(stores.Lists, stores.Items, evaluator, dispatcher, notifications, suggestions, nil)
	sharing := NewSharingService(stores.Lists, stores.Shares, stores.Users, evaluator, dispatcher, notifications, nil)
	profiles := NewProfileService(stores.Users, stores.Profiles)

	return &env{
		store:         st,
		dispatcher:    dispatcher,
		completer:     completer,
		lists:         lists,
		sharing:       sharing,
		notifications: notifications,
		suggestions:   suggestions,
		profiles:      profiles,
	}
}

func (e *env) user(username, email string) *models.User {
	u, err := e.store.CreateUser(context.Background(), username, email, "x")
	if err != nil {
		panic(err)
	}
	return u
}

func (e *env) list(ownerID int, title string) *models.ShoppingList {
	l, err := e.lists.CreateList(context.Background(), ownerID, models.CreateListRequest{Title: title})
	if err != nil {
		panic(err)
	}
	return l
}

// acceptedShare seeds an accepted share directly in the store, so tests
// start from a clean slate without the invite notification the sharing
// service would leave behind.
func (e *env) acceptedShare(listID, ownerID, targetID int, level string) {
	ctx := context.Background()
	target, err := e.store.GetUserByID(ctx, targetID)
	if err != nil || target == nil {
		panic("missing target user")
	}
	if _, err := e.store.CreateShare(ctx, &models.ListShare{
		ListID:       listID,
		SharedWith:   targetID,
		SharedBy:     ownerID,
		AccessLevel:  level,
		InviteStatus: models.InviteStatusAccepted,
	}); err != nil {
		panic(err)
	}
}

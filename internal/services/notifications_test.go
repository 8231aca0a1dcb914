package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlist/internal/models"
)

func TestItemAddedFansOutToCollaboratorsAndOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	editor := e.user("bob", "bob@example.com")
	viewer := e.user("carol", "carol@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, editor.ID, "edit")
	e.acceptedShare(list.ID, owner.ID, viewer.ID, "view")

	// Editor adds milk; everyone but the editor hears about it.
	_, err := e.lists.AddItem(ctx, editor.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)

	ownerNotifs, _, err := e.notifications.ForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerNotifs, 1)
	assert.Equal(t, models.NotificationItemAdded, ownerNotifs[0].Type)
	assert.Equal(t, `bob@example.com adicionou "Leite" à lista "Mercado"`, ownerNotifs[0].Message)
	require.NotNil(t, ownerNotifs[0].RelatedListID)
	assert.Equal(t, list.ID, *ownerNotifs[0].RelatedListID)
	require.NotNil(t, ownerNotifs[0].FromUserID)
	assert.Equal(t, editor.ID, *ownerNotifs[0].FromUserID)

	viewerNotifs, _, err := e.notifications.ForUser(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Len(t, viewerNotifs, 1)

	editorNotifs, _, err := e.notifications.ForUser(ctx, editor.ID)
	require.NoError(t, err)
	assert.Empty(t, editorNotifs)

	// The add also counts toward the actor's own frequency stats.
	stat, err := e.store.FindStat(ctx, editor.ID, "Leite")
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, 1, stat.Frequency)

	ownerStat, err := e.store.FindStat(ctx, owner.ID, "Leite")
	require.NoError(t, err)
	assert.Nil(t, ownerStat)
}

func TestOwnerActionSkipsOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	editor := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, editor.ID, "edit")

	title := "Feira"
	require.NoError(t, e.lists.UpdateList(ctx, owner.ID, list.ID, models.ListPatch{Title: &title}))

	ownerNotifs, _, err := e.notifications.ForUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, ownerNotifs)

	editorNotifs, _, err := e.notifications.ForUser(ctx, editor.ID)
	require.NoError(t, err)
	require.Len(t, editorNotifs, 1)
	assert.Equal(t, models.NotificationListUpdated, editorNotifs[0].Type)
	assert.Equal(t, `alice@example.com atualizou a lista "Feira"`, editorNotifs[0].Message)
}

func TestPendingInviteesGetNoActivityNotifications(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "edit")
	require.NoError(t, err)

	_, err = e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)

	notifs, _, err := e.notifications.ForUser(ctx, invitee.ID)
	require.NoError(t, err)
	// Only the share invite itself, no item activity.
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationListShared, notifs[0].Type)
}

func TestMarkReadRecipientOnly(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	editor := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, editor.ID, "edit")
	_, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)

	notifs, unread, err := e.notifications.ForUser(ctx, editor.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, 1, unread)

	err = e.notifications.MarkRead(ctx, owner.ID, notifs[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, e.notifications.MarkRead(ctx, editor.ID, notifs[0].ID))
	_, unread, err = e.notifications.ForUser(ctx, editor.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestMarkAllRead(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	editor := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, editor.ID, "edit")
	for _, name := range []string{"Leite", "Pão", "Café"} {
		_, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: name})
		require.NoError(t, err)
	}

	_, unread, err := e.notifications.ForUser(ctx, editor.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	require.NoError(t, e.notifications.MarkAllRead(ctx, editor.ID))
	_, unread, err = e.notifications.ForUser(ctx, editor.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

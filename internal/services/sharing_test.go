package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlist/internal/models"
)

func TestShareListCreatesPendingInvite(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	share, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "edit")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, share.InviteStatus)
	assert.Equal(t, "edit", share.AccessLevel)
	assert.Equal(t, invitee.ID, share.SharedWith)

	invites, err := e.sharing.PendingInvites(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "Mercado", invites[0].ListTitle)
	assert.Equal(t, "alice", invites[0].SharedByName)
}

func TestShareListUnknownEmail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.sharing.ShareList(ctx, owner.ID, list.ID, "nobody@example.com", "view")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShareListRequiresAdmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	editor := e.user("bob", "bob@example.com")
	other := e.user("carol", "carol@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, editor.ID, "edit")

	_, err := e.sharing.ShareList(ctx, editor.ID, list.ID, other.Email, "view")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReShareOverwritesLevelAndResetsStatus(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, invitee.ID, "view")

	share, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", share.AccessLevel)
	assert.Equal(t, models.InviteStatusPending, share.InviteStatus)

	// One row per (list, target), so access is suspended until re-acceptance.
	assert.Len(t, e.store.Shares, 1)
	visible, err := e.lists.Lists(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestDeclineDeletesShare(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "edit")
	require.NoError(t, err)

	require.NoError(t, e.sharing.RespondToInvite(ctx, invitee.ID, list.ID, models.InviteStatusDeclined))
	assert.Empty(t, e.store.Shares)

	// A fresh invite works after a decline.
	share, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "edit")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, share.InviteStatus)
}

func TestAcceptKeepsGrantedLevel(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "edit")
	require.NoError(t, err)
	require.NoError(t, e.sharing.RespondToInvite(ctx, invitee.ID, list.ID, models.InviteStatusAccepted))

	lists, err := e.lists.Lists(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "edit", lists[0].AccessLevel)
	assert.True(t, lists[0].IsShared)
}

func TestRespondWithoutPendingInvite(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	err := e.sharing.RespondToInvite(ctx, invitee.ID, list.ID, models.InviteStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)

	// An already accepted invite is no longer pending.
	e.acceptedShare(list.ID, owner.ID, invitee.ID, "view")
	err = e.sharing.RespondToInvite(ctx, invitee.ID, list.ID, models.InviteStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveShareIsIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, invitee.ID, "edit")

	require.NoError(t, e.sharing.RemoveShare(ctx, owner.ID, list.ID, invitee.ID))
	assert.Empty(t, e.store.Shares)

	require.NoError(t, e.sharing.RemoveShare(ctx, owner.ID, list.ID, invitee.ID))
}

func TestListSharesRequiresAdmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	viewer := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, viewer.ID, "view")

	_, err := e.sharing.ListShares(ctx, viewer.ID, list.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	shares, err := e.sharing.ListShares(ctx, owner.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "bob", shares[0].Username)
}

func TestShareListNotifiesTarget(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "view")
	require.NoError(t, err)

	notifications, unread, err := e.notifications.ForUser(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, 1, unread)
	assert.Equal(t, models.NotificationListShared, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "alice@example.com")
	assert.Contains(t, notifications[0].Message, "Mercado")
}

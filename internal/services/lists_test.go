package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlist/internal/models"
)

func TestAddItemAssignsSequentialPositions(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	list := e.list(owner.ID, "Mercado")

	for _, name := range []string{"Leite", "Pão", "Café"} {
		_, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: name})
		require.NoError(t, err)
	}

	items, err := e.lists.Items(ctx, owner.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i, item.Position)
	}
}

func TestAddItemAfterDeleteContinuesFromMax(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	list := e.list(owner.ID, "Mercado")

	first, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)
	second, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Pão"})
	require.NoError(t, err)

	require.NoError(t, e.lists.DeleteItem(ctx, owner.ID, first.ID))

	third, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Café"})
	require.NoError(t, err)
	assert.Equal(t, second.Position+1, third.Position)
}

func TestUpdateItemPartialPatch(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	list := e.list(owner.ID, "Mercado")

	qty := "2L"
	item, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite", Quantity: &qty})
	require.NoError(t, err)

	completed := true
	require.NoError(t, e.lists.UpdateItem(ctx, owner.ID, item.ID, models.ItemPatch{IsCompleted: &completed}))

	items, err := e.lists.Items(ctx, owner.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsCompleted)
	assert.Equal(t, "Leite", items[0].Name)
	require.NotNil(t, items[0].Quantity)
	assert.Equal(t, "2L", *items[0].Quantity)
}

func TestDeleteListCascades(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	viewer := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)
	e.acceptedShare(list.ID, owner.ID, viewer.ID, "view")

	require.NoError(t, e.lists.DeleteList(ctx, owner.ID, list.ID))

	assert.Empty(t, e.store.Items)
	assert.Empty(t, e.store.Shares)

	visible, err := e.lists.Lists(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestDeleteListOwnerOnly(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	admin := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, admin.ID, "admin")

	err := e.lists.DeleteList(ctx, admin.ID, list.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestViewerCannotEdit(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	viewer := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	e.acceptedShare(list.ID, owner.ID, viewer.ID, "view")

	_, err := e.lists.AddItem(ctx, viewer.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	assert.ErrorIs(t, err, ErrForbidden)

	title := "Feira"
	err = e.lists.UpdateList(ctx, viewer.ID, list.ID, models.ListPatch{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	items, err := e.lists.Items(ctx, viewer.ID, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPendingShareGrantsNothing(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	invitee := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.sharing.ShareList(ctx, owner.ID, list.ID, invitee.Email, "edit")
	require.NoError(t, err)

	_, err = e.lists.AddItem(ctx, invitee.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	assert.ErrorIs(t, err, ErrForbidden)

	visible, err := e.lists.Lists(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestItemsWithoutAccessIsEmptyNotError(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	stranger := e.user("bob", "bob@example.com")
	list := e.list(owner.ID, "Mercado")

	_, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)

	items, err := e.lists.Items(ctx, stranger.ID, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListsTagsAccessLevels(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	editor := e.user("bob", "bob@example.com")

	owned := e.list(owner.ID, "Minha lista")
	theirs := e.list(editor.ID, "Lista do Bob")
	e.acceptedShare(theirs.ID, editor.ID, owner.ID, "edit")

	lists, err := e.lists.Lists(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)

	byID := map[int]models.ShoppingList{}
	for _, l := range lists {
		byID[l.ID] = l
	}
	assert.Equal(t, "admin", byID[owned.ID].AccessLevel)
	assert.False(t, byID[owned.ID].IsShared)
	assert.Equal(t, "edit", byID[theirs.ID].AccessLevel)
	assert.True(t, byID[theirs.ID].IsShared)
}

func TestReorderItems(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	list := e.list(owner.ID, "Mercado")

	a, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite"})
	require.NoError(t, err)
	b, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Pão"})
	require.NoError(t, err)

	err = e.lists.ReorderItems(ctx, owner.ID, list.ID, []models.ItemPosition{
		{ItemID: a.ID, Position: 1},
		{ItemID: b.ID, Position: 0},
	})
	require.NoError(t, err)

	items, err := e.lists.Items(ctx, owner.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pão", items[0].Name)
	assert.Equal(t, "Leite", items[1].Name)
}

func TestAddItemRecordsUsage(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.user("alice", "alice@example.com")
	list := e.list(owner.ID, "Mercado")

	category := "Laticínios"
	_, err := e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite", Category: &category})
	require.NoError(t, err)
	_, err = e.lists.AddItem(ctx, owner.ID, list.ID, models.CreateItemRequest{Name: "Leite", Category: &category})
	require.NoError(t, err)

	stat, err := e.store.FindStat(ctx, owner.ID, "Leite")
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, 2, stat.Frequency)
	assert.Equal(t, "Laticínios", stat.Category)
}

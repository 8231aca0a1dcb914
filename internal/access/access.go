package access

import (
	"context"

	"smartlist/internal/models"
)

// Level is a hierarchical access level on a shopping list.
type Level string

const (
	LevelView  Level = "view"
	LevelEdit  Level = "edit"
	LevelAdmin Level = "admin"
)

var rank = map[Level]int{
	LevelView:  1,
	LevelEdit:  2,
	LevelAdmin: 3,
}

func (l Level) Valid() bool {
	_, ok := rank[l]
	return ok
}

// Grants reports whether a held level satisfies a required one.
// admin grants everything, edit grants edit and view, view grants view.
func (l Level) Grants(required Level) bool {
	return rank[l] >= rank[required] && rank[l] > 0 && rank[required] > 0
}

// ShareFinder looks up the share row for a (list, user) pair.
// A nil share with a nil error means no row exists.
type ShareFinder interface {
	FindShare(ctx context.Context, listID, userID int) (*models.ListShare, error)
}

// Evaluator decides whether a user may act on a list at a required level.
// It is the single source of truth for permission semantics: ownership wins,
// otherwise an accepted share with a sufficient level is needed. The check is
// recomputed on every call.
type Evaluator struct {
	shares ShareFinder
}

func NewEvaluator(shares ShareFinder) *Evaluator {
	return &Evaluator{shares: shares}
}

func (e *Evaluator) Authorize(ctx context.Context, userID int, list *models.ShoppingList, required Level) (bool, error) {
	if list == nil {
		return false, nil
	}
	if list.OwnerID == userID {
		return true, nil
	}

	share, err := e.shares.FindShare(ctx, list.ID, userID)
	if err != nil {
		return false, err
	}
	if share == nil || share.InviteStatus != models.InviteStatusAccepted {
		return false, nil
	}

	return Level(share.AccessLevel).Grants(required), nil
}

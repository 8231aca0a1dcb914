package services

import (
	"context"

	"smartlist/internal/access"
	"smartlist/internal/models"
	"smartlist/internal/store"
)

// SharingService runs the invite workflow: admins share lists by email,
// invitees accept or decline, admins revoke. One share row exists per
// (list, target) pair; re-sharing overwrites it and resets the status to
// pending, so level changes require re-acceptance.
type SharingService struct {
	lists         store.ListStore
	shares        store.ShareStore
	users         store.UserStore
	evaluator     *access.Evaluator
	dispatcher    Dispatcher
	notifications *NotificationService
	events        Broadcaster
}

func NewSharingService(
	lists store.ListStore,
	shares store.ShareStore,
	users store.UserStore,
	evaluator *access.Evaluator,
	dispatcher Dispatcher,
	notifications *NotificationService,
	events Broadcaster,
) *SharingService {
	return &SharingService{
		lists:         lists,
		shares:        shares,
		users:         users,
		evaluator:     evaluator,
		dispatcher:    dispatcher,
		notifications: notifications,
		events:        events,
	}
}

func (s *SharingService) ShareList(ctx context.Context, userID, listID int, email, level string) (*models.ListShare, error) {
	list, err := s.adminList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	existing, err := s.shares.FindShare(ctx, listID, target.ID)
	if err != nil {
		return nil, err
	}

	var share *models.ListShare
	if existing != nil {
		if err := s.shares.ResetShare(ctx, existing.ID, level); err != nil {
			return nil, err
		}
		existing.AccessLevel = level
		existing.InviteStatus = models.InviteStatusPending
		share = existing
	} else {
		share, err = s.shares.CreateShare(ctx, &models.ListShare{
			ListID:       listID,
			SharedWith:   target.ID,
			SharedBy:     userID,
			AccessLevel:  level,
			InviteStatus: models.InviteStatusPending,
		})
		if err != nil {
			return nil, err
		}
	}

	share.Username = target.Username
	share.Email = target.Email
	share.ListTitle = list.Title

	targetID := target.ID
	s.dispatcher.Dispatch("notify-list-shared", func(ctx context.Context) error {
		return s.notifications.NotifyListShared(ctx, listID, targetID, userID)
	})
	if s.events != nil {
		s.events.ShareChanged(targetID, share)
	}

	return share, nil
}

// ListShares returns all share rows with target user info; admin only.
func (s *SharingService) ListShares(ctx context.Context, userID, listID int) ([]models.ListShare, error) {
	if _, err := s.adminList(ctx, userID, listID); err != nil {
		return nil, err
	}
	return s.shares.SharesForList(ctx, listID)
}

// PendingInvites returns the caller's pending shares joined with the list
// and inviter info.
func (s *SharingService) PendingInvites(ctx context.Context, userID int) ([]models.ListShare, error) {
	return s.shares.PendingSharesForUser(ctx, userID)
}

// RespondToInvite accepts or declines the caller's pending invite for the
// list. Declining removes the row entirely; accepting flips the status in
// place, keeping the granted level.
func (s *SharingService) RespondToInvite(ctx context.Context, userID, listID int, response string) error {
	share, err := s.shares.FindShare(ctx, listID, userID)
	if err != nil {
		return err
	}
	if share == nil || share.InviteStatus != models.InviteStatusPending {
		return ErrNotFound
	}

	if response == models.InviteStatusDeclined {
		err = s.shares.DeleteShare(ctx, share.ID)
	} else {
		err = s.shares.SetShareStatus(ctx, share.ID, models.InviteStatusAccepted)
	}
	if err != nil {
		return err
	}

	if s.events != nil {
		if list, lerr := s.lists.GetList(ctx, listID); lerr == nil && list != nil {
			s.events.ShareChanged(list.OwnerID, changePayload(listID, userID))
		}
	}
	return nil
}

// RemoveShare revokes the target's share; a missing row is a no-op.
func (s *SharingService) RemoveShare(ctx context.Context, userID, listID, targetUserID int) error {
	if _, err := s.adminList(ctx, userID, listID); err != nil {
		return err
	}

	share, err := s.shares.FindShare(ctx, listID, targetUserID)
	if err != nil {
		return err
	}
	if share == nil {
		return nil
	}

	if err := s.shares.DeleteShare(ctx, share.ID); err != nil {
		return err
	}
	if s.events != nil {
		s.events.ShareChanged(targetUserID, changePayload(listID, userID))
	}
	return nil
}

func (s *SharingService) adminList(ctx context.Context, userID, listID int) (*models.ShoppingList, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNotFound
	}

	ok, err := s.evaluator.Authorize(ctx, userID, list, access.LevelAdmin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return list, nil
}

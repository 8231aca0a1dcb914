package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"smartlist/internal/models"
	"smartlist/internal/store"
)

const notificationPageSize = 50

// NotificationService fans out activity notifications to a list's accepted
// collaborators and owner, and serves the recipient-facing queries. Each
// triggering event yields exactly one message per eligible recipient; the
// actor never notifies themselves. Inserts are independent per recipient, so
// a crash mid fan-out leaves a partial delivery (accepted, best-effort).
type NotificationService struct {
	notifications store.NotificationStore
	shares        store.ShareStore
	lists         store.ListStore
	users         store.UserStore
	events        Broadcaster
}

func NewNotificationService(
	notifications store.NotificationStore,
	shares store.ShareStore,
	lists store.ListStore,
	users store.UserStore,
	events Broadcaster,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		shares:        shares,
		lists:         lists,
		users:         users,
		events:        events,
	}
}

func (s *NotificationService) NotifyListUpdated(ctx context.Context, listID, actorID int) error {
	list, actor, err := s.listAndActor(ctx, listID, actorID)
	if err != nil || list == nil {
		return err
	}

	title := "Lista atualizada"
	message := fmt.Sprintf("%s atualizou a lista \"%s\"", actor.Email, list.Title)
	return s.fanOut(ctx, list, actorID, models.NotificationListUpdated, title, message)
}

func (s *NotificationService) NotifyItemAdded(ctx context.Context, listID int, itemName string, actorID int) error {
	list, actor, err := s.listAndActor(ctx, listID, actorID)
	if err != nil || list == nil {
		return err
	}

	title := "Item adicionado"
	message := fmt.Sprintf("%s adicionou \"%s\" à lista \"%s\"", actor.Email, itemName, list.Title)
	return s.fanOut(ctx, list, actorID, models.NotificationItemAdded, title, message)
}

// NotifyListShared addresses the invited user directly.
func (s *NotificationService) NotifyListShared(ctx context.Context, listID, targetID, actorID int) error {
	list, actor, err := s.listAndActor(ctx, listID, actorID)
	if err != nil || list == nil {
		return err
	}

	n := &models.Notification{
		UserID:        targetID,
		Type:          models.NotificationListShared,
		Title:         "Lista compartilhada",
		Message:       fmt.Sprintf("%s compartilhou a lista \"%s\" com você", actor.Email, list.Title),
		RelatedListID: &list.ID,
		FromUserID:    &actorID,
	}
	created, err := s.notifications.CreateNotification(ctx, n)
	if err != nil {
		return err
	}
	if s.events != nil {
		s.events.NotificationPushed(targetID, created)
	}
	return nil
}

// fanOut inserts one unread notification per accepted collaborator other
// than the actor, plus the owner when the owner is not the actor.
func (s *NotificationService) fanOut(ctx context.Context, list *models.ShoppingList, actorID int, notifType, title, message string) error {
	shares, err := s.shares.AcceptedSharesForList(ctx, list.ID)
	if err != nil {
		return err
	}

	recipients := make([]int, 0, len(shares)+1)
	for _, share := range shares {
		if share.SharedWith != actorID {
			recipients = append(recipients, share.SharedWith)
		}
	}
	if list.OwnerID != actorID {
		recipients = append(recipients, list.OwnerID)
	}

	for _, recipient := range recipients {
		n := &models.Notification{
			UserID:        recipient,
			Type:          notifType,
			Title:         title,
			Message:       message,
			RelatedListID: &list.ID,
			FromUserID:    &actorID,
		}
		created, err := s.notifications.CreateNotification(ctx, n)
		if err != nil {
			// Keep going; recipients already written stay delivered.
			logrus.WithError(err).WithFields(logrus.Fields{
				"list_id": list.ID,
				"user_id": recipient,
			}).Error("Failed to insert notification")
			continue
		}
		if s.events != nil {
			s.events.NotificationPushed(recipient, created)
		}
	}
	return nil
}

func (s *NotificationService) listAndActor(ctx context.Context, listID, actorID int) (*models.ShoppingList, *models.User, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, nil
	}
	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, nil
	}
	return list, actor, nil
}

// ForUser returns the newest notifications plus the unread count.
func (s *NotificationService) ForUser(ctx context.Context, userID int) ([]models.Notification, int, error) {
	notifications, err := s.notifications.NotificationsForUser(ctx, userID, notificationPageSize)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead flips the read flag; only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int) error {
	n, err := s.notifications.GetNotification(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != userID {
		return ErrNotFound
	}
	return s.notifications.MarkRead(ctx, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

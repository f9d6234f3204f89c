package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/infrastructure"
	"lovepages-admin/internal/repository"
)

// NotificationInput carries the common composer fields of every send path.
type NotificationInput struct {
	Title      string
	Message    string
	Type       string
	Icon       string
	ActionURL  string
	ActionText string
	ExpiresAt  *time.Time
}

// notificationStore is the slice of the notification repository the service
// consumes.
type notificationStore interface {
	Insert(ctx context.Context, n *entities.Notification) error
	InsertBatch(ctx context.Context, ns []*entities.Notification) error
	CountAudience(ctx context.Context, audience string) (int, error)
}

type NotificationService struct {
	repo     notificationStore
	userRepo *repository.UserRepository
	alerter  *infrastructure.Alerter
}

func NewNotificationService(repo *repository.NotificationRepository, users *repository.UserRepository, alerter *infrastructure.Alerter) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: users,
		alerter:  alerter,
	}
}

func (s *NotificationService) build(in NotificationInput) *entities.Notification {
	n := &entities.Notification{
		Title:      in.Title,
		Message:    in.Message,
		Type:       in.Type,
		Icon:       in.Icon,
		ActionURL:  in.ActionURL,
		ActionText: in.ActionText,
		ExpiresAt:  in.ExpiresAt,
	}
	if n.Type == "" {
		n.Type = "info"
	}
	return n
}

// SendToUser targets one account. The account must exist.
func (s *NotificationService) SendToUser(ctx context.Context, userID int, in NotificationInput) (*entities.Notification, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	n := s.build(in)
	n.UserID = &userID
	n.Audience = entities.AudienceIndividual
	n.RecipientCount = 1
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// Broadcast targets a whole audience tier (all, pro, free). The recipient
// count is resolved at send time; delivery fan-out belongs to the consumer
// backend, this side records the broadcast.
func (s *NotificationService) Broadcast(ctx context.Context, audience string, in NotificationInput) (*entities.Notification, error) {
	count, err := s.repo.CountAudience(ctx, audience)
	if err != nil {
		return nil, err
	}

	n := s.build(in)
	n.Audience = audience
	n.RecipientCount = count
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("insert broadcast: %w", err)
	}

	s.alerter.Notify("Broadcast %q sent to %s (%d recipients)", n.Title, audience, count)
	return n, nil
}

// SendBulk targets an explicit user list. The batch is inserted in one
// transaction, so a failure persists nothing.
func (s *NotificationService) SendBulk(ctx context.Context, userIDs []int, in NotificationInput) (int, error) {
	if len(userIDs) == 0 {
		return 0, errors.New("userIds is empty")
	}

	batch := make([]*entities.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		n := s.build(in)
		uid := id
		n.UserID = &uid
		n.Audience = entities.AudienceIndividual
		n.RecipientCount = 1
		batch = append(batch, n)
	}
	if err := s.repo.InsertBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("bulk send: %w", err)
	}
	return len(batch), nil
}

// NotifyContactReply sends the in-app reply notification for a contact
// message when the contact is linked to an account. Returns whether a
// notification was actually sent.
func (s *NotificationService) NotifyContactReply(ctx context.Context, contact *entities.Contact) (bool, error) {
	if contact.UserID == nil {
		return false, nil
	}

	_, err := s.SendToUser(ctx, *contact.UserID, NotificationInput{
		Title:   "Respuesta a tu mensaje",
		Message: contact.ReplyText,
		Type:    "info",
		Icon:    "mail",
	})
	if errors.Is(err, repository.ErrNotFound) {
		// Linked account was deleted since the contact came in.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.alerter.Notify("Contact #%d (%s) replied to", contact.ID, contact.Email)
	return true, nil
}

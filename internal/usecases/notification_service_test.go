package usecases

import (
	"context"
	"errors"
	"testing"

	"lovepages-admin/internal/entities"
)

type stubNotificationStore struct {
	inserts  int
	batches  [][]*entities.Notification
	batchErr error
}

func (s *stubNotificationStore) Insert(ctx context.Context, n *entities.Notification) error {
	s.inserts++
	return nil
}

func (s *stubNotificationStore) InsertBatch(ctx context.Context, ns []*entities.Notification) error {
	if s.batchErr != nil {
		return s.batchErr
	}
	s.batches = append(s.batches, ns)
	return nil
}

func (s *stubNotificationStore) CountAudience(ctx context.Context, audience string) (int, error) {
	return 0, nil
}

func TestSendBulkUsesOneBatch(t *testing.T) {
	store := &stubNotificationStore{}
	svc := &NotificationService{repo: store}

	sent, err := svc.SendBulk(context.Background(), []int{1, 2, 3}, NotificationInput{
		Title: "Hola", Message: "Mensaje",
	})
	if err != nil {
		t.Fatalf("SendBulk: %v", err)
	}
	if sent != 3 {
		t.Errorf("sent = %d, want 3", sent)
	}
	if len(store.batches) != 1 || len(store.batches[0]) != 3 {
		t.Fatalf("batches = %v, want one batch of 3", store.batches)
	}
	if store.inserts != 0 {
		t.Errorf("per-item inserts = %d, want 0", store.inserts)
	}
	for i, n := range store.batches[0] {
		if n.UserID == nil || *n.UserID != i+1 {
			t.Errorf("batch[%d].UserID = %v, want %d", i, n.UserID, i+1)
		}
		if n.Audience != entities.AudienceIndividual || n.RecipientCount != 1 {
			t.Errorf("batch[%d] = %+v", i, n)
		}
	}
}

// A failed batch must report zero sent; nothing was persisted piecemeal.
func TestSendBulkFailureSendsNothing(t *testing.T) {
	store := &stubNotificationStore{batchErr: errors.New("insert failed")}
	svc := &NotificationService{repo: store}

	sent, err := svc.SendBulk(context.Background(), []int{1, 2}, NotificationInput{
		Title: "Hola", Message: "Mensaje",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0", sent)
	}
	if store.inserts != 0 {
		t.Errorf("per-item inserts = %d, want 0", store.inserts)
	}
}

func TestSendBulkEmptyListRejected(t *testing.T) {
	svc := &NotificationService{repo: &stubNotificationStore{}}
	if _, err := svc.SendBulk(context.Background(), nil, NotificationInput{Title: "x"}); err == nil {
		t.Fatal("expected an error for an empty user list")
	}
}

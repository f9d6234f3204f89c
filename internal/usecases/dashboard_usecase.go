package usecases

import (
	"context"
	"fmt"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/repository"
)

type DashboardUsecase struct {
	userRepo    *repository.UserRepository
	pageRepo    *repository.PageRepository
	contactRepo *repository.ContactRepository
}

func NewDashboardUsecase(users *repository.UserRepository, pages *repository.PageRepository, contacts *repository.ContactRepository) *DashboardUsecase {
	return &DashboardUsecase{
		userRepo:    users,
		pageRepo:    pages,
		contactRepo: contacts,
	}
}

// Stats aggregates the landing-page counters.
func (uc *DashboardUsecase) Stats(ctx context.Context) (*entities.DashboardStats, error) {
	var s entities.DashboardStats
	var err error

	s.TotalUsers, s.ProUsers, s.NewUsersLast7Days, err = uc.userRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	s.TotalPages, s.ActivePages, s.NewPagesLast7Days, err = uc.pageRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("page stats: %w", err)
	}
	s.TotalContacts, s.PendingContacts, err = uc.contactRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	return &s, nil
}

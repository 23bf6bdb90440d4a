package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wanderlog/backend/internal/model"
)

type fakeTourStore struct {
	tours map[string]*model.Tour
}

func newFakeTourStore() *fakeTourStore {
	return &fakeTourStore{tours: map[string]*model.Tour{}}
}

func (f *fakeTourStore) InsertTour(ctx context.Context, tour *model.Tour) (*model.Tour, error) {
	stored := *tour
	f.tours[tour.ID] = &stored
	return &stored, nil
}

func (f *fakeTourStore) GetTourByID(ctx context.Context, tourID string) (*model.Tour, error) {
	if tour, ok := f.tours[tourID]; ok {
		copied := *tour
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTourStore) ListToursByOwner(ctx context.Context, ownerID int64, isDraft *bool, limit, offset int) ([]model.Tour, error) {
	var list []model.Tour
	for _, tour := range f.tours {
		if tour.OwnerID != ownerID {
			continue
		}
		if isDraft != nil && tour.IsDraft != *isDraft {
			continue
		}
		list = append(list, *tour)
	}
	if list == nil {
		list = []model.Tour{}
	}
	return list, nil
}

func (f *fakeTourStore) CountToursByOwner(ctx context.Context, ownerID int64, isDraft *bool) (int, error) {
	list, _ := f.ListToursByOwner(ctx, ownerID, isDraft, 0, 0)
	return len(list), nil
}

func (f *fakeTourStore) UpdateTour(ctx context.Context, tour *model.Tour) error {
	if _, ok := f.tours[tour.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *tour
	f.tours[tour.ID] = &stored
	return nil
}

func (f *fakeTourStore) DeleteTour(ctx context.Context, tourID string) error {
	delete(f.tours, tourID)
	return nil
}

func seedTour(store *fakeTourStore, ownerID int64, isPublic, isDraft bool) *model.Tour {
	tour := &model.Tour{
		ID:        "tour-1",
		OwnerID:   ownerID,
		Title:     "Chaos in Cambodia",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:    model.TourStatusPlanned,
		IsPublic:  isPublic,
		IsDraft:   isDraft,
	}
	store.tours[tour.ID] = tour
	return tour
}

func TestCreateTourValidation(t *testing.T) {
	svc := NewTourService(newFakeTourStore(), &fakeMedia{})
	principal := &model.AuthUser{ID: 1}

	_, err := svc.CreateTour(context.Background(), principal, CreateTourParams{Title: "No start date"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.CreateTour(context.Background(), principal, CreateTourParams{StartDate: time.Now()})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateTourDefaults(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, &fakeMedia{})

	tour, err := svc.CreateTour(context.Background(), &model.AuthUser{ID: 7}, CreateTourParams{
		Title:     "Iceland loop",
		StartDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}
	if tour.OwnerID != 7 {
		t.Fatalf("owner not set, got %d", tour.OwnerID)
	}
	if tour.Status != model.TourStatusPlanned {
		t.Fatalf("expected Planned status, got %q", tour.Status)
	}
	if tour.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestTourVisibility(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, &fakeMedia{})
	ownerA := &model.AuthUser{ID: 1}
	userB := &model.AuthUser{ID: 2}

	seedTour(store, ownerA.ID, false, false)

	// Private: B may not read, and the failure is Forbidden, not NotFound.
	if _, err := svc.GetTour(context.Background(), userB, "tour-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	isPublic, isDraft := true, false
	if _, err := svc.UpdateTour(context.Background(), ownerA, "tour-1", UpdateTourParams{IsPublic: &isPublic, IsDraft: &isDraft}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if _, err := svc.GetTour(context.Background(), userB, "tour-1"); err != nil {
		t.Fatalf("published tour should be readable by non-owner: %v", err)
	}

	// Publication never grants writes.
	title := "hijacked"
	if _, err := svc.UpdateTour(context.Background(), userB, "tour-1", UpdateTourParams{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetTourNotFound(t *testing.T) {
	svc := NewTourService(newFakeTourStore(), &fakeMedia{})
	if _, err := svc.GetTour(context.Background(), &model.AuthUser{ID: 1}, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTourRejectsBadStatus(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, &fakeMedia{})
	owner := &model.AuthUser{ID: 1}
	seedTour(store, owner.ID, false, false)

	status := "Cancelled"
	if _, err := svc.UpdateTour(context.Background(), owner, "tour-1", UpdateTourParams{Status: &status}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteTourRemovesCover(t *testing.T) {
	store := newFakeTourStore()
	media := &fakeMedia{}
	svc := NewTourService(store, media)
	owner := &model.AuthUser{ID: 1}

	tour := seedTour(store, owner.ID, false, false)
	tour.CoverKey = "tours/cover-key"

	if err := svc.DeleteTour(context.Background(), owner, "tour-1"); err != nil {
		t.Fatalf("DeleteTour: %v", err)
	}
	if len(media.deleted) != 1 || media.deleted[0] != "tours/cover-key" {
		t.Fatalf("expected cover object deletion, got %v", media.deleted)
	}
	if _, ok := store.tours["tour-1"]; ok {
		t.Fatal("tour row not deleted")
	}
}

func TestDeleteTourNonOwner(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, &fakeMedia{})
	seedTour(store, 1, true, false)

	if err := svc.DeleteTour(context.Background(), &model.AuthUser{ID: 2}, "tour-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListToursPagingDefaults(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, &fakeMedia{})
	seedTour(store, 1, false, false)

	res, err := svc.ListTours(context.Background(), &model.AuthUser{ID: 1}, 0, 0, nil)
	if err != nil {
		t.Fatalf("ListTours: %v", err)
	}
	if res.Page != 1 || res.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got %d/%d", res.Page, res.Limit)
	}
	if res.TotalTours != 1 {
		t.Fatalf("expected 1 tour, got %d", res.TotalTours)
	}
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wanderlog/backend/internal/db"
	"github.com/wanderlog/backend/internal/model"
)

type TourStore interface {
	InsertTour(ctx context.Context, tour *model.Tour) (*model.Tour, error)
	GetTourByID(ctx context.Context, tourID string) (*model.Tour, error)
	ListToursByOwner(ctx context.Context, ownerID int64, isDraft *bool, limit, offset int) ([]model.Tour, error)
	CountToursByOwner(ctx context.Context, ownerID int64, isDraft *bool) (int, error)
	UpdateTour(ctx context.Context, tour *model.Tour) error
	DeleteTour(ctx context.Context, tourID string) error
}

type TourService struct {
	repo  TourStore
	media MediaStore
}

func NewTourService(repo TourStore, media MediaStore) *TourService {
	return &TourService{repo: repo, media: media}
}

type CreateTourParams struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	BudgetLimit float64
	Locations   []model.Location
	IsPublic    bool
	IsDraft     bool
	CoverImage  *Upload
}

func (s *TourService) CreateTour(ctx context.Context, principal *model.AuthUser, params CreateTourParams) (*model.Tour, error) {
	if params.Title == "" || params.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: title and start date are required", ErrInvalidInput)
	}

	coverURL, coverKey := "", ""
	if params.CoverImage != nil {
		key := mediaKey("tours", params.CoverImage.Filename)
		url, err := s.media.Upload(ctx, key, params.CoverImage.ContentType, params.CoverImage.Reader, params.CoverImage.Size)
		if err != nil {
			return nil, err
		}
		coverURL, coverKey = url, key
	}

	locations := params.Locations
	if locations == nil {
		locations = []model.Location{}
	}

	return s.repo.InsertTour(ctx, &model.Tour{
		ID:          uuid.NewString(),
		OwnerID:     principal.ID,
		Title:       params.Title,
		Description: params.Description,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		BudgetLimit: params.BudgetLimit,
		Status:      model.TourStatusPlanned,
		Locations:   locations,
		CoverImage:  coverURL,
		CoverKey:    coverKey,
		IsPublic:    params.IsPublic,
		IsDraft:     params.IsDraft,
	})
}

func (s *TourService) ListTours(ctx context.Context, principal *model.AuthUser, page, limit int, isDraft *bool) (*model.TourListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	tours, err := s.repo.ListToursByOwner(ctx, principal.ID, isDraft, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountToursByOwner(ctx, principal.ID, isDraft)
	if err != nil {
		return nil, err
	}

	return &model.TourListResponse{
		Tours:      tours,
		TotalTours: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// GetTour applies the read relaxation: non-owners see a tour only when it is
// public and not a draft.
func (s *TourService) GetTour(ctx context.Context, principal *model.AuthUser, tourID string) (*model.Tour, error) {
	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, tour, RelationRead); err != nil {
		return nil, err
	}
	return tour, nil
}

type UpdateTourParams struct {
	Title       *string
	Description *string
	Status      *string
	BudgetLimit *float64
	EndDate     *time.Time
	IsPublic    *bool
	IsDraft     *bool
	CoverImage  *Upload
}

func (s *TourService) UpdateTour(ctx context.Context, principal *model.AuthUser, tourID string, params UpdateTourParams) (*model.Tour, error) {
	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, tour, RelationWrite); err != nil {
		return nil, err
	}

	if params.Status != nil && !model.ValidTourStatus(*params.Status) {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if params.CoverImage != nil {
		if tour.CoverKey != "" {
			if err := s.media.Delete(ctx, tour.CoverKey); err != nil {
				log.Printf("[Tour] Failed to delete old cover %s: %v", tour.CoverKey, err)
			}
		}
		key := mediaKey("tours", params.CoverImage.Filename)
		url, err := s.media.Upload(ctx, key, params.CoverImage.ContentType, params.CoverImage.Reader, params.CoverImage.Size)
		if err != nil {
			return nil, err
		}
		tour.CoverImage, tour.CoverKey = url, key
	}

	if params.Title != nil {
		tour.Title = *params.Title
	}
	if params.Description != nil {
		tour.Description = *params.Description
	}
	if params.Status != nil {
		tour.Status = *params.Status
	}
	if params.BudgetLimit != nil {
		tour.BudgetLimit = *params.BudgetLimit
	}
	if params.EndDate != nil {
		tour.EndDate = params.EndDate
	}
	if params.IsPublic != nil {
		tour.IsPublic = *params.IsPublic
	}
	if params.IsDraft != nil {
		tour.IsDraft = *params.IsDraft
	}

	if err := s.repo.UpdateTour(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *TourService) DeleteTour(ctx context.Context, principal *model.AuthUser, tourID string) error {
	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return err
	}
	if err := Authorize(principal, tour, RelationWrite); err != nil {
		return err
	}

	// Media cleanup failure does not block the row delete.
	if tour.CoverKey != "" {
		if err := s.media.Delete(ctx, tour.CoverKey); err != nil {
			log.Printf("[Tour] Failed to delete cover %s: %v", tour.CoverKey, err)
		}
	}

	return s.repo.DeleteTour(ctx, tourID)
}

func (s *TourService) loadTour(ctx context.Context, tourID string) (*model.Tour, error) {
	tour, err := s.repo.GetTourByID(ctx, tourID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: tour", ErrNotFound)
		}
		return nil, err
	}
	return tour, nil
}

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/wanderlog/backend/internal/db"
	"github.com/wanderlog/backend/internal/model"
)

type MemoryStore interface {
	InsertMemory(ctx context.Context, memory *model.Memory) (*model.Memory, error)
	GetMemoryByID(ctx context.Context, memoryID string) (*model.Memory, error)
	ListMemoriesByTour(ctx context.Context, tourID string) ([]model.Memory, error)
	UpdateMemory(ctx context.Context, memory *model.Memory) error
	DeleteMemory(ctx context.Context, memoryID string) error
}

type MemoryService struct {
	repo  MemoryStore
	tours TourStore
	media MediaStore
}

func NewMemoryService(repo MemoryStore, tours TourStore, media MediaStore) *MemoryService {
	return &MemoryService{repo: repo, tours: tours, media: media}
}

type AddMemoryParams struct {
	Caption      string
	LocationName string
	Mood         string
	Media        *Upload
}

func (s *MemoryService) AddMemory(ctx context.Context, principal *model.AuthUser, tourID string, params AddMemoryParams) (*model.Memory, error) {
	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, tour, RelationWrite); err != nil {
		return nil, err
	}

	if params.Media == nil {
		return nil, fmt.Errorf("%w: media file is required", ErrInvalidInput)
	}

	key := mediaKey("memories", params.Media.Filename)
	url, err := s.media.Upload(ctx, key, params.Media.ContentType, params.Media.Reader, params.Media.Size)
	if err != nil {
		return nil, err
	}

	mood := params.Mood
	if mood == "" {
		mood = "Happy"
	}

	return s.repo.InsertMemory(ctx, &model.Memory{
		ID:           uuid.NewString(),
		TourID:       tourID,
		OwnerID:      principal.ID,
		Type:         mediaTypeFor(params.Media.ContentType),
		MediaURL:     url,
		MediaKey:     key,
		Caption:      params.Caption,
		LocationName: params.LocationName,
		Mood:         mood,
	})
}

// ListMemories is owner-only even when the tour itself is published.
func (s *MemoryService) ListMemories(ctx context.Context, principal *model.AuthUser, tourID string) ([]model.Memory, error) {
	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, tour, RelationWrite); err != nil {
		return nil, err
	}

	return s.repo.ListMemoriesByTour(ctx, tourID)
}

func (s *MemoryService) GetMemory(ctx context.Context, principal *model.AuthUser, memoryID string) (*model.Memory, error) {
	memory, err := s.loadMemory(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, memory, RelationRead); err != nil {
		return nil, err
	}
	return memory, nil
}

func (s *MemoryService) UpdateMemory(ctx context.Context, principal *model.AuthUser, memoryID string, req model.UpdateMemoryRequest) (*model.Memory, error) {
	memory, err := s.loadMemory(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, memory, RelationWrite); err != nil {
		return nil, err
	}

	if req.Caption != nil {
		memory.Caption = *req.Caption
	}
	if req.Mood != nil {
		memory.Mood = *req.Mood
	}
	if req.LocationName != nil {
		memory.LocationName = *req.LocationName
	}

	if err := s.repo.UpdateMemory(ctx, memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func (s *MemoryService) DeleteMemory(ctx context.Context, principal *model.AuthUser, memoryID string) error {
	memory, err := s.loadMemory(ctx, memoryID)
	if err != nil {
		return err
	}
	if err := Authorize(principal, memory, RelationWrite); err != nil {
		return err
	}

	if memory.MediaKey != "" {
		if err := s.media.Delete(ctx, memory.MediaKey); err != nil {
			log.Printf("[Memory] Failed to delete media %s: %v", memory.MediaKey, err)
		}
	}

	return s.repo.DeleteMemory(ctx, memoryID)
}

func (s *MemoryService) loadTour(ctx context.Context, tourID string) (*model.Tour, error) {
	tour, err := s.tours.GetTourByID(ctx, tourID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: tour", ErrNotFound)
		}
		return nil, err
	}
	return tour, nil
}

func (s *MemoryService) loadMemory(ctx context.Context, memoryID string) (*model.Memory, error) {
	memory, err := s.repo.GetMemoryByID(ctx, memoryID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: memory", ErrNotFound)
		}
		return nil, err
	}
	return memory, nil
}

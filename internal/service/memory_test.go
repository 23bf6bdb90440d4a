package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/wanderlog/backend/internal/model"
)

type fakeMemoryStore struct {
	memories map[string]*model.Memory
}

func newFakeMemoryStore() *fakeMemoryStore {
	return &fakeMemoryStore{memories: map[string]*model.Memory{}}
}

func (f *fakeMemoryStore) InsertMemory(ctx context.Context, memory *model.Memory) (*model.Memory, error) {
	stored := *memory
	f.memories[memory.ID] = &stored
	return &stored, nil
}

func (f *fakeMemoryStore) GetMemoryByID(ctx context.Context, memoryID string) (*model.Memory, error) {
	if memory, ok := f.memories[memoryID]; ok {
		copied := *memory
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemoryStore) ListMemoriesByTour(ctx context.Context, tourID string) ([]model.Memory, error) {
	list := []model.Memory{}
	for _, memory := range f.memories {
		if memory.TourID == tourID {
			list = append(list, *memory)
		}
	}
	return list, nil
}

func (f *fakeMemoryStore) UpdateMemory(ctx context.Context, memory *model.Memory) error {
	if _, ok := f.memories[memory.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *memory
	f.memories[memory.ID] = &stored
	return nil
}

func (f *fakeMemoryStore) DeleteMemory(ctx context.Context, memoryID string) error {
	delete(f.memories, memoryID)
	return nil
}

func videoUpload() *Upload {
	return &Upload{
		Reader:      strings.NewReader("fake video bytes"),
		Size:        16,
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
	}
}

func TestAddMemoryRequiresMedia(t *testing.T) {
	tours := newFakeTourStore()
	svc := NewMemoryService(newFakeMemoryStore(), tours, &fakeMedia{})
	owner := &model.AuthUser{ID: 1}
	seedTour(tours, owner.ID, false, false)

	_, err := svc.AddMemory(context.Background(), owner, "tour-1", AddMemoryParams{Caption: "no file"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddMemoryDetectsVideo(t *testing.T) {
	tours := newFakeTourStore()
	svc := NewMemoryService(newFakeMemoryStore(), tours, &fakeMedia{})
	owner := &model.AuthUser{ID: 1}
	seedTour(tours, owner.ID, false, false)

	memory, err := svc.AddMemory(context.Background(), owner, "tour-1", AddMemoryParams{Media: videoUpload()})
	if err != nil {
		t.Fatalf("AddMemory: %v", err)
	}
	if memory.Type != model.MediaTypeVideo {
		t.Fatalf("expected VIDEO, got %q", memory.Type)
	}
	if memory.Mood != "Happy" {
		t.Fatalf("expected default mood, got %q", memory.Mood)
	}
}

func TestAddMemoryToForeignTour(t *testing.T) {
	tours := newFakeTourStore()
	svc := NewMemoryService(newFakeMemoryStore(), tours, &fakeMedia{})
	seedTour(tours, 1, true, false)

	_, err := svc.AddMemory(context.Background(), &model.AuthUser{ID: 2}, "tour-1", AddMemoryParams{Media: videoUpload()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAddMemoryUnknownTour(t *testing.T) {
	svc := NewMemoryService(newFakeMemoryStore(), newFakeTourStore(), &fakeMedia{})

	_, err := svc.AddMemory(context.Background(), &model.AuthUser{ID: 1}, "missing", AddMemoryParams{Media: videoUpload()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMemoriesOwnerOnly(t *testing.T) {
	tours := newFakeTourStore()
	svc := NewMemoryService(newFakeMemoryStore(), tours, &fakeMedia{})

	// Published tours still keep their memories private.
	seedTour(tours, 1, true, false)

	if _, err := svc.ListMemories(context.Background(), &model.AuthUser{ID: 2}, "tour-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListMemories(context.Background(), &model.AuthUser{ID: 1}, "tour-1"); err != nil {
		t.Fatalf("owner list: %v", err)
	}
}

func TestDeleteMemoryRemovesMedia(t *testing.T) {
	tours := newFakeTourStore()
	memories := newFakeMemoryStore()
	media := &fakeMedia{}
	svc := NewMemoryService(memories, tours, media)
	owner := &model.AuthUser{ID: 1}

	memories.memories["mem-1"] = &model.Memory{ID: "mem-1", TourID: "tour-1", OwnerID: owner.ID, MediaKey: "memories/key-1"}

	if err := svc.DeleteMemory(context.Background(), owner, "mem-1"); err != nil {
		t.Fatalf("DeleteMemory: %v", err)
	}
	if len(media.deleted) != 1 || media.deleted[0] != "memories/key-1" {
		t.Fatalf("expected media object deletion, got %v", media.deleted)
	}
}

func TestUpdateMemoryNonOwner(t *testing.T) {
	memories := newFakeMemoryStore()
	svc := NewMemoryService(memories, newFakeTourStore(), &fakeMedia{})
	memories.memories["mem-1"] = &model.Memory{ID: "mem-1", OwnerID: 1}

	caption := "not yours"
	_, err := svc.UpdateMemory(context.Background(), &model.AuthUser{ID: 2}, "mem-1", model.UpdateMemoryRequest{Caption: &caption})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

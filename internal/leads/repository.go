package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage. Create must insert
// exactly once per call; callers never retry a failed insert, so a
// transient store error loses the lead rather than risking a duplicate.
type Repository interface {
	Create(ctx context.Context, lead *Lead) (*StoredLead, error)
}

// InMemoryRepository keeps leads in process memory. Used in tests and
// when no database is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Create stores the lead under a fresh id.
func (r *InMemoryRepository) Create(ctx context.Context, lead *Lead) (*StoredLead, error) {
	stored := &StoredLead{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.leads[stored.ID] = lead
	r.mu.Unlock()

	return stored, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}

	return lead, nil
}

// Len reports how many leads have been stored.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

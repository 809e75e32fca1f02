package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
)

type memoryRecord struct {
	user models.User
	hash string
}

// MemoryRepository keeps users in process memory. It is used for local runs
// (-m memory) and in tests; data is lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*memoryRecord
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*memoryRecord),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *MemoryRepository) FindCredentialByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rec := r.byID[id]
	return &models.Account{User: rec.user, Hash: rec.hash}, nil
}

func (r *MemoryRepository) CreateUserWithCredential(ctx context.Context, email, name, hash string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return nil, common.ErrEmailTaken
	}

	rec := &memoryRecord{
		user: models.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			CreatedAt: r.now().UTC(),
		},
		hash: hash,
	}
	r.byID[rec.user.ID] = rec
	r.byEmail[email] = rec.user.ID

	u := rec.user
	return &u, nil
}

// Len returns the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

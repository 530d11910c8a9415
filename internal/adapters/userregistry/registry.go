package userregistry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/roampoint/tourguide/internal/domain"
)

// Registry is the process-wide collection of users. Users are added up front
// and never removed during a run; the lock only guards the maps themselves.
// Mutation of a user's history and rewards goes through the user's own
// accessors and needs no registry-level coordination.
type Registry struct {
	mu         sync.RWMutex
	usersByID  map[uuid.UUID]*domain.User
	userByName map[string]*domain.User
}

func New() *Registry {
	return &Registry{
		usersByID:  make(map[uuid.UUID]*domain.User),
		userByName: make(map[string]*domain.User),
	}
}

func (r *Registry) Add(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.usersByID[user.ID] = user
	r.userByName[user.Name] = user
}

func (r *Registry) GetByID(id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.usersByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return user, nil
}

func (r *Registry) GetByName(name string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.userByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, name)
	}
	return user, nil
}

// AllUsers returns a snapshot slice. Workers iterate the snapshot; a user
// added after the call simply misses that scheduling pass.
func (r *Registry) AllUsers() []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.usersByID))
	for _, user := range r.usersByID {
		users = append(users, user)
	}
	return users
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.usersByID)
}

package service

import (
	"strings"
	"sync"

	"github.com/madirex/funko-server/internal/core/domain"
)

// UserDirectory is the in-memory credential/role lookup. Writes happen only
// during startup seeding; after that many sessions read it concurrently.
type UserDirectory struct {
	mu         sync.RWMutex
	byUsername map[string]domain.User
	byID       map[string]domain.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byUsername: make(map[string]domain.User),
		byID:       make(map[string]domain.User),
	}
}

// Add registers a user. A later Add with the same username replaces the
// earlier entry.
func (d *UserDirectory) Add(user domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byUsername[user.Username] = user
	d.byID[user.ID] = user
}

// FindByUsername is case-sensitive.
func (d *UserDirectory) FindByUsername(username string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// FindByID trims surrounding quote characters that JSON claim decoding can
// leave on the id.
func (d *UserDirectory) FindByID(id string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.byID[strings.Trim(id, `"`)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

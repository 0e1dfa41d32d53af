package ports

import "github.com/madirex/funko-server/internal/core/domain"

// UserDirectory is the in-memory credential/role lookup. Reads come from many
// sessions at once; writes happen only during startup seeding.
type UserDirectory interface {
	Add(user domain.User)
	// FindByUsername is case-sensitive.
	FindByUsername(username string) (*domain.User, error)
	// FindByID tolerates surrounding quote characters left by upstream
	// deserialization.
	FindByID(id string) (*domain.User, error)
}

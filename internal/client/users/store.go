// Package users holds the client-local projection of the user collection:
// the most recently fetched list for the active search/filter pair, plus the
// create/update/delete actions that keep it consistent with the server.
package users

import (
	"context"
	"errors"
	"sync"

	"useradmin-cli/internal/client/models"
	"useradmin-cli/internal/logging"
)

// ErrNoPendingDelete is returned by ConfirmDelete when no delete was
// requested first.
var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// UserAPI is the slice of the user facade the store needs.
type UserAPI interface {
	GetUsers(ctx context.Context, search string, filter models.UserFilter) ([]models.User, error)
	CreateUser(ctx context.Context, data models.CreateUser) (models.User, error)
	UpdateUser(ctx context.Context, id int, data models.UpdateUser) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// Store is the user-collection state holder.
//
// The list preserves server ordering. A successful create appends, an update
// replaces in place by id, a delete removes by id; a failed mutation leaves
// the list untouched and records an error. Mutations re-raise their error so
// the caller can react; fetches only record state.
//
// Fetches carry a monotonic sequence number and a completed fetch only
// applies its result if nothing fresher has been applied, so a slow stale
// response never overwrites a newer one.
type Store struct {
	mu  sync.Mutex
	api UserAPI
	log logging.Logger

	users      []models.User
	searchTerm string
	filter     models.UserFilter
	loading    bool
	lastErr    string

	pendingDelete *int

	issuedSeq  uint64
	appliedSeq uint64
}

// NewStore builds an empty Store.
func NewStore(api UserAPI, log logging.Logger) *Store {
	return &Store{api: api, log: log.With("component", "users")}
}

// Fetch queries the server with the current search term and filter. Errors
// are recorded in Err, not returned.
func (s *Store) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	term, filter := s.searchTerm, s.filter
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()

	list, err := s.api.GetUsers(ctx, term, filter)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq == s.issuedSeq {
		s.loading = false
	}
	if seq <= s.appliedSeq {
		// a fresher fetch already landed
		s.log.Debug("discarding stale fetch result", "seq", seq, "applied", s.appliedSeq)
		return
	}
	if err != nil {
		s.lastErr = "Failed to load users. Please try again."
		s.log.Error("fetch failed", "error", err)
		return
	}
	s.users = list
	s.appliedSeq = seq
}

// SetSearchTerm stores the new term and refetches.
func (s *Store) SetSearchTerm(ctx context.Context, term string) {
	s.mu.Lock()
	s.searchTerm = term
	s.mu.Unlock()
	s.Fetch(ctx)
}

// UpdateFilters stores the new filter and refetches.
func (s *Store) UpdateFilters(ctx context.Context, filter models.UserFilter) {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.Fetch(ctx)
}

// ResetFilters clears the search term and filter in one refetch.
func (s *Store) ResetFilters(ctx context.Context) {
	s.mu.Lock()
	s.searchTerm = ""
	s.filter = models.UserFilter{}
	s.mu.Unlock()
	s.Fetch(ctx)
}

// Create adds a user and appends the server's record to the local list.
func (s *Store) Create(ctx context.Context, data models.CreateUser) (models.User, error) {
	s.begin()
	user, err := s.api.CreateUser(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = "Failed to create user. Please try again."
		s.log.Error("create failed", "error", err)
		return models.User{}, err
	}
	s.users = append(s.users, user)
	return user, nil
}

// Update applies a partial update and replaces the matching local record.
// Records for other ids are left untouched.
func (s *Store) Update(ctx context.Context, id int, data models.UpdateUser) (models.User, error) {
	s.begin()
	user, err := s.api.UpdateUser(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = "Failed to update user. Please try again."
		s.log.Error("update failed", "user_id", id, "error", err)
		return models.User{}, err
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = user
			break
		}
	}
	return user, nil
}

// RequestDelete opens the confirmation state for id. The network call only
// happens on ConfirmDelete.
func (s *Store) RequestDelete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = &id
}

// PendingDelete reports the id awaiting confirmation, if any.
func (s *Store) PendingDelete() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return 0, false
	}
	return *s.pendingDelete, true
}

// CancelDelete abandons a requested delete.
func (s *Store) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = nil
}

// ConfirmDelete performs the delete requested earlier and removes the record
// from the local list. The pending state is consumed either way.
func (s *Store) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.pendingDelete == nil {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}
	id := *s.pendingDelete
	s.pendingDelete = nil
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()

	err := s.api.DeleteUser(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = "Failed to delete user. Please try again."
		s.log.Error("delete failed", "user_id", id, "error", err)
		return err
	}

	kept := s.users[:0:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

// begin resets the error and raises the loading flag ahead of a mutation.
func (s *Store) begin() {
	s.mu.Lock()
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()
}

// Users returns a copy of the current list in server order.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// SearchTerm returns the active search string.
func (s *Store) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// Filter returns the active filter.
func (s *Store) Filter() models.UserFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Loading reports whether an operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

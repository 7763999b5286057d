// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"calorietracker/internal/domain"
)

type foodKey struct {
	userID int64
	name   string
}

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	foods    map[foodKey]domain.Food
	entries  []domain.Entry
	goals    map[int64]domain.Goal
	users    []*domain.User
	sessions map[string]*domain.Session

	entryIDCounter int64
	userIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		foods:    make(map[foodKey]domain.Food),
		goals:    make(map[int64]domain.Goal),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.FoodRepository = (*DB)(nil)
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- FoodRepository ---

// UpsertFood inserts or replaces a food definition.
func (db *DB) UpsertFood(ctx context.Context, userID int64, name string, per100 domain.Nutrients) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.foods[foodKey{userID, name}] = domain.Food{UserID: userID, Name: name, Per100: per100}
	return nil
}

// GetFood returns a food by name, or nil if absent.
func (db *DB) GetFood(ctx context.Context, userID int64, name string) (*domain.Food, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	f, ok := db.foods[foodKey{userID, name}]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// ListFoods lists a user's foods ordered by name.
func (db *DB) ListFoods(ctx context.Context, userID int64) ([]domain.Food, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Food, 0)
	for k, f := range db.foods {
		if k.userID == userID {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// RemoveFood deletes a food definition. It exists for tests that need an
// emptied catalog; no service exposes it.
func (db *DB) RemoveFood(userID int64, name string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.foods, foodKey{userID, name})
}

// --- EntryRepository ---

// AddEntry stores an entry under a fresh ID.
func (db *DB) AddEntry(ctx context.Context, e domain.Entry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entryIDCounter++
	e.ID = db.entryIDCounter
	e.CreatedAt = e.CreatedAt.UTC()
	db.entries = append(db.entries, e)
	return e.ID, nil
}

// DeleteEntry deletes an entry by ID, scoped to a user.
func (db *DB) DeleteEntry(ctx context.Context, userID int64, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.entries {
		if e.ID == id && e.UserID == userID {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListEntriesForDay returns a user's entries for day in ID order.
func (db *DB) ListEntriesForDay(ctx context.Context, userID int64, day string) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Entry, 0)
	for _, e := range db.entries {
		if e.UserID == userID && e.Day == day {
			result = append(result, e)
		}
	}
	// entries is append-only, so slice order is ID order
	return result, nil
}

// DailyTotalsSince sums a user's entries per day for days >= startDay.
func (db *DB) DailyTotalsSince(ctx context.Context, userID int64, startDay string) ([]domain.DayTotals, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	sums := make(map[string]domain.Nutrients)
	for _, e := range db.entries {
		// DayLayout strings compare chronologically
		if e.UserID == userID && e.Day >= startDay {
			sums[e.Day] = sums[e.Day].Add(e.Nutrients)
		}
	}

	result := make([]domain.DayTotals, 0, len(sums))
	for day, n := range sums {
		result = append(result, domain.DayTotals{Day: day, Nutrients: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day < result[j].Day
	})
	return result, nil
}

// --- GoalRepository ---

// GetGoal returns the user's goal, or nil if none is stored.
func (db *DB) GetGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.goals[userID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

// PutGoal replaces the user's goal.
func (db *DB) PutGoal(ctx context.Context, g domain.Goal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goals[g.UserID] = g
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrUserExists
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

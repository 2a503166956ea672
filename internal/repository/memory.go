package repository

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/undiziwa/userpanel/internal/models"
)

// MemoryStore is an in-memory user store with the same surface as
// UserRepository. It backs the directory service when no DATABASE_URL
// is configured, so the panel can be developed against a single
// self-contained binary.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []models.User
	tokens []models.PasswordResetToken
	audits []models.AuditLog
	nextID int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Seed inserts users, assigning IDs where missing.
func (s *MemoryStore) Seed(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		if u.UserID == 0 {
			u.UserID = s.nextID
		}
		if u.UserID >= s.nextID {
			s.nextID = u.UserID + 1
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
		s.users = append(s.users, u)
	}
}

func (s *MemoryStore) List(_ context.Context, filter models.UserFilter) ([]models.User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.User, 0, len(s.users))
	term := strings.ToLower(filter.Search)
	for _, u := range s.users {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Username), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		matched = append(matched, u)
	}

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []models.User{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]models.User, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UserID == id {
			found := u
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemoryStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UserID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) UpdatePermission(_ context.Context, id int64, role models.UserRole, active bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].UserID == id {
			s.users[i].Role = role
			s.users[i].IsActive = active
			updated := s.users[i]
			return &updated, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemoryStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].UserID == id {
			s.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *MemoryStore) CreatePasswordResetToken(_ context.Context, token *models.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.ID = int64(len(s.tokens) + 1)
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	s.tokens = append(s.tokens, *token)
	return nil
}

func (s *MemoryStore) FindResetToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, prt := range s.tokens {
		if prt.Token == token && !prt.Used {
			found := prt
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemoryStore) MarkResetTokenUsed(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tokens {
		if s.tokens[i].ID == id {
			s.tokens[i].Used = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *MemoryStore) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = int64(len(s.audits) + 1)
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	s.audits = append(s.audits, *log)
	return nil
}

// AuditLogs returns a snapshot of recorded audit entries.
func (s *MemoryStore) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}

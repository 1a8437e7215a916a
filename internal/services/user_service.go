package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/storage"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserService is the local-auth fallback used when no Firebase project is
// configured. Accounts are kept in memory and snapshotted to users.json.
type UserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string
	store   *storage.JSONStore
}

func NewUserService(dataDir string) (*UserService, error) {
	store, err := storage.NewJSONStore(dataDir, "users.json")
	if err != nil {
		return nil, err
	}

	s := &UserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		store:   store,
	}

	var snapshot []*models.User
	if err := store.Load(&snapshot); err != nil {
		return nil, err
	}
	for _, u := range snapshot {
		s.users[u.ID] = u
		s.byEmail[u.Email] = u.ID
	}
	return s, nil
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	// Persist first; the in-memory index only sees accounts that made it to
	// disk, so a failed snapshot leaves the email free for a retry.
	snapshot := make([]*models.User, 0, len(s.users)+1)
	for _, u := range s.users {
		snapshot = append(snapshot, u)
	}
	snapshot = append(snapshot, user)
	if err := s.store.Save(snapshot); err != nil {
		return nil, err
	}

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *UserService) Login(req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[req.Email]
	if !exists {
		return nil, ErrUserNotFound
	}

	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	return user, nil
}

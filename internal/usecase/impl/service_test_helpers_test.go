package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- In-memory repository fakes ---

// fakeUserRepo is a thread-safe in-memory UserRepository with the same
// guard semantics as the real implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByUserName(_ context.Context, userName string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	for _, user := range r.users {
		if user.UserName == userName {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUserNameOrEmail(_ context.Context, userName, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	for _, user := range r.users {
		if (userName != "" && user.UserName == userName) || (email != "" && user.Email == email) {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	stored.UserName = user.UserName
	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.AvatarURL = user.AvatarURL
	stored.CoverImageURL = user.CoverImageURL

	return nil
}

func (r *fakeUserRepo) RotateRefreshToken(_ context.Context, userID uuid.UUID, previous, next string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}

	if previous != "" && stored.RefreshToken != previous {
		return repository.ErrRefreshTokenMismatch
	}

	stored.RefreshToken = next

	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}

	stored.RefreshToken = ""

	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}

	stored.PasswordHash = passwordHash

	return nil
}

// stored returns the live stored user so tests can assert persisted state.
func (r *fakeUserRepo) stored(id uuid.UUID) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.users[id]
}

// seed inserts a user directly, bypassing the repository contract.
func (r *fakeUserRepo) seed(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
}

// fakeSubscriptionRepo serves fixed aggregates keyed by channel/subscriber.
type fakeSubscriptionRepo struct {
	subscribers   map[uuid.UUID]int64
	subscriptions map[uuid.UUID]int64
	edges         map[string]bool
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		subscribers:   make(map[uuid.UUID]int64),
		subscriptions: make(map[uuid.UUID]int64),
		edges:         make(map[string]bool),
	}
}

func subscriptionEdge(channelID, subscriberID uuid.UUID) string {
	return channelID.String() + "/" + subscriberID.String()
}

func (r *fakeSubscriptionRepo) CountSubscribers(_ context.Context, channelID uuid.UUID) (int64, error) {
	return r.subscribers[channelID], nil
}

func (r *fakeSubscriptionRepo) CountSubscriptions(_ context.Context, subscriberID uuid.UUID) (int64, error) {
	return r.subscriptions[subscriberID], nil
}

func (r *fakeSubscriptionRepo) IsSubscribed(_ context.Context, channelID, subscriberID uuid.UUID) (bool, error) {
	return r.edges[subscriptionEdge(channelID, subscriberID)], nil
}

// fakeWatchHistoryRepo returns preset entries.
type fakeWatchHistoryRepo struct {
	entries map[uuid.UUID][]*entity.WatchEntry
}

func newFakeWatchHistoryRepo() *fakeWatchHistoryRepo {
	return &fakeWatchHistoryRepo{entries: make(map[uuid.UUID][]*entity.WatchEntry)}
}

func (r *fakeWatchHistoryRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error) {
	entries := r.entries[userID]
	if entries == nil {
		entries = []*entity.WatchEntry{}
	}

	return entries, nil
}

// fakeTxManager runs the callback against the same fake repositories,
// without any transactional behavior.
type fakeTxManager struct {
	userRepo         *fakeUserRepo
	subscriptionRepo *fakeSubscriptionRepo
	watchHistoryRepo *fakeWatchHistoryRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) UserRepo() repository.UserRepository { return m.userRepo }

func (m *fakeTxManager) SubscriptionRepo() repository.SubscriptionRepository {
	return m.subscriptionRepo
}

func (m *fakeTxManager) WatchHistoryRepo() repository.WatchHistoryRepository {
	return m.watchHistoryRepo
}

// --- Service fakes ---

// fakePasswordHasher hashes deterministically so tests can assert stored values.
type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues sequence-numbered tokens and verifies only tokens
// it issued itself.
type fakeTokenService struct {
	mu     sync.Mutex
	seq    int
	issued map[string]uuid.UUID
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]uuid.UUID)}
}

func (s *fakeTokenService) issue(kind string, userID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	token := fmt.Sprintf("%s-%d-%s", kind, s.seq, userID)
	s.issued[token] = userID

	return token
}

func (s *fakeTokenService) IssueAccessToken(user *entity.User) (string, error) {
	return s.issue("access", user.ID), nil
}

func (s *fakeTokenService) IssueRefreshToken(user *entity.User) (string, error) {
	return s.issue("refresh", user.ID), nil
}

func (s *fakeTokenService) ParseAccessToken(token string) (*service.AccessClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.issued[token]
	if !ok || !strings.HasPrefix(token, "access-") {
		return nil, service.ErrTokenInvalid
	}

	return &service.AccessClaims{UserID: userID}, nil
}

func (s *fakeTokenService) ParseRefreshToken(token string) (*service.RefreshClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.issued[token]
	if !ok || !strings.HasPrefix(token, "refresh-") {
		return nil, service.ErrTokenInvalid
	}

	return &service.RefreshClaims{UserID: userID}, nil
}

// fakeMediaStorage records uploads and returns deterministic URLs.
type fakeMediaStorage struct {
	mu       sync.Mutex
	uploads  []string
	failWith error
}

func (s *fakeMediaStorage) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return "", s.failWith
	}

	// Drain the reader the way a real store would.
	if content != nil {
		_, _ = io.Copy(io.Discard, content)
	}

	s.uploads = append(s.uploads, filename)

	return "https://cdn.test/" + filename, nil
}

// --- Fixtures ---

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *fakeUserRepo
	tokenService *fakeTokenService
	mediaStorage *fakeMediaStorage
}

func createTestUserService() userServiceFixtures {
	userRepo := newFakeUserRepo()
	tokenService := newFakeTokenService()
	mediaStorage := &fakeMediaStorage{}
	txManager := &fakeTxManager{
		userRepo:         userRepo,
		subscriptionRepo: newFakeSubscriptionRepo(),
		watchHistoryRepo: newFakeWatchHistoryRepo(),
	}

	svc := NewUserService(UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       fakePasswordHasher{},
		TokenService: tokenService,
		MediaStorage: mediaStorage,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		tokenService: tokenService,
		mediaStorage: mediaStorage,
	}
}

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service          usecase.ProfileUsecase
	userRepo         *fakeUserRepo
	subscriptionRepo *fakeSubscriptionRepo
	watchHistoryRepo *fakeWatchHistoryRepo
	mediaStorage     *fakeMediaStorage
}

func createTestProfileService() profileServiceFixtures {
	userRepo := newFakeUserRepo()
	subscriptionRepo := newFakeSubscriptionRepo()
	watchHistoryRepo := newFakeWatchHistoryRepo()
	mediaStorage := &fakeMediaStorage{}
	txManager := &fakeTxManager{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		watchHistoryRepo: watchHistoryRepo,
	}

	svc := NewProfileService(ProfileServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		SubscriptionRepo: subscriptionRepo,
		WatchHistoryRepo: watchHistoryRepo,
		MediaStorage:     mediaStorage,
		Logger:           newDiscardLogger(),
	})

	return profileServiceFixtures{
		service:          svc,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		watchHistoryRepo: watchHistoryRepo,
		mediaStorage:     mediaStorage,
	}
}

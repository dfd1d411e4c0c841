package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Search(ctx context.Context, query string, filters repositories.UserFilters) ([]*models.User, int64, error) {
	all, _, _ := r.List(ctx, filters)
	var out []*models.User
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.FullName), strings.ToLower(query)) ||
			strings.Contains(u.Email, strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[strings.ToLower(email)]
	return ok, nil
}

func (r *fakeUserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.Role == role, nil
}

// fakeNoticeRepo is an in-memory NoticeRepository.
type fakeNoticeRepo struct {
	mu      sync.Mutex
	nextID  uint
	notices map[uint]*models.Notice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{nextID: 1, notices: make(map[uint]*models.Notice)}
}

func (r *fakeNoticeRepo) Create(_ context.Context, notice *models.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notice.ID = r.nextID
	r.nextID++
	copied := *notice
	r.notices[notice.ID] = &copied
	return nil
}

func (r *fakeNoticeRepo) GetByID(_ context.Context, id uint) (*models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNoticeRepo) Update(_ context.Context, notice *models.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notices[notice.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *notice
	r.notices[notice.ID] = &copied
	return nil
}

func (r *fakeNoticeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notices[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.notices, id)
	return nil
}

func (r *fakeNoticeRepo) List(_ context.Context, _ repositories.NoticeFilters) ([]*models.Notice, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notice
	for _, n := range r.notices {
		copied := *n
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

// fakeRepo aggregates the fakes behind the Repository interface.
type fakeRepo struct {
	users   *fakeUserRepo
	notices *fakeNoticeRepo
	pingErr error
	closed  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: newFakeUserRepo(), notices: newFakeNoticeRepo()}
}

func (r *fakeRepo) User() repositories.UserRepository     { return r.users }
func (r *fakeRepo) Notice() repositories.NoticeRepository { return r.notices }
func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *fakeRepo) Ping(_ context.Context) error { return r.pingErr }
func (r *fakeRepo) Close() error {
	r.closed = true
	return nil
}

// recordingNotifier captures notification requests instead of publishing.
type recordingNotifier struct {
	mu       sync.Mutex
	requests []NotificationRequest
	fail     error
}

func (n *recordingNotifier) SendNotification(_ context.Context, req *NotificationRequest) error {
	if n.fail != nil {
		return n.fail
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, *req)
	return nil
}

func (n *recordingNotifier) sent() []NotificationRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]NotificationRequest(nil), n.requests...)
}

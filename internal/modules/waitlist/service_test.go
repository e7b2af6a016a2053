package waitlist

import (
	"context"
	"errors"
	"testing"

	"draftdeck/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockWaitlistRepo struct {
	mock.Mock
}

func (m *mockWaitlistRepo) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil && e.ID == 0 {
		e.ID = 1
	}
	return args.Error(0)
}

func (m *mockWaitlistRepo) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *mockWaitlistRepo) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *mockWaitlistRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.WaitlistEntry, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.WaitlistEntry), args.Get(1).(int64), args.Error(2)
}

func (m *mockWaitlistRepo) SetStatus(ctx context.Context, id int64, status domain.WaitlistStatus, reviewerID int64, reason string) error {
	args := m.Called(ctx, id, status, reviewerID, reason)
	return args.Error(0)
}

type mockUserUpdater struct {
	mock.Mock
}

func (m *mockUserUpdater) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUpdater) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func TestService_Join_Success(t *testing.T) {
	repo := new(mockWaitlistRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.WaitlistEntry) bool {
		return e.Email == "new@x.com" && e.Status == domain.WaitlistPending
	})).Return(nil)

	service := NewService(repo, new(mockUserUpdater), new(mockMailer), "http://localhost:5173")

	entry, err := service.Join(context.Background(), JoinRequest{Email: "New@X.com", Name: "N"})
	assert.NoError(t, err)
	assert.Equal(t, domain.WaitlistPending, entry.Status)
	repo.AssertExpectations(t)
}

func TestService_Join_DuplicateIsIdempotent(t *testing.T) {
	repo := new(mockWaitlistRepo)
	existing := &domain.WaitlistEntry{ID: 3, Email: "dup@x.com", Status: domain.WaitlistPending}

	repo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})
	repo.On("GetByEmail", mock.Anything, "dup@x.com").Return(existing, nil)

	service := NewService(repo, new(mockUserUpdater), new(mockMailer), "http://localhost:5173")

	entry, err := service.Join(context.Background(), JoinRequest{Email: "dup@x.com", Name: "D"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), entry.ID)
}

func TestService_Approve_FlipsUserAndSendsInvite(t *testing.T) {
	repo := new(mockWaitlistRepo)
	users := new(mockUserUpdater)
	m := new(mockMailer)

	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.WaitlistEntry{
		ID: 3, Email: "w@x.com", Status: domain.WaitlistPending,
	}, nil)
	repo.On("SetStatus", mock.Anything, int64(3), domain.WaitlistApproved, int64(99), "").Return(nil)
	users.On("GetByEmail", mock.Anything, "w@x.com").Return(&domain.User{
		ID: 5, Email: "w@x.com", BetaStatus: domain.BetaPending,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.BetaStatus == domain.BetaApproved
	})).Return(nil)
	m.On("Send", mock.Anything, "w@x.com", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, users, m, "http://localhost:5173")

	entry, err := service.Approve(context.Background(), 3, 99)
	assert.NoError(t, err)
	assert.Equal(t, domain.WaitlistApproved, entry.Status)

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	m.AssertExpectations(t)
}

func TestService_Approve_NoAccountYet(t *testing.T) {
	repo := new(mockWaitlistRepo)
	users := new(mockUserUpdater)
	m := new(mockMailer)

	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.WaitlistEntry{
		ID: 3, Email: "w@x.com", Status: domain.WaitlistPending,
	}, nil)
	repo.On("SetStatus", mock.Anything, int64(3), domain.WaitlistApproved, int64(99), "").Return(nil)
	users.On("GetByEmail", mock.Anything, "w@x.com").Return(nil, gorm.ErrRecordNotFound)
	m.On("Send", mock.Anything, "w@x.com", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, users, m, "http://localhost:5173")

	_, err := service.Approve(context.Background(), 3, 99)
	assert.NoError(t, err)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Approve_MailFailureDoesNotUndoApproval(t *testing.T) {
	repo := new(mockWaitlistRepo)
	users := new(mockUserUpdater)
	m := new(mockMailer)

	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.WaitlistEntry{
		ID: 3, Email: "w@x.com", Status: domain.WaitlistPending,
	}, nil)
	repo.On("SetStatus", mock.Anything, int64(3), domain.WaitlistApproved, int64(99), "").Return(nil)
	users.On("GetByEmail", mock.Anything, "w@x.com").Return(nil, gorm.ErrRecordNotFound)
	m.On("Send", mock.Anything, "w@x.com", mock.Anything, mock.Anything).Return(errors.New("relay down"))

	service := NewService(repo, users, m, "http://localhost:5173")

	entry, err := service.Approve(context.Background(), 3, 99)
	assert.NoError(t, err)
	assert.Equal(t, domain.WaitlistApproved, entry.Status)
	repo.AssertExpectations(t)
}

func TestService_Approve_AlreadyReviewed(t *testing.T) {
	repo := new(mockWaitlistRepo)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.WaitlistEntry{
		ID: 3, Email: "w@x.com", Status: domain.WaitlistApproved,
	}, nil)

	service := NewService(repo, new(mockUserUpdater), new(mockMailer), "http://localhost:5173")

	_, err := service.Approve(context.Background(), 3, 99)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestService_Reject_RequiresReason(t *testing.T) {
	service := NewService(new(mockWaitlistRepo), new(mockUserUpdater), new(mockMailer), "http://localhost:5173")

	_, err := service.Reject(context.Background(), 3, 99, "   ")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestService_Reject_Success(t *testing.T) {
	repo := new(mockWaitlistRepo)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.WaitlistEntry{
		ID: 3, Email: "w@x.com", Status: domain.WaitlistPending,
	}, nil)
	repo.On("SetStatus", mock.Anything, int64(3), domain.WaitlistRejected, int64(99), "spam").Return(nil)

	service := NewService(repo, new(mockUserUpdater), new(mockMailer), "http://localhost:5173")

	entry, err := service.Reject(context.Background(), 3, 99, "spam")
	assert.NoError(t, err)
	assert.Equal(t, domain.WaitlistRejected, entry.Status)
	assert.Equal(t, "spam", entry.RejectedReason)
}

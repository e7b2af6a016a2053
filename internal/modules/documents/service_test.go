package documents

import (
	"context"
	"testing"

	"draftdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockDocRepo struct {
	mock.Mock
}

func (m *mockDocRepo) Create(ctx context.Context, d *domain.Document) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil && d.ID == 0 {
		d.ID = 1
	}
	return args.Error(0)
}

func (m *mockDocRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *mockDocRepo) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Document, int64, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]domain.Document), args.Get(1).(int64), args.Error(2)
}

func (m *mockDocRepo) Update(ctx context.Context, d *domain.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDocRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockChatCleaner struct {
	mock.Mock
}

func (m *mockChatCleaner) DeleteByDocument(ctx context.Context, documentID int64) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func TestService_Create_CountsWords(t *testing.T) {
	repo := new(mockDocRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.OwnerID == 3 && d.WordCount == 4
	})).Return(nil)

	service := NewService(repo, nil)

	doc, err := service.Create(context.Background(), 3, CreateDocumentRequest{
		Title:   "Essay",
		Content: "four words are here",
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, doc.WordCount)
	repo.AssertExpectations(t)
}

func TestService_Get_OwnershipEnforced(t *testing.T) {
	repo := new(mockDocRepo)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Document{ID: 10, OwnerID: 1}, nil)

	service := NewService(repo, nil)

	doc, err := service.Get(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), doc.ID)

	// Another user's lookup reads as not found.
	_, err = service.Get(context.Background(), 2, 10)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestService_Get_Missing(t *testing.T) {
	repo := new(mockDocRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, nil)

	_, err := service.Get(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestService_Update_RecountsWords(t *testing.T) {
	repo := new(mockDocRepo)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Document{
		ID: 10, OwnerID: 1, Title: "Old", Content: "old text", WordCount: 2,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Title == "New" && d.WordCount == 3
	})).Return(nil)

	service := NewService(repo, nil)

	newTitle := "New"
	newContent := "one two three"
	doc, err := service.Update(context.Background(), 1, 10, UpdateDocumentRequest{
		Title:   &newTitle,
		Content: &newContent,
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, doc.WordCount)
	repo.AssertExpectations(t)
}

func TestService_Delete_DropsChatHistory(t *testing.T) {
	repo := new(mockDocRepo)
	chat := new(mockChatCleaner)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Document{ID: 10, OwnerID: 1}, nil)
	repo.On("Delete", mock.Anything, int64(10)).Return(nil)
	chat.On("DeleteByDocument", mock.Anything, int64(10)).Return(nil)

	service := NewService(repo, chat)

	err := service.Delete(context.Background(), 1, 10)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	chat.AssertExpectations(t)
}

func TestService_List_ClampsPaging(t *testing.T) {
	repo := new(mockDocRepo)
	repo.On("ListByOwner", mock.Anything, int64(1), 20, 0).Return([]domain.Document{}, int64(0), nil)

	service := NewService(repo, nil)

	_, _, err := service.List(context.Background(), 1, -5, 1000)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cms/internal/errors"
	"cms/internal/model"
)

func activeAuthor(id uint) *model.User {
	return &model.User{ID: id, IsActive: true, Role: model.Role{Name: model.RoleAuthor}}
}

func activeSuperuser(id uint) *model.User {
	return &model.User{ID: id, IsActive: true, IsSuperuser: true, Role: model.Role{Name: model.RoleSuperAdmin}}
}

func TestContentService_Get(t *testing.T) {
	tests := []struct {
		name          string
		user          *model.User
		setupMock     func(*MockContentRepository)
		expectedError error
	}{
		{
			name: "author reads own item",
			user: activeAuthor(7),
			setupMock: func(m *MockContentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.ContentItem{ID: 1, AuthorID: 7, Title: "First"}, nil)
			},
		},
		{
			name: "superuser reads any item",
			user: activeSuperuser(99),
			setupMock: func(m *MockContentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.ContentItem{ID: 1, AuthorID: 7, Title: "First"}, nil)
			},
		},
		{
			name: "foreign item is forbidden",
			user: activeAuthor(8),
			setupMock: func(m *MockContentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.ContentItem{ID: 1, AuthorID: 7, Title: "First"}, nil)
			},
			expectedError: errors.ErrContentForbidden,
		},
		{
			name: "missing item",
			user: activeAuthor(7),
			setupMock: func(m *MockContentRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrContentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContentRepository)
			tt.setupMock(mockRepo)

			service := NewContentService(mockRepo)
			item, err := service.Get(context.Background(), tt.user, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(1), item.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContentService_ListForAuthor(t *testing.T) {
	user := activeAuthor(7)

	tests := []struct {
		name               string
		page, items        int
		setupMock          func(*MockContentRepository)
		expectedError      error
		expectedLen        int
		expectedPagination *Pagination
	}{
		{
			name:  "zero page reads as page one",
			page:  0,
			items: 10,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(12), nil)
				m.On("FindByAuthor", mock.Anything, uint(7), 0, 10).Return(make([]model.ContentItem, 10), nil)
			},
			expectedLen:        10,
			expectedPagination: &Pagination{TotalEntries: 12, Page: 1, Items: 10, TotalPages: 2},
		},
		{
			name:  "zero items on a non-empty collection is an invalid page",
			page:  1,
			items: 0,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(12), nil)
				m.On("FindByAuthor", mock.Anything, uint(7), 0, 0).Return([]model.ContentItem{}, nil)
			},
			expectedError: errors.ErrInvalidPage,
		},
		{
			name:  "zero items on an empty collection is not",
			page:  1,
			items: 0,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(0), nil)
			},
			expectedLen: 0,
		},
		{
			name:  "items of one resets to the default",
			page:  1,
			items: 1,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(3), nil)
				m.On("FindByAuthor", mock.Anything, uint(7), 0, 10).Return(make([]model.ContentItem, 3), nil)
			},
			expectedLen:        3,
			expectedPagination: &Pagination{TotalEntries: 3, Page: 1, Items: 10, TotalPages: 1},
		},
		{
			name:  "second page offsets by page minus one",
			page:  2,
			items: 5,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(12), nil)
				m.On("FindByAuthor", mock.Anything, uint(7), 5, 5).Return(make([]model.ContentItem, 5), nil)
			},
			expectedLen:        5,
			expectedPagination: &Pagination{TotalEntries: 12, Page: 2, Items: 5, TotalPages: 3},
		},
		{
			name:  "empty collection is not an error",
			page:  1,
			items: 10,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(0), nil)
			},
			expectedLen: 0,
		},
		{
			name:  "page past the end of a non-empty collection",
			page:  9,
			items: 10,
			setupMock: func(m *MockContentRepository) {
				m.On("CountByAuthor", mock.Anything, uint(7)).Return(int64(12), nil)
				m.On("FindByAuthor", mock.Anything, uint(7), 80, 10).Return([]model.ContentItem{}, nil)
			},
			expectedError: errors.ErrInvalidPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContentRepository)
			tt.setupMock(mockRepo)

			service := NewContentService(mockRepo)
			results, pagination, err := service.ListForAuthor(context.Background(), user, tt.page, tt.items)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Len(t, results, tt.expectedLen)
				assert.Equal(t, tt.expectedPagination, pagination)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContentService_Create(t *testing.T) {
	user := activeAuthor(7)

	tests := []struct {
		name             string
		input            CreateContentInput
		setupMock        func(*MockContentRepository)
		expectedMessages []string
	}{
		{
			name:  "successful create",
			input: CreateContentInput{Title: "First post", Body: "Hello there."},
			setupMock: func(m *MockContentRepository) {
				m.On("ExistsByTitle", mock.Anything, "First post").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.ContentItem")).Return(nil)
			},
		},
		{
			name:      "missing title and body aggregate",
			input:     CreateContentInput{},
			setupMock: func(m *MockContentRepository) {},
			expectedMessages: []string{
				"Title is required.",
				"Body is required.",
			},
		},
		{
			name:      "overlong title",
			input:     CreateContentInput{Title: strings.Repeat("t", 31), Body: "Hello there."},
			setupMock: func(m *MockContentRepository) {},
			expectedMessages: []string{
				"Title length must not exceed 30 characters.",
			},
		},
		{
			name:  "limits count characters, not bytes",
			input: CreateContentInput{Title: strings.Repeat("ä", 30), Body: strings.Repeat("ü", 300)},
			setupMock: func(m *MockContentRepository) {
				m.On("ExistsByTitle", mock.Anything, strings.Repeat("ä", 30)).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.ContentItem")).Return(nil)
			},
		},
		{
			name:      "overlong multibyte title",
			input:     CreateContentInput{Title: strings.Repeat("ä", 31), Body: "Hello there."},
			setupMock: func(m *MockContentRepository) {},
			expectedMessages: []string{
				"Title length must not exceed 30 characters.",
			},
		},
		{
			name:      "overlong body",
			input:     CreateContentInput{Title: "First post", Body: strings.Repeat("b", 301)},
			setupMock: func(m *MockContentRepository) {
				m.On("ExistsByTitle", mock.Anything, "First post").Return(false, nil)
			},
			expectedMessages: []string{
				"Body length must not exceed 300 characters.",
			},
		},
		{
			name:  "duplicate title",
			input: CreateContentInput{Title: "First post", Body: "Hello there."},
			setupMock: func(m *MockContentRepository) {
				m.On("ExistsByTitle", mock.Anything, "First post").Return(true, nil)
			},
			expectedMessages: []string{
				"Title already exists. Please choose a different title.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContentRepository)
			tt.setupMock(mockRepo)

			service := NewContentService(mockRepo)
			item, err := service.Create(context.Background(), user, tt.input)

			if tt.expectedMessages != nil {
				assert.Nil(t, item)
				var verr *errors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.expectedMessages, verr.Messages)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user.ID, item.AuthorID)
				assert.Equal(t, tt.input.Title, item.Title)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContentService_Update(t *testing.T) {
	user := activeAuthor(7)
	stored := func() *model.ContentItem {
		return &model.ContentItem{ID: 1, AuthorID: 7, Title: "First post", Body: "Hello there.", Summary: "old"}
	}
	ptr := func(s string) *string { return &s }

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.ContentItem")).Return(nil)

		service := NewContentService(mockRepo)
		item, err := service.Update(context.Background(), user, 1, UpdateContentInput{Summary: ptr("new summary")})

		assert.NoError(t, err)
		assert.Equal(t, "First post", item.Title)
		assert.Equal(t, "new summary", item.Summary)
		mockRepo.AssertExpectations(t)
	})

	t.Run("own title passes the uniqueness probe", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.ContentItem")).Return(nil)

		service := NewContentService(mockRepo)
		_, err := service.Update(context.Background(), user, 1, UpdateContentInput{Title: ptr("First post")})

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "ExistsByTitle", mock.Anything, mock.Anything)
	})

	t.Run("new title collides", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(stored(), nil)
		mockRepo.On("ExistsByTitle", mock.Anything, "Taken").Return(true, nil)

		service := NewContentService(mockRepo)
		item, err := service.Update(context.Background(), user, 1, UpdateContentInput{Title: ptr("Taken")})

		assert.Nil(t, item)
		var verr *errors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Title already exists. Please choose a different title."}, verr.Messages)
	})

	t.Run("foreign item is forbidden before validation", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(stored(), nil)

		service := NewContentService(mockRepo)
		_, err := service.Update(context.Background(), activeAuthor(8), 1, UpdateContentInput{Title: ptr("")})

		assert.ErrorIs(t, err, errors.ErrContentForbidden)
		mockRepo.AssertNotCalled(t, "ExistsByTitle", mock.Anything, mock.Anything)
	})
}

func TestContentService_Delete(t *testing.T) {
	item := &model.ContentItem{ID: 1, AuthorID: 7, Title: "First post"}

	t.Run("author deletes own item", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(item, nil)
		mockRepo.On("Delete", mock.Anything, item).Return(nil)

		service := NewContentService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), activeAuthor(7), 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("foreign item is forbidden", func(t *testing.T) {
		mockRepo := new(MockContentRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(item, nil)

		service := NewContentService(mockRepo)
		err := service.Delete(context.Background(), activeAuthor(8), 1)

		assert.ErrorIs(t, err, errors.ErrContentForbidden)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

package services

import (
	"block-notes/models"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockRepository is a mock implementation of NoteRepository interface
type MockRepository struct {
	mock.Mock
}

// Ensure MockRepository implements NoteRepository interface
var _ NoteRepository = (*MockRepository)(nil)

// RunInTx runs f directly; transactions are covered by the database tests.
func (m *MockRepository) RunInTx(ctx context.Context, f func(context.Context) error) error {
	return f(ctx)
}

func (m *MockRepository) ListNotesByUser(ctx context.Context, userID string) ([]models.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockRepository) GetNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockRepository) CreateNote(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockRepository) DeleteNote(ctx context.Context, userID, noteID string) (bool, error) {
	args := m.Called(ctx, userID, noteID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetBlocksByNote(ctx context.Context, noteID string) ([]models.Block, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockRepository) GetBlocksByUser(ctx context.Context, userID string) (map[string][]models.Block, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.Block), args.Error(1)
}

func (m *MockRepository) GetBlock(ctx context.Context, userID, blockID string) (*models.Block, error) {
	args := m.Called(ctx, userID, blockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Block), args.Error(1)
}

func (m *MockRepository) CreateBlock(ctx context.Context, block *models.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockRepository) UpdateBlockData(ctx context.Context, block *models.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockRepository) DeleteBlock(ctx context.Context, blockID string) (bool, error) {
	args := m.Called(ctx, blockID)
	return args.Bool(0), args.Error(1)
}

// ==================== TESTS ====================

func TestNoteService_List(t *testing.T) {
	created := time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		mockSetup     func(*MockRepository)
		expectedNotes []models.Note
		expectedError error
	}{
		{
			name: "Success - Blocks attached to their notes",
			mockSetup: func(repo *MockRepository) {
				repo.On("ListNotesByUser", mock.Anything, "user123").Return([]models.Note{
					{ID: "n2", UserID: "user123", Title: "second", CreatedAt: created},
					{ID: "n1", UserID: "user123", Title: "first", CreatedAt: created},
				}, nil)
				repo.On("GetBlocksByUser", mock.Anything, "user123").Return(map[string][]models.Block{
					"n1": {{ID: "b1", NoteID: "n1", Type: models.BlockTypeText}},
				}, nil)
			},
			expectedNotes: []models.Note{
				{ID: "n2", UserID: "user123", Title: "second", CreatedAt: created, Blocks: []models.Block{}},
				{ID: "n1", UserID: "user123", Title: "first", CreatedAt: created, Blocks: []models.Block{
					{ID: "b1", NoteID: "n1", Type: models.BlockTypeText},
				}},
			},
		},
		{
			name: "Success - No notes",
			mockSetup: func(repo *MockRepository) {
				repo.On("ListNotesByUser", mock.Anything, "user123").Return([]models.Note{}, nil)
				repo.On("GetBlocksByUser", mock.Anything, "user123").Return(map[string][]models.Block{}, nil)
			},
			expectedNotes: []models.Note{},
		},
		{
			name: "Error - Listing notes fails",
			mockSetup: func(repo *MockRepository) {
				repo.On("ListNotesByUser", mock.Anything, "user123").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name: "Error - Listing blocks fails",
			mockSetup: func(repo *MockRepository) {
				repo.On("ListNotesByUser", mock.Anything, "user123").Return([]models.Note{{ID: "n1"}}, nil)
				repo.On("GetBlocksByUser", mock.Anything, "user123").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.mockSetup(mockRepo)

			service := NewNoteService(mockRepo, nil)
			notes, err := service.List(context.Background(), "user123")

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, notes)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedNotes, notes)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Create(t *testing.T) {
	t.Run("Success - Default text block at position 0", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("CreateNote", mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
			return n.UserID == "user123" && n.Title == "Groceries"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Note).ID = "note-1"
		}).Return(nil)
		mockRepo.On("CreateBlock", mock.Anything, mock.MatchedBy(func(b *models.Block) bool {
			return b.NoteID == "note-1" && b.Type == models.BlockTypeText && b.Position == 0 && len(b.Data) == 0
		})).Return(nil)

		service := NewNoteService(mockRepo, nil)
		note, err := service.Create(context.Background(), "user123", "Groceries")

		require.NoError(t, err)
		assert.Equal(t, "note-1", note.ID)
		require.Len(t, note.Blocks, 1)
		assert.Equal(t, models.BlockTypeText, note.Blocks[0].Type)
		assert.Equal(t, models.Payload{}, note.Blocks[0].Data)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Default block insert fails", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("CreateNote", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("CreateBlock", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		service := NewNoteService(mockRepo, nil)
		note, err := service.Create(context.Background(), "user123", "Groceries")

		assert.EqualError(t, err, "disk full")
		assert.Nil(t, note)
	})

	t.Run("Error - Note insert fails", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("CreateNote", mock.Anything, mock.Anything).Return(errors.New("database error"))

		service := NewNoteService(mockRepo, nil)
		_, err := service.Create(context.Background(), "user123", "Groceries")

		assert.EqualError(t, err, "database error")
		mockRepo.AssertNotCalled(t, "CreateBlock", mock.Anything, mock.Anything)
	})
}

func TestNoteService_Get(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name: "Success - Note with blocks",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", mock.Anything, "user123", "note-1").Return(&models.Note{ID: "note-1", UserID: "user123"}, nil)
				repo.On("GetBlocksByNote", mock.Anything, "note-1").Return([]models.Block{{ID: "b1"}}, nil)
			},
		},
		{
			name: "Error - Missing or foreign note",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", mock.Anything, "user123", "note-1").Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name: "Error - Repository error",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", mock.Anything, "user123", "note-1").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.mockSetup(mockRepo)

			service := NewNoteService(mockRepo, nil)
			note, err := service.Get(context.Background(), "user123", "note-1")

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "note-1", note.ID)
				assert.Len(t, note.Blocks, 1)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		deleted       bool
		repoErr       error
		expectedError error
	}{
		{name: "Success", deleted: true},
		{name: "Error - Nothing deleted", deleted: false, expectedError: ErrNoteNotFound},
		{name: "Error - Repository error", repoErr: errors.New("database error"), expectedError: errors.New("database error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockRepo.On("DeleteNote", mock.Anything, "user123", "note-1").Return(tt.deleted, tt.repoErr)

			service := NewNoteService(mockRepo, nil)
			err := service.Delete(context.Background(), "user123", "note-1")

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_CreateBlock(t *testing.T) {
	tests := []struct {
		name          string
		blockType     models.BlockType
		position      int
		data          models.Payload
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name:      "Success - Todo block",
			blockType: models.BlockTypeTodo,
			position:  1,
			data:      models.Payload{"items": []any{}},
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", mock.Anything, "user123", "note-1").Return(&models.Note{ID: "note-1"}, nil)
				repo.On("CreateBlock", mock.Anything, mock.MatchedBy(func(b *models.Block) bool {
					return b.NoteID == "note-1" && b.Type == models.BlockTypeTodo && b.Position == 1
				})).Return(nil)
			},
		},
		{
			name:      "Success - Nil payload becomes empty object",
			blockType: models.BlockTypeCalendar,
			position:  0,
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", mock.Anything, "user123", "note-1").Return(&models.Note{ID: "note-1"}, nil)
				repo.On("CreateBlock", mock.Anything, mock.MatchedBy(func(b *models.Block) bool {
					return b.Data != nil && len(b.Data) == 0
				})).Return(nil)
			},
		},
		{
			name:      "Error - Parent note missing",
			blockType: models.BlockTypeText,
			mockSetup: func(repo *MockRepository) {
				repo.On("GetNote", mock.Anything, "user123", "note-1").Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name:          "Error - Unknown type",
			blockType:     "image",
			mockSetup:     func(repo *MockRepository) {},
			expectedError: ErrInvalidBlockType,
		},
		{
			name:          "Error - Negative position",
			blockType:     models.BlockTypeTable,
			position:      -1,
			mockSetup:     func(repo *MockRepository) {},
			expectedError: ErrInvalidPosition,
		},
		{
			name:          "Error - Position beyond int32",
			blockType:     models.BlockTypeText,
			position:      math.MaxInt32 + 1,
			mockSetup:     func(repo *MockRepository) {},
			expectedError: ErrInvalidPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.mockSetup(mockRepo)

			service := NewNoteService(mockRepo, nil)
			block, err := service.CreateBlock(context.Background(), "user123", "note-1", tt.blockType, tt.position, tt.data)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, block)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.blockType, block.Type)
				assert.Equal(t, tt.position, block.Position)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_UpdateBlock(t *testing.T) {
	t.Run("Success - Payload replaced", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetBlock", mock.Anything, "user123", "block-1").Return(&models.Block{
			ID:   "block-1",
			Type: models.BlockTypeText,
			Data: models.Payload{"text": "old", "color": "red"},
		}, nil)
		mockRepo.On("UpdateBlockData", mock.Anything, mock.MatchedBy(func(b *models.Block) bool {
			_, kept := b.Data["color"]
			return b.ID == "block-1" && b.Data["text"] == "new" && !kept
		})).Return(nil)

		service := NewNoteService(mockRepo, nil)
		block, err := service.UpdateBlock(context.Background(), "user123", "block-1", models.Payload{"text": "new"})

		require.NoError(t, err)
		assert.Equal(t, models.Payload{"text": "new"}, block.Data)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Block not visible to caller", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetBlock", mock.Anything, "intruder", "block-1").Return(nil, nil)

		service := NewNoteService(mockRepo, nil)
		block, err := service.UpdateBlock(context.Background(), "intruder", "block-1", models.Payload{})

		assert.ErrorIs(t, err, ErrBlockNotFound)
		assert.Nil(t, block)
		mockRepo.AssertNotCalled(t, "UpdateBlockData", mock.Anything, mock.Anything)
	})
}

func TestNoteService_DeleteBlock(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name: "Success",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetBlock", mock.Anything, "user123", "block-1").Return(&models.Block{ID: "block-1"}, nil)
				repo.On("DeleteBlock", mock.Anything, "block-1").Return(true, nil)
			},
		},
		{
			name: "Error - Block not visible to caller",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetBlock", mock.Anything, "user123", "block-1").Return(nil, nil)
			},
			expectedError: ErrBlockNotFound,
		},
		{
			name: "Error - Delete fails",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetBlock", mock.Anything, "user123", "block-1").Return(&models.Block{ID: "block-1"}, nil)
				repo.On("DeleteBlock", mock.Anything, "block-1").Return(false, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.mockSetup(mockRepo)

			service := NewNoteService(mockRepo, nil)
			err := service.DeleteBlock(context.Background(), "user123", "block-1")

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

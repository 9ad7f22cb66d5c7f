// File: internal/repository/message/message_repository_test.go
package message

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/launchkit/launchkit/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Message{}))
	return db
}

func TestUpsertIsIdempotentByID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	first := &domain.Message{
		ID:       "msg-1",
		ThreadID: "thread-1",
		Role:     domain.RoleUser,
		Parts:    domain.MessageParts{{Type: domain.PartTypeText, Text: "a"}},
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.Message{
		ID:       "msg-1",
		ThreadID: "thread-1",
		Role:     domain.RoleUser,
		Parts:    domain.MessageParts{{Type: domain.PartTypeText, Text: "b"}},
	}
	require.NoError(t, repo.Upsert(ctx, second))

	count, err := repo.CountByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "b", stored[0].TextContent())
}

func TestFindByThreadIDOrdersByCreation(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	msgs := []*domain.Message{
		{ID: "m-2", ThreadID: "t", Role: domain.RoleAssistant, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "m-1", ThreadID: "t", Role: domain.RoleUser, CreatedAt: base.Add(1 * time.Minute)},
		{ID: "m-3", ThreadID: "t", Role: domain.RoleUser, CreatedAt: base.Add(3 * time.Minute)},
	}
	require.NoError(t, repo.UpsertBatch(ctx, msgs))

	stored, err := repo.FindByThreadID(ctx, "t")
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "m-1", stored[0].ID)
	assert.Equal(t, "m-2", stored[1].ID)
	assert.Equal(t, "m-3", stored[2].ID)
}

func TestUpsertRejectsInvalidMessage(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	err := repo.Upsert(context.Background(), &domain.Message{
		ID:       "",
		ThreadID: "t",
		Role:     domain.RoleUser,
	})
	assert.Error(t, err)
}

func TestDeleteByThreadID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Message{ID: "m-1", ThreadID: "t", Role: domain.RoleUser}))
	require.NoError(t, repo.Upsert(ctx, &domain.Message{ID: "m-2", ThreadID: "other", Role: domain.RoleUser}))

	require.NoError(t, repo.DeleteByThreadID(ctx, "t"))

	count, err := repo.CountByThreadID(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = repo.CountByThreadID(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

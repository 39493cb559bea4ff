package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

func TestKey(t *testing.T) {
	day := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "sessions:v0:all:all", Key(0, model.SessionFilter{}))
	assert.Equal(t, "sessions:v7:c1:2026-03-14", Key(7, model.SessionFilter{CenterID: "c1", Day: day}))
}

func TestSessionCache_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSessionCache(db, time.Minute)
	ctx := context.Background()
	f := model.SessionFilter{CenterID: "c1"}

	want := []model.Session{{ID: "s1", CenterID: "c1", Capacity: 10, BookedCount: 3}}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectGet(versionKey).SetVal("4")
	mock.ExpectGet("sessions:v4:c1:all").SetVal(string(raw))

	got, ok := c.Get(ctx, f)
	assert.True(t, ok)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, 3, got[0].BookedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCache_MissWithoutVersion(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSessionCache(db, time.Minute)

	mock.ExpectGet(versionKey).RedisNil()
	mock.ExpectGet("sessions:v0:all:all").RedisNil()

	_, ok := c.Get(context.Background(), model.SessionFilter{})
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCache_ErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSessionCache(db, time.Minute)

	mock.ExpectGet(versionKey).SetErr(errors.New("connection refused"))

	_, ok := c.Get(context.Background(), model.SessionFilter{})
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCache_SetUsesCurrentVersion(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSessionCache(db, time.Minute)
	sessions := []model.Session{{ID: "s1"}}

	raw, err := json.Marshal(sessions)
	require.NoError(t, err)

	mock.ExpectGet(versionKey).SetVal("2")
	mock.ExpectSet("sessions:v2:all:all", raw, time.Minute).SetVal("OK")

	c.Set(context.Background(), model.SessionFilter{}, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSessionCache(db, time.Minute)

	mock.ExpectIncr(versionKey).SetVal(3)

	c.Invalidate(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCache_Disabled(t *testing.T) {
	var nilCache *SessionCache
	_, ok := nilCache.Get(context.Background(), model.SessionFilter{})
	assert.False(t, ok)

	c := NewSessionCache(nil, 0)
	c.Set(context.Background(), model.SessionFilter{}, nil)
	c.Invalidate(context.Background())
	assert.Equal(t, defaultTTL, c.ttl)
}

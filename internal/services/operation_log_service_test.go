package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometrics/internal/models"
)

func seedLog(t *testing.T, env *testEnv, userID int64, action models.OperationAction, at time.Time) {
	t.Helper()
	require.NoError(t, env.logRepo.Create(context.Background(), &models.OperationLog{
		UserID:      userID,
		Action:      action,
		TargetTable: "eco_records",
		CreatedAt:   at,
	}))
}

func TestQueryLogsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "@root", models.RoleAdmin)
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	seedLog(t, env, admin.ID, models.ActionCreate, base)
	seedLog(t, env, admin.ID, models.ActionUpdate, base.Add(time.Hour))
	seedLog(t, env, admin.ID, models.ActionDelete, base.Add(2*time.Hour))

	page, err := env.logs.Query(context.Background(), LogFilter{})
	require.NoError(t, err)
	require.Len(t, page.Logs, 3)
	assert.Equal(t, models.ActionDelete, page.Logs[0].Action)
	assert.Equal(t, models.ActionCreate, page.Logs[2].Action)
	assert.Equal(t, "@root", page.Logs[0].Username)
	assert.Equal(t, LogPagination{CurrentPage: 1, TotalPages: 1, TotalCount: 3}, page.Pagination)
}

func TestQueryLogsFilters(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "@alice", models.RoleUser)
	bob := env.createUser(t, "@bob", models.RoleUser)

	seedLog(t, env, alice.ID, models.ActionCreate, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	seedLog(t, env, alice.ID, models.ActionUpdate, time.Date(2024, 1, 2, 23, 30, 0, 0, time.UTC))
	seedLog(t, env, bob.ID, models.ActionCreate, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))
	seedLog(t, env, bob.ID, models.ActionDelete, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

	ctx := context.Background()

	t.Run("by user", func(t *testing.T) {
		page, err := env.logs.Query(ctx, LogFilter{UserID: &bob.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.TotalCount)
		for _, l := range page.Logs {
			assert.Equal(t, bob.ID, l.UserID)
		}
	})

	t.Run("by action", func(t *testing.T) {
		page, err := env.logs.Query(ctx, LogFilter{Action: "CREATE"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.TotalCount)
	})

	t.Run("end date covers the whole day", func(t *testing.T) {
		start, end := day("2024-01-02"), day("2024-01-02")
		page, err := env.logs.Query(ctx, LogFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, page.Logs, 2)
		assert.Equal(t, models.ActionUpdate, page.Logs[0].Action)
		assert.Equal(t, models.ActionCreate, page.Logs[1].Action)
	})

	t.Run("filters combine", func(t *testing.T) {
		start := day("2024-01-02")
		page, err := env.logs.Query(ctx, LogFilter{StartDate: &start, UserID: &alice.ID, Action: "UPDATE"})
		require.NoError(t, err)
		assert.Len(t, page.Logs, 1)
	})
}

func TestQueryLogsPagination(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "@root", models.RoleAdmin)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedLog(t, env, admin.ID, models.ActionCreate, base.Add(time.Duration(i)*time.Minute))
	}

	page, err := env.logs.Query(context.Background(), LogFilter{Page: ptr(2), Limit: ptr(2)})
	require.NoError(t, err)
	assert.Len(t, page.Logs, 2)
	assert.Equal(t, LogPagination{CurrentPage: 2, TotalPages: 3, TotalCount: 5, HasNext: true, HasPrev: true}, page.Pagination)

	page, err = env.logs.Query(context.Background(), LogFilter{Page: ptr(3), Limit: ptr(2)})
	require.NoError(t, err)
	assert.Len(t, page.Logs, 1)
	assert.False(t, page.Pagination.HasNext)
}

func TestQueryLogsRejectsInvalidFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.logs.Query(ctx, LogFilter{Action: "DROP"})
	requireValidationCode(t, err, CodeInvalidAction)

	for _, filter := range []LogFilter{
		{Limit: ptr(101)},
		{Limit: ptr(0)},
		{Page: ptr(-2)},
		{Page: ptr(0)},
	} {
		_, err = env.logs.Query(ctx, filter)
		requireValidationCode(t, err, CodeInvalidPagination)
	}
}

func TestRecordSwallowsErrors(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.NotPanics(t, func() {
		env.logs.Record(context.Background(), LogEntry{UserID: 1, Action: models.ActionCreate, TableName: "eco_records"})
	})
}

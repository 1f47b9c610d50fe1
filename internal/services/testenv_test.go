package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecometrics/internal/auth"
	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/repositories"
	"github.com/ecometrics/pkg/db"
)

type testEnv struct {
	db      *gorm.DB
	users   repositories.UserRepository
	records repositories.EcoRecordRepository
	logRepo repositories.OperationLogRepository
	auth    AuthService
	logs    OperationLogService
	eco     EcoRecordService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", ""))
	gormDB, err := db.Open(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() { db.CloseDB(gormDB) })

	env := &testEnv{
		db:      gormDB,
		users:   repositories.NewGormUserRepository(gormDB),
		records: repositories.NewGormEcoRecordRepository(gormDB),
		logRepo: repositories.NewGormOperationLogRepository(gormDB),
	}
	env.auth = NewAuthService(env.users, auth.NewJWTManager("test-secret", time.Hour))
	env.logs = NewOperationLogService(env.logRepo)
	env.eco = NewEcoRecordService(env.records, env.logs)
	return env
}

// createUser 直接写入一个用户，密码为 "secret1"
func (e *testEnv) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: hashed, Role: role}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) allLogs(t *testing.T) []models.OperationLog {
	t.Helper()
	var logs []models.OperationLog
	require.NoError(t, e.db.Order("id asc").Find(&logs).Error)
	return logs
}

func requireValidationCode(t *testing.T, err error, code string) *ValidationError {
	t.Helper()
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.Equal(t, code, ve.Code)
	return ve
}

func ptr[T any](v T) *T {
	return &v
}

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/repositories"
)

func sampleInput(date string) models.EcoRecordInput {
	return models.EcoRecordInput{
		Date:             date,
		PowerConsumption: 100,
		DrinkingWater:    30,
		IrrigationWater:  20,
		ElectricityPrice: 25,
	}
}

func TestCreateRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "@alice", models.RoleUser)
	actor := Actor{UserID: user.ID, IPAddress: "203.0.113.7"}

	record, err := env.eco.Create(ctx, sampleInput("2024-01-01"), actor)
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.Equal(t, user.ID, record.CreatedBy)
	assert.Nil(t, record.UpdatedBy)

	resp := record.ToResponse()
	assert.Equal(t, "2024-01-01", resp.Date)
	assert.Equal(t, 2.0, resp.Efficiency)
	assert.Equal(t, 2500.0, resp.DailyCost)
	require.NotNil(t, resp.CreatedByName)
	assert.Equal(t, "@alice", *resp.CreatedByName)

	logs := env.allLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreate, logs[0].Action)
	assert.Equal(t, "eco_records", logs[0].TargetTable)
	require.NotNil(t, logs[0].RecordID)
	assert.Equal(t, record.ID, *logs[0].RecordID)
	assert.Equal(t, "2024-01-01", logs[0].NewData["date"])
	require.NotNil(t, logs[0].IPAddress)
	assert.Equal(t, "203.0.113.7", *logs[0].IPAddress)
	require.NotNil(t, logs[0].Description)
	assert.Equal(t, "Created water and electricity record (2024-01-01)", *logs[0].Description)
}

func TestCreateRecordValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}

	_, err := env.eco.Create(ctx, sampleInput("2024-01-01"), actor)
	require.NoError(t, err)

	_, err = env.eco.Create(ctx, sampleInput("2024-01-01"), actor)
	ve := requireValidationCode(t, err, CodeDuplicateDate)
	assert.Equal(t, "date", ve.Field)

	_, err = env.eco.Create(ctx, sampleInput("01/02/2024"), actor)
	requireValidationCode(t, err, CodeInvalidDate)

	negative := sampleInput("2024-01-03")
	negative.IrrigationWater = -1
	_, err = env.eco.Create(ctx, negative, actor)
	ve = requireValidationCode(t, err, CodeNegativeValue)
	assert.Equal(t, "irrigationWater", ve.Field)

	assert.Len(t, env.allLogs(t), 1, "rejected writes are not audited")
}

func TestDeleteThenRecreateSameDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}

	first, err := env.eco.Create(ctx, sampleInput("2024-05-01"), actor)
	require.NoError(t, err)
	require.NoError(t, env.eco.Delete(ctx, first.ID, actor))

	second, err := env.eco.Create(ctx, sampleInput("2024-05-01"), actor)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	logs := env.allLogs(t)
	require.Len(t, logs, 3)
	assert.Equal(t, models.ActionDelete, logs[1].Action)
	assert.Equal(t, "2024-05-01", logs[1].OldData["date"])
	assert.Empty(t, logs[1].NewData)
}

func TestDeleteMissingRecord(t *testing.T) {
	env := newTestEnv(t)
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	assert.ErrorIs(t, env.eco.Delete(context.Background(), 404, actor), ErrRecordNotFound)
}

func TestUpdateRecordPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "@alice", models.RoleUser)
	bob := env.createUser(t, "@bob", models.RoleUser)

	created, err := env.eco.Create(ctx, sampleInput("2024-02-01"), Actor{UserID: alice.ID})
	require.NoError(t, err)

	updated, err := env.eco.Update(ctx, created.ID, models.UpdateEcoRecordPayload{
		ElectricityPrice: ptr(30.0),
	}, Actor{UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.ElectricityPrice)
	assert.Equal(t, 100.0, updated.PowerConsumption, "untouched fields keep their values")
	assert.Equal(t, 30.0, updated.DrinkingWater)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, bob.ID, *updated.UpdatedBy)
	assert.Equal(t, 3000.0, updated.DailyCost())
	resp := updated.ToResponse()
	require.NotNil(t, resp.UpdatedByName)
	assert.Equal(t, "@bob", *resp.UpdatedByName)

	logs := env.allLogs(t)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActionUpdate, logs[1].Action)
	assert.Equal(t, bob.ID, logs[1].UserID)
	assert.Equal(t, "25", fmt.Sprint(logs[1].OldData["electricityPrice"]))
	assert.Equal(t, "30", fmt.Sprint(logs[1].NewData["electricityPrice"]))
	assert.NotContains(t, logs[1].NewData, "powerConsumption")
}

func TestUpdateRecordErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	created, err := env.eco.Create(ctx, sampleInput("2024-02-01"), actor)
	require.NoError(t, err)

	_, err = env.eco.Update(ctx, created.ID, models.UpdateEcoRecordPayload{}, actor)
	requireValidationCode(t, err, CodeNoFieldsToUpdate)

	_, err = env.eco.Update(ctx, created.ID, models.UpdateEcoRecordPayload{PowerConsumption: ptr(-5.0)}, actor)
	requireValidationCode(t, err, CodeNegativeValue)

	_, err = env.eco.Update(ctx, created.ID+100, models.UpdateEcoRecordPayload{PowerConsumption: ptr(5.0)}, actor)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestClearAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := env.eco.Create(ctx, sampleInput(d), actor)
		require.NoError(t, err)
	}

	_, err := env.eco.ClearAll(ctx, false, actor)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	count, err := env.eco.ClearAll(ctx, true, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	list, err := env.eco.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Records)

	logs := env.allLogs(t)
	last := logs[len(logs)-1]
	assert.Equal(t, models.ActionDelete, last.Action)
	assert.Nil(t, last.RecordID)
	require.NotNil(t, last.Description)
	assert.Equal(t, "Cleared all data (3 records)", *last.Description)
}

func TestImportWithoutOverwrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	_, err := env.eco.Create(ctx, sampleInput("2024-01-01"), actor)
	require.NoError(t, err)

	changed := sampleInput("2024-01-01")
	changed.PowerConsumption = 999
	bad := sampleInput("not-a-date")
	negative := sampleInput("2024-01-04")
	negative.DrinkingWater = -3

	result, err := env.eco.Import(ctx, []models.EcoRecordInput{
		changed, sampleInput("2024-01-02"), sampleInput("2024-01-03"), bad, negative,
	}, false, actor)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Error importing record for not-a-date: ")
	assert.Contains(t, result.Errors[1], "Error importing record for 2024-01-04: ")

	existing, err := env.records.GetByDate(ctx, day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, existing.PowerConsumption, "skipped records are not modified")

	logs := env.allLogs(t)
	last := logs[len(logs)-1]
	assert.Equal(t, models.ActionCreate, last.Action)
	assert.Nil(t, last.RecordID)
	require.NotNil(t, last.Description)
	assert.Equal(t, "Batch imported data (imported: 2, updated: 0, skipped: 1)", *last.Description)
}

func TestImportWithOverwrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "@alice", models.RoleUser)
	bob := env.createUser(t, "@bob", models.RoleUser)
	_, err := env.eco.Create(ctx, sampleInput("2024-01-01"), Actor{UserID: alice.ID})
	require.NoError(t, err)

	changed := sampleInput("2024-01-01")
	changed.PowerConsumption = 50
	result, err := env.eco.Import(ctx, []models.EcoRecordInput{changed, sampleInput("2024-01-02")}, true, Actor{UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	existing, err := env.records.GetByDate(ctx, day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 50.0, existing.PowerConsumption)
	assert.Equal(t, alice.ID, existing.CreatedBy)
	require.NotNil(t, existing.UpdatedBy)
	assert.Equal(t, bob.ID, *existing.UpdatedBy)
}

func TestListSortingAndPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	powers := map[string]float64{"2024-01-01": 30, "2024-01-02": 10, "2024-01-03": 20, "2024-01-04": 40}
	for d, p := range powers {
		in := sampleInput(d)
		in.PowerConsumption = p
		_, err := env.eco.Create(ctx, in, actor)
		require.NoError(t, err)
	}

	list, err := env.eco.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, list.Records, 4)
	assert.Equal(t, "2024-01-04", list.Records[0].Date, "default order is newest first")
	assert.Equal(t, int64(1), list.Pagination.Pages)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Nil(t, list.Pagination.Limit, "no limit means all rows")
	assert.Equal(t, "2024-01-01", list.Summary.DateRange.Start)
	assert.Equal(t, "2024-01-04", list.Summary.DateRange.End)

	list, err = env.eco.List(ctx, ListFilter{SortBy: "power", SortOrder: "asc", Page: ptr(2), Limit: ptr(2)})
	require.NoError(t, err)
	require.Len(t, list.Records, 2)
	assert.Equal(t, 30.0, list.Records[0].PowerConsumption)
	assert.Equal(t, 40.0, list.Records[1].PowerConsumption)
	assert.Equal(t, int64(4), list.Pagination.Total)
	assert.Equal(t, int64(2), list.Pagination.Pages)
	require.NotNil(t, list.Pagination.Limit)
	assert.Equal(t, 2, *list.Pagination.Limit)
	assert.Equal(t, int64(4), list.Summary.TotalRecords)

	start, end := day("2024-01-02"), day("2024-01-03")
	list, err = env.eco.List(ctx, ListFilter{StartDate: &start, EndDate: &end, SortBy: "date", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, list.Records, 2)
	assert.Equal(t, "2024-01-02", list.Records[0].Date)
	assert.Equal(t, "2024-01-03", list.Records[1].Date)
}

func TestListRejectsInvalidParameters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.eco.List(ctx, ListFilter{SortBy: "password"})
	requireValidationCode(t, err, CodeInvalidSortField)

	_, err = env.eco.List(ctx, ListFilter{SortOrder: "sideways"})
	requireValidationCode(t, err, CodeInvalidSortOrder)

	for _, filter := range []ListFilter{
		{Limit: ptr(1001)},
		{Limit: ptr(0)},
		{Page: ptr(-1)},
		{Page: ptr(0)},
	} {
		_, err = env.eco.List(ctx, filter)
		requireValidationCode(t, err, CodeInvalidPagination)
	}

	start, end := day("2024-02-01"), day("2024-01-01")
	_, err = env.eco.List(ctx, ListFilter{StartDate: &start, EndDate: &end})
	requireValidationCode(t, err, CodeInvalidDateRange)
}

func TestExportOrdersByDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	for _, d := range []string{"2024-03-03", "2024-03-01", "2024-03-02"} {
		_, err := env.eco.Create(ctx, sampleInput(d), actor)
		require.NoError(t, err)
	}

	from := day("2024-03-02")
	records, err := env.eco.Export(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-02", records[0].Date.Format(models.DateLayout))
	assert.Equal(t, "2024-03-03", records[1].Date.Format(models.DateLayout))
	require.NotNil(t, records[0].Creator)
	assert.Equal(t, "@alice", records[0].Creator.Username)
}

// failingLogRepository 模拟操作日志表不可写
type failingLogRepository struct{}

func (failingLogRepository) Create(context.Context, *models.OperationLog) error {
	return errors.New("operation_logs is read-only")
}

func (failingLogRepository) Find(context.Context, repositories.OperationLogQuery) ([]models.OperationLog, int64, error) {
	return nil, 0, errors.New("operation_logs is read-only")
}

func TestRecordChangesSurviveAuditFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}
	eco := NewEcoRecordService(env.records, NewOperationLogService(failingLogRepository{}))

	record, err := eco.Create(ctx, sampleInput("2024-01-01"), actor)
	require.NoError(t, err)
	require.NotNil(t, record)
	stored, err := env.records.GetByDate(ctx, day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)

	_, err = eco.Update(ctx, record.ID, models.UpdateEcoRecordPayload{PowerConsumption: ptr(55.0)}, actor)
	require.NoError(t, err)
	stored, err = env.records.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, stored.PowerConsumption)

	result, err := eco.Import(ctx, []models.EcoRecordInput{sampleInput("2024-01-02")}, false, actor)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	require.NoError(t, eco.Delete(ctx, record.ID, actor))
	_, err = env.records.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, repositories.ErrRecordNotFound)

	assert.Empty(t, env.allLogs(t))
}

func TestAmountsStoredAtTwoDecimals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := Actor{UserID: env.createUser(t, "@alice", models.RoleUser).ID}

	in := sampleInput("2024-03-01")
	in.PowerConsumption = 1.234
	in.ElectricityPrice = 10.126
	record, err := env.eco.Create(ctx, in, actor)
	require.NoError(t, err)
	assert.Equal(t, 1.23, record.PowerConsumption)
	assert.Equal(t, 10.13, record.ElectricityPrice)
	assert.Equal(t, models.DailyCost(1.23, 10.13), record.DailyCost())

	updated, err := env.eco.Update(ctx, record.ID, models.UpdateEcoRecordPayload{DrinkingWater: ptr(7.777)}, actor)
	require.NoError(t, err)
	assert.Equal(t, 7.78, updated.DrinkingWater)
}

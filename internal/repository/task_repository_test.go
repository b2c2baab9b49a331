package repository_test

import (
	"context"
	"testing"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskColumns = []string{"id", "user_id", "title", "description", "status", "created_at", "updated_at"}

func TestTaskRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	task := &model.Task{
		OwnerID:     uuid.New(),
		Title:       "Write report",
		Description: "Quarterly",
		Status:      model.TaskStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(taskID.String()))
	mock.ExpectCommit()

	err := taskRepo.Create(context.Background(), task)

	assert.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_PreloadsOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID, ownerID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(taskID.String(), ownerID.String(), "Write report", "Quarterly", "inProgress", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = `).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(ownerID.String(), "a@b.com", "ab", "A B", "hashed", now, now))

	task, err := taskRepo.GetByID(context.Background(), taskID)

	require.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, model.TaskStatusInProgress, task.Status)
	require.NotNil(t, task.Owner)
	assert.Equal(t, "a@b.com", task.Owner.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	task, err := taskRepo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetOwned_OtherOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = .* AND user_id = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	task, err := taskRepo.GetOwned(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	ownerID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE user_id = .* ORDER BY created_at ASC LIMIT .* OFFSET .*`).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(uuid.New().String(), ownerID.String(), "one", "d", "pending", now, now).
			AddRow(uuid.New().String(), ownerID.String(), "two", "d", "completed", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = `).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(ownerID.String(), "a@b.com", "ab", "A B", "hashed", now, now))

	tasks, err := taskRepo.ListByOwner(context.Background(), ownerID, 10, 10)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Title)
	assert.Equal(t, "two", tasks[1].Title)
	assert.Equal(t, ownerID, tasks[1].Owner.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	task := &model.Task{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "renamed",
		Status:    model.TaskStatusCompleted,
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET "title"=.*,"description"=.*,"status"=.*,"updated_at"=.* WHERE "id" = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := taskRepo.Update(context.Background(), task)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_MissingRowIsNotInserted(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	task := &model.Task{ID: uuid.New(), OwnerID: uuid.New(), Title: "gone", Status: model.TaskStatusPending}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := taskRepo.Update(context.Background(), task)

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .* AND user_id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := taskRepo.Delete(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .* AND user_id = `).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := taskRepo.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/mock"
	"github.com/amekhanov/taskvault/internal/service"
	"github.com/amekhanov/taskvault/internal/session"
	"github.com/amekhanov/taskvault/internal/store"
	"github.com/amekhanov/taskvault/models"
)

type taskFixture struct {
	tasks   *mock.MockTaskRepository
	session *session.Context
	cipher  *crypto.FieldCipher
	svc     service.TaskService
}

// newTaskFixture builds a TaskService over a mocked repository and a
// session already authenticated as user 7 with a real working cipher.
func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)
	sess := session.New()

	cipher, err := crypto.NewFieldCipher(bytes.Repeat([]byte{0x33}, crypto.UserKeySize))
	require.NoError(t, err)
	require.NoError(t, sess.Activate(&models.User{UserID: 7, Username: "alice"}, cipher))

	return &taskFixture{
		tasks:   tasks,
		session: sess,
		cipher:  cipher,
		svc:     service.NewTaskService(tasks, sess, logger.Nop()),
	}
}

// encryptedTask builds a stored task record encrypted under the fixture's
// cipher, as the repository would return it.
func (f *taskFixture) encryptedTask(t *testing.T, id, ownerID int64, title, description string) models.Task {
	t.Helper()

	titleBlob, err := f.cipher.Encrypt(title)
	require.NoError(t, err)

	task := models.Task{
		TaskID:    id,
		OwnerID:   ownerID,
		TitleBlob: titleBlob,
		Status:    models.StatusPending,
		Priority:  models.PriorityMedium,
	}
	if description != "" {
		task.DescriptionBlob, err = f.cipher.Encrypt(description)
		require.NoError(t, err)
	}
	return task
}

func TestTaskService_CreateTask(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		CreateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.Equal(t, int64(7), task.OwnerID)
			assert.Equal(t, models.StatusPending, task.Status)
			assert.Equal(t, models.PriorityHigh, task.Priority)

			// the repository must never see plaintext
			assert.NotContains(t, string(task.TitleBlob), "pay rent")
			assert.NotContains(t, string(task.DescriptionBlob), "before the 1st")

			task.TaskID = 1
			return task, nil
		})

	view, err := f.svc.CreateTask(context.Background(), service.CreateTaskInput{
		Title:       "pay rent",
		Description: "before the 1st",
		Priority:    models.PriorityHigh,
		DueDate:     "2026-09-01",
		Category:    "home",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), view.TaskID)
	assert.Equal(t, "pay rent", view.Title)
	assert.Equal(t, "before the 1st", view.Description)
	assert.Equal(t, "2026-09-01", view.DueDate)
	assert.Equal(t, "home", view.Category)
}

func TestTaskService_CreateTask_EmptyDescriptionStaysAbsent(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		CreateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.True(t, task.DescriptionBlob.IsEmpty(),
				"an empty description must be stored as NULL, not as an encrypted empty string")
			task.TaskID = 1
			return task, nil
		})

	view, err := f.svc.CreateTask(context.Background(), service.CreateTaskInput{Title: "no description"})
	require.NoError(t, err)
	assert.Empty(t, view.Description)
	assert.Equal(t, models.PriorityMedium, view.Priority)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: ""})
	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)

	_, err = f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "x", Priority: "URGENT"})
	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)
}

func TestTaskService_RequiresAuthentication(t *testing.T) {
	f := newTaskFixture(t)
	f.session.Deactivate()
	ctx := context.Background()

	_, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	_, err = f.svc.ListTasks(ctx)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	_, err = f.svc.GetTask(ctx, 1)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	assert.ErrorIs(t, f.svc.DeleteTask(ctx, 1), session.ErrNotAuthenticated)
}

func TestTaskService_ListTasks(t *testing.T) {
	f := newTaskFixture(t)

	stored := []models.Task{
		f.encryptedTask(t, 2, 7, "newer task", ""),
		f.encryptedTask(t, 1, 7, "older task", "details"),
	}

	f.tasks.EXPECT().
		FindTasksByOwner(gomock.Any(), int64(7)).
		Return(stored, nil)

	views, err := f.svc.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "newer task", views[0].Title)
	assert.Equal(t, "older task", views[1].Title)
	assert.Equal(t, "details", views[1].Description)
}

func TestTaskService_ListTasks_CorruptedRecordSurfaces(t *testing.T) {
	f := newTaskFixture(t)

	good := f.encryptedTask(t, 1, 7, "intact", "")
	bad := f.encryptedTask(t, 2, 7, "tampered", "")
	bad.TitleBlob[len(bad.TitleBlob)-1] ^= 0x01

	f.tasks.EXPECT().
		FindTasksByOwner(gomock.Any(), int64(7)).
		Return([]models.Task{good, bad}, nil)

	_, err := f.svc.ListTasks(context.Background())
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestTaskService_GetTask_OwnershipEnforced(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(9)).
		Return(f.encryptedTask(t, 9, 99, "someone else's", ""), nil)

	_, err := f.svc.GetTask(context.Background(), 9)
	assert.ErrorIs(t, err, service.ErrAccessDenied)
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(404)).
		Return(models.Task{}, store.ErrTaskNotFound)

	_, err := f.svc.GetTask(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestTaskService_EditTask_PartialUpdate(t *testing.T) {
	f := newTaskFixture(t)
	stored := f.encryptedTask(t, 1, 7, "original title", "original description")

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(1)).
		Return(stored, nil)

	f.tasks.EXPECT().
		UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			// untouched fields keep their stored ciphertext
			assert.Equal(t, stored.DescriptionBlob, task.DescriptionBlob)
			assert.NotEqual(t, stored.TitleBlob, task.TitleBlob)
			return task, nil
		})

	newTitle := "renamed"
	newPriority := models.PriorityLow
	view, err := f.svc.EditTask(context.Background(), 1, service.EditTaskInput{
		Title:    &newTitle,
		Priority: &newPriority,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", view.Title)
	assert.Equal(t, "original description", view.Description)
	assert.Equal(t, models.PriorityLow, view.Priority)
}

func TestTaskService_EditTask_ClearDescription(t *testing.T) {
	f := newTaskFixture(t)
	stored := f.encryptedTask(t, 1, 7, "title", "to be removed")

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(1)).
		Return(stored, nil)

	f.tasks.EXPECT().
		UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.True(t, task.DescriptionBlob.IsEmpty())
			return task, nil
		})

	empty := ""
	view, err := f.svc.EditTask(context.Background(), 1, service.EditTaskInput{Description: &empty})
	require.NoError(t, err)
	assert.Empty(t, view.Description)
}

func TestTaskService_EditTask_EmptyTitleRejected(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(1)).
		Return(f.encryptedTask(t, 1, 7, "title", ""), nil)

	empty := ""
	_, err := f.svc.EditTask(context.Background(), 1, service.EditTaskInput{Title: &empty})
	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)
}

func TestTaskService_MarkDone(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(1)).
		Return(f.encryptedTask(t, 1, 7, "finish report", ""), nil)

	f.tasks.EXPECT().
		UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.Equal(t, models.StatusCompleted, task.Status)
			return task, nil
		})

	view, err := f.svc.MarkDone(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, view.Status)
}

func TestTaskService_DeleteTask(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(1)).
		Return(f.encryptedTask(t, 1, 7, "old task", ""), nil)
	f.tasks.EXPECT().
		DeleteTask(gomock.Any(), int64(1)).
		Return(nil)

	require.NoError(t, f.svc.DeleteTask(context.Background(), 1))
}

func TestTaskService_DeleteTask_OtherOwner(t *testing.T) {
	f := newTaskFixture(t)

	f.tasks.EXPECT().
		FindTaskByID(gomock.Any(), int64(1)).
		Return(f.encryptedTask(t, 1, 99, "foreign", ""), nil)

	assert.ErrorIs(t, f.svc.DeleteTask(context.Background(), 1), service.ErrAccessDenied)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beekeeper/internal/models"
)

type createdTask struct {
	Verb, DirectObject string
	OwnerID            int64
}

// fakeStore はメモリ上の owners / tasks です。
type fakeStore struct {
	owners  []models.Owner
	listErr error

	ownerCalls  int
	createErr   error
	taskCalls   []createdTask
	taskErr     error
	nextTaskID  int64
	zeroTaskIDs bool
}

func (f *fakeStore) FindAll(ctx context.Context) ([]models.Owner, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Owner(nil), f.owners...), nil
}

func (f *fakeStore) Create(ctx context.Context, name, email string) error {
	f.ownerCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.owners = append(f.owners, models.Owner{ID: int64(len(f.owners) + 1), Name: name, Email: email})
	return nil
}

type fakeTasks struct{ *fakeStore }

func (f fakeTasks) Create(ctx context.Context, t *models.Task) (int64, error) {
	f.taskCalls = append(f.taskCalls, createdTask{t.Verb, t.DirectObject, t.OwnerID})
	if f.taskErr != nil {
		return 0, f.taskErr
	}
	if f.zeroTaskIDs {
		return 0, nil
	}
	f.nextTaskID++
	return f.nextTaskID, nil
}

func newBoard(store *fakeStore) *BoardService {
	return NewBoardService(store, fakeTasks{store})
}

func TestLoad_BuildsOwnerOptions(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}}
	p := newBoard(store).Load(context.Background())

	assert.Equal(t, StateInitial, p.State)
	assert.Equal(t, []OwnerOption{{Value: "1", Label: "Alice", ID: 1}, {Value: "2", Label: "Bob", ID: 2}}, p.Owners)
	assert.Nil(t, p.OwnerListNotice)
	assert.False(t, p.OwnerFormOpen())
}

func TestLoad_ListFailureIsANotice(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	p := newBoard(store).Load(context.Background())

	assert.Equal(t, StateInitial, p.State)
	assert.Empty(t, p.Owners)
	require.NotNil(t, p.OwnerListNotice)
	assert.Equal(t, NoticeError, p.OwnerListNotice.Level)
	assert.Contains(t, p.OwnerListNotice.Message, "connection refused")
	assert.NoError(t, p.Err)
}

func TestSubmitOwner_ValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		form  OwnerForm
		field string
	}{
		{"both empty reports name first", OwnerForm{}, "name"},
		{"empty name", OwnerForm{Email: "bob@x.com"}, "name"},
		{"blank name", OwnerForm{Name: "   ", Email: "bob@x.com"}, "name"},
		{"empty email", OwnerForm{Name: "Bob"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			p := newBoard(store).SubmitOwner(context.Background(), tt.form)

			assert.Equal(t, 0, store.ownerCalls, "CreateOwner must not be called")
			assert.Equal(t, StateOwnerAddPending, p.State)
			assert.True(t, p.OwnerFormOpen())

			var verr *ValidationError
			require.ErrorAs(t, p.Err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			require.NotNil(t, p.OwnerNotice)
			assert.Equal(t, tt.field, p.OwnerNotice.Field)
			assert.Equal(t, NoticeError, p.OwnerNotice.Level)
		})
	}
}

func TestSubmitOwner_Success(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}}}
	p := newBoard(store).SubmitOwner(context.Background(), OwnerForm{Name: " Bob ", Email: "bob@x.com"})

	assert.Equal(t, 1, store.ownerCalls)
	assert.Equal(t, "Bob", store.owners[1].Name)
	assert.Equal(t, StateInitial, p.State)
	assert.NoError(t, p.Err)
	assert.Equal(t, OwnerForm{}, p.OwnerForm)
	require.NotNil(t, p.OwnerNotice)
	assert.Equal(t, NoticeSuccess, p.OwnerNotice.Level)
	assert.Equal(t, "Owner added successfully!", p.OwnerNotice.Message)
	assert.Equal(t, []OwnerOption{{Value: "1", Label: "Alice", ID: 1}, {Value: "2", Label: "Bob", ID: 2}}, p.Owners)
}

func TestSubmitOwner_StoreUnreachable(t *testing.T) {
	store := &fakeStore{
		owners:    []models.Owner{{ID: 1, Name: "Alice"}},
		createErr: errors.New("could not insert owner: connection refused"),
	}
	board := newBoard(store)
	p := board.SubmitOwner(context.Background(), OwnerForm{Name: "Bob", Email: "bob@x.com"})

	assert.Equal(t, 1, store.ownerCalls)
	assert.Equal(t, StateOwnerAddPending, p.State)
	assert.Error(t, p.Err)
	require.NotNil(t, p.OwnerNotice)
	assert.Equal(t, NoticeError, p.OwnerNotice.Level)
	assert.Contains(t, p.OwnerNotice.Message, "Failed to insert owner")
	assert.Equal(t, OwnerForm{Name: "Bob", Email: "bob@x.com"}, p.OwnerForm, "form stays populated for retry")

	next := board.Load(context.Background())
	assert.Equal(t, []OwnerOption{{Value: "1", Label: "Alice", ID: 1}}, next.Owners)
}

func TestSubmitTask_Scenario(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}}, nextTaskID: 41}
	p := newBoard(store).SubmitTask(context.Background(), TaskForm{Verb: "Review", DirectObject: "Report", Owner: "1"})

	require.Len(t, store.taskCalls, 1)
	assert.Equal(t, createdTask{"Review", "Report", 1}, store.taskCalls[0])
	assert.Equal(t, StateInitial, p.State)
	assert.NoError(t, p.Err)
	assert.Equal(t, int64(42), p.CreatedTaskID)
	assert.Equal(t, TaskForm{}, p.TaskForm)
	require.NotNil(t, p.TaskNotice)
	assert.Equal(t, NoticeSuccess, p.TaskNotice.Level)
	assert.Equal(t, "Task #42 added successfully.", p.TaskNotice.Message)
}

func TestSubmitTask_ValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		form  TaskForm
		field string
	}{
		{"all empty reports verb", TaskForm{}, "verb"},
		{"missing direct object", TaskForm{Verb: "Review", Owner: "1"}, "direct_object"},
		{"no owner selected", TaskForm{Verb: "Review", DirectObject: "Report"}, "owner"},
		{"unknown owner id", TaskForm{Verb: "Review", DirectObject: "Report", Owner: "99"}, "owner"},
		{"owner name instead of id", TaskForm{Verb: "Review", DirectObject: "Report", Owner: "Alice"}, "owner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}}}
			p := newBoard(store).SubmitTask(context.Background(), tt.form)

			assert.Empty(t, store.taskCalls, "CreateTask must not be called")
			assert.Equal(t, StateTaskAddPending, p.State)
			var verr *ValidationError
			require.ErrorAs(t, p.Err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			require.NotNil(t, p.TaskNotice)
			assert.Equal(t, tt.field, p.TaskNotice.Field)
			assert.Equal(t, tt.form.Verb, p.TaskForm.Verb)
		})
	}
}

func TestSubmitTask_UnknownOwnerMessage(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}}}
	p := newBoard(store).SubmitTask(context.Background(), TaskForm{Verb: "Review", DirectObject: "Report", Owner: "Mallory"})

	require.NotNil(t, p.TaskNotice)
	assert.Equal(t, "Selected owner is invalid.", p.TaskNotice.Message)
}

func TestSubmitTask_StoreFailure(t *testing.T) {
	store := &fakeStore{
		owners:  []models.Owner{{ID: 1, Name: "Alice"}},
		taskErr: errors.New("could not insert task: owner not found"),
	}
	form := TaskForm{Verb: "Review", DirectObject: "Report", Owner: "1"}
	p := newBoard(store).SubmitTask(context.Background(), form)

	assert.Len(t, store.taskCalls, 1)
	assert.Equal(t, StateTaskAddPending, p.State)
	assert.Zero(t, p.CreatedTaskID)
	assert.Equal(t, form, p.TaskForm)
	require.NotNil(t, p.TaskNotice)
	assert.Equal(t, NoticeError, p.TaskNotice.Level)
	assert.Contains(t, p.TaskNotice.Message, "Failed to insert task")
}

func TestSubmitTask_AbsentIDIsNotCreated(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}}, zeroTaskIDs: true}
	p := newBoard(store).SubmitTask(context.Background(), TaskForm{Verb: "Review", DirectObject: "Report", Owner: "1"})

	assert.ErrorIs(t, p.Err, ErrTaskNotCreated)
	assert.Equal(t, StateTaskAddPending, p.State)
	require.NotNil(t, p.TaskNotice)
	assert.Equal(t, NoticeError, p.TaskNotice.Level)
}

func TestSubmitTask_DuplicateOwnerNames(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{
		{ID: 1, Name: "Alice"},
		{ID: 3, Name: "Alice"},
		{ID: 7, Name: "Alice (#3)"},
	}}
	board := newBoard(store)

	p := board.Load(context.Background())
	assert.Equal(t, []OwnerOption{
		{Value: "1", Label: "Alice (#1)", ID: 1},
		{Value: "3", Label: "Alice (#3)", ID: 3},
		{Value: "7", Label: "Alice (#3)", ID: 7},
	}, p.Owners)

	p = board.SubmitTask(context.Background(), TaskForm{Verb: "Ship", DirectObject: "Release", Owner: "3"})
	require.NoError(t, p.Err)
	require.Len(t, store.taskCalls, 1)
	assert.Equal(t, int64(3), store.taskCalls[0].OwnerID)

	p = board.SubmitTask(context.Background(), TaskForm{Verb: "Ship", DirectObject: "Release", Owner: "7"})
	require.NoError(t, p.Err)
	require.Len(t, store.taskCalls, 2)
	assert.Equal(t, int64(7), store.taskCalls[1].OwnerID)

	p = board.SubmitTask(context.Background(), TaskForm{Verb: "Ship", DirectObject: "Release", Owner: "Alice (#3)"})
	var verr *ValidationError
	require.ErrorAs(t, p.Err, &verr)
	assert.Equal(t, "owner", verr.Field)
	assert.Len(t, store.taskCalls, 2)
}

func TestRejectForm(t *testing.T) {
	store := &fakeStore{owners: []models.Owner{{ID: 1, Name: "Alice"}}}
	board := newBoard(store)

	p := board.RejectForm(context.Background(), StateOwnerAddPending, errors.New("invalid URL escape"))
	assert.Equal(t, StateOwnerAddPending, p.State)
	assert.True(t, p.OwnerFormOpen())
	assert.Equal(t, []OwnerOption{{Value: "1", Label: "Alice", ID: 1}}, p.Owners)
	var verr *ValidationError
	require.ErrorAs(t, p.Err, &verr)
	require.NotNil(t, p.OwnerNotice)
	assert.Equal(t, NoticeError, p.OwnerNotice.Level)
	assert.Contains(t, p.OwnerNotice.Message, "Invalid form payload")
	assert.Nil(t, p.TaskNotice)

	p = board.RejectForm(context.Background(), StateTaskAddPending, errors.New("invalid URL escape"))
	assert.Equal(t, StateTaskAddPending, p.State)
	require.NotNil(t, p.TaskNotice)
	assert.Contains(t, p.TaskNotice.Message, "Invalid form payload")
	assert.Nil(t, p.OwnerNotice)

	assert.Zero(t, store.ownerCalls)
	assert.Empty(t, store.taskCalls)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initial", StateInitial.String())
	assert.Equal(t, "owner-add-pending", StateOwnerAddPending.String())
	assert.Equal(t, "task-add-pending", StateTaskAddPending.String())
	assert.Equal(t, "state(9)", State(9).String())
}

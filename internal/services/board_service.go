package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"beekeeper/internal/models"
)

// State はページの状態です。リクエストごとに Initial から始まります。
type State int

const (
	StateInitial State = iota
	StateOwnerAddPending
	StateTaskAddPending
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateOwnerAddPending:
		return "owner-add-pending"
	case StateTaskAddPending:
		return "task-add-pending"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice はフォームの近くに表示する一時的なメッセージです。
type Notice struct {
	Level   NoticeLevel
	Message string
	// Field は項目単位のエラーの場合のみ設定されます。
	Field string
}

// Page は一回の描画に必要な状態をすべて持ちます。
type Page struct {
	State  State
	Owners []OwnerOption

	OwnerForm OwnerForm
	TaskForm  TaskForm

	OwnerListNotice *Notice
	OwnerNotice     *Notice
	TaskNotice      *Notice

	// Err は送信された操作のエラー (ValidationError または StorageError) です。
	Err error

	CreatedTaskID int64
}

// OwnerFormOpen は「Add New Owner」を展開して表示するかどうかを返します。
func (p *Page) OwnerFormOpen() bool {
	return p.State == StateOwnerAddPending || p.OwnerNotice != nil
}

// ErrTaskNotCreated はストアがエラーを返さずに ID も返さなかった場合のエラーです。
var ErrTaskNotCreated = errors.New("task was not created")

// OwnerStore は Owner の一覧取得と作成を行います。
type OwnerStore interface {
	FindAll(ctx context.Context) ([]models.Owner, error)
	Create(ctx context.Context, name, email string) error
}

// TaskStore は Task を作成し、採番された ID を返します。
type TaskStore interface {
	Create(ctx context.Context, t *models.Task) (int64, error)
}

// BoardService はページの状態遷移を扱います。リクエスト間で状態は持ちません。
type BoardService struct {
	owners OwnerStore
	tasks  TaskStore
}

// NewBoardService は新しいBoardServiceを作成します。
func NewBoardService(owners OwnerStore, tasks TaskStore) *BoardService {
	return &BoardService{owners: owners, tasks: tasks}
}

// Load は Initial 状態のページを作成します。
func (s *BoardService) Load(ctx context.Context) *Page {
	p := &Page{State: StateInitial}
	s.refreshOwners(ctx, p)
	return p
}

// SubmitOwner は「Add New Owner」フォームの送信を処理します。
func (s *BoardService) SubmitOwner(ctx context.Context, form OwnerForm) *Page {
	form.normalize()
	p := &Page{State: StateOwnerAddPending, OwnerForm: form}

	if err := validateForm(&form); err != nil {
		p.Err = err
		p.OwnerNotice = fieldNotice(err)
		s.refreshOwners(ctx, p)
		return p
	}

	if err := s.owners.Create(ctx, form.Name, form.Email); err != nil {
		p.Err = err
		p.OwnerNotice = &Notice{Level: NoticeError, Message: "Failed to insert owner: " + err.Error()}
		s.refreshOwners(ctx, p)
		return p
	}

	p.State = StateInitial
	p.OwnerForm = OwnerForm{}
	p.OwnerNotice = &Notice{Level: NoticeSuccess, Message: "Owner added successfully!"}
	s.refreshOwners(ctx, p)
	return p
}

// SubmitTask は「Add a New Task」フォームの送信を処理します。
func (s *BoardService) SubmitTask(ctx context.Context, form TaskForm) *Page {
	form.normalize()
	p := &Page{State: StateTaskAddPending, TaskForm: form}
	lookup := s.refreshOwners(ctx, p)

	if err := validateForm(&form); err != nil {
		p.Err = err
		p.TaskNotice = fieldNotice(err)
		return p
	}

	ownerID, ok := lookup.Resolve(form.Owner)
	if !ok {
		err := &ValidationError{Field: "owner", Message: "Selected owner is invalid."}
		p.Err = err
		p.TaskNotice = fieldNotice(err)
		return p
	}

	task := &models.Task{Verb: form.Verb, DirectObject: form.DirectObject, OwnerID: ownerID}
	id, err := s.tasks.Create(ctx, task)
	if err == nil && id == 0 {
		err = ErrTaskNotCreated
	}
	if err != nil {
		p.Err = err
		p.TaskNotice = &Notice{Level: NoticeError, Message: "Failed to insert task: " + err.Error()}
		return p
	}

	p.State = StateInitial
	p.TaskForm = TaskForm{}
	p.CreatedTaskID = id
	p.TaskNotice = &Notice{Level: NoticeSuccess, Message: fmt.Sprintf("Task #%d added successfully.", id)}
	return p
}

// RejectForm はフォームの解析に失敗した送信を、該当フォームのエラー表示として扱います。
// state には StateOwnerAddPending か StateTaskAddPending を渡します。
func (s *BoardService) RejectForm(ctx context.Context, state State, cause error) *Page {
	p := &Page{State: state}
	s.refreshOwners(ctx, p)

	err := &ValidationError{Field: "", Message: "Invalid form payload. Please submit the form again."}
	p.Err = err
	if state == StateOwnerAddPending {
		p.OwnerNotice = fieldNotice(err)
	} else {
		p.TaskNotice = fieldNotice(err)
	}
	log.Printf("Rejected %s submission: %v", state, cause)
	return p
}

func (s *BoardService) refreshOwners(ctx context.Context, p *Page) *OwnerLookup {
	owners, err := s.owners.FindAll(ctx)
	if err != nil {
		p.OwnerListNotice = &Notice{Level: NoticeError, Message: "Failed to load owners: " + err.Error()}
		owners = nil
	}
	lookup := NewOwnerLookup(owners)
	p.Owners = lookup.Options
	return lookup
}

func fieldNotice(err error) *Notice {
	n := &Notice{Level: NoticeError, Message: err.Error()}
	var verr *ValidationError
	if errors.As(err, &verr) {
		n.Message = verr.Message
		n.Field = verr.Field
	}
	return n
}

package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"beekeeper/internal/repositories"
	"beekeeper/internal/services"
	"beekeeper/internal/web"
)

// PageHandler はフォームページの表示と送信を扱います。
type PageHandler struct {
	board *services.BoardService
	style template.CSS
}

// NewPageHandler は新しいPageHandlerを作成します。
func NewPageHandler(board *services.BoardService, style template.CSS) *PageHandler {
	return &PageHandler{board: board, style: style}
}

// IndexHandler は Initial 状態のページを表示します。
func (h *PageHandler) IndexHandler(c *gin.Context) {
	h.render(c, h.board.Load(c.Request.Context()))
}

// CreateOwnerHandler は「Add New Owner」フォームの送信を処理します。
func (h *PageHandler) CreateOwnerHandler(c *gin.Context) {
	var form services.OwnerForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, h.board.RejectForm(c.Request.Context(), services.StateOwnerAddPending, err))
		return
	}
	h.render(c, h.board.SubmitOwner(c.Request.Context(), form))
}

// CreateTaskHandler は「Add a New Task」フォームの送信を処理します。
func (h *PageHandler) CreateTaskHandler(c *gin.Context) {
	var form services.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, h.board.RejectForm(c.Request.Context(), services.StateTaskAddPending, err))
		return
	}
	h.render(c, h.board.SubmitTask(c.Request.Context(), form))
}

func (h *PageHandler) render(c *gin.Context, page *services.Page) {
	status := statusFor(page.Err)
	if repositories.IsStorageError(page.Err) {
		log.Printf("Page rendered with storage error (state=%s): %v", page.State, page.Err)
	}
	c.HTML(status, web.IndexTemplate, gin.H{"Page": page, "Style": h.style})
}

// statusFor はエラーの種類を HTTP ステータスに対応付けます。
// どの場合もページ自体は描画されます。
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, repositories.ErrOwnerNotFound) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

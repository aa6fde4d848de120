package api

import (
	"net/http"
	"strconv"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	cmds     commands.ItemCommands
	comments commands.CommentCommands
	q        queries.ItemQueries
}

func NewItemHandler(cmds commands.ItemCommands, comments commands.CommentCommands, q queries.ItemQueries) *ItemHandler {
	return &ItemHandler{cmds: cmds, comments: comments, q: q}
}

// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Param request body reqdto.CreateItemRequest true "Create item request"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := sharerID(c)
	if !ok {
		return
	}
	var req reqdto.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), ownerID, req.ToSpec())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), &ownerID, result.ItemID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/items/"+strconv.FormatInt(view.ID, 10))
	c.JSON(http.StatusCreated, resdto.FromItemView(&view.ItemView))
}

// @Summary Update item
// @Description Owner only; other callers get 404
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Param id path int true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Partial item"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), userID, itemID, req.ToPatch()); err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), &userID, itemID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(&view.ItemView))
}

// @Summary Get item
// @Description Booking neighbours are shown to the owner only
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int false "Caller ID"
// @Param id path int true "Item ID"
// @Success 200 {object} resdto.ItemDetailResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var requester *int64
	if id, ok := middleware.GetSharerID(c); ok {
		requester = &id
	}
	view, err := h.q.GetByID(c.Request.Context(), requester, itemID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemDetailView(view))
}

// @Summary List own items
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Success 200 {array} resdto.ItemDetailResponse
// @Router /items [get]
func (h *ItemHandler) ListMine(c *gin.Context) {
	ownerID, ok := sharerID(c)
	if !ok {
		return
	}
	views, err := h.q.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemDetailViews(views))
}

// @Summary Search available items
// @Tags items
// @Produce json
// @Param text query string false "Substring of name or description"
// @Success 200 {array} resdto.ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	var query reqdto.SearchItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.Search(c.Request.Context(), query.Text)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Comment on an item
// @Description Requires a finished approved booking of the item
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Author ID"
// @Param id path int true "Item ID"
// @Param request body reqdto.AddCommentRequest true "Comment"
// @Success 201 {object} resdto.CommentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	authorID, ok := sharerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.comments.Add(c.Request.Context(), authorID, itemID, req.Text)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetComment(c.Request.Context(), result.CommentID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCommentView(view))
}

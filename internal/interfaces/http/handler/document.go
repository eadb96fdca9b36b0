package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	appdoc "github.com/kitcha/docrender/internal/application/document"
	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/interfaces/http/dto"
	"github.com/kitcha/docrender/internal/interfaces/http/router"
)

// DocumentService is the render pipeline as seen by the HTTP layer
type DocumentService interface {
	Render(ctx context.Context, ownerID int64) (*appdoc.RenderTicket, error)
	RenderSync(ctx context.Context, ownerID int64) (*appdoc.RenderJobResponse, error)
	Fetch(ctx context.Context, ownerID int64) (*document.DownloadedDocument, error)
}

// DocumentHandler handles document render and download endpoints
type DocumentHandler struct {
	BaseHandler
	service DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// DocumentRoutes creates the route group for board documents
func DocumentRoutes(h *DocumentHandler) *router.DomainGroup {
	group := router.NewDomainGroup("documents", "/boards")
	group.POST("/:id/document", h.RenderDocument)
	group.GET("/:id/document", h.DownloadDocument)
	return group
}

// RenderDocument godoc
//
//	@ID				renderBoardDocument
//	@Summary		Render a board into a PDF
//	@Description	Queue a render of the board. With wait=true the render runs inline.
//	@Tags			documents
//	@Produce		json
//	@Param			id		path		int		true	"Board ID"
//	@Param			wait	query		bool	false	"Render synchronously"
//	@Success		200		{object}	APIResponse[appdoc.RenderJobResponse]
//	@Success		202		{object}	APIResponse[appdoc.RenderTicket]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/boards/{id}/document [post]
func (h *DocumentHandler) RenderDocument(c *gin.Context) {
	ownerID, ok := h.bindOwnerID(c)
	if !ok {
		return
	}

	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		job, err := h.service.RenderSync(c.Request.Context(), ownerID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, job)
		return
	}

	ticket, err := h.service.Render(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, ticket)
}

// DownloadDocument godoc
//
//	@ID				downloadBoardDocument
//	@Summary		Download the rendered PDF of a board
//	@Tags			documents
//	@Produce		application/pdf
//	@Param			id	path		int		true	"Board ID"
//	@Success		200	{file}		binary	"PDF file"
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/boards/{id}/document [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	ownerID, ok := h.bindOwnerID(c)
	if !ok {
		return
	}

	doc, err := h.service.Fetch(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(doc.FileName()))
	c.Data(http.StatusOK, document.ContentType, doc.Content)
}

func (h *DocumentHandler) bindOwnerID(c *gin.Context) (int64, bool) {
	var req dto.OwnerIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid board ID")
		return 0, false
	}
	return req.ID, true
}

// contentDisposition builds an attachment header with an RFC 5987 encoded name
func contentDisposition(fileName string) string {
	return "attachment; filename*=UTF-8''" + url.PathEscape(fileName)
}

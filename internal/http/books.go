package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/service"
	"bookshelf-api/internal/validation"
)

type bookRequest struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Genre           string  `json:"genre"`
	PublicationDate string  `json:"publicationDate"`
	Description     *string `json:"description"`
	ISBN            *string `json:"isbn"`
	PageCount       *int    `json:"pageCount"`
	CoverImage      *string `json:"coverImage"`
}

type bookEnvelope struct {
	Success bool         `json:"success"`
	Data    BookResponse `json:"data"`
}

type bookListEnvelope struct {
	Success    bool           `json:"success"`
	Count      int            `json:"count"`
	Total      int64          `json:"total"`
	Pagination paginationInfo `json:"pagination"`
	Data       []BookResponse `json:"data"`
}

type myBooksEnvelope struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []BookResponse `json:"data"`
}

type paginationInfo struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

func (h *Handler) getBooks(c *gin.Context) {
	opts := service.ListOptions{
		Search: c.Query("search"),
		Genre:  c.Query("genre"),
		Author: c.Query("author"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	page, err := h.books.List(c.Request.Context(), opts)
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]BookResponse, len(page.Books))
	for i := range page.Books {
		data[i] = bookToResponse(page.Books[i])
	}

	c.JSON(http.StatusOK, bookListEnvelope{
		Success:    true,
		Count:      len(data),
		Total:      page.Total,
		Pagination: paginationInfo{Current: page.Page, Total: page.TotalPages},
		Data:       data,
	})
}

func (h *Handler) getBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookEnvelope{Success: true, Data: bookToResponse(*book)})
}

func (h *Handler) createBook(c *gin.Context) {
	input, ok := h.bindBookInput(c)
	if !ok {
		return
	}

	book, err := h.books.Create(c.Request.Context(), currentUser(c).ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookEnvelope{Success: true, Data: bookToResponse(*book)})
}

func (h *Handler) updateBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}
	input, ok := h.bindBookInput(c)
	if !ok {
		return
	}

	book, err := h.books.Update(c.Request.Context(), currentUser(c), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookEnvelope{Success: true, Data: bookToResponse(*book)})
}

func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	if err := h.books.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

func (h *Handler) getMyBooks(c *gin.Context) {
	books, err := h.books.ListByOwner(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]BookResponse, len(books))
	for i := range books {
		data[i] = bookToResponse(books[i])
	}

	c.JSON(http.StatusOK, myBooksEnvelope{Success: true, Count: len(data), Data: data})
}

func (h *Handler) uploadCover(c *gin.Context) {
	if h.covers == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{Success: false, Message: "cover storage is not configured"})
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}
	actor := currentUser(c)

	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !actor.CanModify(book) {
		h.respondError(c, service.ErrNotOwner)
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		h.badRequest(c, "cover file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	coverURL, err := h.covers.UploadCover(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	previous := book.CoverImage
	updated, err := h.books.SetCoverImage(c.Request.Context(), actor, id, coverURL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if previous != "" && previous != coverURL {
		if err := h.covers.DeleteCover(c.Request.Context(), previous); err != nil {
			h.log.WithError(err).Warn("delete previous cover")
		}
	}

	c.JSON(http.StatusOK, bookEnvelope{Success: true, Data: bookToResponse(*updated)})
}

// bookID parses the :id route parameter. An unparsable id cannot name an
// existing record, so it reports not-found rather than bad-request.
func (h *Handler) bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(c, service.ErrBookNotFound)
		return 0, false
	}
	return id, true
}

func (h *Handler) bindBookInput(c *gin.Context) (service.BookInput, bool) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return service.BookInput{}, false
	}
	if errs := validation.Book(req.Title, req.Author, req.Genre, req.PublicationDate, req.PageCount); len(errs) > 0 {
		h.respondValidation(c, errs)
		return service.BookInput{}, false
	}

	published, err := validation.ParseDate(req.PublicationDate)
	if err != nil {
		h.badRequest(c, "invalid publication date")
		return service.BookInput{}, false
	}

	return service.BookInput{
		Title:           strings.TrimSpace(req.Title),
		Author:          strings.TrimSpace(req.Author),
		Genre:           strings.TrimSpace(req.Genre),
		PublicationDate: published,
		Description:     req.Description,
		ISBN:            req.ISBN,
		PageCount:       req.PageCount,
		CoverImage:      req.CoverImage,
	}, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/domain"
	"bookshelf-api/internal/service"
	"bookshelf-api/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	books  service.BookService
	tokens service.TokenService
	covers storage.Service // nil when cover storage is not configured
	log    *logrus.Logger
}

func NewHandler(users service.UserService, books service.BookService, tokens service.TokenService, covers storage.Service, log *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		books:  books,
		tokens: tokens,
		covers: covers,
		log:    log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.log))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Book Management API"})
	})

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.GET("/me", h.requireAuth(), h.getMe)
		}

		books := api.Group("/books", h.requireAuth())
		{
			books.GET("", h.getBooks)
			books.POST("", h.createBook)
			books.GET("/my-books", h.getMyBooks)
			books.GET("/:id", h.getBook)
			books.PUT("/:id", h.updateBook)
			books.DELETE("/:id", h.deleteBook)
			books.PUT("/:id/cover", h.uploadCover)
		}

		users := api.Group("/users", h.requireAuth())
		{
			users.PUT("/profile", h.updateProfile)
			users.PUT("/password", h.updatePassword)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("request")
	}
}

// UserResponse is the public view of a user. The password hash is never
// part of it.
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type BookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publicationDate"`
	Description     string `json:"description,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	PageCount       int    `json:"pageCount,omitempty"`
	CoverImage      string `json:"coverImage,omitempty"`
	User            int64  `json:"user"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func bookToResponse(book domain.Book) BookResponse {
	return BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		PublicationDate: book.PublicationDate.Format("2006-01-02"),
		Description:     book.Description,
		ISBN:            book.ISBN,
		PageCount:       book.PageCount,
		CoverImage:      book.CoverImage,
		User:            book.UserID,
		CreatedAt:       book.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       book.UpdatedAt.Format(time.RFC3339),
	}
}

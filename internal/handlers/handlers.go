package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"librarydesk/internal/models"
	"librarydesk/internal/services"
)

type LibraryHandler struct {
	svc services.LibraryService
}

func RegisterRoutes(r *gin.Engine, svc services.LibraryService) {
	h := &LibraryHandler{svc: svc}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/register")
	})

	// Public endpoints
	r.GET("/register", h.showRegister)
	r.POST("/register", h.register)
	r.GET("/login", h.showLogin)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)

	// Protected endpoints
	auth := r.Group("/", RequireLogin())
	auth.GET("/dashboard", h.dashboard)
	auth.GET("/insert", h.showInsertBook)
	auth.POST("/insert", h.insertBook)
	auth.POST("/delete/:id", h.deleteBook)
	auth.GET("/issue_return", h.issueReturn)
	auth.POST("/issue_return", h.issueReturn)
}

// ─── Registration / Login ─────────────────────────────────────────────────────

func (h *LibraryHandler) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

func (h *LibraryHandler) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := h.svc.Register(username, password); err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			c.String(http.StatusOK, "Username already exists!")
			return
		}
		h.fault(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *LibraryHandler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *LibraryHandler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.svc.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.String(http.StatusOK, "Invalid credentials!")
			return
		}
		h.fault(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.Username)
	if err := session.Save(); err != nil {
		h.fault(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// logout clears the session unconditionally. It succeeds even when no
// session existed.
func (h *LibraryHandler) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.fault(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

func (h *LibraryHandler) dashboard(c *gin.Context) {
	books, err := h.svc.ListBooks()
	if err != nil {
		h.fault(c, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username": sessions.Default(c).Get(sessionUserKey),
		"Books":    books,
	})
}

func (h *LibraryHandler) showInsertBook(c *gin.Context) {
	c.HTML(http.StatusOK, "insert_book.html", nil)
}

func (h *LibraryHandler) insertBook(c *gin.Context) {
	name := c.PostForm("name")
	author := c.PostForm("author")
	bookType := c.PostForm("type")
	description := c.PostForm("description")

	if _, err := h.svc.AddBook(name, author, bookType, description); err != nil {
		h.fault(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *LibraryHandler) deleteBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid book id")
		return
	}
	if err := h.svc.RemoveBook(uint(id)); err != nil {
		h.fault(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// ─── Circulation Ledger ───────────────────────────────────────────────────────

// issueReturn serves the ledger view for both GET and POST. A ?delete=<id>
// query removes a ledger row and redirects. A POST with all fields present
// records a transaction and flips the matching books' availability; a POST
// with any field missing is skipped silently. Either way the view is
// re-rendered from current store state.
func (h *LibraryHandler) issueReturn(c *gin.Context) {
	if deleteID := c.Query("delete"); deleteID != "" {
		if id, err := strconv.ParseUint(deleteID, 10, 32); err == nil {
			if err := h.svc.RemoveTransaction(uint(id)); err != nil {
				h.fault(c, err)
				return
			}
		}
		c.Redirect(http.StatusFound, "/issue_return")
		return
	}

	if c.Request.Method == http.MethodPost {
		bookName := c.PostForm("book_name")
		studentName := c.PostForm("student_name")
		action := c.PostForm("action")

		if bookName != "" && studentName != "" && action != "" {
			if _, err := h.svc.RecordCirculation(bookName, studentName, models.CirculationAction(action)); err != nil {
				h.fault(c, err)
				return
			}
		}
	}

	names, err := h.svc.ListBookNames()
	if err != nil {
		h.fault(c, err)
		return
	}
	txns, err := h.svc.ListTransactions()
	if err != nil {
		h.fault(c, err)
		return
	}
	c.HTML(http.StatusOK, "issue_return.html", gin.H{
		"Books":        names,
		"Transactions": txns,
	})
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// fault surfaces an unrecovered store error as a generic fault page.
func (h *LibraryHandler) fault(c *gin.Context, err error) {
	log.Printf("[ERROR] %s %s: %v (request_id=%v)", c.Request.Method, c.Request.URL.Path, err, c.Value("request_id"))
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

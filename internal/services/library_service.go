package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"librarydesk/internal/models"
	"librarydesk/internal/repositories"
)

// ─── Sentinel Errors ──────────────────────────────────────────────────────────

var (
	// ErrDuplicateUsername is returned when registration hits the unique
	// index on users.username. No partial write occurs.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned when no user row matches the
	// submitted username/password pair exactly.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ─── Service Interface ────────────────────────────────────────────────────────

// LibraryService defines the application-level operations of the library system.
type LibraryService interface {
	Register(username, password string) error
	Authenticate(username, password string) (*models.User, error)

	ListBooks() ([]models.Book, error)
	ListBookNames() ([]string, error)
	AddBook(name, author, bookType, description string) (*models.Book, error)
	RemoveBook(id uint) error

	RecordCirculation(bookName, studentName string, action models.CirculationAction) (*models.Transaction, error)
	ListTransactions() ([]models.Transaction, error)
	RemoveTransaction(id uint) error
}

// ─── Implementation ───────────────────────────────────────────────────────────

type libraryService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	bookRepo repositories.BookRepository
	txnRepo  repositories.TransactionRepository

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewLibraryService wires up all dependencies and returns a LibraryService.
func NewLibraryService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	txnRepo repositories.TransactionRepository,
) LibraryService {
	return &libraryService{
		db:       db,
		userRepo: userRepo,
		bookRepo: bookRepo,
		txnRepo:  txnRepo,
		now:      time.Now,
	}
}

// ─── Registration / Login ─────────────────────────────────────────────────────

// Register creates a user account. The password is stored verbatim: login
// compares it by equality, and changing that would change observable
// behavior (see DESIGN.md).
func (s *libraryService) Register(username, password string) error {
	user := &models.User{
		Username: username,
		Password: password,
	}
	if err := s.userRepo.Create(nil, user); err != nil {
		if isUniqueViolation(err) {
			log.Printf("[WARN] Register: username %q already taken", username)
			return ErrDuplicateUsername
		}
		log.Printf("[ERROR] Register: failed to create user %q: %v", username, err)
		return err
	}
	log.Printf("[INFO] Register: created user %q (id=%d)", username, user.ID)
	return nil
}

// Authenticate returns the user row matching both username and password
// exactly, or ErrInvalidCredentials on any mismatch.
func (s *libraryService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByCredentials(nil, username, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] Authenticate: invalid credentials for %q", username)
			return nil, ErrInvalidCredentials
		}
		log.Printf("[ERROR] Authenticate: lookup failed for %q: %v", username, err)
		return nil, err
	}
	log.Printf("[INFO] Authenticate: user %q logged in", username)
	return user, nil
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// ListBooks returns all books in the catalogue, insertion order.
func (s *libraryService) ListBooks() ([]models.Book, error) {
	return s.bookRepo.List(nil)
}

// ListBookNames returns the current catalogue names for the ledger's
// selection control.
func (s *libraryService) ListBookNames() ([]string, error) {
	return s.bookRepo.ListNames(nil)
}

// AddBook creates a book record, available by default. Duplicate names are
// allowed; the catalogue has no uniqueness constraint on titles.
func (s *libraryService) AddBook(name, author, bookType, description string) (*models.Book, error) {
	book := &models.Book{
		Name:        name,
		Author:      author,
		Type:        bookType,
		Description: description,
		Available:   models.AvailabilityYes,
	}
	if err := s.bookRepo.Create(nil, book); err != nil {
		log.Printf("[ERROR] AddBook: failed to create book %q: %v", name, err)
		return nil, err
	}
	log.Printf("[INFO] AddBook: created book %q (id=%d)", book.Name, book.ID)
	return book, nil
}

// RemoveBook deletes a book by id. A non-existent id is a no-op success.
func (s *libraryService) RemoveBook(id uint) error {
	if err := s.bookRepo.DeleteByID(nil, id); err != nil {
		log.Printf("[ERROR] RemoveBook: failed to delete book %d: %v", id, err)
		return err
	}
	log.Printf("[INFO] RemoveBook: deleted book %d", id)
	return nil
}

// ─── Circulation ──────────────────────────────────────────────────────────────

// RecordCirculation implements the ledger submission flow.
//
// Both steps run in one transaction:
//  1. Insert a Transaction row with the current local timestamp.
//  2. Update every Book named bookName: "issue" marks it unavailable,
//     anything else marks it available.
//
// There is no validation against the catalogue: an unknown book name still
// records a ledger row (step 2 then touches zero rows), and double-issuing
// or double-returning a title is accepted silently.
func (s *libraryService) RecordCirculation(bookName, studentName string, action models.CirculationAction) (*models.Transaction, error) {
	txn := &models.Transaction{
		BookName:    bookName,
		StudentName: studentName,
		DateTime:    s.now().Format(models.TimestampLayout),
		Action:      action,
	}

	available := models.AvailabilityYes
	if action == models.ActionIssue {
		available = models.AvailabilityNo
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txnRepo.Create(tx, txn); err != nil {
			log.Printf("[ERROR] RecordCirculation: failed to record %s of %q: %v", action, bookName, err)
			return err
		}
		if err := s.bookRepo.SetAvailabilityByName(tx, bookName, available); err != nil {
			log.Printf("[ERROR] RecordCirculation: failed to update availability of %q: %v", bookName, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] RecordCirculation: %s of %q by %q recorded (id=%d)", action, bookName, studentName, txn.ID)
	return txn, nil
}

// ListTransactions returns the full ledger, newest first.
func (s *libraryService) ListTransactions() ([]models.Transaction, error) {
	return s.txnRepo.ListNewestFirst(nil)
}

// RemoveTransaction deletes a ledger row by id. Availability flags are not
// reverted. A non-existent id is a no-op success.
func (s *libraryService) RemoveTransaction(id uint) error {
	if err := s.txnRepo.DeleteByID(nil, id); err != nil {
		log.Printf("[ERROR] RemoveTransaction: failed to delete transaction %d: %v", id, err)
		return err
	}
	log.Printf("[INFO] RemoveTransaction: deleted transaction %d", id)
	return nil
}

// ─── Internal Helpers ─────────────────────────────────────────────────────────

// isUniqueViolation checks whether a unique-constraint error occurred.
// GORM translates these to ErrDuplicatedKey; the string checks cover
// drivers without translation (PostgreSQL code 23505, SQLite's message).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

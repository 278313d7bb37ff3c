package repositories

import (
	"gorm.io/gorm"

	"librarydesk/internal/models"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByCredentials(db *gorm.DB, username, password string) (*models.User, error)
}

type BookRepository interface {
	Create(db *gorm.DB, book *models.Book) error
	List(db *gorm.DB) ([]models.Book, error)
	ListNames(db *gorm.DB) ([]string, error)
	DeleteByID(db *gorm.DB, id uint) error
	SetAvailabilityByName(db *gorm.DB, name string, available models.Availability) error
}

type TransactionRepository interface {
	Create(db *gorm.DB, txn *models.Transaction) error
	ListNewestFirst(db *gorm.DB) ([]models.Transaction, error)
	DeleteByID(db *gorm.DB, id uint) error
}

// concrete implementations

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Create(user).Error
}

// FindByCredentials looks up a user by exact username and password match.
// Passwords are stored verbatim, so this is a plain equality predicate.
func (r *userRepository) FindByCredentials(db *gorm.DB, username, password string) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.Where("username = ? AND password = ?", username, password).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Create(book).Error
}

func (r *bookRepository) List(db *gorm.DB) ([]models.Book, error) {
	if db == nil {
		db = r.db
	}
	var books []models.Book
	if err := db.Order("id").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) ListNames(db *gorm.DB) ([]string, error) {
	if db == nil {
		db = r.db
	}
	var names []string
	if err := db.Model(&models.Book{}).Order("id").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteByID removes the book row if present. A missing id deletes zero
// rows, which is not an error.
func (r *bookRepository) DeleteByID(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Book{}, "id = ?", id).Error
}

// SetAvailabilityByName flips the availability flag on every book whose
// name matches. Matching is by name, not id: books sharing a title share
// one availability state, and an unknown name updates zero rows.
func (r *bookRepository) SetAvailabilityByName(db *gorm.DB, name string, available models.Availability) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Book{}).
		Where("name = ?", name).
		Update("available", available).
		Error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(db *gorm.DB, txn *models.Transaction) error {
	if db == nil {
		db = r.db
	}
	return db.Create(txn).Error
}

func (r *transactionRepository) ListNewestFirst(db *gorm.DB) ([]models.Transaction, error) {
	if db == nil {
		db = r.db
	}
	var txns []models.Transaction
	if err := db.Order("id DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) DeleteByID(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Transaction{}, "id = ?", id).Error
}

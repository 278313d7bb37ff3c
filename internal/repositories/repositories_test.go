package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"librarydesk/internal/config"
	"librarydesk/internal/models"
	"librarydesk/internal/storage"
)

func tempDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "library.db")

	db, err := storage.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	return db
}

func TestUserRepository_FindByCredentials(t *testing.T) {
	db := tempDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(nil, &models.User{Username: "alice", Password: "secret"}))

	user, err := repo.FindByCredentials(nil, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = repo.FindByCredentials(nil, "alice", "wrong")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := tempDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(nil, &models.User{Username: "alice", Password: "a"}))
	err := repo.Create(nil, &models.User{Username: "alice", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBookRepository_ListOrder(t *testing.T) {
	db := tempDB(t)
	repo := NewBookRepository(db)

	for _, name := range []string{"Dune", "Hyperion", "Foundation"} {
		require.NoError(t, repo.Create(nil, &models.Book{Name: name, Available: models.AvailabilityYes}))
	}

	books, err := repo.List(nil)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].Name)
	assert.Equal(t, "Foundation", books[2].Name)

	names, err := repo.ListNames(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Hyperion", "Foundation"}, names)
}

func TestBookRepository_SetAvailabilityByName(t *testing.T) {
	db := tempDB(t)
	repo := NewBookRepository(db)

	require.NoError(t, repo.Create(nil, &models.Book{Name: "Dune", Available: models.AvailabilityYes}))
	require.NoError(t, repo.Create(nil, &models.Book{Name: "Dune", Available: models.AvailabilityYes}))

	require.NoError(t, repo.SetAvailabilityByName(nil, "Dune", models.AvailabilityNo))

	books, err := repo.List(nil)
	require.NoError(t, err)
	for _, b := range books {
		assert.Equal(t, models.AvailabilityNo, b.Available)
	}

	// Unknown name updates zero rows and is not an error.
	require.NoError(t, repo.SetAvailabilityByName(nil, "Hyperion", models.AvailabilityNo))
}

func TestBookRepository_DeleteByID_NoOp(t *testing.T) {
	db := tempDB(t)
	repo := NewBookRepository(db)

	require.NoError(t, repo.Create(nil, &models.Book{Name: "Dune", Available: models.AvailabilityYes}))
	require.NoError(t, repo.DeleteByID(nil, 1234))

	books, err := repo.List(nil)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestTransactionRepository_NewestFirst(t *testing.T) {
	db := tempDB(t)
	repo := NewTransactionRepository(db)

	for _, student := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, repo.Create(nil, &models.Transaction{
			BookName:    "Dune",
			StudentName: student,
			DateTime:    "2024-03-07 09:00:00",
			Action:      models.ActionIssue,
		}))
	}

	txns, err := repo.ListNewestFirst(nil)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "Carol", txns[0].StudentName)
	assert.Equal(t, "Alice", txns[2].StudentName)
}

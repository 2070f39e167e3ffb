package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestListServices_OnlyActive(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(serviceColumns).
		AddRow(int64(1), int64(2), "Haircut", "Classic cut", 60, 35.0, nil, true, now, now).
		AddRow(int64(2), nil, "Manicure", "", 45, "25.50", "https://cdn/x.jpg", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE is_active = $1 ORDER BY category_id ASC NULLS LAST, name ASC")).
		WithArgs(true).
		WillReturnRows(rows)

	services, err := repo.ListServices(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, int64(2), *services[0].CategoryID)
	assert.Nil(t, services[1].CategoryID)
	assert.Equal(t, 25.5, services[1].Price)
	assert.Equal(t, "https://cdn/x.jpg", *services[1].ImageURL)
}

func TestGetServiceByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err := repo.GetServiceByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateService(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO services")).
		WithArgs(nil, "Coloring", "", 120, 80.0, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	created, err := repo.CreateService(context.Background(), &domain.Service{
		Name:            "Coloring",
		DurationMinutes: 120,
		Price:           80,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestDeleteService_InUse(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM services WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503"})

	assert.ErrorIs(t, repo.DeleteService(context.Background(), 1), ErrServiceInUse)
}

func TestUpdateService_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE services SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateService(context.Background(), &domain.Service{ID: 5, Name: "x", DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO service_categories (name,sort_order) VALUES ($1,$2) RETURNING id, created_at")).
		WithArgs("Hair", 1).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateCategory(context.Background(), &domain.ServiceCategory{Name: "Hair", SortOrder: 1})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestListCategories(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM service_categories ORDER BY sort_order ASC, name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort_order", "created_at"}).
			AddRow(int64(1), "Hair", 0, now).
			AddRow(int64(2), "Nails", 1, now))

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Nails", categories[1].Name)
}

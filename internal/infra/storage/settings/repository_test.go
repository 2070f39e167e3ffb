package settings

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT section, value, updated_at FROM site_settings ORDER BY section ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"section", "value", "updated_at"}).
			AddRow("contact", []byte(`{"phone":"+100"}`), now).
			AddRow("hours", []byte(`[]`), now))

	sections, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, domain.SectionContact, sections[0].Name)
	assert.JSONEq(t, `{"phone":"+100"}`, string(sections[0].Value))
}

func TestGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM site_settings WHERE section = $1")).
		WithArgs("email").
		WillReturnRows(sqlmock.NewRows([]string{"section", "value", "updated_at"}))

	_, err = repo.Get(context.Background(), domain.SectionEmail)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO site_settings (section,value) VALUES ($1,$2) ON CONFLICT (section) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW() RETURNING updated_at",
	)).
		WithArgs("branding", []byte(`{"salonName":"Iris"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	updatedAt, err := repo.Upsert(context.Background(), domain.SectionBranding, json.RawMessage(`{"salonName":"Iris"}`))
	require.NoError(t, err)
	assert.Equal(t, now, updatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

// Section сохраненный раздел настроек в исходном JSON виде
type Section struct {
	Name      domain.SettingsSection
	Value     json.RawMessage
	UpdatedAt time.Time
}

// Repository репозиторий настроек сайта (таблица site_settings)
// Каждый раздел хранится отдельной строкой с JSONB значением
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает один раздел настроек
func (r *Repository) Get(ctx context.Context, section domain.SettingsSection) (*Section, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("section", "value", "updated_at").
		From("site_settings").
		Where(squirrel.Eq{"section": string(section)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSection(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan section: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetAll получает все сохраненные разделы одним запросом
func (r *Repository) GetAll(ctx context.Context) ([]*Section, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("section", "value", "updated_at").
		From("site_settings").
		OrderBy("section ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sections := make([]*Section, 0, 4)
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return sections, nil
}

// Upsert сохраняет раздел целиком, перезаписывая предыдущее значение
func (r *Repository) Upsert(ctx context.Context, section domain.SettingsSection, value json.RawMessage) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("site_settings").
		Columns("section", "value").
		Values(string(section), []byte(value)).
		Suffix("ON CONFLICT (section) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW() RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return time.Time{}, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSection(row rowScanner) (*Section, error) {
	var (
		name  string
		value []byte
		s     Section
	)
	if err := row.Scan(&name, &value, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Name = domain.SettingsSection(name)
	s.Value = json.RawMessage(value)
	return &s, nil
}

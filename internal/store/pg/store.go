package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	"github.com/wurt83ow/trivia-ext/internal/logger"
	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store реализует интерфейс store.Store и позволяет взаимодействовать с СУБД PostgreSQL.
type Store struct {
	// Поле conn содержит объект соединения с СУБД.
	conn *sql.DB
}

// NewStore возвращает новый экземпляр PostgreSQL хранилища
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Bootstrap подготавливает БД к работе, применяя миграции
func (s Store) Bootstrap(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(logger.NewGooseLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.conn, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (s Store) SaveResult(ctx context.Context, r models.Result) error {
	// добавляем новый результат в БД
	_, err := s.conn.ExecContext(ctx, `
        INSERT INTO quiz_results
        (id, sender, correct, total, created_at)
        VALUES
        ($1, $2, $3, $4, $5);
    `, r.ID, r.Sender, r.Correct, r.Total, r.CreatedAt)

	return mapError(err)
}

func (s Store) Stats(ctx context.Context) (models.Stats, error) {
	stats := models.Stats{ByScore: make(map[int]int)}

	rows, err := s.conn.QueryContext(ctx, `
        SELECT correct, count(*)
        FROM quiz_results
        GROUP BY correct
    `)
	if err != nil {
		return stats, err
	}
	// не забываем закрыть курсор после завершения работы с данными
	defer rows.Close()

	for rows.Next() {
		var correct, n int
		if err := rows.Scan(&correct, &n); err != nil {
			return stats, err
		}
		stats.ByScore[correct] = n
		stats.Total += n
	}

	// необходимо проверить ошибки уровня курсора
	if err := rows.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// mapError переводит нарушение целостности данных в store.ErrConflict
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return fmt.Errorf("%w: %s", store.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

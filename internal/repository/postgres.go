// Package repository содержит хранилища снимка профилей пользователей: файл JSON и PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/makburgers-bot/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrInvalidProfile возвращается, если профиль нарушает ограничения таблицы.
var ErrInvalidProfile = errors.New("profile violates table constraints")

var retryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// PostgresRepository хранит снимок профилей в PostgreSQL.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	delays []time.Duration
}

// NewPostgresRepository создаёт репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool, delays: retryDelays}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i <= len(r.delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) || i == len(r.delays) {
			return err
		}

		timer := time.NewTimer(r.delays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// retryable сообщает, стоит ли повторять операцию: конфликт сериализации, взаимоблокировка или обрыв соединения.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Load возвращает все сохранённые профили.
func (r *PostgresRepository) Load(ctx context.Context) (map[int64]model.UserProfile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, phone, name, registered_at FROM profiles`,
	)
	if err != nil {
		return map[int64]model.UserProfile{}, fmt.Errorf("select profiles: %w", err)
	}
	defer rows.Close()

	res := make(map[int64]model.UserProfile)
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(&p.ID, &p.Phone, &p.Name, &p.RegisteredAt); err != nil {
			return map[int64]model.UserProfile{}, fmt.Errorf("scan profile: %w", err)
		}
		res[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return map[int64]model.UserProfile{}, fmt.Errorf("iterate profiles: %w", err)
	}

	return res, nil
}

// Save записывает все профили одной транзакцией.
func (r *PostgresRepository) Save(ctx context.Context, profiles map[int64]model.UserProfile) error {
	return r.withRetry(ctx, func() error {
		return r.saveTx(ctx, profiles)
	})
}

func (r *PostgresRepository) saveTx(ctx context.Context, profiles map[int64]model.UserProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for id, p := range profiles {
		registeredAt := p.RegisteredAt
		if registeredAt.IsZero() {
			registeredAt = time.Now()
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO profiles (user_id, phone, name, registered_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (user_id) DO UPDATE
			 SET phone = EXCLUDED.phone, name = EXCLUDED.name, updated_at = now()`,
			id, p.Phone, p.Name, registeredAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
				return fmt.Errorf("%w: user %d", ErrInvalidProfile, id)
			}
			return fmt.Errorf("upsert profile %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

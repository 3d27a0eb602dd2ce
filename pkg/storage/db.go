package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dash_go/models"
	"dash_go/pkg/codec"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// dashboardRowID — документ в таблице один, всегда с этим ID
const dashboardRowID = 1

var dashboardTable = pq.QuoteIdentifier("dashboard")

// DB хранит сжатый документ в PostgreSQL в колонке JSONB
type DB struct {
	Conn *sql.DB
	log  *zap.Logger
}

func NewDB(conn *sql.DB, log *zap.Logger) *DB {
	return &DB{Conn: conn, log: log}
}

// EnsureSchema создаёт таблицу документа, если её ещё нет
func (db *DB) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + dashboardTable + ` (
			id         INT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create dashboard table: %w", err)
	}
	return nil
}

func (db *DB) Load(ctx context.Context) (models.Dashboard, error) {
	d, found, err := db.selectDashboard(ctx, db.Conn, false)
	if err != nil {
		return models.Dashboard{}, err
	}
	if found {
		return d, nil
	}

	// Строки нет — заполняем начальными данными
	d = models.DefaultDashboard()
	if err := db.seed(ctx, db.Conn, d); err != nil {
		return models.Dashboard{}, err
	}
	db.log.Info("dashboard row seeded")
	return d, nil
}

func (db *DB) Save(ctx context.Context, d models.Dashboard) error {
	return db.upsert(ctx, db.Conn, d)
}

// Update блокирует строку документа (SELECT ... FOR UPDATE) на время изменения.
// Строка создаётся до блокировки: SELECT ... FOR UPDATE по отсутствующей строке
// ничего не держит, и два первых изменения перезаписали бы друг друга.
func (db *DB) Update(ctx context.Context, fn func(d *models.Dashboard) error) (models.Dashboard, error) {
	tx, err := db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := db.seed(ctx, tx, models.DefaultDashboard()); err != nil {
		return models.Dashboard{}, err
	}
	d, found, err := db.selectDashboard(ctx, tx, true)
	if err != nil {
		return models.Dashboard{}, err
	}
	if !found {
		return models.Dashboard{}, errors.New("dashboard row missing after seed")
	}
	if err := fn(&d); err != nil {
		return models.Dashboard{}, err
	}
	if err := db.upsert(ctx, tx, d); err != nil {
		return models.Dashboard{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Dashboard{}, fmt.Errorf("commit: %w", err)
	}
	return d, nil
}

// seed вставляет документ, только если строки ещё нет.
// ON CONFLICT защищает от гонки двух первых запросов.
func (db *DB) seed(ctx context.Context, q queryer, d models.Dashboard) error {
	payload, err := codec.Encode(d)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	query := `INSERT INTO ` + dashboardTable + ` (id, data) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, dashboardRowID, string(payload)); err != nil {
		return fmt.Errorf("seed dashboard: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (db *DB) selectDashboard(ctx context.Context, q queryer, lock bool) (models.Dashboard, bool, error) {
	query := `SELECT data FROM ` + dashboardTable + ` WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var raw []byte
	err := q.QueryRowContext(ctx, query, dashboardRowID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dashboard{}, false, nil
	}
	if err != nil {
		return models.Dashboard{}, false, fmt.Errorf("select dashboard: %w", err)
	}
	d, err := codec.Decode(raw)
	if err != nil {
		return models.Dashboard{}, false, err
	}
	return d, true, nil
}

// upsert записывает сжатую форму. JSONB передаётся строкой:
// []byte lib/pq отправил бы как bytea.
func (db *DB) upsert(ctx context.Context, q queryer, d models.Dashboard) error {
	payload, err := codec.Encode(d)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	query := `
		INSERT INTO ` + dashboardTable + ` (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := q.ExecContext(ctx, query, dashboardRowID, string(payload)); err != nil {
		return fmt.Errorf("save dashboard: %w", err)
	}
	return nil
}

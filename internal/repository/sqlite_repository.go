package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LeonR92/kafka/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteItemRepository persists items in a SQLite database.
// The connection pool is capped at a single connection so writes are
// serialized; SQLite's row-level guarantees cover concurrent readers in
// WAL mode.
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository opens the database and ensures the schema exists.
// Schema creation is idempotent and must complete before the service
// accepts traffic.
func NewSQLiteItemRepository(dbPath string) (*SQLiteItemRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // Single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &SQLiteItemRepository{db: db}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

// initSchema creates the items table if it does not exist.
// AUTOINCREMENT keeps the rowid sequence monotonic, so a deleted item's ID
// is never handed out again.
func (r *SQLiteItemRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		quantity INTEGER NOT NULL DEFAULT 1,
		price REAL NOT NULL DEFAULT 0,
		CHECK(name <> '')
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection
func (r *SQLiteItemRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `INSERT INTO items (name, description, quantity, price) VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		item.Name,
		nullableString(item.Description),
		item.Quantity,
		item.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted item id: %w", err)
	}

	created := *item
	created.ID = id
	return &created, nil
}

func (r *SQLiteItemRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT id, name, description, quantity, price FROM items WHERE id = ?`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return item, nil
}

func (r *SQLiteItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	query := `SELECT id, name, description, quantity, price FROM items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		var description sql.NullString

		if err := rows.Scan(&item.ID, &item.Name, &description, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if description.Valid {
			item.Description = &description.String
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Update reads the current row, applies the patch and writes it back inside
// a transaction. A missing row is reported as ErrItemNotFound, never as a
// write failure.
func (r *SQLiteItemRepository) Update(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT id, name, description, quantity, price FROM items WHERE id = ?`
	item, err := scanItem(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item for update: %w", err)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}

	update := `UPDATE items SET name = ?, description = ?, quantity = ?, price = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, update,
		item.Name,
		nullableString(item.Description),
		item.Quantity,
		item.Price,
		id,
	); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}

	return item, nil
}

func (r *SQLiteItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var description sql.NullString

	if err := row.Scan(&item.ID, &item.Name, &description, &item.Quantity, &item.Price); err != nil {
		return nil, err
	}
	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

package storage

import (
	"database/sql"
	"fmt"

	"github.com/ytkg/orders/internal/domain"
)

// PostgresMenuRepository loads the menu catalog from Postgres. The
// catalog is read-only reference data for the memo engine.
type PostgresMenuRepository struct {
	DB *sql.DB
}

func NewPostgresMenuRepository(db *sql.DB) *PostgresMenuRepository {
	return &PostgresMenuRepository{DB: db}
}

func (r *PostgresMenuRepository) ListMenuItems() ([]domain.MenuItem, error) {
	rows, err := r.DB.Query("SELECT id, category, name, price FROM menu_items ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Category, &item.Name, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetMenuItem returns (nil, nil) when the id is unknown.
func (r *PostgresMenuRepository) GetMenuItem(menuID int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(
		"SELECT id, category, name, price FROM menu_items WHERE id = $1", menuID).
		Scan(&item.ID, &item.Category, &item.Name, &item.Price)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// EnsureSchema creates the catalog table and seeds it with the given
// items. Existing rows win over the seed.
func (r *PostgresMenuRepository) EnsureSchema(seed []domain.MenuItem) error {
	if _, err := r.DB.Exec(`
		CREATE TABLE IF NOT EXISTS menu_items (
			id INT PRIMARY KEY,
			category TEXT NOT NULL,
			name TEXT NOT NULL,
			price INT NOT NULL
		)`); err != nil {
		return fmt.Errorf("create menu_items: %w", err)
	}

	for _, item := range seed {
		if _, err := r.DB.Exec(`
			INSERT INTO menu_items (id, category, name, price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, item.ID, item.Category, item.Name, item.Price); err != nil {
			return fmt.Errorf("seed menu item %d: %w", item.ID, err)
		}
	}
	return nil
}

package factory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go-commodity-market/domain"
)

const createCommoditiesTable = `
CREATE TABLE IF NOT EXISTS commodities (
	name TEXT PRIMARY KEY,
	current_valuation TEXT NOT NULL,
	average_valuation TEXT NOT NULL
)`

// SQLCatalog reads commodities from a commodities table.
// Valuations are stored as decimal strings so no precision is lost.
type SQLCatalog struct {
	db *sql.DB
}

// NewSQLCatalog wraps db. The caller owns db and closes it.
func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	return &SQLCatalog{db: db}
}

// CreateSchema creates the commodities table if it is missing.
func (c *SQLCatalog) CreateSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, createCommoditiesTable); err != nil {
		return fmt.Errorf("create commodities table: %w", err)
	}
	return nil
}

// Put inserts or replaces a commodity.
func (c *SQLCatalog) Put(ctx context.Context, commodity domain.Commodity) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO commodities (name, current_valuation, average_valuation) VALUES (?, ?, ?)`,
		commodity.Name, commodity.CurrentValuation.String(), commodity.AverageValuation.String())
	if err != nil {
		return fmt.Errorf("put commodity [%v]: %w", commodity.Name, err)
	}
	return nil
}

// Build loads the commodity called name.
func (c *SQLCatalog) Build(ctx context.Context, name string) (domain.Commodity, error) {
	var current, average string
	err := c.db.QueryRowContext(ctx,
		`SELECT current_valuation, average_valuation FROM commodities WHERE name = ?`, name).
		Scan(&current, &average)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Commodity{}, fmt.Errorf("%w: %q", ErrUnknownCommodity, name)
	}
	if err != nil {
		return domain.Commodity{}, fmt.Errorf("query commodity [%v]: %w", name, err)
	}

	commodity := domain.Commodity{Name: name}
	if commodity.CurrentValuation, err = decimal.NewFromString(current); err != nil {
		return domain.Commodity{}, fmt.Errorf("bad current valuation [%v]: %w", name, err)
	}
	if commodity.AverageValuation, err = decimal.NewFromString(average); err != nil {
		return domain.Commodity{}, fmt.Errorf("bad average valuation [%v]: %w", name, err)
	}
	return commodity, nil
}

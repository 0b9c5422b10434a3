package db

import (
	"context"
	"fmt"
)

// Migrate creates the purchase ledger tables.
func Migrate(ctx context.Context, d *DB) error {
	models := []interface{}{
		(*PurchaseRow)(nil),
		(*TicketCount)(nil),
	}
	for _, m := range models {
		if _, err := d.Bun.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create ledger table: %w", err)
		}
	}
	return nil
}

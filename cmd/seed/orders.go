// backend-go/cmd/seed/orders.go
package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

type seedOrder struct {
	customer string
	date     string
	quantity float64
	price    float64
}

// The 2024-2025 order book, loaded as-is. These rows predate stock tracking,
// so no inventory is drawn for them.
var seedOrders = []seedOrder{
	{"노원베스코", "2024-01-03", 30, 23000},
	{"더블브이", "2024-01-09", 30, 23000},
	{"노원베스코", "2024-01-16", 30, 23000},
	{"더블브이", "2024-01-30", 30, 23000},
	{"노원베스코", "2024-02-06", 30, 23000},
	{"가우디안경", "2024-02-13", 4, 23000},
	{"더블브이", "2024-02-19", 30, 23000},
	{"노원베스코", "2024-02-22", 30, 23000},
	{"더블브이", "2024-03-12", 30, 23000},
	{"노원베스코", "2024-03-16", 30, 23000},
	{"노원베스코", "2024-03-19", 30, 23000},
	{"더블브이", "2024-03-26", 30, 23000},
	{"동부엔텍", "2024-03-28", 3, 23000},
	{"더블브이", "2024-04-16", 30, 23000},
	{"원스토리", "2024-04-21", 30, 18000},
	{"동부엔텍", "2024-04-25", 3, 23000},
	{"더블브이", "2024-05-01", 30, 23000},
	{"노원베스코", "2024-05-07", 30, 23000},
	{"원스토리", "2024-05-08", 30, 18000},
	{"가우디안경", "2024-05-16", 4, 23000},
	{"동부엔텍", "2024-05-20", 3, 23000},
	{"더블브이", "2024-05-22", 30, 23000},
	{"노원베스코", "2024-05-27", 30, 23000},
	{"원스토리", "2024-06-04", 30, 18000},
	{"더블브이", "2024-06-13", 30, 23000},
	{"동부엔텍", "2024-06-26", 3, 23000},
	{"노원베스코", "2024-06-27", 30, 23000},
	{"원스토리", "2024-06-28", 30, 18000},
	{"더블브이", "2024-07-03", 30, 23000},
	{"노원베스코", "2024-07-08", 30, 23000},
	{"가우디안경", "2024-07-16", 4, 23000},
	{"원스토리", "2024-07-18", 30, 18000},
	{"더블브이", "2024-07-23", 30, 23000},
	{"동부엔텍", "2024-07-23", 3, 23000},
	{"노원베스코", "2024-07-29", 30, 23000},
	{"더블브이", "2024-08-12", 30, 23000},
	{"노원베스코", "2024-08-12", 30, 23000},
	{"원스토리", "2024-08-12", 30, 18000},
	{"백제가", "2024-08-14", 15, 23000},
	{"가우디안경", "2024-08-21", 4, 23000},
	{"동부엔텍", "2024-08-26", 3, 23000},
	{"더블브이", "2024-08-30", 30, 23000},
	{"노원베스코", "2024-09-09", 30, 23000},
	{"원스토리", "2024-09-12", 30, 18000},
	{"더블브이", "2024-09-24", 30, 23000},
	{"동부엔텍", "2024-09-30", 3, 23000},
	{"노원베스코", "2024-10-02", 30, 23000},
	{"가우디안경", "2024-10-14", 4, 23000},
	{"더블브이", "2024-10-15", 30, 23000},
	{"원스토리", "2024-10-15", 30, 18000},
	{"노원베스코", "2024-10-23", 30, 23000},
	{"동부엔텍", "2024-10-30", 3, 23000},
	{"더블브이", "2024-11-04", 30, 23000},
	{"노원베스코", "2024-11-11", 30, 23000},
	{"원스토리", "2024-11-18", 30, 18000},
	{"가우디안경", "2024-11-21", 4, 23000},
	{"더블브이", "2024-11-25", 30, 23000},
	{"죽암리", "2024-11-25", 4, 23000},
	{"노원베스코", "2024-12-02", 30, 23000},
	{"죽암리", "2024-12-11", 4, 23000},
	{"동부엔텍", "2024-12-12", 3, 23000},
	{"노원베스코", "2024-12-16", 30, 23000},
	{"더블브이", "2024-12-17", 30, 23000},
	{"백제가", "2024-12-23", 15, 23000},
	{"원스토리", "2024-12-26", 30, 18000},
	{"죽암리", "2025-01-02", 4, 25000},
	{"더블브이", "2025-01-04", 30, 25000},
	{"노원베스코", "2025-01-06", 30, 25000},
	{"가우디안경", "2025-01-13", 4, 25000},
	{"죽암리", "2025-01-14", 4, 25000},
	{"더블브이", "2025-01-21", 30, 25000},
	{"죽암리", "2025-01-21", 5, 25000},
	{"노원베스코", "2025-01-23", 30, 25000},
	{"동부엔텍", "2025-02-04", 3, 25000},
	{"죽암리", "2025-02-07", 4, 25000},
	{"노원베스코", "2025-02-10", 30, 25000},
	{"원스토리", "2025-02-12", 30, 22000},
	{"더블브이", "2025-02-13", 30, 25000},
	{"노원베스코", "2025-02-24", 30, 25000},
	{"동부엔텍", "2025-02-25", 3, 25000},
	{"원스토리", "2025-02-28", 30, 22000},
}

func runOrders(c *cli.Context) error {
	db := dbFrom(c)

	var blendID int64
	var blendName string
	err := db.QueryRowContext(c.Context,
		`SELECT id, name FROM materials WHERE name = $1`, "블렌딩원두").
		Scan(&blendID, &blendName)
	if err != nil {
		return fmt.Errorf("house blend not found, run the master seed first: %w", err)
	}

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, o := range seedOrders {
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO customers (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			o.customer); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", o.customer, err)
		}
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO orders
			 (customer_name, material_id, material_name, quantity, price_per_kg, total_price, order_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.customer, blendID, blendName, o.quantity, o.price,
			o.quantity*o.price, o.date); err != nil {
			return fmt.Errorf("failed to seed order for %s on %s: %w", o.customer, o.date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("seeded %d orders", len(seedOrders))
	return nil
}

// backend-go/cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository/postgres"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	return c.Context.Value(dbKey).(*sql.DB)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize and seed the trading database",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create all tables",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:   "master",
				Usage:  "Seed raw bean materials, the house blend, and opening purchases",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runMaster,
			},
			{
				Name:  "admin",
				Usage: "Create an API user",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "email"},
				},
				Before: initDB,
				After:  closeDB,
				Action: runAdmin,
			},
			{
				Name:   "orders",
				Usage:  "Load the historical order book",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runOrders,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSchema(c *cli.Context) error {
	if err := postgres.ApplySchema(c.Context, dbFrom(c)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("schema applied")
	return nil
}

type seedMaterial struct {
	name         string
	materialType domain.MaterialType
	ratio        float64 // legacy blend share, 0 for the blend itself
}

var seedMaterials = []seedMaterial{
	{name: "브라질", materialType: domain.MaterialRegular, ratio: 0.55},
	{name: "콜롬비아", materialType: domain.MaterialRegular, ratio: 0.20},
	{name: "과테말라", materialType: domain.MaterialRegular, ratio: 0.15},
	{name: "시다모", materialType: domain.MaterialRegular, ratio: 0.10},
	{name: "블렌딩원두", materialType: domain.MaterialBlend},
}

type seedPurchase struct {
	materialName string
	quantityKg   float64
	pricePerKg   float64
	date         string
}

var seedPurchases = []seedPurchase{
	{materialName: "브라질", quantityKg: 600, pricePerKg: 7500, date: "2024-01-02"},
	{materialName: "콜롬비아", quantityKg: 600, pricePerKg: 10000, date: "2024-01-02"},
	{materialName: "과테말라", quantityKg: 600, pricePerKg: 9000, date: "2024-01-02"},
	{materialName: "시다모", quantityKg: 600, pricePerKg: 9500, date: "2024-01-02"},
}

func runMaster(c *cli.Context) error {
	db := dbFrom(c)

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids := make(map[string]int64, len(seedMaterials))
	for _, m := range seedMaterials {
		var id int64
		err := tx.QueryRowContext(c.Context,
			`INSERT INTO materials (name, type) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET type = EXCLUDED.type
			 RETURNING id`,
			m.name, string(m.materialType)).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed material %s: %w", m.name, err)
		}
		ids[m.name] = id

		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO inventory (material_id, quantity) VALUES ($1, 0)
			 ON CONFLICT (material_id) DO NOTHING`, id); err != nil {
			return fmt.Errorf("failed to seed inventory for %s: %w", m.name, err)
		}
	}

	blendID := ids["블렌딩원두"]
	if _, err := tx.ExecContext(c.Context,
		`DELETE FROM blend_components WHERE blend_id = $1`, blendID); err != nil {
		return err
	}
	for _, m := range seedMaterials {
		if m.ratio == 0 {
			continue
		}
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO blend_components (blend_id, component_id, ratio) VALUES ($1, $2, $3)`,
			blendID, ids[m.name], m.ratio); err != nil {
			return fmt.Errorf("failed to seed blend component %s: %w", m.name, err)
		}
	}

	for _, p := range seedPurchases {
		if _, err := tx.ExecContext(c.Context,
			`INSERT INTO material_purchases
			 (material_id, material_name, quantity_kg, price_per_kg, total_price, purchase_date)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			ids[p.materialName], p.materialName, p.quantityKg, p.pricePerKg,
			p.quantityKg*p.pricePerKg, p.date); err != nil {
			return fmt.Errorf("failed to seed purchase for %s: %w", p.materialName, err)
		}
		if _, err := tx.ExecContext(c.Context,
			`UPDATE inventory SET quantity = quantity + $1, updated_at = NOW()
			 WHERE material_id = $2`,
			p.quantityKg, ids[p.materialName]); err != nil {
			return fmt.Errorf("failed to stock inventory for %s: %w", p.materialName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("seeded %d materials and %d opening purchases", len(seedMaterials), len(seedPurchases))
	return nil
}

func runAdmin(c *cli.Context) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var email sql.NullString
	if v := c.String("email"); v != "" {
		email = sql.NullString{String: v, Valid: true}
	}

	_, err = dbFrom(c).ExecContext(c.Context,
		`INSERT INTO users (username, email, hashed_password) VALUES ($1, $2, $3)
		 ON CONFLICT (username) DO UPDATE SET hashed_password = EXCLUDED.hashed_password`,
		c.String("username"), email, string(hashed))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("user %s ready", c.String("username"))
	return nil
}

// internal/repository/postgres/material_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besco/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type materialRepository struct {
	db *DB
}

func NewMaterialRepository(db *DB) *materialRepository {
	return &materialRepository{db: db}
}

const materialColumns = `id, name, type, unit, processing_ratio, created_at, updated_at`

func (r *materialRepository) List(ctx context.Context) ([]domain.Material, error) {
	materials := []domain.Material{}
	err := r.db.SelectContext(ctx, &materials,
		`SELECT `+materialColumns+` FROM materials ORDER BY id`)
	return materials, err
}

func (r *materialRepository) Get(ctx context.Context, id int64) (*domain.Material, error) {
	var m domain.Material
	err := r.db.GetContext(ctx, &m,
		`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("material %d", id)
	}
	if err != nil {
		return nil, err
	}
	if m.Type == domain.MaterialBlend {
		components, err := r.GetComponents(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.Components = components
	}
	return &m, nil
}

func (r *materialRepository) GetByName(ctx context.Context, name string) (*domain.Material, error) {
	var m domain.Material
	err := r.db.GetContext(ctx, &m,
		`SELECT `+materialColumns+` FROM materials WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("material %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) Create(ctx context.Context, m *domain.Material, components []domain.BlendComponent) (*domain.Material, error) {
	var created domain.Material
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &created,
			`INSERT INTO materials (name, type, unit, processing_ratio)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+materialColumns,
			m.Name, m.Type, m.Unit, m.ProcessingRatio)
		if isUniqueViolation(err) {
			return domain.Conflictf("material %q", m.Name)
		}
		if err != nil {
			return err
		}

		if err := insertComponents(ctx, tx, created.ID, components); err != nil {
			return err
		}

		// Every material starts with an empty inventory row.
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory (material_id, quantity, safety_stock) VALUES ($1, 0, 0)`,
			created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	created.Components = components
	return &created, nil
}

func (r *materialRepository) Update(ctx context.Context, id int64, materialType *domain.MaterialType, processingRatio *float64) (*domain.Material, error) {
	var m domain.Material
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if materialType != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE materials SET type = $1, updated_at = NOW() WHERE id = $2`,
				*materialType, id); err != nil {
				return err
			}
		}
		if processingRatio != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE materials SET processing_ratio = $1, updated_at = NOW() WHERE id = $2`,
				*processingRatio, id); err != nil {
				return err
			}
		}
		err := tx.GetContext(ctx, &m,
			`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("material %d", id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) GetComponents(ctx context.Context, blendID int64) ([]domain.BlendComponent, error) {
	components := []domain.BlendComponent{}
	err := r.db.SelectContext(ctx, &components,
		`SELECT id, blend_id, component_id, ratio
		 FROM blend_components WHERE blend_id = $1 ORDER BY id`, blendID)
	return components, err
}

// ReplaceComponents swaps the full component set in one transaction;
// individual rows are never patched.
func (r *materialRepository) ReplaceComponents(ctx context.Context, blendID int64, components []domain.BlendComponent) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM blend_components WHERE blend_id = $1`, blendID); err != nil {
			return err
		}
		return insertComponents(ctx, tx, blendID, components)
	})
}

func insertComponents(ctx context.Context, tx *sqlx.Tx, blendID int64, components []domain.BlendComponent) error {
	for _, c := range components {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blend_components (blend_id, component_id, ratio) VALUES ($1, $2, $3)`,
			blendID, c.ComponentID, c.Ratio); err != nil {
			return fmt.Errorf("insert blend component %d: %w", c.ComponentID, err)
		}
	}
	return nil
}

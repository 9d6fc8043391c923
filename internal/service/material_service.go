// backend-go/internal/service/material_service.go
package service

import (
	"context"
	"strings"

	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

type ComponentInput struct {
	MaterialName string  `json:"material_name" binding:"required"`
	Ratio        float64 `json:"ratio" binding:"required"`
}

type MaterialInput struct {
	Name            string           `json:"name" binding:"required"`
	Type            string           `json:"type"`
	Unit            string           `json:"unit"`
	ProcessingRatio float64          `json:"processing_ratio"`
	Components      []ComponentInput `json:"components"`
}

type MaterialUpdate struct {
	Type            *string  `json:"type"`
	ProcessingRatio *float64 `json:"processing_ratio"`
}

type MaterialService struct {
	materials repository.MaterialRepository
}

func NewMaterialService(materials repository.MaterialRepository) *MaterialService {
	return &MaterialService{materials: materials}
}

func (s *MaterialService) List(ctx context.Context) ([]domain.Material, error) {
	return s.materials.List(ctx)
}

func (s *MaterialService) Get(ctx context.Context, id int64) (*domain.Material, error) {
	return s.materials.Get(ctx, id)
}

func (s *MaterialService) Create(ctx context.Context, in MaterialInput) (*domain.Material, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("material name is required")
	}

	mt := domain.MaterialRegular
	if in.Type != "" {
		mt = domain.MaterialType(in.Type)
		if !mt.Valid() {
			return nil, domain.Validationf("unknown material type %q", in.Type)
		}
	}
	if len(in.Components) > 0 && mt != domain.MaterialBlend {
		return nil, domain.Validationf("components are only allowed on blend materials")
	}

	unit := in.Unit
	if unit == "" {
		unit = "kg"
	}
	ratio := in.ProcessingRatio
	if ratio <= 0 {
		ratio = 1.0
	}

	components, err := s.resolveComponents(ctx, in.Components)
	if err != nil {
		return nil, err
	}

	m := &domain.Material{
		Name:            name,
		Type:            mt,
		Unit:            unit,
		ProcessingRatio: ratio,
	}
	return s.materials.Create(ctx, m, components)
}

func (s *MaterialService) Update(ctx context.Context, id int64, in MaterialUpdate) (*domain.Material, error) {
	var mt *domain.MaterialType
	if in.Type != nil {
		parsed := domain.MaterialType(*in.Type)
		if !parsed.Valid() {
			return nil, domain.Validationf("unknown material type %q", *in.Type)
		}
		mt = &parsed
	}
	if in.ProcessingRatio != nil && *in.ProcessingRatio <= 0 {
		return nil, domain.Validationf("processing ratio must be positive")
	}
	return s.materials.Update(ctx, id, mt, in.ProcessingRatio)
}

// Components returns the current recipe of a blend.
func (s *MaterialService) Components(ctx context.Context, blendID int64) ([]domain.BlendComponent, error) {
	m, err := s.materials.Get(ctx, blendID)
	if err != nil {
		return nil, err
	}
	if m.Type != domain.MaterialBlend {
		return nil, domain.Validationf("material %q is not a blend", m.Name)
	}
	return m.Components, nil
}

// ReplaceComponents swaps the blend's recipe wholesale. Existing orders keep
// their creation-time requirement snapshots, so the swap never rewrites
// history.
func (s *MaterialService) ReplaceComponents(ctx context.Context, blendID int64, inputs []ComponentInput) (*domain.Material, error) {
	m, err := s.materials.Get(ctx, blendID)
	if err != nil {
		return nil, err
	}
	if m.Type != domain.MaterialBlend {
		return nil, domain.Validationf("material %q is not a blend", m.Name)
	}
	if len(inputs) == 0 {
		return nil, domain.Validationf("a blend needs at least one component")
	}

	components, err := s.resolveComponents(ctx, inputs)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		if c.ComponentID == blendID {
			return nil, domain.Validationf("a blend cannot contain itself")
		}
	}

	if err := s.materials.ReplaceComponents(ctx, blendID, components); err != nil {
		return nil, err
	}
	return s.materials.Get(ctx, blendID)
}

func (s *MaterialService) resolveComponents(ctx context.Context, inputs []ComponentInput) ([]domain.BlendComponent, error) {
	components := make([]domain.BlendComponent, 0, len(inputs))
	for _, in := range inputs {
		if in.Ratio <= 0 {
			return nil, domain.Validationf("component %q has non-positive ratio", in.MaterialName)
		}
		component, err := s.materials.GetByName(ctx, in.MaterialName)
		if err != nil {
			return nil, err
		}
		if component.Type == domain.MaterialBlend {
			return nil, domain.Validationf("component %q is itself a blend", in.MaterialName)
		}
		components = append(components, domain.BlendComponent{
			ComponentID: component.ID,
			Ratio:       in.Ratio,
		})
	}
	return components, nil
}

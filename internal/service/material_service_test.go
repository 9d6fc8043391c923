package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/besco/backend-go/internal/domain"
)

func newMaterialFixture() (*MaterialService, *fakeMaterialRepo) {
	materials := newFakeMaterialRepo()
	seedMaterials(materials)
	return NewMaterialService(materials), materials
}

func TestMaterialCreateDefaults(t *testing.T) {
	svc, _ := newMaterialFixture()

	m, err := svc.Create(context.Background(), MaterialInput{Name: "디카페인"})
	require.NoError(t, err)
	assert.Equal(t, domain.MaterialRegular, m.Type)
	assert.Equal(t, "kg", m.Unit)
	assert.Equal(t, 1.0, m.ProcessingRatio)
}

func TestMaterialCreateDuplicateName(t *testing.T) {
	svc, _ := newMaterialFixture()

	_, err := svc.Create(context.Background(), MaterialInput{Name: "브라질"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMaterialCreateUnknownType(t *testing.T) {
	svc, _ := newMaterialFixture()

	_, err := svc.Create(context.Background(), MaterialInput{Name: "테스트", Type: "roasted"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMaterialCreateComponentsRequireBlendType(t *testing.T) {
	svc, _ := newMaterialFixture()

	_, err := svc.Create(context.Background(), MaterialInput{
		Name: "테스트",
		Type: string(domain.MaterialRegular),
		Components: []ComponentInput{
			{MaterialName: "브라질", Ratio: 1.0},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMaterialCreateBlendResolvesComponentNames(t *testing.T) {
	svc, materials := newMaterialFixture()

	m, err := svc.Create(context.Background(), MaterialInput{
		Name: "시즌블렌드",
		Type: string(domain.MaterialBlend),
		Components: []ComponentInput{
			{MaterialName: "브라질", Ratio: 0.7},
			{MaterialName: "시다모", Ratio: 0.3},
		},
	})
	require.NoError(t, err)

	stored := materials.components[m.ID]
	require.Len(t, stored, 2)
	assert.Equal(t, int64(1), stored[0].ComponentID)
	assert.Equal(t, int64(4), stored[1].ComponentID)
}

func TestComponentsRejectsNonBlend(t *testing.T) {
	svc, _ := newMaterialFixture()

	_, err := svc.Components(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReplaceComponentsRejectsNonBlend(t *testing.T) {
	svc, _ := newMaterialFixture()

	_, err := svc.ReplaceComponents(context.Background(), 1, []ComponentInput{
		{MaterialName: "시다모", Ratio: 1.0},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReplaceComponentsRejectsSelfReference(t *testing.T) {
	svc, _ := newMaterialFixture()

	_, err := svc.ReplaceComponents(context.Background(), 10, []ComponentInput{
		{MaterialName: "블렌딩원두", Ratio: 1.0},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReplaceComponentsSwapsRecipe(t *testing.T) {
	svc, materials := newMaterialFixture()

	_, err := svc.ReplaceComponents(context.Background(), 10, []ComponentInput{
		{MaterialName: "브라질", Ratio: 0.6},
		{MaterialName: "콜롬비아", Ratio: 0.4},
	})
	require.NoError(t, err)

	stored := materials.components[10]
	require.Len(t, stored, 2)
	assert.Equal(t, 0.6, stored[0].Ratio)
	assert.Equal(t, 0.4, stored[1].Ratio)
}

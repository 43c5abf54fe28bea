package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriadivo/goshop/pkg/apperror"
)

func newTestProductService(repo *mockProductRepo) *ProductService {
	return NewProductService(repo, nil, nil, "")
}

func TestProductCreate(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	p, err := svc.Create(context.Background(), CreateProductInput{Name: "Monitor", Cost: 250})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	stored, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor", stored.Name)
	assert.Equal(t, float64(250), stored.Cost)
}

func TestProductCreate_Validation(t *testing.T) {
	svc := newTestProductService(newMockProductRepo())

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "  ", Cost: 10})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)

	_, err = svc.Create(context.Background(), CreateProductInput{Name: "Monitor", Cost: -1})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)
}

func TestProductGetByID_NotFound(t *testing.T) {
	svc := newTestProductService(newMockProductRepo())

	_, err := svc.GetByID(context.Background(), "missing")
	requireKind(t, err, apperror.KindNotFound, "Product not found")
}

func TestProductList_ClampsLimit(t *testing.T) {
	repo := newMockProductRepo(testProduct())
	svc := newTestProductService(repo)

	out, err := svc.List(context.Background(), -5, -1)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestProductSearch_NoBackendConfigured(t *testing.T) {
	svc := newTestProductService(newMockProductRepo())

	out, err := svc.Search(context.Background(), "mouse", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

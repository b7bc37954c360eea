// Package usecase contiene los casos de uso administrativos (CRUD) de
// productos y categorías. El stock no se toca aquí: cualquier cambio de
// cantidad pasa por el ledger.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// ProductUseCase CRUD administrativo de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto con cantidad 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.MinStock < 0 || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Quantity:  0,
		MinStock:  in.MinStock,
		Price:     in.Price,
		Cost:      in.Cost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CategoryID != "" {
		categoryID := in.CategoryID
		product.CategoryID = &categoryID
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx)
}

// ListLowStock lista los productos en o por debajo de su mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListLowStock(ctx)
}

// Update edita los campos administrativos; nunca la cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.CategoryID != "" {
		categoryID := in.CategoryID
		product.CategoryID = &categoryID
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina un producto (acción administrativa, no del ledger).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(ctx, id)
}

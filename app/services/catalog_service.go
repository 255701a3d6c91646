package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/app/repositories"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// Catalog reads are hot and rarely change, so single-record lookups go
// through the read-through cache. Writes invalidate the touched key.
const catalogCacheTTL = 5 * time.Minute

func productCacheKey(id uint) string { return fmt.Sprintf("product:%d", id) }

// ProductService implements catalog product reads and admin CRUD.
type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// Find returns one product, served from cache when warm.
func (s *ProductService) Find(id uint) (models.Product, error) {
	var cached models.Product
	key := productCacheKey(id)
	if orm.CacheStore != nil && orm.CacheStore.Get(key, &cached) {
		return cached, nil
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}
	if orm.CacheStore != nil {
		_ = orm.CacheStore.Set(key, product, catalogCacheTTL)
	}
	return product, nil
}

// List returns one page of products.
func (s *ProductService) List(page, limit int) ([]models.Product, orm.Pagination, error) {
	return s.products.All(page, limit)
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImgURL      string  `json:"img_url" validate:"nullable,max=500"`
	CategoryIDs []uint  `json:"category_ids" validate:"nullable"`
}

// Create adds a product, linking the named categories.
func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	categories, err := s.categories.FindByIDs(in.CategoryIDs)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImgURL:      in.ImgURL,
		Categories:  categories,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update replaces a product's fields and category links.
func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}
	categories, err := s.categories.FindByIDs(in.CategoryIDs)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.ImgURL = in.ImgURL
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	if err := s.products.ReplaceCategories(&product, categories); err != nil {
		return models.Product{}, err
	}
	product.Categories = categories

	orm.Invalidate(productCacheKey(id))
	return product, nil
}

// Delete removes a product. Order lines keep their price snapshot, so
// history is unaffected.
func (s *ProductService) Delete(id uint) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(&product); err != nil {
		return err
	}
	orm.Invalidate(productCacheKey(id))
	return nil
}

// CategoryService implements category reads and admin CRUD.
type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService(categories *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Find(id uint) (models.Category, error) {
	return s.categories.FindByID(id)
}

func (s *CategoryService) List(page, limit int) ([]models.Category, orm.Pagination, error) {
	return s.categories.All(page, limit)
}

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (s *CategoryService) Create(in CategoryInput) (models.Category, error) {
	category := models.Category{Name: in.Name}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Update(id uint, in CategoryInput) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return models.Category{}, err
	}
	category.Name = in.Name
	if err := s.categories.Update(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return err
	}
	return s.categories.Delete(&category)
}

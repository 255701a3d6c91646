package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vypar/app/models"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/database"
	"github.com/shashiranjanraj/vypar/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	tx *gorm.DB
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// WithTx returns a copy of the repository bound to a transaction handle.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{tx: tx}
}

func (r *ProductRepository) q() *orm.Query {
	if r.tx != nil {
		return orm.Wrap(r.tx)
	}
	return orm.DB()
}

// FindByID looks up a product by primary key, categories included.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.q().Model(&models.Product{}).With("Categories").Where("id = ?", id).First(&product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, apperr.NotFound("product", id)
	}
	return product, err
}

// All returns one page of products with their categories.
func (r *ProductRepository) All(page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pagination, err := r.q().Model(&models.Product{}).With("Categories").GetWithPagination(&products, page, limit)
	return products, pagination, err
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.q().Create(product)
}

func (r *ProductRepository) Update(product *models.Product) error {
	return r.q().Save(product)
}

func (r *ProductRepository) Delete(product *models.Product) error {
	return r.q().Delete(product)
}

// ReplaceCategories resets the product's category set.
func (r *ProductRepository) ReplaceCategories(product *models.Product, categories []models.Category) error {
	db := r.tx
	if db == nil {
		db = database.DB
	}
	return db.Model(product).Association("Categories").Replace(categories)
}

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	tx *gorm.DB
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// WithTx returns a copy of the repository bound to a transaction handle.
func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{tx: tx}
}

func (r *CategoryRepository) q() *orm.Query {
	if r.tx != nil {
		return orm.Wrap(r.tx)
	}
	return orm.DB()
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := r.q().Model(&models.Category{}).Where("id = ?", id).First(&category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return category, apperr.NotFound("category", id)
	}
	return category, err
}

// FindByIDs returns the categories matching ids. Missing ids are reported as
// not found so a product can never reference a category that does not exist.
func (r *CategoryRepository) FindByIDs(ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.q().Model(&models.Category{}).Where("id IN ?", ids).Get(&categories); err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		found := make(map[uint]bool, len(categories))
		for _, c := range categories {
			found[c.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, apperr.NotFound("category", id)
			}
		}
	}
	return categories, nil
}

// All returns one page of categories.
func (r *CategoryRepository) All(page, limit int) ([]models.Category, orm.Pagination, error) {
	var categories []models.Category
	pagination, err := r.q().Model(&models.Category{}).GetWithPagination(&categories, page, limit)
	return categories, pagination, err
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.q().Create(category)
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return r.q().Save(category)
}

func (r *CategoryRepository) Delete(category *models.Category) error {
	return r.q().Delete(category)
}

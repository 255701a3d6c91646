package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vypar/app/services"
	"github.com/shashiranjanraj/vypar/pkg/bind"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// ProductController exposes the product catalog. Reads are public; writes
// sit behind the admin gate.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List handles GET /api/products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	products, pagination, err := c.products.List(page, limit)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Paginated(w, products, pagination)
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	product, err := c.products.Find(id)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, product)
}

// Create handles POST /api/products.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	product, err := c.products.Create(in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Created(w, product)
}

// Update handles PUT /api/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.ProductInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	product, err := c.products.Update(id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, product)
}

// Delete handles DELETE /api/products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	if err := c.products.Delete(id); err != nil {
		response.AppError(w, r, err)
		return
	}
	response.NoContent(w)
}

// CategoryController exposes catalog categories.
type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// List handles GET /api/categories.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	categories, pagination, err := c.categories.List(page, limit)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Paginated(w, categories, pagination)
}

// Show handles GET /api/categories/{id}.
func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	category, err := c.categories.Find(id)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, category)
}

// Create handles POST /api/categories.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	category, err := c.categories.Create(in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Created(w, category)
}

// Update handles PUT /api/categories/{id}.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	var in services.CategoryInput
	if err := bind.JSON(r, &in); err != nil {
		response.AppError(w, r, err)
		return
	}
	category, err := c.categories.Update(id, in)
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	response.Success(w, category)
}

// Delete handles DELETE /api/categories/{id}.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.AppError(w, r, err)
		return
	}
	if err := c.categories.Delete(id); err != nil {
		response.AppError(w, r, err)
		return
	}
	response.NoContent(w)
}

package repos

import (
	"delphine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, slug, name, description, price, compare_at_price,
  active, featured, is_new, bestseller, stock_quantity,
  created_at, COALESCE(updated_at,'') AS updated_at`

// List returns active products, featured first then newest first,
// optionally filtered by category slug. Images, variants and category
// are attached for each row.
func (r *ProductRepo) List(limit int, categorySlug string) ([]domain.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	where := `active = 1`
	args := []any{}
	if categorySlug != "" {
		where += ` AND category_id IN (SELECT id FROM categories WHERE slug = ?)`
		args = append(args, categorySlug)
	}
	args = append(args, limit)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY featured DESC, datetime(created_at) DESC
	  LIMIT ?
	`, args...)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.attach(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ProductRepo) BySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE slug = ?
	`, slug)
	if err != nil {
		return domain.Product{}, err
	}
	if err := r.attach(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ?
	`, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := r.attach(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) attach(p *domain.Product) error {
	if err := r.db.Select(&p.Images, `
	  SELECT id, product_id, url, alt, position
	  FROM product_images WHERE product_id = ?
	  ORDER BY position ASC
	`, p.ID); err != nil {
		return err
	}
	if err := r.db.Select(&p.Variants, `
	  SELECT id, product_id, size, color, color_hex, sku, price, stock_quantity
	  FROM product_variants WHERE product_id = ?
	  ORDER BY id
	`, p.ID); err != nil {
		return err
	}
	var cat domain.Category
	if err := r.db.Get(&cat, `
	  SELECT id, name, slug, description, image, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`, p.CategoryID); err == nil {
		p.Category = &cat
	}
	return nil
}

func (r *ProductRepo) Variant(id string) (domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := r.db.Get(&v, `
	  SELECT id, product_id, size, color, color_hex, sku, price, stock_quantity
	  FROM product_variants WHERE id = ?
	`, id)
	return v, err
}

// ---------- Admin ----------

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,slug,name,description,price,compare_at_price,
	                       active,featured,is_new,bestseller,stock_quantity)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.CategoryID, p.Slug, p.Name, p.Description, p.Price, p.CompareAtPrice,
		p.Active, p.Featured, p.IsNew, p.Bestseller, p.StockQuantity)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET
	    name=?, description=?, price=?, compare_at_price=?,
	    featured=?, is_new=?, bestseller=?, stock_quantity=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		p.Name, p.Description, p.Price, p.CompareAtPrice,
		p.Featured, p.IsNew, p.Bestseller, p.StockQuantity, p.ID)
	return err
}

func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE products SET active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, active, id)
	return err
}

func (r *ProductRepo) UpdateVariantStock(variantID string, qty int) error {
	_, err := r.db.Exec(`UPDATE product_variants SET stock_quantity=? WHERE id=?`, qty, variantID)
	return err
}

// ListAll includes inactive products for the admin product table.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

package catalog

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getProductQuery = `
        SELECT p.product_id, p.model, p.description, p.material, p.category, p.image_url, p.tags, b.name
        FROM products p
        JOIN brands b ON b.brand_id = p.brand_id
        WHERE p.product_id = $1
    `
	getVariantsQuery = `
        SELECT variant_id, color, size, price, stock
        FROM variants
        WHERE product_id = $1
        ORDER BY variant_id
    `
	listByCategoryQuery = `
        SELECT DISTINCT ON (p.product_id) p.product_id, p.model, p.image_url, b.name, v.price
        FROM products p
        JOIN brands b ON b.brand_id = p.brand_id
        JOIN variants v ON v.product_id = p.product_id
        WHERE p.category = $1
        ORDER BY p.product_id, v.variant_id
        LIMIT 50
    `
	listByTagQuery = `
        SELECT DISTINCT ON (p.product_id) p.product_id, p.model, p.image_url, b.name, v.price
        FROM products p
        JOIN brands b ON b.brand_id = p.brand_id
        JOIN variants v ON v.product_id = p.product_id
        WHERE $1 = ANY(p.tags)
        ORDER BY p.product_id, v.variant_id
        LIMIT 50
    `
	listBrandsQuery = `
        SELECT brand_id, name, logo_url
        FROM brands
        WHERE logo_url IS NOT NULL
        ORDER BY brand_id
        LIMIT 8
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var p Product
	var tags pq.StringArray
	err := r.db.QueryRow(getProductQuery, id).Scan(
		&p.ID, &p.Model, &p.Description, &p.Material, &p.Category, &p.ImageURL, &tags, &p.BrandName)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	p.Tags = tags

	rows, err := r.db.Query(getVariantsQuery, id)
	if err != nil {
		return Product{}, err
	}
	defer rows.Close()

	p.Variants = make([]Variant, 0)
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.Color, &v.Size, &v.Price, &v.Stock); err != nil {
			return Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}
	return p, rows.Err()
}

func (r *PostgresRepository) ListByCategory(category string) ([]Card, error) {
	return r.listCards(listByCategoryQuery, category)
}

func (r *PostgresRepository) ListByTag(tag string) ([]Card, error) {
	return r.listCards(listByTagQuery, tag)
}

func (r *PostgresRepository) listCards(query, arg string) ([]Card, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Card, 0)
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Model, &c.ImageURL, &c.BrandName, &c.Price); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListBrands() ([]Brand, error) {
	rows, err := r.db.Query(listBrandsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Brand, 0)
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.LogoURL); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

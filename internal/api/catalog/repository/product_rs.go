package catalogRepository

import (
	"ShopAssist/internal/api/catalog"
	"ShopAssist/internal/entity"
	contextPkg "ShopAssist/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const defaultSearchLimit = 20

type ProductDB struct {
	ID                 sql.NullString  `db:"id"`
	Title              sql.NullString  `db:"title"`
	Price              sql.NullFloat64 `db:"price"`
	Rating             sql.NullFloat64 `db:"rating"`
	Stock              sql.NullInt64   `db:"stock"`
	Category           sql.NullString  `db:"category"`
	Brand              sql.NullString  `db:"brand"`
	DiscountPercentage sql.NullFloat64 `db:"discount_percentage"`
	Tags               []byte          `db:"tags"`
}

func (p ProductDB) toEntity() entity.Product {
	result := entity.Product{
		ID:                 p.ID.String,
		Title:              p.Title.String,
		Price:              p.Price.Float64,
		Rating:             p.Rating.Float64,
		Stock:              int(p.Stock.Int64),
		Category:           p.Category.String,
		Brand:              p.Brand.String,
		DiscountPercentage: p.DiscountPercentage.Float64,
	}

	if len(p.Tags) > 0 {
		_ = jsoniter.Unmarshal(p.Tags, &result.Tags)
	}

	return result
}

func (r *productRepository) SearchProducts(c context.Context, params SearchFilter) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(c)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	minPrice := params.MinPrice
	if minPrice == 0 {
		minPrice = -1
	}
	maxPrice := params.MaxPrice
	if maxPrice == 0 {
		maxPrice = -1
	}

	argsKV := map[string]interface{}{
		"query":     params.Query,
		"category":  params.Category,
		"min_price": minPrice,
		"max_price": maxPrice,
		"limit":     limit,
	}

	query, args, err := sqlx.Named(querySearchProducts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for SearchProducts")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []ProductDB
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when searching products")
		return nil, err
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toEntity())
	}

	return products, nil
}

func (r *productRepository) GetProductByID(c context.Context, id string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ProductDB

	query, args, err := sqlx.Named(queryGetProductByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID named query preparation err")
		return entity.Product{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, catalog.ErrProductNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting product by ID")
		return entity.Product{}, err
	}

	return row.toEntity(), nil
}

func (r *productRepository) ListCategories(c context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)

	var categories []string
	query := r.q.Rebind(queryListCategories)
	if err := r.q.SelectContext(c, &categories, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing categories")
		return nil, err
	}

	return categories, nil
}

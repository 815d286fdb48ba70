package catalogRepository

import (
	"ShopAssist/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient() (Client, error)
}

func (r *repository) NewClient() (Client, error) {
	return Client{
		Product: &productRepository{q: r.DB, log: r.log},
	}, nil
}

type Client struct {
	Product interface {
		SearchProducts(c context.Context, params SearchFilter) ([]entity.Product, error)
		GetProductByID(c context.Context, id string) (entity.Product, error)
		ListCategories(c context.Context) ([]string, error)
	}
}

type SearchFilter struct {
	Query    string
	Category string
	MinPrice float64
	MaxPrice float64
	Limit    int
}

type productRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

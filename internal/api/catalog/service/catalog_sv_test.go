package catalogService

import (
	catalogRepository "ShopAssist/internal/api/catalog/repository"
	"ShopAssist/internal/entity"
	"ShopAssist/pkg/engine"
	redisPkg "ShopAssist/pkg/redis"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	products  []entity.Product
	searchErr error
	calls     int
}

func (s *stubProductRepo) SearchProducts(_ context.Context, _ catalogRepository.SearchFilter) ([]entity.Product, error) {
	s.calls++
	return s.products, s.searchErr
}

func (s *stubProductRepo) GetProductByID(_ context.Context, id string) (entity.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, errors.New("not found")
}

func (s *stubProductRepo) ListCategories(_ context.Context) ([]string, error) {
	return []string{"smartphones"}, nil
}

type stubRepository struct {
	product *stubProductRepo
}

func (s *stubRepository) NewClient() (catalogRepository.Client, error) {
	return catalogRepository.Client{Product: s.product}, nil
}

func newTestService(t *testing.T, productRepo *stubProductRepo) (ICatalogService, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := NewCatalogService(log, &stubRepository{product: productRepo}, redisPkg.NewWithClient(client))
	return svc, mock
}

func TestSearch_CacheMiss(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Title: "Alpha Smartphone", Price: 299, Rating: 4.8, Stock: 3, Category: "smartphones"},
	}
	productRepo := &stubProductRepo{products: products}
	svc, mock := newTestService(t, productRepo)

	params := engine.SearchParams{Query: "smartphone", Limit: 10}
	key := searchCacheKey(params)

	serialized, err := jsoniter.MarshalToString(products)
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, serialized, 5*time.Minute).SetVal("OK")

	result, err := svc.Search(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, products, result)
	assert.Equal(t, 1, productRepo.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_CacheHit(t *testing.T) {
	products := []entity.Product{
		{ID: "p2", Title: "Beta Smartphone", Price: 499, Rating: 4.5, Stock: 1, Category: "smartphones"},
	}
	productRepo := &stubProductRepo{}
	svc, mock := newTestService(t, productRepo)

	params := engine.SearchParams{Category: "smartphones", Limit: 5}
	serialized, err := jsoniter.MarshalToString(products)
	require.NoError(t, err)

	mock.ExpectGet(searchCacheKey(params)).SetVal(serialized)

	result, err := svc.Search(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, products, result)
	assert.Equal(t, 0, productRepo.calls, "cache hit must not touch the database")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_RepositoryError(t *testing.T) {
	productRepo := &stubProductRepo{searchErr: errors.New("db down")}
	svc, mock := newTestService(t, productRepo)

	params := engine.SearchParams{Query: "laptop"}
	mock.ExpectGet(searchCacheKey(params)).RedisNil()

	_, err := svc.Search(context.Background(), params)
	assert.Error(t, err)
}

func TestSearchCacheKey_DistinguishesBounds(t *testing.T) {
	min := 100.0
	base := engine.SearchParams{Query: "phone", Limit: 10}
	bounded := engine.SearchParams{Query: "phone", MinPrice: &min, Limit: 10}

	assert.NotEqual(t, searchCacheKey(base), searchCacheKey(bounded))
}

func TestGetByID(t *testing.T) {
	productRepo := &stubProductRepo{products: []entity.Product{{ID: "p1", Title: "Alpha"}}}
	svc, _ := newTestService(t, productRepo)

	p, err := svc.GetByID(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, "Alpha", p.Title)
}

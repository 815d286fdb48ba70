package catalogService

import (
	catalogRepository "ShopAssist/internal/api/catalog/repository"
	"ShopAssist/internal/entity"
	"ShopAssist/pkg/engine"
	"ShopAssist/pkg/redis"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ICatalogService doubles as the engine's catalog accessor.
type ICatalogService interface {
	engine.CatalogAccessor
}

type catalogService struct {
	log               *logrus.Logger
	catalogRepository catalogRepository.Repository
	cache             redis.IRedis
}

func NewCatalogService(log *logrus.Logger, cr catalogRepository.Repository, cache redis.IRedis) ICatalogService {
	return &catalogService{
		log:               log,
		catalogRepository: cr,
		cache:             cache,
	}
}

var _ engine.CatalogAccessor = (*catalogService)(nil)

type searchResult = []entity.Product

func (s *catalogService) getClient() (catalogRepository.Client, error) {
	return s.catalogRepository.NewClient()
}

func (s *catalogService) GetByID(ctx context.Context, id string) (entity.Product, error) {
	repo, err := s.getClient()
	if err != nil {
		return entity.Product{}, err
	}
	return repo.Product.GetProductByID(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	repo, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return repo.Product.ListCategories(ctx)
}

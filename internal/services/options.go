package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	gcs "cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartservice "github.com/light-bringer/bijoux-service/internal/app/cart/service"
	cartstore "github.com/light-bringer/bijoux-service/internal/app/cart/store"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/queries/catalog_stats"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/queries/list_products"
	catalogrepo "github.com/light-bringer/bijoux-service/internal/app/catalog/repo"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/archive_product"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/bulk_create"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/set_stock"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/bijoux-service/internal/app/order/queries/get_order"
	"github.com/light-bringer/bijoux-service/internal/app/order/queries/list_orders"
	"github.com/light-bringer/bijoux-service/internal/app/order/queries/revenue_stats"
	orderrepo "github.com/light-bringer/bijoux-service/internal/app/order/repo"
	"github.com/light-bringer/bijoux-service/internal/app/order/usecases/create_order"
	"github.com/light-bringer/bijoux-service/internal/app/order/usecases/delete_order"
	"github.com/light-bringer/bijoux-service/internal/app/order/usecases/update_order"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
	"github.com/light-bringer/bijoux-service/internal/storage"
	transport "github.com/light-bringer/bijoux-service/internal/transport/http"
)

// Config holds the external endpoints and storefront parameters the
// service needs.
type Config struct {
	SpannerDB      string
	ImageBucket    string
	RedisAddr      string
	SiteOrigin     string
	WhatsAppNumber string
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	StorageClient *gcs.Client
	RedisClient   *redis.Client
	Handlers      transport.Handlers
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize external clients
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	storageClient, err := gcs.NewClient(ctx)
	if err != nil {
		spannerClient.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	images := storage.NewGCSImageStore(storageClient, cfg.ImageBucket)

	// 3. Create catalog repositories and use cases
	productRepo := catalogrepo.NewProductRepo(spannerClient, clk)
	catalogOutbox := catalogrepo.NewOutboxRepo(spannerClient)
	catalogReadModel := catalogrepo.NewReadModel(spannerClient)

	createProductUseCase := create_product.NewInteractor(productRepo, catalogOutbox, images, comm, clk)
	updateProductUseCase := update_product.NewInteractor(productRepo, catalogOutbox, images, comm, clk, logger)
	archiveProductUseCase := archive_product.NewInteractor(productRepo, catalogOutbox, images, comm, clk, logger)
	setStockUseCase := set_stock.NewInteractor(productRepo, catalogOutbox, comm)
	bulkCreateUseCase := bulk_create.NewInteractor(createProductUseCase)

	getProductQuery := get_product.NewQuery(catalogReadModel)
	listProductsQuery := list_products.NewQuery(catalogReadModel)
	catalogStatsQuery := catalog_stats.NewQuery(catalogReadModel)

	// 4. Create cart store and service
	spannerCartStore := cartstore.NewSpannerStore(spannerClient, logger)
	cachedCartStore := cartstore.NewCachedStore(spannerCartStore, redisClient, logger)
	cartSvc := cartservice.NewService(cachedCartStore, catalogReadModel, cartservice.Config{
		SiteOrigin:     cfg.SiteOrigin,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}, logger)

	// 5. Create order repositories and use cases
	orderRepo := orderrepo.NewOrderRepo(spannerClient, clk)
	orderOutbox := orderrepo.NewOutboxRepo(spannerClient)
	orderReadModel := orderrepo.NewReadModel(spannerClient)

	createOrderUseCase := create_order.NewInteractor(orderRepo, orderOutbox, comm, clk)
	updateOrderUseCase := update_order.NewInteractor(orderRepo, orderOutbox, comm, clk)
	deleteOrderUseCase := delete_order.NewInteractor(orderRepo, orderOutbox, comm, clk)

	getOrderQuery := get_order.NewQuery(orderReadModel)
	listOrdersQuery := list_orders.NewQuery(orderReadModel)
	revenueStatsQuery := revenue_stats.NewQuery(orderReadModel, clk)

	// 6. Create HTTP handlers
	handlers := transport.Handlers{
		Products: transport.NewProductHandler(
			createProductUseCase,
			updateProductUseCase,
			archiveProductUseCase,
			setStockUseCase,
			bulkCreateUseCase,
			getProductQuery,
			listProductsQuery,
			logger,
		),
		Cart:   transport.NewCartHandler(cartSvc, logger),
		Orders: transport.NewOrderHandler(createOrderUseCase, updateOrderUseCase, deleteOrderUseCase, getOrderQuery, listOrdersQuery, logger),
		Stats:  transport.NewStatsHandler(revenueStatsQuery, catalogStatsQuery, logger),
	}

	return &ServiceOptions{
		SpannerClient: spannerClient,
		StorageClient: storageClient,
		RedisClient:   redisClient,
		Handlers:      handlers,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.StorageClient != nil {
		s.StorageClient.Close()
	}
	if s.RedisClient != nil {
		s.RedisClient.Close()
	}
}

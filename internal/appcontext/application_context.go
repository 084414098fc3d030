package appcontext

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/config"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/consumer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer/balancer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
	kafka_config "github.com/RoyceAzure/lab/rj_kafka/kafka/config"
	kafka_consumer "github.com/RoyceAzure/lab/rj_kafka/kafka/consumer"
	kafka_producer "github.com/RoyceAzure/lab/rj_kafka/kafka/producer"
	rj_cache "github.com/RoyceAzure/lab/rj_redis/pkg/cache/redis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const orderTopicPartitions = 6

type ApplicationContext struct {
	Cf                 *config.Config
	DbConn             *gorm.DB
	DbDao              *db.DbDao
	RedisClient        *redis.Client
	OrderEventProducer producer.IOrderEventProducer
	OrderEventConsumer *consumer.OrderEventConsumer
	CartService        service.ICartService
	OrderService       service.IOrderService
	UserService        service.IUserService
	CatalogService     service.ICatalogService
	CheckoutService    service.ICheckoutService
	StaffService       service.IStaffService
	CreditService      service.ICreditService

	orderRepo     db.IOrderRepository
	menuRepo      db.IMenuRepository
	cartService   *service.CartService
	kafkaProducer kafka_producer.Producer
	kafkaConsumer kafka_consumer.Consumer
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpdbDao()
	if err != nil {
		return err
	}
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	err = app.setUpKafka()
	if err != nil {
		return err
	}
	err = app.setUpServices()
	if err != nil {
		return err
	}
	return nil
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewDbDao(app.DbConn)
	err := app.DbDao.InitMigrate()
	if err != nil {
		return err
	}
	app.orderRepo = db.NewOrderRepo(app.DbDao)
	app.menuRepo = db.NewMenuRepo(app.DbDao)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
		DB:       app.Cf.RedisDB,
	})
	if err := app.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}
	log.Printf("Finish setup redis")
	return nil
}

// setUpKafka kafka為選配，未設定brokers則事件功能停用
func (app *ApplicationContext) setUpKafka() error {
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Printf("kafka brokers not configured, order events disabled")
		return nil
	}

	log.Printf("Start setup kafka")
	kafkaConfig := kafka_config.Config{
		Brokers:        brokers,
		Topic:          app.Cf.KafkaOrderTopic,
		Partition:      orderTopicPartitions,
		RetryAttempts:  3,
		BatchTimeout:   time.Second,
		BatchSize:      1,
		RequiredAcks:   1,
		CommitInterval: time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		Balancer:       balancer.NewOrderBalancer(orderTopicPartitions),
	}

	p, err := kafka_producer.New(&kafkaConfig)
	if err != nil {
		return err
	}
	app.kafkaProducer = p
	app.OrderEventProducer = producer.NewOrderEventProducer(p)

	c, err := kafka_consumer.New(&kafkaConfig)
	if err != nil {
		return err
	}
	app.kafkaConsumer = c
	app.OrderEventConsumer = consumer.NewOrderEventConsumer(c, app.orderRepo, app.menuRepo)

	err = app.OrderEventConsumer.Start(context.Background())
	if err != nil {
		return err
	}
	log.Printf("Finish setup kafka")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")
	cartStore := redis_repo.NewCartRepo(app.RedisClient)
	menuCache := redis_repo.NewMenuCache(rj_cache.NewRedisCache(app.RedisClient, app.Cf.ModulerName))

	app.cartService = service.NewCartService(cartStore)
	app.CartService = app.cartService
	app.OrderService = service.NewOrderService(app.orderRepo, app.OrderEventProducer)
	app.UserService = service.NewUserService(db.NewUserRepo(app.DbDao))
	app.CatalogService = service.NewCatalogService(app.menuRepo, db.NewComboRepo(app.DbDao), menuCache)
	app.CheckoutService = service.NewCheckoutService(app.CartService, app.OrderService, app.UserService, app.CatalogService)
	app.StaffService = service.NewStaffService(db.NewStaffRepo(app.DbDao))
	app.CreditService = service.NewCreditService(db.NewCreditRepo(app.DbDao))
	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		// 等待購物車非同步儲存落盤
		if app.cartService != nil {
			log.Printf("waiting cart saves...")
			app.cartService.WaitForSaves()
		}

		if app.OrderEventConsumer != nil {
			log.Printf("Stopping order event consumer...")
			app.OrderEventConsumer.Stop()
		}

		if app.kafkaProducer != nil {
			log.Printf("Closing kafka producer...")
			if err := app.kafkaProducer.Close(); err != nil {
				log.Printf("kafka producer close error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}

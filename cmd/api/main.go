package main

import (
	"log"
	"strings"
	"time"

	"ecom/internal/config"
	"ecom/internal/domain/model"
	"ecom/internal/handler"
	"ecom/internal/infra/db"
	infraRepo "ecom/internal/infra/repository"
	"ecom/internal/server"
	"ecom/internal/usecase"
	"ecom/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// "ORD" + UUID先頭8桁（大文字）
type orderIDGenerator struct{}

func (g *orderIDGenerator) NewOrderID() string {
	return "ORD" + strings.ToUpper(uuid.NewString()[:8])
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（環境変数だけでも動く）
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockMovement{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &orderIDGenerator{}
	clock := &realClock{}
	orderValidator := validator.NewOrderValidator()

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, txManager)
	orderUC := usecase.NewOrderUsecase(txManager, orderValidator, idGen, clock)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, productH, orderH); err != nil {
		log.Fatal(err)
	}
}

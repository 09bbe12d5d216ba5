package routes

import (
	"context"
	"log"
	_ "oficina_billing/docs" // This will be auto-generated
	"oficina_billing/internal/adapter/http/handlers"
	repository2 "oficina_billing/internal/adapter/persistence/repository"
	"oficina_billing/internal/infrastructure/database"
	"oficina_billing/internal/infrastructure/messaging"
	"oficina_billing/internal/infrastructure/payments"
	"oficina_billing/internal/usecase"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ctx := context.Background()
	ddb := database.ConnectDynamoDB()

	budgetRepo := repository2.NewBudgetDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	paymentGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to configure payment gateway: %v", err)
	}

	publisher, err := messaging.NewEventBridgePublisher(ctx)
	if err != nil {
		log.Fatalf("Failed to configure event publisher: %v", err)
	}

	budgetUseCase := usecase.NewBudgetUseCase(budgetRepo, publisher)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, budgetRepo, paymentGateway, publisher)
	webhookUseCase := usecase.NewWebhookUseCase(paymentRepo, budgetRepo, paymentGateway, publisher)

	consumer, err := messaging.NewSQSEventConsumer(ctx, budgetUseCase)
	if err != nil {
		log.Fatalf("Failed to configure event consumer: %v", err)
	}
	go consumer.Start(ctx)

	budgetHandler := handlers.NewBudgetHandler(budgetUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, webhookUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, budgetHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

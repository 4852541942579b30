package api

import (
	"expense-tracker/internal/api/handlers"
	"expense-tracker/pkg/auth"
	"expense-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	txHandler *handlers.TransactionHandler,
	billHandler *handlers.BillHandler,
	jwtManager *auth.JWTManager,
	maxUploadSize int64,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: int(maxUploadSize),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Auth routes (public)
	users := app.Group("/api/v1/users")
	users.Post("/signup", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/users/me", authHandler.Me)
	protected.Delete("/users/delete", authHandler.DeleteAccount)

	transactions := protected.Group("/transactions")
	transactions.Post("/add-income", txHandler.AddIncome)
	transactions.Post("/add-expense", txHandler.AddExpense)
	transactions.Get("/get-incomes", txHandler.GetIncomes)
	transactions.Get("/get-expenses", txHandler.GetExpenses)
	transactions.Delete("/delete-income/:id", txHandler.DeleteIncome)
	transactions.Delete("/delete-expense/:id", txHandler.DeleteExpense)
	transactions.Get("/summary", txHandler.Summary)

	bills := protected.Group("/bills")
	bills.Post("/upload", billHandler.UploadBill)

	return app
}

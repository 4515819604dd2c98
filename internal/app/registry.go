package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"capbot/internal/chat"
	"capbot/internal/employee"
	"capbot/internal/llm"
	"capbot/internal/middleware"
	"capbot/internal/payroll"
	"capbot/internal/query"
	"capbot/internal/websearch"
)

func registerModules(
	router *gin.Engine,
	cfg Config,
	store *payroll.Store,
	generator llm.Client,
	searcher websearch.Searcher,
	rdb *redis.Client,
) error {
	roster := query.RosterFromNames(store.EmployeeNames())
	processor := query.NewProcessor(store, roster)

	// --- Services ---
	chatService := chat.NewService(processor, generator, searcher)
	employeeService := employee.NewService(store)
	payrollService := payroll.NewService(store)

	// --- Handlers ---
	chatHandler := chat.NewHandler(chatService)
	if rdb != nil {
		chatHandler = chat.NewHandlerWithRedis(chatService, rdb)
	}
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService)

	// --- Middleware & Routes ---
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	api := router.Group("/v1")
	{
		chat.RegisterRoutes(api, chatHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payroll.RegisterRoutes(api, payrollHandler)
	}

	return nil
}

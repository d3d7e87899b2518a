package server

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gpaccess/backend/internal/handlers"
	"github.com/gpaccess/backend/internal/observability"
)

type RouterConfig struct {
	PracticeHandler     *handlers.PracticeHandler
	AddressHandler      *handlers.AddressHandler
	EmployeeHandler     *handlers.EmployeeHandler
	AccessSystemHandler *handlers.AccessSystemHandler
	CORSOrigins         []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(metricsMiddleware())

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		// Practices
		api.POST("/practice", cfg.PracticeHandler.Upsert)
		api.GET("/practices", cfg.PracticeHandler.List)
		api.GET("/practice/id", cfg.PracticeHandler.GetByID)
		api.GET("/practice/name", cfg.PracticeHandler.GetByName)
		api.DELETE("/practice", cfg.PracticeHandler.Delete)
		api.GET("/practices/count", cfg.PracticeHandler.Count)
		api.GET("/practices/names", cfg.PracticeHandler.Names)
		api.PUT("/practice/main_partner", cfg.PracticeHandler.AssignMainPartner)
		api.PUT("/practice/access_system", cfg.PracticeHandler.AssignAccessSystem)
		api.GET("/practice/access_systems", cfg.PracticeHandler.AccessSystems)

		// Practice addresses
		api.POST("/practice/address", cfg.AddressHandler.UpsertForPractice)
		api.GET("/practice/address", cfg.AddressHandler.GetByPracticeID)
		api.GET("/practice/address/name", cfg.AddressHandler.GetByPracticeName)
		api.GET("/addresses", cfg.AddressHandler.List)

		// Employees
		api.POST("/employee", cfg.EmployeeHandler.Create)
		api.GET("/employees", cfg.EmployeeHandler.List)
		api.GET("/employee/id", cfg.EmployeeHandler.GetByID)
		api.GET("/employee/email", cfg.EmployeeHandler.GetByEmail)
		api.GET("/employee/name", cfg.EmployeeHandler.GetByName)
		api.GET("/employee/professional_num", cfg.EmployeeHandler.GetByProfessionalNum)
		api.PUT("/employee", cfg.EmployeeHandler.Update)
		api.DELETE("/employee", cfg.EmployeeHandler.Delete)
		api.PUT("/employee/practice", cfg.EmployeeHandler.AssignToPractice)
		api.DELETE("/employee/practice", cfg.EmployeeHandler.UnassignFromPractices)
		api.GET("/employee/practices", cfg.EmployeeHandler.PracticesForEmployee)
		api.PUT("/employee/job_title", cfg.EmployeeHandler.ChangeJobTitle)
		api.GET("/employees/practice", cfg.EmployeeHandler.ListForPractice)
		api.GET("/employees/main_partners", cfg.EmployeeHandler.MainPartnersForPractice)
		api.GET("/job_titles", cfg.EmployeeHandler.ListJobTitles)
		api.POST("/job_title", cfg.EmployeeHandler.CreateJobTitle)
		api.GET("/employees/count", cfg.EmployeeHandler.Count)
		api.GET("/employees/names", cfg.EmployeeHandler.Names)

		// Access systems
		api.POST("/access_system", cfg.AccessSystemHandler.Create)
		api.GET("/access_systems", cfg.AccessSystemHandler.List)
		api.POST("/ip_range", cfg.AccessSystemHandler.AddIPRange)
		api.GET("/ip_ranges", cfg.AccessSystemHandler.ListIPRanges)
	}

	return router
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		observability.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

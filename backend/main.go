package main

import (
	"net/http"

	"github.com/Tilak-Shenoy/Calendar-Agent/backend/config"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	jwtKey = []byte(cfg.JWTSecret)

	InitDB(cfg)
	InitGoogle(cfg)
	InitMicrosoft(cfg)

	switch cfg.LLMProvider {
	case ProviderOpenAI:
		chatProvider = NewOpenAIProvider(cfg.OpenAISecret, cfg.LLMModel)
	default:
		chatProvider = NewGeminiProvider(GetGeminiClient(cfg), cfg.LLMModel)
	}

	r := gin.Default()

	r.Static("/static", "../frontend/static")
	r.LoadHTMLGlob("../frontend/templates/*")

	api := r.Group("/api")
	{
		api.POST("/register", Register)
		api.POST("/login", Login)
		api.GET("/calendar-load", FetchCalendarData)
		api.POST("/calendar-create", CreateEvent)
		api.POST("/calendar-update", UpdateEvent)
		api.POST("/calendar-remove", RemoveEvent)
		api.POST("/ai-chat", AIChat)
	}

	// OAuth routes
	r.GET("/auth/google/login", GoogleLogin)
	r.GET("/auth/google/callback", GoogleCallback)

	r.GET("/auth/microsoft/login", MicrosoftLogin)
	r.GET("/auth/microsoft/callback", MicrosoftCallback)

	// Serve frontend pages
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	r.GET("/chat", HandleAuthentication)

	r.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", nil)
	})
	r.GET("/register", func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", nil)
	})

	r.Run(":8080") // Listen and serve on 0.0.0.0:8080
}

package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the browser-based opening form to call the API cross-origin.
// The form runs on its own origin in every environment, so all origins are
// accepted; the API carries no cookie-based auth that would make this unsafe.
func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Request-ID")
	return cors.New(config)
}

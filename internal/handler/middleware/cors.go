package middleware

import (
	"slices"

	"arena-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the booking API reads or sets; they are allowed and exposed even
// when the configured lists omit them.
var (
	apiRequestHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key", RequestIDHeader}
	apiResponseHeaders = []string{RequestIDHeader, HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRetryAfter}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, apiRequestHeaders),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, apiResponseHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func withHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}

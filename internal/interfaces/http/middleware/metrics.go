package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver is satisfied by metrics.HTTPMetrics.
type RequestObserver interface {
	Start()
	Done(method, route, status string, d time.Duration)
}

// Metrics records every request under its route template, or "unmatched".
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		observer.Start()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.Done(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

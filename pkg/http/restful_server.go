package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"liyu1981.xyz/nest-monitor-service/pkg/iot"
	"liyu1981.xyz/nest-monitor-service/pkg/metrics"
)

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

func (rs *RestfulServer) CheckLimiter(key string) bool {
	if rs.RateLimiterStore.Allow(key) {
		return true
	}
	metrics.RateLimitedTotal.WithLabelValues("http").Inc()
	return false
}

func (rs *RestfulServer) SetLimiter(key string, keyRate float64, keyBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(key, rate.Limit(keyRate), keyBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	owners := rs.Server.Group("/owners/:owner_id")
	{
		owners.GET("/alerts", rs.GetAlerts)
		owners.POST("/devices/:device_id/updates", rs.PostDeviceUpdate)
		owners.POST("/devices/:device_id/limiter", rs.PostLimiter)
	}
}

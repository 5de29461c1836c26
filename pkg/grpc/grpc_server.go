package grpc

import (
	"liyu1981.xyz/nest-monitor-service/pkg/iot"
	"liyu1981.xyz/nest-monitor-service/pkg/metrics"
)

type TriggerServer struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

func (s *TriggerServer) CheckLimiter(key string) bool {
	if s.RateLimiterStore.Allow(key) {
		return true
	}
	metrics.RateLimitedTotal.WithLabelValues("grpc").Inc()
	return false
}

// limiterKey matches the keys used by the HTTP transport: owner/device for
// device scoped calls, the bare owner id otherwise.
func limiterKey(ownerID string, deviceID string) string {
	if deviceID == "" {
		return ownerID
	}
	return iot.DeviceKey(ownerID, deviceID)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/iot"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

// DeviceUpdateRequest is one trigger delivery: the record before and after
// the write. A missing or null after means the record was deleted.
type DeviceUpdateRequest struct {
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

func (rs *RestfulServer) PostDeviceUpdate(c *gin.Context) {
	ownerID := c.Param("owner_id")
	deviceID := c.Param("device_id")

	if !rs.CheckLimiter(iot.DeviceKey(ownerID, deviceID)) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req DeviceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := rs.Iot.MonitorDeviceConditions(c.Request.Context(), &models.DeviceChange{
		OwnerID:  ownerID,
		DeviceID: deviceID,
		Before:   req.Before,
		After:    req.After,
	})
	if errors.Is(err, iot.ErrInvalidTrigger) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Device update failed",
				zap.String("owner_id", ownerID),
				zap.String("device_id", deviceID),
				zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	ownerID := c.Param("owner_id")

	if !rs.CheckLimiter(ownerID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var alerts []models.Alert
	var err error
	if alerts, err = rs.Iot.Alert.GetOwnerAlerts(c.Request.Context(), ownerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if alerts == nil {
		alerts = []models.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	key := iot.DeviceKey(c.Param("owner_id"), c.Param("device_id"))

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(key, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

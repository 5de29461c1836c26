package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

func validateID(id *string) z.ZogIssueList {
	var idValidator = z.String().Min(1).Required()
	return idValidator.Validate(id)
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// snapshotField returns the JSON form of a snapshot field. Absent and null
// both come back nil, which the evaluator reads as a deleted record.
func snapshotField(s *structpb.Struct, key string) (json.RawMessage, error) {
	v, ok := s.GetFields()[key]
	if !ok || v == nil {
		return nil, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, nil
	}
	return protojson.Marshal(v)
}

func reply(success bool, message string, extra map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{
		"success": success,
		"message": message,
	}
	maps.Copy(fields, extra)

	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return resp, nil
}

func alertValue(a models.Alert) any {
	return map[string]any{
		"id":         a.ID,
		"deviceId":   a.DeviceID,
		"deviceName": a.DeviceName,
		"title":      a.Title,
		"body":       a.Body,
		"level":      string(a.Level),
		"createdAt":  a.CreatedAt,
		"read":       a.Read,
	}
}

func (s *TriggerServer) DeviceUpdated(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID := stringField(req, "ownerId")
	deviceID := stringField(req, "deviceId")

	if err := validateID(&ownerID); err != nil {
		return reply(false, fmt.Sprintf("validation error: ownerId %v", err), nil)
	}
	if err := validateID(&deviceID); err != nil {
		return reply(false, fmt.Sprintf("validation error: deviceId %v", err), nil)
	}

	before, err := snapshotField(req, "before")
	if err != nil {
		return reply(false, fmt.Sprintf("validation error: before %v", err), nil)
	}
	after, err := snapshotField(req, "after")
	if err != nil {
		return reply(false, fmt.Sprintf("validation error: after %v", err), nil)
	}

	outcome, err := s.Iot.MonitorDeviceConditions(ctx, &models.DeviceChange{
		OwnerID:  ownerID,
		DeviceID: deviceID,
		Before:   before,
		After:    after,
	})
	if err != nil {
		common.GetLoggerWith(common.LoggerNameGrpcServer).
			Error("Device update failed",
				zap.String("owner_id", ownerID),
				zap.String("device_id", deviceID),
				zap.Error(err))
		return reply(false, err.Error(), nil)
	}

	extra := map[string]any{"result": string(outcome.Result)}
	if outcome.AlertID != "" {
		extra["alertId"] = outcome.AlertID
	}
	if outcome.Push != nil {
		extra["pushStatus"] = string(outcome.Push.Status)
	}
	return reply(true, "OK", extra)
}

func (s *TriggerServer) GetAlerts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID := stringField(req, "ownerId")
	if err := validateID(&ownerID); err != nil {
		return reply(false, fmt.Sprintf("validation error: ownerId %v", err), nil)
	}

	alerts, err := s.Iot.Alert.GetOwnerAlerts(ctx, ownerID)
	if err != nil {
		return reply(false, err.Error(), nil)
	}

	return reply(true, "OK", map[string]any{
		"alerts": common.Mapper(alerts, alertValue),
	})
}

func (s *TriggerServer) PostLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID := stringField(req, "ownerId")
	deviceID := stringField(req, "deviceId")
	if err := validateID(&ownerID); err != nil {
		return reply(false, fmt.Sprintf("validation error: ownerId %v", err), nil)
	}
	if err := validateID(&deviceID); err != nil {
		return reply(false, fmt.Sprintf("validation error: deviceId %v", err), nil)
	}

	deviceRate := req.GetFields()["rate"].GetNumberValue()
	var rateValidator = z.Float64().Required()
	if err := rateValidator.Validate(&deviceRate); err != nil {
		return reply(false, fmt.Sprintf("validation error: rate %v", err), nil)
	}

	deviceBurst := int(req.GetFields()["burst"].GetNumberValue())
	var burstValidator = z.Int().Required()
	if err := burstValidator.Validate(&deviceBurst); err != nil {
		return reply(false, fmt.Sprintf("validation error: burst %v", err), nil)
	}

	if s.RateLimiterStore == nil {
		return reply(false, "RateLimiterStore is not used. No effect.", nil)
	}

	s.RateLimiterStore.SetLimiter(limiterKey(ownerID, deviceID), rate.Limit(deviceRate), deviceBurst)
	return reply(true, "OK", nil)
}

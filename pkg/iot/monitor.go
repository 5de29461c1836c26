package iot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/metrics"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

var (
	ErrInvalidTrigger          = errors.New("invalid trigger params")
	ErrAlertServiceUnavailable = errors.New("alert service not available")
)

type Result string

const (
	ResultDeleted          Result = "deleted"
	ResultMissingTelemetry Result = "missing_telemetry"
	ResultInRange          Result = "in_range"
	ResultAlerted          Result = "alerted"
)

type Outcome struct {
	Result    Result      `json:"result"`
	Violation *Violation  `json:"violation,omitempty"`
	AlertID   string      `json:"alertId,omitempty"`
	Push      *PushResult `json:"push,omitempty"`
}

// MonitorDeviceConditions handles one update of a device record. It returns
// an error only for invalid trigger params and for a failed alert write;
// every other branch, including a failed push, ends in an Outcome.
func (i *IOT) MonitorDeviceConditions(ctx context.Context, change *models.DeviceChange) (*Outcome, error) {
	start := time.Now()
	defer func() {
		metrics.InvocationDuration.Observe(time.Since(start).Seconds())
	}()

	outcome, err := i.monitorDeviceConditions(ctx, change)
	switch {
	case errors.Is(err, ErrInvalidTrigger):
		metrics.InvocationsTotal.WithLabelValues("invalid").Inc()
	case err != nil:
		metrics.InvocationsTotal.WithLabelValues("failed").Inc()
	default:
		metrics.InvocationsTotal.WithLabelValues(string(outcome.Result)).Inc()
	}
	return outcome, err
}

func (i *IOT) monitorDeviceConditions(ctx context.Context, change *models.DeviceChange) (*Outcome, error) {
	if change == nil {
		return nil, fmt.Errorf("%w: no change", ErrInvalidTrigger)
	}
	if issues := changeParamsSchema.Validate(change); issues != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrigger, issues)
	}

	logger := common.GetCategoryLogger(common.LoggerNameMonitor, common.LoggerCategoryEvaluate).
		With(zap.String("owner_id", change.OwnerID), zap.String("device_id", change.DeviceID))

	if IsDeleted(change.After) {
		logger.Info("No data in after snapshot, skipping")
		return &Outcome{Result: ResultDeleted}, nil
	}

	reading, ok := ToReading(ParseSnapshot(change.After))
	if !ok {
		logger.Info("Missing temperature/humidity, skipping")
		return &Outcome{Result: ResultMissingTelemetry}, nil
	}

	logger.Info("New data",
		zap.Float64("temperature", reading.Temperature),
		zap.Float64("humidity", reading.Humidity))

	violation := Classify(reading)
	if violation == nil {
		logger.Info("Values within range, no alert")
		return &Outcome{Result: ResultInRange}, nil
	}

	alertID, err := i.storeAlert(ctx, change, reading, violation)
	if err != nil {
		return nil, err
	}

	push := i.notifyOwner(ctx, change, violation)

	return &Outcome{
		Result:    ResultAlerted,
		Violation: violation,
		AlertID:   alertID,
		Push:      &push,
	}, nil
}

func (i *IOT) storeAlert(ctx context.Context, change *models.DeviceChange, reading models.Reading, v *Violation) (string, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitor, common.LoggerCategoryAlert)

	alert := models.Alert{
		DeviceID:   change.DeviceID,
		DeviceName: reading.Name,
		Title:      v.Title,
		Body:       v.Body,
		Level:      v.Level,
		CreatedAt:  i.now().UnixMilli(),
		Read:       false,
	}

	logger.Info("Alert found", zap.String("owner_id", change.OwnerID), zap.Reflect("alert", alert))

	if i.Alert == nil {
		return "", ErrAlertServiceUnavailable
	}

	alertID, err := i.Alert.AppendAlert(ctx, change.OwnerID, &alert)
	if err != nil {
		logger.Error("Alert write failed", zap.String("owner_id", change.OwnerID), zap.Error(err))
		return "", fmt.Errorf("append alert for owner %s: %w", change.OwnerID, err)
	}

	metrics.AlertsWrittenTotal.WithLabelValues(string(v.Rule)).Inc()
	logger.Info("Alert saved",
		zap.String("owner_id", change.OwnerID),
		zap.String("alert_id", alertID),
		zap.Reflect("alert", alert))

	return alertID, nil
}

// notifyOwner never fails the invocation: the alert is already stored.
func (i *IOT) notifyOwner(ctx context.Context, change *models.DeviceChange, v *Violation) PushResult {
	logger := common.GetCategoryLogger(common.LoggerNameMonitor, common.LoggerCategoryPush).
		With(zap.String("owner_id", change.OwnerID))

	result := i.sendPush(ctx, change, v)
	metrics.PushTotal.WithLabelValues(string(result.Status)).Inc()

	switch result.Status {
	case PushSent:
		logger.Info("Push sent", zap.String("message_id", result.MessageID))
	case PushNoToken:
		logger.Info("No push token for owner, skipping push")
	case PushFailed:
		logger.Error("Error sending push", zap.Error(result.Err))
	}
	return result
}

func (i *IOT) sendPush(ctx context.Context, change *models.DeviceChange, v *Violation) PushResult {
	if i.Token == nil || i.Push == nil {
		return pushFailed(errors.New("push service not available"))
	}

	token, err := i.Token.GetPushToken(ctx, change.OwnerID)
	if err != nil {
		return pushFailed(fmt.Errorf("lookup push token: %w", err))
	}
	if token == "" {
		return PushResult{Status: PushNoToken}
	}

	messageID, err := i.Push.Send(ctx, NewPushMessage(token, change.DeviceID, v))
	if err != nil {
		return pushFailed(err)
	}
	return PushResult{Status: PushSent, MessageID: messageID}
}

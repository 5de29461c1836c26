package iot

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

const ClickActionHint = "FLUTTER_NOTIFICATION_CLICK"

type PushStatus string

const (
	PushSent    PushStatus = "sent"
	PushNoToken PushStatus = "no_token"
	PushFailed  PushStatus = "failed"
)

// PushResult is how a notification attempt ended. A failed attempt carries
// the error instead of returning it.
type PushResult struct {
	Status    PushStatus `json:"status"`
	MessageID string     `json:"messageId,omitempty"`
	Error     string     `json:"error,omitempty"`
	Err       error      `json:"-"`
}

func pushFailed(err error) PushResult {
	return PushResult{Status: PushFailed, Error: err.Error(), Err: err}
}

func NewPushMessage(token string, deviceID string, v *Violation) *models.PushMessage {
	return &models.PushMessage{
		Token: token,
		Title: v.Title,
		Body:  v.Body,
		Data: map[string]string{
			"deviceId":     deviceID,
			"click_action": ClickActionHint,
		},
	}
}

// LogPusher stands in for a push transport in local mode: it logs the
// message and reports it as sent.
type LogPusher struct{}

func (lp *LogPusher) Send(ctx context.Context, message *models.PushMessage) (string, error) {
	messageID := "local/" + uuid.NewString()
	common.GetCategoryLogger(common.LoggerNameMonitor, common.LoggerCategoryPush).
		Info("Push logged",
			zap.String("message_id", messageID),
			zap.String("title", message.Title),
			zap.String("body", message.Body),
			zap.Any("data", message.Data))
	return messageID, nil
}

func (i *IOT) GetIPush() IPush {
	return &LogPusher{}
}

package iot

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

// getPushToken returns "" with no error when the owner never registered a
// device.
func (i *IOT) getPushToken(ctx context.Context, ownerID string) (string, error) {
	var token models.PushToken
	err := i.Db.Conn.WithContext(ctx).First(&token, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.Token, nil
}

type ITokenImpl struct {
	iot *IOT
}

func (it *ITokenImpl) GetPushToken(ctx context.Context, ownerID string) (string, error) {
	return it.iot.getPushToken(ctx, ownerID)
}

func (i *IOT) GetIToken() IToken {
	return &ITokenImpl{iot: i}
}

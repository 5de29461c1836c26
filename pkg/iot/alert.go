package iot

import (
	"context"

	"github.com/google/uuid"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

func (i *IOT) appendAlert(ctx context.Context, ownerID string, input *models.Alert) (string, error) {
	alert := *input
	alert.ID = uuid.NewString()
	alert.OwnerID = ownerID

	if err := i.Db.Conn.WithContext(ctx).Create(&alert).Error; err != nil {
		return "", err
	}
	return alert.ID, nil
}

func (i *IOT) getOwnerAlerts(ctx context.Context, ownerID string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := i.Db.Conn.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&alerts).Error
	return alerts, err
}

type IAlertImpl struct {
	iot *IOT
}

func (ia *IAlertImpl) AppendAlert(ctx context.Context, ownerID string, alert *models.Alert) (string, error) {
	return ia.iot.appendAlert(ctx, ownerID, alert)
}

func (ia *IAlertImpl) GetOwnerAlerts(ctx context.Context, ownerID string) ([]models.Alert, error) {
	return ia.iot.getOwnerAlerts(ctx, ownerID)
}

func (i *IOT) GetIAlert() IAlert {
	return &IAlertImpl{iot: i}
}

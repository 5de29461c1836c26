package iot

import (
	"context"
	"time"

	"liyu1981.xyz/nest-monitor-service/pkg/db"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

//go:generate mockgen -source=iot.go -destination=mocks/mock_iot.go -package=mocks

type IAlert interface {
	AppendAlert(ctx context.Context, ownerID string, alert *models.Alert) (string, error)
	GetOwnerAlerts(ctx context.Context, ownerID string) ([]models.Alert, error)
}

type IToken interface {
	GetPushToken(ctx context.Context, ownerID string) (string, error)
}

type IPush interface {
	Send(ctx context.Context, message *models.PushMessage) (string, error)
}

type IOT struct {
	Db    db.DB
	Alert IAlert
	Token IToken
	Push  IPush

	// Now stamps createdAt on new alerts, time.Now when nil.
	Now func() time.Time
}

type ServiceOpts struct {
	Alert IAlert
	Token IToken
	Push  IPush
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Alert != nil {
		i.Alert = opts.Alert
	}
	if opts.Token != nil {
		i.Token = opts.Token
	}
	if opts.Push != nil {
		i.Push = opts.Push
	}
	return i
}

func (i *IOT) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

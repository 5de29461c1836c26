package firebase

import (
	"context"
	"sort"

	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

// AlertStore keeps alerts as push-keyed children of alerts/{ownerId}.
type AlertStore struct {
	db Database
}

func NewAlertStore(db Database) *AlertStore {
	return &AlertStore{db: db}
}

func (s *AlertStore) AppendAlert(ctx context.Context, ownerID string, alert *models.Alert) (string, error) {
	payload := *alert
	// the push key is the id; the owner is the parent path
	payload.ID = ""
	payload.OwnerID = ""
	return s.db.Push(ctx, AlertsPath(ownerID), &payload)
}

func (s *AlertStore) GetOwnerAlerts(ctx context.Context, ownerID string) ([]models.Alert, error) {
	var byKey map[string]models.Alert
	if err := s.db.Get(ctx, AlertsPath(ownerID), &byKey); err != nil {
		return nil, err
	}

	alerts := make([]models.Alert, 0, len(byKey))
	for key, alert := range byKey {
		alert.ID = key
		alert.OwnerID = ownerID
		alerts = append(alerts, alert)
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].CreatedAt == alerts[j].CreatedAt {
			return alerts[i].ID > alerts[j].ID
		}
		return alerts[i].CreatedAt > alerts[j].CreatedAt
	})
	return alerts, nil
}

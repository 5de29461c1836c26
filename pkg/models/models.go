package models

import "encoding/json"

type AlertLevel string

const (
	AlertLevelCritical AlertLevel = "critical"
)

// Alert is one entry of an owner's alert list. The JSON shape is the wire
// schema written to the realtime database.
type Alert struct {
	ID         string     `gorm:"primaryKey" json:"id,omitempty"`
	OwnerID    string     `gorm:"index" json:"-"`
	DeviceID   string     `json:"deviceId"`
	DeviceName string     `json:"deviceName"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Level      AlertLevel `gorm:"type:varchar(20);check:level IN ('critical')" json:"level"`
	CreatedAt  int64      `gorm:"autoCreateTime:milli;index" json:"createdAt"`
	Read       bool       `json:"read"`
}

type PushToken struct {
	OwnerID string `gorm:"primaryKey"`
	Token   string
}

type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// DeviceChange is one update event on /<collection>/{ownerId}/{deviceId}.
// Before and After hold the raw snapshots; an empty or null After means the
// record was deleted.
type DeviceChange struct {
	OwnerID  string
	DeviceID string
	Before   json.RawMessage
	After    json.RawMessage
}

// DeviceSnapshot is the loosely typed record as stored. Every field is
// optional.
type DeviceSnapshot struct {
	Temperature *float64
	Humidity    *float64
	Name        *string
}

// Reading is a snapshot that passed extraction: both measurements present
// and the name resolved.
type Reading struct {
	Temperature float64
	Humidity    float64
	Name        string
}

package iot

import (
	"bytes"
	"encoding/json"

	z "github.com/Oudwins/zog"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

const FallbackDeviceName = "Smart Shell"

var changeParamsSchema = z.Struct(z.Shape{
	"OwnerID":  z.String().Min(1).Required(),
	"DeviceID": z.String().Min(1).Required(),
})

// IsDeleted reports whether a snapshot is absent.
func IsDeleted(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParseSnapshot decodes the fields this handler reads from a raw record.
// Anything that does not decode to the expected type is left nil, so a
// malformed record reads as missing telemetry instead of failing.
func ParseSnapshot(raw json.RawMessage) models.DeviceSnapshot {
	var snapshot models.DeviceSnapshot

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return snapshot
	}

	snapshot.Temperature = decodeOptional[float64](fields["temperature"])
	snapshot.Humidity = decodeOptional[float64](fields["humidity"])
	snapshot.Name = decodeOptional[string](fields["name"])
	return snapshot
}

// ToReading resolves defaults. ok is false when either measurement is
// missing.
func ToReading(snapshot models.DeviceSnapshot) (reading models.Reading, ok bool) {
	if snapshot.Temperature == nil || snapshot.Humidity == nil {
		return reading, false
	}

	name := ""
	if snapshot.Name != nil {
		name = *snapshot.Name
	}

	return models.Reading{
		Temperature: *snapshot.Temperature,
		Humidity:    *snapshot.Humidity,
		Name:        common.FallbackString(name, FallbackDeviceName),
	}, true
}

func decodeOptional[T any](raw json.RawMessage) *T {
	if raw == nil {
		return nil
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

package iot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"liyu1981.xyz/nest-monitor-service/pkg/db"
	"liyu1981.xyz/nest-monitor-service/pkg/iot/mocks"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

func GetMockIOTWithMemorySqliteDialector(t *testing.T, useMockIAlert, useMockIToken, useMockIPush bool) (
	*gomock.Controller,
	*IOT,
	*mocks.MockIAlert,
	*mocks.MockIToken,
	*mocks.MockIPush,
) {
	ctrl := gomock.NewController(t)

	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIToken := mocks.NewMockIToken(ctrl)
	mockIPush := mocks.NewMockIPush(ctrl)
	dbInstance := db.GetInstance(db.UseMemorySqliteDialector()) // ensure migrations
	iotInstance := &IOT{Db: *dbInstance}

	alertService := iotInstance.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	tokenService := iotInstance.GetIToken()
	if useMockIToken {
		tokenService = mockIToken
	}

	pushService := iotInstance.GetIPush()
	if useMockIPush {
		pushService = mockIPush
	}

	iotInstance.WithServices(ServiceOpts{
		Alert: alertService,
		Token: tokenService,
		Push:  pushService,
	})

	return ctrl, iotInstance, mockIAlert, mockIToken, mockIPush
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func nestChange(ownerID, deviceID string, after string) *models.DeviceChange {
	change := &models.DeviceChange{
		OwnerID:  ownerID,
		DeviceID: deviceID,
		Before:   json.RawMessage(`{"temperature":30.0,"humidity":70.0}`),
	}
	if after != "" {
		change.After = json.RawMessage(after)
	}
	return change
}

func nestReading(temperature, humidity float64) string {
	return fmt.Sprintf(`{"temperature":%v,"humidity":%v}`, temperature, humidity)
}

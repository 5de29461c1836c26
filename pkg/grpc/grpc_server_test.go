package grpc

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/db"
	"liyu1981.xyz/nest-monitor-service/pkg/iot"
	_ "liyu1981.xyz/nest-monitor-service/pkg/testing"

	"liyu1981.xyz/nest-monitor-service/pkg/iot/mocks"
)

const bufSize = 1024 * 1024

var limitedMethods = []string{
	TriggerService_DeviceUpdated_FullMethodName,
	TriggerService_GetAlerts_FullMethodName,
}

func startTestServer(t *testing.T, iotCore *iot.IOT, limiterStore *iot.RateLimiterStore) TriggerServiceClient {
	listener := bufconn.Listen(bufSize)

	triggerServer := TriggerServer{Iot: iotCore, RateLimiterStore: limiterStore}
	interceptor := grpc.UnaryInterceptor(triggerServer.CreateRateLimitInterceptor(limitedMethods))
	server := grpc.NewServer(interceptor)
	RegisterTriggerServiceServer(server, &triggerServer)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewTriggerServiceClient(conn)
}

func newIOTCore() *iot.IOT {
	iotCore := iot.IOT{
		Db: *db.GetInstance(db.UseMemorySqliteDialector()),
	}
	iotCore.WithServices(iot.ServiceOpts{
		Alert: iotCore.GetIAlert(),
		Token: iotCore.GetIToken(),
		Push:  iotCore.GetIPush(),
	})
	return &iotCore
}

func startTestServerWithMocks(t *testing.T, useMockIAlert bool) (*gomock.Controller, TriggerServiceClient, *mocks.MockIAlert) {
	ctrl := gomock.NewController(t)
	mockIAlert := mocks.NewMockIAlert(ctrl)

	iotCore := newIOTCore()
	if useMockIAlert {
		iotCore.Alert = mockIAlert
	}

	return ctrl, startTestServer(t, iotCore, nil), mockIAlert
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func deviceUpdate(t *testing.T, ownerID, deviceID string, after any) *structpb.Struct {
	return mustStruct(t, map[string]any{
		"ownerId":  ownerID,
		"deviceId": deviceID,
		"before":   map[string]any{"temperature": 30.0, "humidity": 70.0},
		"after":    after,
	})
}

func success(resp *structpb.Struct) bool {
	return resp.GetFields()["success"].GetBoolValue()
}

func message(resp *structpb.Struct) string {
	return resp.GetFields()["message"].GetStringValue()
}

func TestDeviceUpdatedAndGetAlerts(t *testing.T) {
	common.SetTestLoggerNop()
	client := startTestServer(t, newIOTCore(), nil)

	ownerID := uuid.NewString()
	deviceID := uuid.NewString()

	resp, err := client.DeviceUpdated(context.Background(), deviceUpdate(t, ownerID, deviceID,
		map[string]any{"temperature": 28.5, "humidity": 80.0, "name": "Nest B"}))
	require.NoError(t, err)
	require.True(t, success(resp), message(resp))
	assert.Equal(t, string(iot.ResultAlerted), resp.GetFields()["result"].GetStringValue())
	alertID := resp.GetFields()["alertId"].GetStringValue()
	assert.NotEmpty(t, alertID)
	assert.Equal(t, string(iot.PushNoToken), resp.GetFields()["pushStatus"].GetStringValue())

	resp, err = client.GetAlerts(context.Background(), mustStruct(t, map[string]any{"ownerId": ownerID}))
	require.NoError(t, err)
	require.True(t, success(resp), message(resp))

	alerts := resp.GetFields()["alerts"].GetListValue().GetValues()
	require.Len(t, alerts, 1)
	alert := alerts[0].GetStructValue().GetFields()
	assert.Equal(t, alertID, alert["id"].GetStringValue())
	assert.Equal(t, deviceID, alert["deviceId"].GetStringValue())
	assert.Equal(t, "Nest B", alert["deviceName"].GetStringValue())
	// temperature wins over humidity
	assert.Equal(t, "Temperature too low", alert["title"].GetStringValue())
	assert.Equal(t, "critical", alert["level"].GetStringValue())
	assert.False(t, alert["read"].GetBoolValue())
	assert.Positive(t, alert["createdAt"].GetNumberValue())
}

func TestDeviceUpdated_Skips(t *testing.T) {
	common.SetTestLoggerNop()
	client := startTestServer(t, newIOTCore(), nil)

	ownerID := uuid.NewString()
	deviceID := uuid.NewString()

	cases := []struct {
		after  any
		result iot.Result
	}{
		{nil, iot.ResultDeleted},
		{map[string]any{"temperature": 30.0}, iot.ResultMissingTelemetry},
		{map[string]any{"temperature": 30.0, "humidity": 70.0}, iot.ResultInRange},
	}

	for _, c := range cases {
		resp, err := client.DeviceUpdated(context.Background(), deviceUpdate(t, ownerID, deviceID, c.after))
		require.NoError(t, err)
		require.True(t, success(resp), message(resp))
		assert.Equal(t, string(c.result), resp.GetFields()["result"].GetStringValue())
		assert.NotContains(t, resp.GetFields(), "alertId")
		assert.NotContains(t, resp.GetFields(), "pushStatus")
	}

	// a request without after at all reads as a deletion too
	resp, err := client.DeviceUpdated(context.Background(), mustStruct(t, map[string]any{
		"ownerId":  ownerID,
		"deviceId": deviceID,
	}))
	require.NoError(t, err)
	assert.Equal(t, string(iot.ResultDeleted), resp.GetFields()["result"].GetStringValue())

	resp, err = client.GetAlerts(context.Background(), mustStruct(t, map[string]any{"ownerId": ownerID}))
	require.NoError(t, err)
	assert.Empty(t, resp.GetFields()["alerts"].GetListValue().GetValues())
}

func TestDeviceUpdated_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		client := startTestServer(t, newIOTCore(), nil)

		{
			// empty ownerId will fail validation
			r, err := client.DeviceUpdated(context.Background(), deviceUpdate(t, "", uuid.NewString(), nil))
			assert.NoError(t, err)
			assert.False(t, success(r), "expected DeviceUpdated to fail")
			assert.True(t, strings.Contains(message(r), "validation error"), "expected DeviceUpdated to fail with validation error")
		}

		{
			// empty deviceId will fail validation
			r, err := client.DeviceUpdated(context.Background(), deviceUpdate(t, uuid.NewString(), "", nil))
			assert.NoError(t, err)
			assert.False(t, success(r), "expected DeviceUpdated to fail")
			assert.True(t, strings.Contains(message(r), "validation error"), "expected DeviceUpdated to fail with validation error")
		}
	}

	{
		ctrl, client, mockIAlert := startTestServerWithMocks(t, true)
		defer ctrl.Finish()

		ownerID := uuid.NewString()

		{
			// alert write error should fail too
			mockIAlert.EXPECT().
				AppendAlert(gomock.Any(), gomock.Eq(ownerID), gomock.Any()).
				Return("", fmt.Errorf("test error")).
				Times(1)
			r, err := client.DeviceUpdated(context.Background(), deviceUpdate(t, ownerID, uuid.NewString(),
				map[string]any{"temperature": 40.0, "humidity": 70.0}))
			assert.NoError(t, err)
			assert.False(t, success(r), "expected DeviceUpdated to fail")
			assert.True(t, strings.Contains(message(r), "test error"), "expected DeviceUpdated to fail with test error")
		}
	}
}

func TestGetAlerts_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		client := startTestServer(t, newIOTCore(), nil)

		{
			// empty ownerId will fail validation
			r, err := client.GetAlerts(context.Background(), mustStruct(t, map[string]any{"ownerId": ""}))
			assert.NoError(t, err)
			assert.False(t, success(r), "expected GetAlerts to fail")
			assert.True(t, strings.Contains(message(r), "validation error"), "expected GetAlerts to fail with validation error")
		}
	}

	{
		ctrl, client, mockIAlert := startTestServerWithMocks(t, true)
		defer ctrl.Finish()

		ownerID := uuid.NewString()

		{
			// internal error should fail too
			mockIAlert.EXPECT().
				GetOwnerAlerts(gomock.Any(), gomock.Eq(ownerID)).
				Return(nil, fmt.Errorf("test error")).
				Times(1)
			r, err := client.GetAlerts(context.Background(), mustStruct(t, map[string]any{"ownerId": ownerID}))
			assert.NoError(t, err)
			assert.False(t, success(r), "expected GetAlerts to fail")
			assert.True(t, strings.Contains(message(r), "test error"), "expected GetAlerts to fail with test error")
		}
	}
}

func TestRateLimitInterceptor_DeviceUpdated(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := iot.NewRateLimiterStore(2, 2) // Allow 2 req/sec per device
	client := startTestServer(t, newIOTCore(), limiterStore)

	ctx := context.Background()
	ownerID := uuid.NewString()
	deviceID := uuid.NewString()

	req := deviceUpdate(t, ownerID, deviceID, map[string]any{"temperature": 30.0, "humidity": 70.0})

	// First 2 requests should pass
	for i := range 2 {
		_, err := client.DeviceUpdated(ctx, req)
		require.NoError(t, err, "expected request %d to pass", i+1)
	}

	// 3rd request should fail immediately
	_, err := client.DeviceUpdated(ctx, req)
	require.Error(t, err, "expected third request to be rate limited")

	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// another device of the same owner is not affected
	_, err = client.DeviceUpdated(ctx, deviceUpdate(t, ownerID, uuid.NewString(), nil))
	require.NoError(t, err)

	// reset the device limiter, PostLimiter itself is not limited
	r, err := client.PostLimiter(ctx, mustStruct(t, map[string]any{
		"ownerId":  ownerID,
		"deviceId": deviceID,
		"rate":     3,
		"burst":    2,
	}))
	require.NoError(t, err)
	require.True(t, success(r), message(r))

	// Should pass again
	_, err = client.DeviceUpdated(ctx, req)
	require.NoError(t, err, "expected request after limiter reset to pass")
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		client := startTestServer(t, newIOTCore(), iot.NewRateLimiterStore(2, 2))

		// missing rate and burst will fail validation
		r, err := client.PostLimiter(context.Background(), mustStruct(t, map[string]any{
			"ownerId":  uuid.NewString(),
			"deviceId": uuid.NewString(),
		}))
		assert.NoError(t, err)
		assert.False(t, success(r), "expected PostLimiter to fail")
		assert.True(t, strings.Contains(message(r), "validation error"), "expected PostLimiter to fail with validation error")
	}

	{
		client := startTestServer(t, newIOTCore(), nil)

		// without limiter store there is nothing to set
		r, err := client.PostLimiter(context.Background(), mustStruct(t, map[string]any{
			"ownerId":  uuid.NewString(),
			"deviceId": uuid.NewString(),
			"rate":     1,
			"burst":    1,
		}))
		assert.NoError(t, err)
		assert.False(t, success(r), "expected PostLimiter to report no effect")
		assert.True(t, strings.Contains(message(r), "No effect"))
	}
}

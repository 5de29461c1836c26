package mqtt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/config"
	"liyu1981.xyz/nest-monitor-service/pkg/iot"
	"liyu1981.xyz/nest-monitor-service/pkg/metrics"
	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

const QoSAtLeastOnce byte = 1

// Subscriber turns device state messages into update events. A message on
// <collection>/{ownerId}/{deviceId} carries the record as it is after the
// write; an empty payload clears the record.
type Subscriber struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
	Collection       string

	client pahomqtt.Client
	logger *zap.Logger
}

func NewSubscriber(core *iot.IOT, limiterStore *iot.RateLimiterStore, collection string, opts config.MqttConfig) (*Subscriber, error) {
	if opts.BrokerURL == "" {
		return nil, errors.New("broker URL is required")
	}
	if opts.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	s := &Subscriber{
		Iot:              core,
		RateLimiterStore: limiterStore,
		Collection:       collection,
		logger:           common.GetLoggerWith(common.LoggerNameMqttSubscriber),
	}

	clientOpts := pahomqtt.NewClientOptions()
	clientOpts.AddBroker(opts.BrokerURL)
	clientOpts.SetClientID(opts.ClientID)
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}

	clientOpts.SetAutoReconnect(true)
	clientOpts.SetConnectRetry(true)
	clientOpts.SetConnectTimeout(5 * time.Second)
	clientOpts.SetConnectRetryInterval(5 * time.Second)
	clientOpts.SetMaxReconnectInterval(15 * time.Second)
	clientOpts.SetKeepAlive(30 * time.Second)

	clientOpts.SetOnConnectHandler(s.onConnect)
	clientOpts.SetConnectionLostHandler(s.onConnectionLost)

	s.client = pahomqtt.NewClient(clientOpts)

	s.logger.Info("MQTT subscriber created",
		zap.String("broker", opts.BrokerURL),
		zap.String("client_id", opts.ClientID),
		zap.String("topic", s.Topic()))

	return s, nil
}

// Topic is the wildcard subscription for every device of every owner.
func (s *Subscriber) Topic() string {
	return s.Collection + "/+/+"
}

// ParseTopic splits <collection>/{ownerId}/{deviceId}.
func (s *Subscriber) ParseTopic(topic string) (ownerID string, deviceID string, ok bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != s.Collection || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// Start connects and waits for the first connection. Subscriptions are
// (re)made in the connect handler so they survive reconnects.
func (s *Subscriber) Start(ctx context.Context) error {
	token := s.client.Connect()

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

func (s *Subscriber) Stop() {
	if s.client == nil || !s.client.IsConnected() {
		return
	}
	s.logger.Info("Disconnecting from MQTT broker")
	s.client.Disconnect(250)
}

func (s *Subscriber) onConnect(client pahomqtt.Client) {
	token := client.Subscribe(s.Topic(), QoSAtLeastOnce, s.handleMessage)
	token.Wait()

	if err := token.Error(); err != nil {
		s.logger.Error("Failed to subscribe", zap.String("topic", s.Topic()), zap.Error(err))
		return
	}
	s.logger.Info("Subscribed", zap.String("topic", s.Topic()))
}

func (s *Subscriber) onConnectionLost(client pahomqtt.Client, err error) {
	s.logger.Warn("Connection to MQTT broker lost", zap.Error(err))
}

func (s *Subscriber) handleMessage(client pahomqtt.Client, msg pahomqtt.Message) {
	ownerID, deviceID, ok := s.ParseTopic(msg.Topic())
	if !ok {
		s.logger.Warn("Ignoring message on unexpected topic", zap.String("topic", msg.Topic()))
		return
	}

	if !s.RateLimiterStore.Allow(iot.DeviceKey(ownerID, deviceID)) {
		metrics.RateLimitedTotal.WithLabelValues("mqtt").Inc()
		s.logger.Warn("Rate limited, dropping message",
			zap.String("owner_id", ownerID),
			zap.String("device_id", deviceID))
		return
	}

	_, err := s.Iot.MonitorDeviceConditions(context.Background(), &models.DeviceChange{
		OwnerID:  ownerID,
		DeviceID: deviceID,
		After:    msg.Payload(),
	})
	if err != nil {
		s.logger.Error("Device update failed",
			zap.String("owner_id", ownerID),
			zap.String("device_id", deviceID),
			zap.Error(err))
	}
}

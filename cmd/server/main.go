package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/nest-monitor-service/pkg/common"
	"liyu1981.xyz/nest-monitor-service/pkg/config"
	"liyu1981.xyz/nest-monitor-service/pkg/db"
	"liyu1981.xyz/nest-monitor-service/pkg/firebase"
	nestGrpc "liyu1981.xyz/nest-monitor-service/pkg/grpc"
	nestHttp "liyu1981.xyz/nest-monitor-service/pkg/http"
	"liyu1981.xyz/nest-monitor-service/pkg/iot"
	nestMqtt "liyu1981.xyz/nest-monitor-service/pkg/mqtt"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := common.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nestCore, err := buildCore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	logger.Info("Condition monitor registered",
		zap.String("backend", string(cfg.Backend)),
		zap.String("trigger_path", cfg.TriggerPath()),
		zap.String("instance", cfg.Firebase.Instance),
		zap.String("region", cfg.Firebase.Region))

	defaultLimiter := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	if cfg.GrpcHostPort != "" {
		logger.Info("Starting gRPC server on port " + cfg.GrpcHostPort)
		go func() {
			triggerServer := nestGrpc.TriggerServer{
				Iot:              nestCore,
				RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
			}
			interceptor := triggerServer.CreateRateLimitInterceptor([]string{
				nestGrpc.TriggerService_DeviceUpdated_FullMethodName,
				nestGrpc.TriggerService_GetAlerts_FullMethodName,
			})
			s := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
			nestGrpc.RegisterTriggerServiceServer(s, &triggerServer)
			logger.Info("gRPC server created with:", defaultLimiter)

			listener, err := net.Listen("tcp", cfg.GrpcHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + cfg.GrpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if cfg.Mqtt.BrokerURL != "" {
		subscriber, err := nestMqtt.NewSubscriber(
			nestCore,
			iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
			cfg.Collection,
			cfg.Mqtt,
		)
		if err != nil {
			log.Fatalf("failed to create mqtt subscriber: %v", err)
		}
		go func() {
			if err := subscriber.Start(ctx); err != nil {
				logger.Error("mqtt subscriber failed to start", zap.Error(err))
			}
		}()
		defer subscriber.Stop()
	}

	rs := &nestHttp.RestfulServer{
		Server:           gin.Default(),
		Iot:              nestCore,
		RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	rs.Setup()

	logger.Info("http server created with:", defaultLimiter)

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := rs.Server.Run(cfg.HttpHostPort); err != nil {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
}

// buildCore wires the evaluator to the configured backend. The firebase
// backend talks to the hosted database and FCM; file and memory keep alerts
// and tokens in sqlite and only log pushes.
func buildCore(ctx context.Context, cfg config.Config) (*iot.IOT, error) {
	switch cfg.Backend {
	case config.BackendFirebase:
		backend, err := firebase.NewBackend(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
		nestCore := &iot.IOT{}
		nestCore.WithServices(iot.ServiceOpts{
			Alert: backend.Alerts,
			Token: backend.Tokens,
			Push:  backend.Messenger,
		})
		return nestCore, nil

	case config.BackendFile, config.BackendMemory:
		dialector := db.UseSqliteDialector()
		if cfg.Backend == config.BackendMemory {
			dialector = db.UseMemorySqliteDialector()
		}
		nestCore := &iot.IOT{
			Db: *db.GetInstance(dialector),
		}
		nestCore.WithServices(iot.ServiceOpts{
			Alert: nestCore.GetIAlert(),
			Token: nestCore.GetIToken(),
			Push:  nestCore.GetIPush(),
		})
		return nestCore, nil
	}

	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

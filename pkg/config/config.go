// Package config builds the process-wide configuration once at start-up.
// The returned Config is a value; nothing mutates it after Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"liyu1981.xyz/nest-monitor-service/pkg/common"
)

type Backend string

const (
	BackendFirebase Backend = "firebase"
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
)

const (
	DefaultFirebaseInstance = "smartshell-ad097-default-rtdb"
	DefaultFirebaseRegion   = "asia-southeast1"
	DefaultNestCollection   = "nests"
	DefaultHttpHostPort     = ":1080"
	DefaultMqttClientID     = "nest-monitor"
)

type FirebaseConfig struct {
	Instance        string
	Region          string
	DatabaseURL     string
	ProjectID       string
	CredentialsFile string
}

type MqttConfig struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
}

type Config struct {
	Backend Backend

	// Collection is the first segment of the watched path
	// /<collection>/{ownerId}/{deviceId}.
	Collection string

	HttpHostPort string
	GrpcHostPort string

	DefaultRate  float64
	DefaultBurst int

	Firebase FirebaseConfig
	Mqtt     MqttConfig
}

// TriggerPath is the path pattern the handler is registered against.
func (c Config) TriggerPath() string {
	return fmt.Sprintf("/%s/{ownerId}/{deviceId}", c.Collection)
}

func Load() (Config, error) {
	cfg := Config{
		Backend:      Backend(strings.TrimSpace(os.Getenv(common.EnvKeyNestBackend))),
		Collection:   envOr(common.EnvKeyNestCollection, DefaultNestCollection),
		HttpHostPort: envOr(common.EnvKeyNestHttpHostPort, DefaultHttpHostPort),
		GrpcHostPort: strings.TrimSpace(os.Getenv(common.EnvKeyNestGrpcHostPort)),
		Firebase: FirebaseConfig{
			Instance:        envOr(common.EnvKeyFirebaseInstance, DefaultFirebaseInstance),
			Region:          envOr(common.EnvKeyFirebaseRegion, DefaultFirebaseRegion),
			ProjectID:       strings.TrimSpace(os.Getenv(common.EnvKeyFirebaseProjectID)),
			CredentialsFile: strings.TrimSpace(os.Getenv(common.EnvKeyFirebaseCredentialsFile)),
		},
		Mqtt: MqttConfig{
			BrokerURL: strings.TrimSpace(os.Getenv(common.EnvKeyMqttBrokerURL)),
			ClientID:  envOr(common.EnvKeyMqttClientID, DefaultMqttClientID),
			Username:  os.Getenv(common.EnvKeyMqttUsername),
			Password:  os.Getenv(common.EnvKeyMqttPassword),
		},
	}

	switch cfg.Backend {
	case BackendFirebase, BackendFile, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown %s: %q", common.EnvKeyNestBackend, cfg.Backend)
	}

	var err error
	if cfg.DefaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyNestDefaultRate), 64); err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be a float64 value: %w", common.EnvKeyNestDefaultRate, err)
	}

	burst, err := strconv.ParseInt(os.Getenv(common.EnvKeyNestDefaultBurst), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s, should be an int value: %w", common.EnvKeyNestDefaultBurst, err)
	}
	cfg.DefaultBurst = int(burst)

	cfg.Firebase.DatabaseURL = strings.TrimSpace(os.Getenv(common.EnvKeyFirebaseDatabaseURL))
	if cfg.Firebase.DatabaseURL == "" {
		cfg.Firebase.DatabaseURL = cfg.Firebase.derivedDatabaseURL()
	}

	return cfg, nil
}

// us-central1 databases live on firebaseio.com, every other region on
// firebasedatabase.app.
func (f FirebaseConfig) derivedDatabaseURL() string {
	if f.Region == "" || f.Region == "us-central1" {
		return fmt.Sprintf("https://%s.firebaseio.com", f.Instance)
	}
	return fmt.Sprintf("https://%s.%s.firebasedatabase.app", f.Instance, f.Region)
}

func envOr(key string, fallback string) string {
	return common.FallbackString(strings.TrimSpace(os.Getenv(key)), fallback)
}

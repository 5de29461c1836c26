package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyNestBackend string = "NEST_BACKEND"
	EnvKeyNestDbPath  string = "NEST_DB_PATH"

	EnvKeyNestHttpHostPort string = "NEST_HTTP_HOST_PORT"
	EnvKeyNestGrpcHostPort string = "NEST_GRPC_HOST_PORT"

	EnvKeyNestDefaultRate  string = "NEST_DEFAULT_RATE"
	EnvKeyNestDefaultBurst string = "NEST_DEFAULT_BURST"

	EnvKeyFirebaseInstance        string = "FIREBASE_DB_INSTANCE"
	EnvKeyFirebaseRegion          string = "FIREBASE_REGION"
	EnvKeyFirebaseDatabaseURL     string = "FIREBASE_DATABASE_URL"
	EnvKeyFirebaseProjectID       string = "FIREBASE_PROJECT_ID"
	EnvKeyFirebaseCredentialsFile string = "FIREBASE_CREDENTIALS_FILE"

	EnvKeyNestCollection string = "NEST_COLLECTION"

	EnvKeyMqttBrokerURL string = "MQTT_BROKER_URL"
	EnvKeyMqttClientID  string = "MQTT_CLIENT_ID"
	EnvKeyMqttUsername  string = "MQTT_USERNAME"
	EnvKeyMqttPassword  string = "MQTT_PASSWORD"

	LoggerNameMonitor        string = "nest_monitor"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerNameGrpcServer     string = "grpc_server"
	LoggerNameMqttSubscriber string = "mqtt_subscriber"
	LoggerNameFirebase       string = "firebase"
	LoggerFieldCategory      string = "category"
	LoggerCategoryEvaluate   string = "evaluate"
	LoggerCategoryAlert      string = "alert"
	LoggerCategoryPush       string = "push"
)

package config

import (
	"net"
	"strconv"
	"time"
)

// Backends soportados.
const (
	AuthDev    = "dev"
	AuthJWT    = "jwt"
	AuthRemote = "remote"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
	BackendMinIO    = "minio"
	BackendS3       = "s3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Assistant AssistantConfig `yaml:"assistant"`
	Share     ShareConfig     `yaml:"share"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SecureCookie    bool          `yaml:"secure_cookie"    env:"SERVER_SECURE_COOKIE"    env-default:"false"`
	SessionMaxIdle  time.Duration `yaml:"session_max_idle" env:"SERVER_SESSION_MAX_IDLE" env-default:"12h"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthConfig: dev acepta X-Debug-User-ID / cualquier token; jwt verifica HS256 local;
// remote delega en el IdP.
type AuthConfig struct {
	Mode            string        `yaml:"mode"               env:"AUTH_MODE"               env-default:"dev"`
	JWTSecret       string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"`
	JWTIssuer       string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"`
	JWTAudience     string        `yaml:"jwt_audience"       env:"AUTH_JWT_AUDIENCE"`
	IdPBaseURL      string        `yaml:"idp_base_url"       env:"AUTH_IDP_BASE_URL"`
	IdPAPIKey       string        `yaml:"idp_api_key"        env:"AUTH_IDP_API_KEY"`
	IdPAPIKeyHeader string        `yaml:"idp_api_key_header" env:"AUTH_IDP_API_KEY_HEADER"`
	IdPTimeout      time.Duration `yaml:"idp_timeout"        env:"AUTH_IDP_TIMEOUT"        env-default:"5s"`
}

type StorageConfig struct {
	Documents string `yaml:"documents" env:"STORAGE_DOCUMENTS" env-default:"memory"`
	Objects   string `yaml:"objects"   env:"STORAGE_OBJECTS"   env-default:"memory"`

	Postgres PostgresConfig `yaml:"postgres"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	S3       S3Config       `yaml:"s3"`
	MinIO    MinIOConfig    `yaml:"minio"`
	AWS      AWSConfig      `yaml:"aws"`
	// base para las URLs del object store en memoria
	MemoryBaseURL string `yaml:"memory_base_url" env:"STORAGE_MEMORY_BASE_URL" env-default:"/objects"`
}

type PostgresConfig struct {
	DSN          string `yaml:"dsn"            env:"DATABASE_URL"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS" env-default:"10"`
	AutoMigrate  bool   `yaml:"auto_migrate"   env:"DATABASE_AUTO_MIGRATE"   env-default:"true"`
}

type DynamoDBConfig struct {
	TablePrefix string `yaml:"table_prefix" env:"DYNAMODB_TABLE_PREFIX" env-default:""`
}

type S3Config struct {
	Bucket        string `yaml:"bucket"          env:"S3_BUCKET"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	UsePathStyle  bool   `yaml:"use_path_style"  env:"S3_USE_PATH_STYLE" env-default:"false"`
}

type MinIOConfig struct {
	Endpoint      string `yaml:"endpoint"        env:"MINIO_ENDPOINT"`
	AccessKey     string `yaml:"access_key"      env:"MINIO_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key"      env:"MINIO_SECRET_KEY"`
	Bucket        string `yaml:"bucket"          env:"MINIO_BUCKET"          env-default:"pets"`
	UseSSL        bool   `yaml:"use_ssl"         env:"MINIO_USE_SSL"         env-default:"false"`
	PublicBaseURL string `yaml:"public_base_url" env:"MINIO_PUBLIC_BASE_URL"`
}

// AWSConfig: Endpoint permite apuntar a localstack.
type AWSConfig struct {
	Region   string `yaml:"region"   env:"AWS_REGION"       env-default:"us-east-1"`
	Endpoint string `yaml:"endpoint" env:"AWS_ENDPOINT_URL"`
}

// AssistantConfig: sin API key el asistente usa el fallback local.
type AssistantConfig struct {
	GeminiAPIKey string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string        `yaml:"model"          env:"ASSISTANT_MODEL"   env-default:"gemini-2.5-flash"`
	Timeout      time.Duration `yaml:"timeout"        env:"ASSISTANT_TIMEOUT" env-default:"20s"`
}

type ShareConfig struct {
	PublicBaseURL string `yaml:"public_base_url" env:"SHARE_PUBLIC_BASE_URL"`
	QREndpoint    string `yaml:"qr_endpoint"     env:"SHARE_QR_ENDPOINT" env-default:"https://api.qrserver.com/v1/create-qr-code/"`
	QRSize        int    `yaml:"qr_size"         env:"SHARE_QR_SIZE"     env-default:"150"`
}

type DashboardConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"DASHBOARD_TICK_INTERVAL" env-default:"5s"`
	MapRadius    float64       `yaml:"map_radius"    env:"DASHBOARD_MAP_RADIUS"    env-default:"15"`
}

// Addr es host:port para http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

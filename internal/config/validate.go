package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate revisa la selección de backends y las claves que cada uno necesita.
func (c *Config) Validate() error {
	var errs []error

	switch c.Auth.Mode {
	case AuthDev:
	case AuthJWT:
		if len(c.Auth.JWTSecret) < 32 {
			errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
		}
	case AuthRemote:
		if strings.TrimSpace(c.Auth.IdPBaseURL) == "" {
			errs = append(errs, errors.New("auth.idp_base_url is required for remote auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.mode %q not supported", c.Auth.Mode))
	}

	switch c.Storage.Documents {
	case BackendMemory, BackendDynamoDB:
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			errs = append(errs, errors.New("storage.postgres.dsn is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.documents %q not supported", c.Storage.Documents))
	}

	switch c.Storage.Objects {
	case BackendMemory:
	case BackendS3:
		if strings.TrimSpace(c.Storage.S3.Bucket) == "" {
			errs = append(errs, errors.New("storage.s3.bucket is required"))
		}
	case BackendMinIO:
		if strings.TrimSpace(c.Storage.MinIO.Endpoint) == "" {
			errs = append(errs, errors.New("storage.minio.endpoint is required"))
		}
		if strings.TrimSpace(c.Storage.MinIO.Bucket) == "" {
			errs = append(errs, errors.New("storage.minio.bucket is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.objects %q not supported", c.Storage.Objects))
	}

	if c.Share.QRSize <= 0 {
		errs = append(errs, fmt.Errorf("share.qr_size must be > 0 (got %d)", c.Share.QRSize))
	}
	if c.Dashboard.TickInterval <= 0 {
		errs = append(errs, errors.New("dashboard.tick_interval must be > 0"))
	}
	if c.Dashboard.MapRadius <= 0 {
		errs = append(errs, errors.New("dashboard.map_radius must be > 0"))
	}

	return errors.Join(errs...)
}

// AssistantRemote indica si hay generador remoto configurado.
func (c *Config) AssistantRemote() bool {
	return strings.TrimSpace(c.Assistant.GeminiAPIKey) != ""
}

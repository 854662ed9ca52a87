package main

import (
	"context"
	"database/sql"
	"fmt"

	"pet-lost-found/internal/adapters/auth/jwtverifier"
	"pet-lost-found/internal/adapters/auth/remoteidp"
	ddbstore "pet-lost-found/internal/adapters/storage/dynamodb"
	miniostore "pet-lost-found/internal/adapters/storage/minio"
	pg "pet-lost-found/internal/adapters/storage/postgres"
	s3store "pet-lost-found/internal/adapters/storage/s3"
	"pet-lost-found/internal/adapters/textgen/gemini"
	"pet-lost-found/internal/config"
	"pet-lost-found/internal/domain/session"
	"pet-lost-found/internal/platform/awsutil"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/auth"
	"pet-lost-found/internal/ports/storage"
	"pet-lost-found/internal/ports/textgen"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// deps son los adapters elegidos por config. nil => el router usa el default en memoria.
type deps struct {
	Verifier  auth.AuthVerifier
	Documents storage.DocumentStore
	Objects   storage.ObjectStore
	Generator textgen.Generator

	db *sql.DB
}

func (d *deps) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}
}

func wire(ctx context.Context, c *config.Config, log logger.Logger) (*deps, error) {
	d := &deps{}

	switch c.Auth.Mode {
	case config.AuthJWT:
		d.Verifier = jwtverifier.New(c.Auth.JWTSecret, c.Auth.JWTIssuer, c.Auth.JWTAudience)
	case config.AuthRemote:
		client, err := remoteidp.NewClient(remoteidp.Config{
			BaseURL:      c.Auth.IdPBaseURL,
			APIKey:       c.Auth.IdPAPIKey,
			APIKeyHeader: c.Auth.IdPAPIKeyHeader,
			Timeout:      c.Auth.IdPTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("remote idp: %w", err)
		}
		d.Verifier = remoteidp.NewVerifier(client)
	default:
		// dev: el router usa X-Debug-User-ID y el verificador de desarrollo
		log.Warn("auth running in dev mode", nil)
	}

	var (
		awsConf     aws.Config
		awsEndpoint string
		awsLoaded   bool
	)
	loadAWS := func() (aws.Config, string, error) {
		if awsLoaded {
			return awsConf, awsEndpoint, nil
		}
		cfg, ep, err := awsutil.Load(ctx, c.Storage.AWS.Region, c.Storage.AWS.Endpoint)
		if err != nil {
			return aws.Config{}, "", fmt.Errorf("aws config: %w", err)
		}
		awsConf, awsEndpoint, awsLoaded = cfg, ep, true
		return cfg, ep, nil
	}

	switch c.Storage.Documents {
	case config.BackendPostgres:
		db, err := pg.Open(ctx, c.Storage.Postgres.DSN, c.Storage.Postgres.MaxOpenConns)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		d.db = db
		if c.Storage.Postgres.AutoMigrate {
			n, err := pg.Migrate(ctx, db)
			if err != nil {
				d.Close()
				return nil, err
			}
			log.Info("migrations applied", map[string]any{"count": n})
		}
		d.Documents = pg.NewDocuments(db)
	case config.BackendDynamoDB:
		awsCfg, _, err := loadAWS()
		if err != nil {
			return nil, err
		}
		d.Documents = ddbstore.NewDocuments(dynamodb.NewFromConfig(awsCfg), c.Storage.DynamoDB.TablePrefix)
	}

	switch c.Storage.Objects {
	case config.BackendS3:
		awsCfg, endpoint, err := loadAWS()
		if err != nil {
			d.Close()
			return nil, err
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if endpoint != "" || c.Storage.S3.UsePathStyle {
				o.UsePathStyle = true
			}
		})
		d.Objects = s3store.NewObjects(client, c.Storage.S3.Bucket, c.Storage.AWS.Region, c.Storage.S3.PublicBaseURL)
	case config.BackendMinIO:
		m := c.Storage.MinIO
		objs, err := miniostore.New(ctx, miniostore.Config{
			Endpoint:      m.Endpoint,
			AccessKey:     m.AccessKey,
			SecretKey:     m.SecretKey,
			Bucket:        m.Bucket,
			UseSSL:        m.UseSSL,
			PublicBaseURL: m.PublicBaseURL,
		})
		if err != nil {
			d.Close()
			return nil, err
		}
		d.Objects = objs
	}

	// sin API key queda nil (interfaz nil, no *Generator nil) => fallback local
	if c.AssistantRemote() {
		gen, err := gemini.New(ctx, c.Assistant.GeminiAPIKey, c.Assistant.Model, c.Assistant.Timeout)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.Generator = gen
	}

	return d, nil
}

func migratePostgres(ctx context.Context, c *config.Config) (int, error) {
	db, err := pg.Open(ctx, c.Storage.Postgres.DSN, c.Storage.Postgres.MaxOpenConns)
	if err != nil {
		return 0, fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()
	return pg.Migrate(ctx, db)
}

func sessionConfig(c *config.Config) session.HandlerConfig {
	return session.HandlerConfig{
		PublicBaseURL: c.Share.PublicBaseURL,
		QREndpoint:    c.Share.QREndpoint,
		QRSize:        c.Share.QRSize,
		TickInterval:  c.Dashboard.TickInterval,
		SecureCookie:  c.Server.SecureCookie,
	}
}

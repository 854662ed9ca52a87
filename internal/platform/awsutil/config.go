// Package awsutil carga la configuración del SDK de AWS.
package awsutil

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
)

// Load carga la config por defecto. Si endpoint no está vacío (localstack),
// todos los servicios apuntan ahí. Devuelve el endpoint efectivo.
func Load(ctx context.Context, region, endpoint string) (aws.Config, string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		cfg, err := awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region))
		return cfg, "", err
	}
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, r string, _ ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpoint,
			HostnameImmutable: true,
			PartitionID:       "aws",
		}, nil
	})
	cfg, err := awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region), awsCfg.WithEndpointResolverWithOptions(resolver))
	return cfg, endpoint, err
}

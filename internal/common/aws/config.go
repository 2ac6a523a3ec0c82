// internal/common/aws/config.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"dining-concierge/internal/common/config"
)

// LoadConfig resolves credentials from the default chain. A non-empty
// endpoint points every client at a local emulator.
func LoadConfig(ctx context.Context, cfg config.AWSConfig) (awssdk.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = awssdk.String(cfg.Endpoint)
	}
	return awsCfg, nil
}

// statusCode reads the HTTP status of a completed call. SDK calls only
// succeed on 2xx, so 200 is assumed when the raw response is unavailable.
func statusCode(md middleware.Metadata) int {
	if raw, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response); ok && raw != nil {
		return raw.StatusCode
	}
	return 200
}

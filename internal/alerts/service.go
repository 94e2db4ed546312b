// Package alerts raises operator notifications for hard upstream failures.
package alerts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type Notifier interface {
	UpstreamFailure(ctx context.Context, resourceType string, cause error) error
}

type SNSService struct {
	Sns      sns.Client
	TopicArn string
}

func (n *SNSService) UpstreamFailure(ctx context.Context, resourceType string, cause error) error {
	_, err := n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String("Unleashed proxy upstream failure"),
		Message:  aws.String(fmt.Sprintf("Resource %s failed on its first page: %s", resourceType, cause)),
	})
	return err
}

// Discard is the notifier used when no alert topic is configured.
type Discard struct{}

func (Discard) UpstreamFailure(ctx context.Context, resourceType string, cause error) error {
	return nil
}

package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// queueSender abstracts provider-specific queue senders.
type queueSender interface {
	Send(ctx context.Context, evt Event) error
}

type senderBuilder func(ctx context.Context, cfg *QueuePublisherConfig, log Logger) (queueSender, error)

var queueSenders = map[string]senderBuilder{
	QueueProviderAWSSQS: func(ctx context.Context, cfg *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newAWSSQSSender(ctx, cfg.AWS, log)
	},
	QueueProviderAWSSNS: func(ctx context.Context, cfg *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newAWSSNSSender(ctx, cfg.SNS, log)
	},
	QueueProviderGCP: func(ctx context.Context, cfg *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newGCPPubSubSender(ctx, cfg.GCP, log)
	},
}

// queuePublisher hands article events to a cloud queue or topic.
type queuePublisher struct {
	id       string
	provider string
	sender   queueSender
}

func newQueuePublisher(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Queue == nil {
		return nil, fmt.Errorf("publisher %q missing queue configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	build, ok := queueSenders[cfg.Queue.Provider]
	if !ok {
		return nil, fmt.Errorf("queue provider %q is not supported", cfg.Queue.Provider)
	}
	sender, err := build(ctx, cfg.Queue, ensureLogger(log))
	if err != nil {
		return nil, err
	}
	return &queuePublisher{id: cfg.ID, provider: cfg.Queue.Provider, sender: sender}, nil
}

func (p *queuePublisher) ID() string   { return p.id }
func (p *queuePublisher) Type() string { return TypeQueue }

func (p *queuePublisher) Publish(ctx context.Context, evt Event) error {
	if err := p.sender.Send(ctx, evt); err != nil {
		return fmt.Errorf("%s: %w", p.provider, err)
	}
	return nil
}

// loadAWSConfig builds an AWS config with static credentials for the given region.
func loadAWSConfig(ctx context.Context, region, accessKeyID, secretAccessKey string) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	creds := credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
	cfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(region),
		awscfg.WithCredentialsProvider(creds),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func encodeEvent(evt Event) ([]byte, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return payload, nil
}

// eventAttributes are the routing attributes attached to queue messages.
// Empty values are omitted since SQS and SNS reject them.
func eventAttributes(evt Event) map[string]string {
	attrs := make(map[string]string, 2)
	if v := strings.TrimSpace(evt.ProviderID); v != "" {
		attrs["provider_id"] = v
	}
	if v := strings.TrimSpace(evt.Section); v != "" {
		attrs["section"] = v
	}
	return attrs
}

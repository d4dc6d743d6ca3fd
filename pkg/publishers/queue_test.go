package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cloud.google.com/go/pubsub"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

type fakeSNS struct {
	input *sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{MessageId: aws.String("m-2")}, nil
}

type fakeTopic struct {
	msg *pubsub.Message
	err error
}

func (f *fakeTopic) publish(_ context.Context, msg *pubsub.Message) (string, error) {
	f.msg = msg
	return "m-3", f.err
}

var sampleEvent = Event{ProviderID: "guardian", Section: "World news", Title: "T", URL: "https://g/1"}

func TestSQSSenderSend(t *testing.T) {
	client := &fakeSQS{}
	s := &awsSQSSender{queueURL: "https://sqs/q", client: client, log: nopLogger{}}

	require.NoError(t, s.Send(context.Background(), sampleEvent))
	require.NotNil(t, client.input)
	assert.Equal(t, "https://sqs/q", aws.ToString(client.input.QueueUrl))
	assert.Equal(t, "World news", aws.ToString(client.input.MessageAttributes["section"].StringValue))

	var got Event
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &got))
	assert.Equal(t, sampleEvent.URL, got.URL)
}

func TestSQSSenderError(t *testing.T) {
	s := &awsSQSSender{client: &fakeSQS{err: errors.New("throttled")}, log: nopLogger{}}
	err := s.Send(context.Background(), sampleEvent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSNSSenderSend(t *testing.T) {
	client := &fakeSNS{}
	s := &awsSNSSender{topicARN: "arn:aws:sns:eu-west-1:1:news", client: client, log: nopLogger{}}

	require.NoError(t, s.Send(context.Background(), sampleEvent))
	assert.Equal(t, "arn:aws:sns:eu-west-1:1:news", aws.ToString(client.input.TopicArn))
	assert.Equal(t, "guardian", aws.ToString(client.input.MessageAttributes["provider_id"].StringValue))
}

func TestPubSubSenderSend(t *testing.T) {
	topic := &fakeTopic{}
	s := &gcpPubSubSender{topic: topic, log: nopLogger{}}

	require.NoError(t, s.Send(context.Background(), sampleEvent))
	assert.Equal(t, map[string]string{"provider_id": "guardian", "section": "World news"}, topic.msg.Attributes)

	topic.err = errors.New("unavailable")
	assert.Error(t, s.Send(context.Background(), sampleEvent))
}

func TestEventAttributesSkipsEmpty(t *testing.T) {
	assert.Equal(t, map[string]string{"provider_id": "guardian"}, eventAttributes(Event{ProviderID: "guardian", Section: " "}))
}

type senderFunc func(ctx context.Context, evt Event) error

func (f senderFunc) Send(ctx context.Context, evt Event) error { return f(ctx, evt) }

func TestQueuePublisherWrapsSenderError(t *testing.T) {
	p := &queuePublisher{id: "q", provider: QueueProviderGCP, sender: senderFunc(func(context.Context, Event) error {
		return errors.New("boom")
	})}
	err := p.Publish(context.Background(), sampleEvent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gcp")
}

func TestNewQueuePublisherUnsupportedProvider(t *testing.T) {
	_, err := newQueuePublisher(context.Background(), PublisherConfig{ID: "q", Queue: &QueuePublisherConfig{Provider: "kafka"}}, nil)
	require.Error(t, err)
}

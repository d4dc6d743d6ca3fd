package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Supported publisher types.
	TypeQueue = "queue"
	TypeHTTP  = "http"

	// Supported queue providers.
	QueueProviderAWSSQS = "aws-sqs"
	QueueProviderAWSSNS = "aws-sns"
	QueueProviderGCP    = "gcp"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// PublisherConfig is one sink declared in the publishers file.
type PublisherConfig struct {
	ID      string                `json:"id" yaml:"id"`
	Type    string                `json:"type" yaml:"type"`
	Enabled *bool                 `json:"enabled" yaml:"enabled"`
	Queue   *QueuePublisherConfig `json:"queue" yaml:"queue"`
	HTTP    *HTTPPublisherConfig  `json:"http" yaml:"http"`
}

// QueuePublisherConfig selects a cloud queue provider.
type QueuePublisherConfig struct {
	Provider string                 `json:"provider" yaml:"provider"`
	AWS      *AWSSQSPublisherConfig `json:"aws" yaml:"aws"`
	SNS      *AWSSNSPublisherConfig `json:"sns" yaml:"sns"`
	GCP      *GCPQueueConfig        `json:"gcp" yaml:"gcp"`
}

// AWSSQSPublisherConfig holds AWS SQS specific settings.
type AWSSQSPublisherConfig struct {
	QueueURL        string `json:"uri" yaml:"uri"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// AWSSNSPublisherConfig holds AWS SNS specific settings.
type AWSSNSPublisherConfig struct {
	TopicARN        string `json:"topic_arn" yaml:"topic_arn"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// GCPQueueConfig holds the minimal Pub/Sub topic settings.
type GCPQueueConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// HTTPPublisherConfig holds generic HTTP sink settings.
type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// LoadConfigs reads the publishers file named by publishers.file and returns
// its entries, normalised and validated, in file order.
// ${VAR} references are expanded from the environment so secrets can stay out of the file.
func LoadConfigs(path string) ([]PublisherConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	entries, err := decodeConfigs([]byte(os.ExpandEnv(string(raw))), filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		cfg := &entries[i]
		cfg.normalize()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
	}
	return entries, nil
}

// decodeConfigs picks the decoder from the extension. Unknown extensions try YAML, then JSON.
func decodeConfigs(data []byte, ext string) ([]PublisherConfig, error) {
	var decoders []func([]byte, any) error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		decoders = append(decoders, yaml.Unmarshal)
	case ".json":
		decoders = append(decoders, json.Unmarshal)
	default:
		decoders = append(decoders, yaml.Unmarshal, json.Unmarshal)
	}

	for _, decode := range decoders {
		var file struct {
			Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
		}
		if err := decode(data, &file); err == nil {
			return file.Publishers, nil
		}
	}
	return nil, errors.New("publishers file format not recognized (expected YAML or JSON)")
}

// IsEnabled reports whether the sink should receive events. Entries are enabled unless set to false.
func (c PublisherConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c *PublisherConfig) normalize() {
	c.ID = strings.TrimSpace(c.ID)
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))
	if c.Queue != nil {
		c.Queue.normalize()
	}
	if c.HTTP != nil {
		c.HTTP.normalize()
	}
}

func (q *QueuePublisherConfig) normalize() {
	q.Provider = strings.ToLower(strings.TrimSpace(q.Provider))
	if a := q.AWS; a != nil {
		trimAll(&a.QueueURL, &a.Region, &a.AccessKeyID, &a.SecretAccessKey)
	}
	if s := q.SNS; s != nil {
		trimAll(&s.TopicARN, &s.Region, &s.AccessKeyID, &s.SecretAccessKey)
	}
	if g := q.GCP; g != nil {
		trimAll(&g.ProjectID, &g.Topic, &g.CredentialsFile)
	}
}

func (h *HTTPPublisherConfig) normalize() {
	h.URL = strings.TrimSpace(h.URL)
	h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
	if h.Method == "" {
		h.Method = httpDefaultMethod
	}
	if h.TimeoutSeconds <= 0 {
		h.TimeoutSeconds = httpDefaultTimeoutSeconds
	}

	headers := make(map[string]string, len(h.Headers))
	for k, v := range h.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			headers[k] = v
		}
	}
	h.Headers = headers
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func (c PublisherConfig) validate() error {
	if c.ID == "" {
		return errors.New("id is required")
	}

	var err error
	switch c.Type {
	case "":
		err = errors.New("type is required")
	case TypeHTTP:
		if c.HTTP == nil {
			err = errors.New("http config required")
		} else {
			err = requireFields("http.url", c.HTTP.URL)
		}
	case TypeQueue:
		if c.Queue == nil {
			err = errors.New("queue config required")
		} else {
			err = c.Queue.validate()
		}
	default:
		err = fmt.Errorf("type %q not supported", c.Type)
	}
	if err != nil {
		return fmt.Errorf("publisher %q: %w", c.ID, err)
	}
	return nil
}

func (q *QueuePublisherConfig) validate() error {
	switch q.Provider {
	case QueueProviderAWSSQS:
		if q.AWS == nil {
			return errors.New("queue.aws config required")
		}
		return requireFields(
			"aws.uri", q.AWS.QueueURL,
			"aws.region", q.AWS.Region,
			"aws.access_key_id", q.AWS.AccessKeyID,
			"aws.secret_access_key", q.AWS.SecretAccessKey,
		)
	case QueueProviderAWSSNS:
		if q.SNS == nil {
			return errors.New("queue.sns config required")
		}
		return requireFields(
			"sns.topic_arn", q.SNS.TopicARN,
			"sns.region", q.SNS.Region,
			"sns.access_key_id", q.SNS.AccessKeyID,
			"sns.secret_access_key", q.SNS.SecretAccessKey,
		)
	case QueueProviderGCP:
		if q.GCP == nil {
			return errors.New("queue.gcp config required")
		}
		return requireFields("gcp.project_id", q.GCP.ProjectID, "gcp.topic", q.GCP.Topic)
	default:
		return fmt.Errorf("queue provider %q not supported", q.Provider)
	}
}

// requireFields takes key, value pairs and reports the first empty value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%s is required", pairs[i])
		}
	}
	return nil
}

package publishers

import (
	"context"
	"fmt"
	"strings"
)

// Builder creates a Publisher from a config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Factory turns publisher configs into live publishers, keyed by publisher type.
// It is populated once at start-up and read-only afterwards.
type Factory struct {
	builders map[string]Builder
}

// NewFactory returns a factory for the given type to builder mapping.
func NewFactory(builders map[string]Builder) *Factory {
	f := &Factory{builders: make(map[string]Builder, len(builders))}
	for typ, b := range builders {
		typ = strings.ToLower(strings.TrimSpace(typ))
		if typ == "" || b == nil {
			continue
		}
		f.builders[typ] = b
	}
	return f
}

// DefaultFactory knows the http and queue sinks.
func DefaultFactory() *Factory {
	return NewFactory(map[string]Builder{
		TypeHTTP:  newHTTPPublisher,
		TypeQueue: newQueuePublisher,
	})
}

// Build instantiates one publisher per config, in order.
// Disabled entries are skipped; the first failure aborts the whole build.
func (f *Factory) Build(ctx context.Context, cfgs []PublisherConfig, log Logger) ([]Publisher, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log = ensureLogger(log)

	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		if !cfg.IsEnabled() {
			continue
		}
		builder, ok := f.builders[strings.ToLower(cfg.Type)]
		if !ok {
			return nil, fmt.Errorf("publisher %q: no builder for type %q", cfg.ID, cfg.Type)
		}
		pub, err := builder(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("publisher %q: %w", cfg.ID, err)
		}
		pubs = append(pubs, pub)
	}

	log.DebugObj("publishers built", "publishers_built", map[string]any{
		"count": len(pubs),
	})
	return pubs, nil
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package answerit answers natural-language queries from live web content.
//
// A query flows through a strictly linear pipeline: search aggregation,
// per-source content extraction, context assembly, and answer generation.
// No state survives a request; every query builds and discards its own
// retrieval session.
package answerit

import (
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/ai/openai"
	"github.com/poiesic/answerit/answer"
	"github.com/poiesic/answerit/extract"
	"github.com/poiesic/answerit/websearch"
)

// System wires the pipeline components together and owns their lifecycle.
type System struct {
	aggregator *websearch.Aggregator
	extractor  *extract.Extractor
	answerer   *answer.Answerer
	provider   ai.AIProvider
	fetchPool  *ants.Pool
	logger     *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig    *ai.Config
	provider    ai.AIProvider
	searchOpts  []websearch.Option
	extractOpts []extract.Option
	poolSize    int
}

// WithAIConfig sets the configuration used to build the AI provider.
// Ignored when WithAIProvider is also given.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider injects a preconstructed AI provider instead of building
// one from configuration. Primarily used by tests.
func WithAIProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithSearchOptions passes options through to the search aggregator.
func WithSearchOptions(opts ...websearch.Option) SystemOption {
	return func(o *systemOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithExtractorOptions passes options through to the content extractor.
func WithExtractorOptions(opts ...extract.Option) SystemOption {
	return func(o *systemOptions) {
		o.extractOpts = append(o.extractOpts, opts...)
	}
}

// WithFetchPoolSize sets the worker pool size for concurrent page fetches.
// Default is websearch.MaxResults, one worker per possible source.
func WithFetchPoolSize(size int) SystemOption {
	return func(o *systemOptions) {
		if size > 0 {
			o.poolSize = size
		}
	}
}

// NewSystem creates a fully wired query pipeline.
// The search API key is required; everything else has defaults.
func NewSystem(searchAPIKey string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
		poolSize: websearch.MaxResults,
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		p, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	aggregator, err := websearch.NewAggregator(searchAPIKey, options.searchOpts...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	extractor, err := extract.NewExtractor(options.extractOpts...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	answerer, err := answer.NewAnswerer(provider)
	if err != nil {
		provider.Close()
		return nil, err
	}

	fetchPool, err := ants.NewPool(options.poolSize)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &System{
		aggregator: aggregator,
		extractor:  extractor,
		answerer:   answerer,
		provider:   provider,
		fetchPool:  fetchPool,
		logger:     slog.Default().With("component", "system"),
	}, nil
}

// Close releases the fetch pool and the AI provider.
// The system should not be used after calling Close.
func (s *System) Close() error {
	if s.fetchPool != nil {
		s.fetchPool.Release()
	}
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}

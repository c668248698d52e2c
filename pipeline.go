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


package answerit

import (
	"context"
	"sync"

	"github.com/poiesic/answerit/answer"
	"github.com/poiesic/answerit/core"
)

// Canned answers for degraded pipeline outcomes. These are successful
// responses, not errors: total external failure still yields an
// explanatory answer for the caller.
const (
	// NoSourcesAnswer is returned when search aggregation found nothing.
	NoSourcesAnswer = "I couldn't find any relevant sources for this query."

	// NoContentAnswer is returned when sources were found but none of them
	// yielded extractable content.
	NoContentAnswer = "I couldn't extract meaningful content from the sources."
)

// Query answers a single query. See QueryWithMonitor.
func (s *System) Query(ctx context.Context, query string) (*core.AnswerResult, error) {
	return s.QueryWithMonitor(ctx, query, nil)
}

// QueryWithMonitor runs the full pipeline for one query: search aggregation,
// per-source content extraction, context assembly, and answer generation.
// The monitor receives callbacks at each stage.
//
// The returned error is either core.ErrEmptyQuery (invalid input, no
// external call was made) or an unexpected failure such as context
// cancellation. Partial and total external failures are not errors; they
// degrade to canned answers per the endpoint contract.
func (s *System) QueryWithMonitor(ctx context.Context, query string, monitor QueryMonitor) (*core.AnswerResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	monitor.Start(query)

	// 1. Aggregate candidate sources
	s.logger.Info("searching for query", "query", query)
	results := s.aggregator.Search(ctx, query)
	monitor.AfterSearch(results)

	if len(results) == 0 {
		return &core.AnswerResult{Answer: NoSourcesAnswer, Sources: []string{}}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Extract content from every source
	s.logger.Info("fetching source contents", "sources", len(results))
	contents := s.fetchAll(ctx, results, monitor)

	// Sources always reflect the searched URLs, whether or not their
	// extraction produced anything.
	sources := make([]string, len(results))
	for i, result := range results {
		sources[i] = result.URL
	}

	// 3. Assemble the query context
	contextText := answer.JoinContext(contents)
	monitor.AfterAssemble(len(contextText))

	if contextText == "" {
		return &core.AnswerResult{Answer: NoContentAnswer, Sources: sources}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Generate the answer
	s.logger.Info("generating answer", "context_length", len(contextText))
	answerText := s.answerer.Answer(ctx, contextText, query)

	result := &core.AnswerResult{Answer: answerText, Sources: sources}
	monitor.Finish(result)
	return result, nil
}

// fetchAll extracts content from every source concurrently on the fetch
// pool. Results land in an index-addressed slice so assembly order always
// matches search order, regardless of fetch completion order.
func (s *System) fetchAll(ctx context.Context, results []core.SearchResult, monitor QueryMonitor) []string {
	contents := make([]string, len(results))

	var wg sync.WaitGroup
	for i, result := range results {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			contents[i] = s.extractor.Fetch(ctx, result.URL)
			monitor.AfterFetch(result.URL, len(contents[i]))
		}
		if err := s.fetchPool.Submit(task); err != nil {
			// Pool unavailable: fall back to fetching on this goroutine
			task()
		}
	}
	wg.Wait()

	return contents
}

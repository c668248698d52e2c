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


// Package websearch aggregates web search results for a query.
//
// The aggregator issues independent requests for three fixed search kinds
// (general web, news, image-context) against a serper-compatible provider,
// merges the results in kind order, deduplicates them by exact URL, and
// caps the merged list at MaxResults unique entries.
//
// A kind whose request fails contributes nothing; the remaining kinds are
// unaffected. An empty result list is a valid outcome meaning "no sources",
// never an error.
package websearch

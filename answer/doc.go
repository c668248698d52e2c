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


// Package answer turns one query's gathered web context into a
// user-presentable answer.
//
// For each call a short-lived conversational session is built: the context
// is split into overlapping chunks, the chunks are embedded and indexed in
// an in-memory similarity index, and the most relevant passages are handed
// to the hosted model together with a fixed instructional prompt. The
// session, its index, and its history buffer live only for the duration of
// that call; nothing is shared between requests.
//
// Answer never fails. Model errors, embedding errors, and empty model
// output all degrade to fixed fallback strings, and a post-filter replaces
// near-empty or hedging answers with a fixed explanation.
package answer

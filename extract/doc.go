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


// Package extract fetches web pages and turns them into bounded plain-text
// excerpts.
//
// Extraction applies a ranked fallback of heuristics to the parsed HTML:
// content-container elements first, then long paragraph and heading blocks,
// then the whole document's visible text. The first strategy whose output
// clears a minimum usable length wins, and its output is truncated to
// MaxContentLength.
//
// Fetch never fails. Denylisted hosts, unreachable pages, non-200 responses,
// unparseable bodies, and content-free documents all collapse to the empty
// string, which downstream code treats as "no usable content" rather than
// an error.
package extract

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


// Package openai implements the ai service interfaces using OpenAI-compatible
// APIs via langchaingo.
//
// The package provides production implementations of:
//
//   - ai.Embedder: text embeddings through the /embeddings endpoint
//   - ai.AnswerGenerator: answer generation through the chat completions endpoint
//   - ai.AIProvider: aggregation of the two with shared configuration
//
// Both services work against any OpenAI-compatible server (OpenAI itself,
// Ollama, LocalAI, vLLM, etc.); the host, model, and credential come from
// ai.Config.
package openai

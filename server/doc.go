// Package server exposes the question answering pipeline over HTTP.
//
// POST /query accepts {"query": string} and responds with the answer and
// the list of source URLs. GET /api/status reports liveness.
package server

package answerit

import "github.com/poiesic/answerit/core"

// QueryMonitor provides hooks to observe the query pipeline.
// Implement this interface to track intermediate steps and results while a
// query is processed.
type QueryMonitor interface {
	Start(query string)
	AfterSearch(results []core.SearchResult)
	// AfterFetch may be invoked concurrently, once per searched URL.
	AfterFetch(url string, contentLength int)
	AfterAssemble(contextLength int)
	Finish(result *core.AnswerResult)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterSearch(_ []core.SearchResult) {}
func (n *noopMonitor) AfterFetch(_ string, _ int)        {}
func (n *noopMonitor) AfterAssemble(_ int)               {}
func (n *noopMonitor) Finish(_ *core.AnswerResult)       {}

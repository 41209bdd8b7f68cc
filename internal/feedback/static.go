package feedback

import "context"

// StaticProvider returns the same feedback text for every request. It
// backs zero-config runs where no remote endpoint is configured.
type StaticProvider struct {
	Text string
}

// Feedback returns the fixed text
func (p *StaticProvider) Feedback(ctx context.Context, req Request) (string, error) {
	return p.Text, nil
}

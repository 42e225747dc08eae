package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
)

// importProgress is the sink the import service reports through.
var importProgress = &progressPrinter{}

// progressPrinter renders import progress lines. The writer defaults to
// stderr so progress never pollutes piped output.
type progressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

var _ driven.ProgressSink = (*progressPrinter)(nil)

// SetOutput redirects progress rendering, mainly for tests.
func (p *progressPrinter) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
}

// Notify implements driven.ProgressSink.
func (p *progressPrinter) Notify(ev driven.ImportProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.out
	if out == nil {
		out = os.Stderr
	}

	switch ev.Phase {
	case driven.PhaseReading:
		fmt.Fprintf(out, "[%d/%d] %s\n", ev.Current, ev.Total, ev.File)
	case driven.PhaseEmbedding:
		fmt.Fprintf(out, "[%d/%d] %s: embedding %d/%d\n",
			ev.Current, ev.Total, ev.File, ev.Passage, ev.PassageCount)
	case driven.PhaseDone:
		fmt.Fprintf(out, "Processed %d file(s).\n", ev.Total)
	}
}

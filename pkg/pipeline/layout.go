package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/observability"
)

// layoutEntry is the cached form of a settled document. Unlike the persisted
// form it keeps live edge state and the synthetic texture rows.
type layoutEntry struct {
	Document *hypergraph.Document `json:"document"`
	Warnings []string             `json:"warnings,omitempty"`
}

// Layout loads raw into a headless engine and returns the settled
// document. The result matches what an interactive host sees after load.
func Layout(ctx context.Context, raw []byte, opts Options) (*hypergraph.Document, []string, error) {
	opts.SetDefaults()
	start := time.Now()

	e := engine.New(engine.NopHost{}, opts.EngineOptions())
	warnings, err := e.Load(raw)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, "", 0, 0, 0, time.Since(start), err)
		return nil, nil, err
	}
	d, err := e.Document()
	if err != nil {
		return nil, nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, d.Name, d.Len(), len(d.Edges), len(warnings), time.Since(start), nil)

	parents := 0
	d.Walk(func(v *hypergraph.Vertex) {
		if v.HasChildren() {
			parents++
		}
	})
	observability.Pipeline().OnLayoutComplete(ctx, d.Name, parents, time.Since(start))

	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return d, out, nil
}

func encodeLayout(d *hypergraph.Document, warnings []string) ([]byte, error) {
	return json.Marshal(layoutEntry{Document: d, Warnings: warnings})
}

func decodeLayout(data []byte) (*hypergraph.Document, []string, error) {
	var entry layoutEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, nil, err
	}
	if entry.Document == nil {
		return nil, nil, errEmptyEntry
	}
	entry.Document.Reindex()
	return entry.Document, entry.Warnings, nil
}

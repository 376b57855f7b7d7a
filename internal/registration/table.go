package registration

import (
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/platform/claude"
	"github.com/thoreinstein/workspace/internal/platform/codex"
	"github.com/thoreinstein/workspace/internal/platform/gemini"
)

// NewTable returns the dispatch table of every supported client.
func NewTable() *platform.Registry {
	r := platform.NewRegistry()
	for kind, f := range map[platform.Kind]platform.Factory{
		platform.KindClaudeCode: store(claude.New),
		platform.KindCodex:      store(codex.New),
		platform.KindGemini:     store(gemini.New),
	} {
		if err := r.Register(kind, f); err != nil {
			panic(err)
		}
	}
	return r
}

// store adapts a constructor returning a concrete store so a failed
// construction yields a nil interface rather than a typed nil.
func store[S platform.Store](open func(platform.Options) (S, error)) platform.Factory {
	return func(opts platform.Options) (platform.Store, error) {
		s, err := open(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

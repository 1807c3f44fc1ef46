package gallery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/manifest"
	"finitefield.org/glb-gallery/internal/platform/requestctx"
)

// State is everything a front-end needs after initialization. Registry and Report are shared
// read-only; Viewer, Notice and Feedback belong to a single interactive front-end.
type State struct {
	Registry *Registry
	Source   string
	Report   manifest.Report
	LoadErr  error
	Viewer   *Viewer
	Notice   *Notice
	Feedback *CopyFeedback
}

// Option customises Initialize.
type Option func(*options)

type options struct {
	kind   string
	logger *zap.Logger
}

// WithKind sets the asset kind given to every manifest entry.
func WithKind(kind string) Option {
	return func(o *options) {
		if kind != "" {
			o.kind = kind
		}
	}
}

// WithLogger overrides the logger taken from ctx.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Initialize loads the manifest, renders one card per entry and opens the notice. Load
// failures and panics are logged and leave an empty gallery; Initialize never fails.
func Initialize(ctx context.Context, src manifest.Source, opts ...Option) *State {
	o := options{kind: string(KindGLB), logger: requestctx.Logger(ctx)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	state := &State{
		Registry: NewRegistry(o.logger),
		Viewer:   &Viewer{},
		Notice:   &Notice{},
		Feedback: NewCopyFeedback(),
	}
	if src != nil {
		state.Source = src.String()
	}

	state.LoadErr = populate(ctx, state, src, o)
	if state.LoadErr != nil {
		o.logger.Error("gallery initialization incomplete",
			zap.String("source", state.Source),
			zap.Error(state.LoadErr),
		)
	} else {
		o.logger.Info("gallery initialized",
			zap.String("source", state.Source),
			zap.Int("cards", state.Registry.Len()),
			zap.Int("skipped_lines", state.Report.Skipped),
		)
	}

	state.Notice.ShowOnce()
	return state
}

func populate(ctx context.Context, state *State, src manifest.Source, o options) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("gallery: initialization panic: %v", rec)
		}
	}()

	m, err := manifest.Load(ctx, src)
	state.Report = m.Report
	if err != nil {
		return err
	}
	for _, entry := range m.Entries {
		// refused kinds are logged by Render
		_, _ = state.Registry.Render(entry, o.kind)
	}
	return nil
}

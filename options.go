package texel

// Option configures an Editor during creation.
//
// Example:
//
//	// Defaults: 16x16 grid, PNG snapshots, 15 undo steps
//	ed, err := texel.NewEditor()
//
//	// Larger grid with in-memory snapshots
//	ed, err := texel.NewEditor(texel.WithSize(64), texel.WithCodec(texel.RawCodec{}))
type Option func(*options)

// options holds optional configuration for Editor creation.
type options struct {
	size            int
	color           Color
	tool            Tool
	codec           SurfaceCodec
	historyCapacity int
	baseDisplaySize int
	observers       []func(Event)
}

// defaultOptions returns the default editor options.
func defaultOptions() options {
	return options{
		size:            DefaultSize,
		color:           DefaultColor,
		tool:            Brush,
		codec:           nil, // a cached PNG codec is created if nil
		historyCapacity: DefaultHistoryCapacity,
		baseDisplaySize: DefaultBaseDisplaySize,
	}
}

// WithSize sets the initial grid edge length. NewEditor fails with
// ErrUnsupportedSize unless n is one of SupportedSizes.
func WithSize(n int) Option {
	return func(o *options) {
		o.size = n
	}
}

// WithColor sets the initial brush colour.
func WithColor(c Color) Option {
	return func(o *options) {
		o.color = c
	}
}

// WithTool sets the initially active tool.
func WithTool(t Tool) Option {
	return func(o *options) {
		o.tool = t
	}
}

// WithCodec injects the snapshot codec. Use this to keep history logic
// testable without image encoding, or to share a decode cache.
func WithCodec(c SurfaceCodec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithHistoryCapacity overrides the number of retained undo snapshots.
func WithHistoryCapacity(n int) Option {
	return func(o *options) {
		o.historyCapacity = n
	}
}

// WithBaseDisplaySize sets the on-screen edge length at 100% zoom.
func WithBaseDisplaySize(px int) Option {
	return func(o *options) {
		o.baseDisplaySize = px
	}
}

// WithObserver registers a callback invoked after every state change.
// Front-ends use it to schedule a redraw. May be given more than once.
func WithObserver(fn func(Event)) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

package cbor

import "github.com/go-logr/logr"

// options holds the construction-time configuration shared by Decode and
// Encode. There is no file, environment, or flag configuration surface: the
// only knobs are these functional options.
type options struct {
	logger      logr.Logger
	linkFactory LinkFactory
	atjson      bool
}

// Option configures a Decode or Encode call.
type Option func(*options)

// WithLogger injects a structured logger. Decode and Encode never log on the
// happy path; a configured logger only receives a single V(1) trace carrying
// the failing error (and, for Decode, the byte offset it failed at)
// immediately before an error is returned. The default is logr.Discard.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLinkFactory supplies the callback Decode uses to turn the raw bytes of
// a tag-42 item into a caller-owned Link. Required in non-atjson mode if the
// input can contain links; ignored in atjson mode.
func WithLinkFactory(f LinkFactory) Option {
	return func(o *options) { o.linkFactory = f }
}

// WithAtjson switches between strict binary DAG-CBOR (the default) and the
// atjson mirror, in which byte strings and links are wrapped in single-key
// maps ({"$bytes": ...}, {"$link": ...}).
func WithAtjson(enabled bool) Option {
	return func(o *options) { o.atjson = enabled }
}

func newOptions(opts []Option) options {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package quanta

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures the process-wide observability hooks.
type Option func(*options)

// WithLogger sets the logger used by every quanta package.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector used by every quanta package.
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// Configure applies opts. Unset options restore their defaults.
func Configure(opts ...Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	SetLogger(o.logger)
	SetMetricsCollector(o.metricsCollector)
}

package dfkernel

import "time"

// config holds Scheduler construction options, resolved by the functional
// Option values passed to NewScheduler, following the event loop's own
// options.go idiom.
type config struct {
	logger *Logger

	taskBacklogCap int
	taskRateWindow time.Duration
}

// Option configures a Scheduler at construction time.
type Option func(*config)

// WithLogger sets the Logger used for scheduler-wide diagnostics. The
// default is a disabled logger.
func WithLogger(l *Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTaskBacklogCap sets the maximum number of in-flight tasks the async
// task bridge (§4.6) admits before RequestTask starts returning
// ErrTaskBridgeOverloaded. The default is 1024.
func WithTaskBacklogCap(n int) Option {
	return func(c *config) { c.taskBacklogCap = n }
}

// WithTaskRateWindow sets the sliding window duration used by the task
// bridge's backpressure limiter. The default is 1 second.
func WithTaskRateWindow(d time.Duration) Option {
	return func(c *config) { c.taskRateWindow = d }
}

func defaultConfig() config {
	return config{
		logger:         NewLogger(nil),
		taskBacklogCap: 1024,
		taskRateWindow: time.Second,
	}
}

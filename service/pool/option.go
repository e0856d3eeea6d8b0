package pool

// Option configures a Pool
type Option func(*Pool)

// WithConfig sets the pool configuration
func WithConfig(config Config) Option {
	return func(p *Pool) {
		p.config = config
	}
}

// WithCapacity sets the total capacity in MB
func WithCapacity(capacityMB int) Option {
	return func(p *Pool) {
		p.config.CapacityMB = capacityMB
	}
}

// WithRejectOversized controls whether requests above total capacity are
// rejected or queued forever.
func WithRejectOversized(reject bool) Option {
	return func(p *Pool) {
		p.config.RejectOversized = reject
	}
}

// WithReleaseOnInterrupt controls whether an interrupted process returns its
// memory.
func WithReleaseOnInterrupt(release bool) Option {
	return func(p *Pool) {
		p.config.ReleaseOnInterrupt = release
	}
}

// WithLauncher sets the component starting admitted processes
func WithLauncher(launcher Launcher) Option {
	return func(p *Pool) {
		p.launcher = launcher
	}
}

// WithObserver registers observers notified after every state change
func WithObserver(observers ...Observer) Option {
	return func(p *Pool) {
		p.observers = append(p.observers, observers...)
	}
}

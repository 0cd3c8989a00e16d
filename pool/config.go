package pool

// Config carries the pool's tunable behavior. It is a plain value type;
// callers may copy it, mutate the copy, and pass it to NewPool without
// affecting other pools. See SPEC_FULL.md §4.3 for the effect of each
// field.
type Config struct {
	// MaxTotal bounds the number of resources the pool will admit.
	// Negative means unbounded.
	MaxTotal int

	// MaxIdle bounds the idle deque's occupancy at return time; returnees
	// in excess of this are destroyed instead of enqueued. Negative
	// means unbounded.
	MaxIdle int

	// MinIdle is the replenishment floor maintained by the maintenance
	// scheduler.
	MinIdle int

	// BlockWhenExhausted selects the admission-control protocol: block
	// up to MaxWaitMillis (true) or fail fast (false).
	BlockWhenExhausted bool

	// MaxWaitMillis bounds a blocking borrow. Negative means wait
	// forever.
	MaxWaitMillis int64

	// Lifo selects the idle-queue discipline: true for LIFO (head),
	// false for FIFO (tail), applied symmetrically to both insertion and
	// draining.
	Lifo bool

	// TestOnBorrow runs factory validation before handing a resource out.
	TestOnBorrow bool

	// TestOnReturn runs factory validation before accepting a returned
	// resource.
	TestOnReturn bool

	// TestWhileIdle has the maintenance evictor validate idle resources
	// it decides not to evict on idle-time grounds.
	TestWhileIdle bool

	// TimeBetweenEvictionRunsMillis is the maintenance period. Less than
	// or equal to zero disables the maintenance scheduler.
	TimeBetweenEvictionRunsMillis int64

	// NumTestsPerEvictionRun bounds how many idle Slots a single
	// maintenance run examines. A negative value n means
	// ceil(idleSize / |n|).
	NumTestsPerEvictionRun int

	// MinEvictableIdleTimeMillis is the unconditional idle-time eviction
	// threshold. Less than or equal to zero disables it.
	MinEvictableIdleTimeMillis int64

	// SoftMinEvictableIdleTimeMillis is a second, usually shorter,
	// idle-time threshold applied only while idleSize > MinIdle. Less
	// than or equal to zero disables it.
	SoftMinEvictableIdleTimeMillis int64

	// Logger receives the swallowed-exception logging calls described in
	// SPEC_FULL.md §4.8. Nil is equivalent to a no-op logger.
	Logger Logger
}

// DefaultConfig returns the option defaults listed in SPEC_FULL.md §4.3.
func DefaultConfig() *Config {
	return &Config{
		MaxTotal:                       8,
		MaxIdle:                        8,
		MinIdle:                        0,
		BlockWhenExhausted:             true,
		MaxWaitMillis:                  -1,
		Lifo:                           true,
		TestOnBorrow:                   false,
		TestOnReturn:                   false,
		TestWhileIdle:                  false,
		TimeBetweenEvictionRunsMillis:  -1,
		NumTestsPerEvictionRun:         3,
		MinEvictableIdleTimeMillis:     30 * 60 * 1000,
		SoftMinEvictableIdleTimeMillis: -1,
	}
}

// Clone returns a shallow copy, satisfying the "cloneable by value"
// requirement in SPEC_FULL.md §6.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

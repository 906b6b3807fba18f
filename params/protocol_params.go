package params

const (
	MaxFutureDrift = 2 * 60 * 60 // Seconds a header time may run ahead of adjusted time.
	MedianTimeSpan = 11          // Ancestors sampled for the median time past.
	OrphanPoolSize = 10000       // Orphans held before the pool is flushed.
)

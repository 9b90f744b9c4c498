package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	AmqpURL    string
	JWTSecret  string

	// FlushIntervalSeconds drives the coalescer flush job.
	FlushIntervalSeconds int
	// EtaChangeThresholdMinutes separates near-duplicate location updates
	// from significant ones.
	EtaChangeThresholdMinutes int
	// ProximityEtaMinutes and ProximityRadiusMeters define "rider is nearby".
	ProximityEtaMinutes   int
	ProximityRadiusMeters float64
	// NotifyRepeat re-sends the proximity push on every qualifying update
	// instead of once per approach.
	NotifyRepeat bool
}

package cmd

// Config carries the environment configuration for the dispatch service.
// Escalation values come in raw from the environment and are parsed when the
// escalation policy is built.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RadiusStepsKm             string
	MaxRadiusExpansions       string
	EscalationIntervalSeconds string
}

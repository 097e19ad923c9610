package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the theater offset and scan cooldown

	"github.com/joho/godotenv" // godotenv loads a local .env file into the environment
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Durations are parsed with time.ParseDuration so
// the theater offset can be written as "-4h" and the cooldown as "1s".
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	JWTSecret     string        // secret used to sign staff access tokens
	AccessTTLMin  int           // access token time‑to‑live in minutes
	BcryptCost    int           // bcrypt cost for employee password hashing
	TheaterOffset time.Duration // fixed offset of the theater's clock from UTC
	ScanCooldown  time.Duration // dead time after a successful scan
	LogLevel      string        // debug, info, warn or error
	AdmissionLog  string        // file the admission consumer appends to
}

// DefaultTheaterOffset is UTC−4, the zone the theater's schedule is published in.
const DefaultTheaterOffset = -4 * time.Hour

// DefaultScanCooldown is how long a scan gate stays closed after emitting.
const DefaultScanCooldown = time.Second

// LoadDotEnv reads a .env file when one is present.  A missing file is not
// an error; real deployments set the variables directly.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),                                  // environment (dev/test/prod)
		Port:          must("APP_PORT"),                                 // port to bind the HTTP server
		DBUser:        must("DB_USER"),                                  // database user
		DBPass:        os.Getenv("DB_PASS"),                             // database password (empty allowed)
		DBHost:        must("DB_HOST"),                                  // database host
		DBPort:        must("DB_PORT"),                                  // database port
		DBName:        must("DB_NAME"),                                  // database name
		JWTSecret:     must("JWT_SECRET"),                               // secret used for signing JWTs
		AccessTTLMin:  mustInt("ACCESS_TOKEN_TTL_MIN"),                  // TTL for access tokens in minutes
		BcryptCost:    mustInt("BCRYPT_COST"),                           // bcrypt cost factor
		TheaterOffset: envDur("THEATER_UTC_OFFSET", DefaultTheaterOffset), // theater clock offset
		ScanCooldown:  positiveDur("SCAN_COOLDOWN", DefaultScanCooldown),  // gate cooldown
		LogLevel:      envStr("LOG_LEVEL", "info"),                      // log verbosity
		AdmissionLog:  envStr("ADMISSION_LOG", "logs/admission.log"),    // consumer output file
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// positiveDur is envDur that falls back to d for zero or negative values.
func positiveDur(key string, d time.Duration) time.Duration {
	if v := envDur(key, d); v > 0 {
		return v
	}
	return d
}

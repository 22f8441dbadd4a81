package config

import (
	"time"

	"github.com/splunk-releases/releases"
	"github.com/splunk-releases/releases/scrape"
)

const Prefix = "SPLUNKRELEASES_"

const (
	EnvPlatform = Prefix + "PLATFORM"
	EnvArch     = Prefix + "ARCH"
	EnvVersion  = Prefix + "VERSION"
	EnvFiletype = Prefix + "FILETYPE"
	EnvProduct  = Prefix + "PRODUCT"

	EnvAPIDefaultLimit = Prefix + "API_DEFAULT_LIMIT"
	EnvAPIMaxLimit     = Prefix + "API_MAX_LIMIT"
	EnvAPIPort         = Prefix + "APIPORT"
	EnvAPIRetries      = Prefix + "APIRETRIES"
	EnvHTTPTimeout     = Prefix + "HTTP_TIMEOUT"
	EnvUserAgent       = Prefix + "USER_AGENT"
	EnvSyslog          = Prefix + "SYSLOG"
	EnvDebug           = "DEBUG"
)

const DefaultAPIRetries = 5

type API struct {
	Limits releases.Limits
	// Listen port, zero picks a random port.
	Port    int
	Retries int
	Syslog  bool
}

type HTTP struct {
	Timeout   time.Duration
	UserAgent string
}

type Config struct {
	Debug bool
	API   API
	HTTP  HTTP
}

// FromEnv reads the configuration. Invalid numbers fall back to their defaults.
func FromEnv() Config {
	limits := releases.Limits{
		Default: GetEnvInt(EnvAPIDefaultLimit, releases.DefaultPageLimit),
		Max:     GetEnvInt(EnvAPIMaxLimit, releases.MaxPageLimit),
	}
	if limits.Default <= 0 {
		limits.Default = releases.DefaultPageLimit
	}
	if limits.Max <= 0 {
		limits.Max = releases.MaxPageLimit
	}
	retries := GetEnvInt(EnvAPIRetries, DefaultAPIRetries)
	if retries <= 0 {
		retries = DefaultAPIRetries
	}

	return Config{
		Debug: GetEnvBool(EnvDebug, false),
		API: API{
			Limits:  limits,
			Port:    GetEnvInt(EnvAPIPort, 0),
			Retries: retries,
			Syslog:  GetEnvBool(EnvSyslog, false),
		},
		HTTP: HTTP{
			Timeout:   GetEnvDuration(EnvHTTPTimeout, 30*time.Second),
			UserAgent: GetEnv(EnvUserAgent, scrape.DefaultUserAgent),
		},
	}
}

// Criteria returns the CLI filter defaults from the environment.
func Criteria() releases.Criteria {
	return releases.Criteria{
		releases.FieldPlatform: GetEnv(EnvPlatform, ""),
		releases.FieldArch:     GetEnv(EnvArch, ""),
		releases.FieldVersion:  GetEnv(EnvVersion, ""),
		releases.FieldFiletype: GetEnv(EnvFiletype, ""),
		releases.FieldProduct:  GetEnv(EnvProduct, ""),
	}
}

// Package config loads the service configuration from YAML files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."

	defaultSessionCookie      = "session"
	defaultSessionTTL         = 7 * 24 * time.Hour
	defaultPaymentDueDays     = 5
	defaultSubscriptionDays   = 30
	defaultMarketerVerifyAt   = 5
	defaultMerchantVerifyAt   = 3
	defaultQRCodeSize         = 256
	defaultQRCodeErrorLevel   = "M"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Session configures the cookie-based session established at login.
	Session SessionConfig `json:"session" yaml:"session"`

	// Platform configures marketplace business rules.
	Platform PlatformConfig `json:"platform" yaml:"platform"`

	// QRCode configures product share QR generation.
	QRCode QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SessionConfig defines the session cookie parameters.
type SessionConfig struct {
	Secret     string        `json:"secret" yaml:"secret"`
	CookieName string        `json:"cookieName" yaml:"cookieName"`
	TTL        time.Duration `json:"ttl" yaml:"ttl"`
	Secure     bool          `json:"secure" yaml:"secure"`
}

// PlatformConfig defines the marketplace business rules.
type PlatformConfig struct {
	// BaseURL is the public URL products are shared under.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// PaymentDueDays is the settlement window stamped on completed orders.
	PaymentDueDays int `json:"paymentDueDays" yaml:"paymentDueDays"`

	// MarketerVerifyThreshold is the completed-order count that earns a marketer the trust badge.
	MarketerVerifyThreshold int `json:"marketerVerifyThreshold" yaml:"marketerVerifyThreshold"`

	// MerchantVerifyThreshold is the completed-order count that earns a merchant the trust badge.
	MerchantVerifyThreshold int `json:"merchantVerifyThreshold" yaml:"merchantVerifyThreshold"`

	// DefaultSubscriptionDays is the expiry applied when an admin activates a
	// subscription without an explicit duration.
	DefaultSubscriptionDays int `json:"defaultSubscriptionDays" yaml:"defaultSubscriptionDays"`
}

// QRCodeConfig defines QR code generation configuration.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SESSION_COOKIENAME -> session.cookieName (not session.cookiename)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		cfg.Session.CookieName = defaultSessionCookie
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if cfg.Platform.PaymentDueDays <= 0 {
		cfg.Platform.PaymentDueDays = defaultPaymentDueDays
	}
	if cfg.Platform.DefaultSubscriptionDays <= 0 {
		cfg.Platform.DefaultSubscriptionDays = defaultSubscriptionDays
	}
	if cfg.Platform.MarketerVerifyThreshold <= 0 {
		cfg.Platform.MarketerVerifyThreshold = defaultMarketerVerifyAt
	}
	if cfg.Platform.MerchantVerifyThreshold <= 0 {
		cfg.Platform.MerchantVerifyThreshold = defaultMerchantVerifyAt
	}
	if cfg.QRCode.Size <= 0 {
		cfg.QRCode.Size = defaultQRCodeSize
	}
	if strings.TrimSpace(cfg.QRCode.ErrorCorrectionLevel) == "" {
		cfg.QRCode.ErrorCorrectionLevel = defaultQRCodeErrorLevel
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/teltrip/ocsreport/internal/types"
)

type Configuration struct {
	OCS     OCSConfig     `validate:"required"`
	Report  ReportConfig  `validate:"required"`
	Logging LoggingConfig `validate:"required"`
}

// OCSConfig configures the upstream Online Charging System endpoint. All
// operations are multiplexed through the single BaseURL with the token as a
// query parameter.
type OCSConfig struct {
	BaseURL           string        `validate:"required,url"`
	Token             string        `validate:"required"`
	RequestTimeout    time.Duration `validate:"required"`
	RetryMax          int           `validate:"gte=0"`
	RequestsPerSecond int           `validate:"gte=0"` // 0 disables rate limiting
}

// ReportConfig configures report aggregation. DataTypeCodes is the set of
// upstream usage type codes counted as data volume; the codes are tenant
// configuration, observed empirically, and cannot be hardcoded.
type ReportConfig struct {
	DefaultAccountID int64
	RangeStart       string `validate:"required"`
	MaxWindowDays    int    `validate:"required,gte=1,lte=7"`
	WorkerPoolSize   int    `validate:"required,gte=1"`
	WindowPoolSize   int    `validate:"required,gte=1"`
	DataTypeCodes    []string
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ocsreport")

	v.SetEnvPrefix("OCSREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ocs.requesttimeout", 25*time.Second)
	v.SetDefault("ocs.retrymax", 0)
	v.SetDefault("ocs.requestspersecond", 0)
	v.SetDefault("report.maxwindowdays", 7)
	v.SetDefault("report.workerpoolsize", 5)
	v.SetDefault("report.windowpoolsize", 4)
	v.SetDefault("report.datatypecodes", []string{"33"})
	v.SetDefault("logging.level", string(types.LogLevelInfo))
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := types.ParseYMD(c.Report.RangeStart); err != nil {
		return fmt.Errorf("report.rangestart must be a YYYY-MM-DD date: %w", err)
	}
	return nil
}

// RangeStartDate returns the parsed fixed aggregation start date. Validate
// guarantees it parses.
func (c ReportConfig) RangeStartDate() time.Time {
	t, _ := types.ParseYMD(c.RangeStart)
	return t
}

// GetDefaultConfig returns a default configuration for local development and
// tests. This is useful for running scripts or other non-web applications.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		OCS: OCSConfig{
			BaseURL:        "http://localhost:8080/ocs",
			Token:          "local",
			RequestTimeout: 25 * time.Second,
		},
		Report: ReportConfig{
			RangeStart:     "2025-01-01",
			MaxWindowDays:  7,
			WorkerPoolSize: 5,
			WindowPoolSize: 4,
			DataTypeCodes:  []string{"33"},
		},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
	}
}

package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"gitlab.com/railsync.net/internal/static/errs"
)

const (
	EnvHost      = "TESTRAIL_HOST"
	EnvUsername  = "TESTRAIL_USERNAME"
	EnvPassword  = "TESTRAIL_PASSWORD"
	EnvProjectID = "TESTRAIL_PROJECTID"
	EnvSuiteID   = "TESTRAIL_SUITEID"
	EnvTimeout   = "TESTRAIL_TIMEOUT_SEC"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// TestRailConfig holds the TestRail connection settings
type TestRailConfig struct {
	Host      string `validate:"required"`
	Username  string `validate:"required"`
	Password  string `validate:"required"`
	ProjectID int    `validate:"required,gt=0"`
	SuiteID   int    `validate:"gte=0"`
	Timeout   time.Duration
}

// HasConfig reports whether any TestRail variable is present at all.
// When none is, reporting is disabled rather than misconfigured.
func HasConfig(env map[string]string) bool {
	for _, key := range []string{EnvHost, EnvUsername, EnvPassword, EnvProjectID} {
		if _, ok := env[key]; ok {
			return true
		}
	}
	return false
}

// NewTestRailConfig builds and validates the TestRail settings.
func NewTestRailConfig(env map[string]string) (*TestRailConfig, error) {
	cfg := &TestRailConfig{
		Host:     strings.TrimRight(strings.TrimSpace(env[EnvHost]), "/"),
		Username: env[EnvUsername],
		Password: env[EnvPassword],
		Timeout:  time.Duration(getInt(env, EnvTimeout, 30)) * time.Second,
	}
	if v := strings.TrimSpace(env[EnvProjectID]); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, errs.Configuration("%s must be a number, got %q", EnvProjectID, v)
		}
		cfg.ProjectID = id
	}
	if v := strings.TrimSpace(env[EnvSuiteID]); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, errs.Configuration("%s must be a number, got %q", EnvSuiteID, v)
		}
		cfg.SuiteID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field by its environment variable.
func (c *TestRailConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.Configuration("%v", err)
	}
	fe := fieldErrs[0]
	name := envNames[fe.Field()]
	switch {
	case fe.Tag() == "required" && name == EnvPassword:
		return errs.Configuration("%s is required. Could be an API key.", name)
	case fe.Tag() == "required":
		return errs.Configuration("%s is required", name)
	default:
		return errs.Configuration("%s is invalid", name)
	}
}

// Masked returns a copy safe to log
func (c TestRailConfig) Masked() TestRailConfig {
	c.Password = "<masked>"
	return c
}

var envNames = map[string]string{
	"Host":      EnvHost,
	"Username":  EnvUsername,
	"Password":  EnvPassword,
	"ProjectID": EnvProjectID,
	"SuiteID":   EnvSuiteID,
}

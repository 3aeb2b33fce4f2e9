package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules. It does not
// check that secrets are present in the environment; see RequireSecrets.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}

	for caller, tier := range cfg.Entitlement.Tiers {
		if strings.TrimSpace(caller) == "" {
			return errors.New("config: entitlement.tiers contains an empty caller id")
		}
		if strings.TrimSpace(tier) == "" {
			return fmt.Errorf("config: entitlement.tiers[%s] is empty", caller)
		}
	}
	return nil
}

// RequireSecrets checks the environment for the secrets the server
// cannot start without.
func RequireSecrets(cfg *Config) error {
	if len(cfg.Auth.Secret()) == 0 {
		return fmt.Errorf("config: %s is not set", cfg.Auth.SecretEnv)
	}
	if cfg.Entitlement.Mode == "postgres" && cfg.Entitlement.DatabaseURL() == "" {
		return fmt.Errorf("config: %s is not set", cfg.Entitlement.DatabaseURLEnv)
	}
	return nil
}

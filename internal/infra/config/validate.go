// Where: cli/internal/infra/config/validate.go
// What: Semantic validation of a loaded CloudConfig.
// Why: Surface every configuration problem at once instead of failing mid-deploy.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/poruru/alicf/cli/internal/domain/function"
	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateCron reports whether expr is an accepted timing trigger expression.
func ValidateCron(expr string) error {
	if _, err := cronParser.Parse(strings.TrimSpace(expr)); err != nil {
		return fmt.Errorf("invalid cron %q: %w", expr, err)
	}
	return nil
}

// Validate checks required fields, trigger names and store settings.
// Cron expressions are checked by ValidateCron when a trigger is applied.
func Validate(cfg CloudConfig) error {
	var errs *multierror.Error
	if strings.TrimSpace(cfg.AccessKeyID) == "" {
		errs = multierror.Append(errs, fmt.Errorf("accessKeyId is required"))
	}
	if strings.TrimSpace(cfg.AccessKeySecret) == "" {
		errs = multierror.Append(errs, fmt.Errorf("accessKeySecret is required"))
	}
	if strings.TrimSpace(cfg.SpaceID) == "" {
		errs = multierror.Append(errs, fmt.Errorf("spaceId is required"))
	}

	names := make([]string, 0, len(cfg.Triggers))
	for name := range cfg.Triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if nameErr := function.ValidateName(name); nameErr != nil {
			errs = multierror.Append(errs, fmt.Errorf("trigger %q: %w", name, nameErr))
		}
	}

	switch cfg.HistoryBackend() {
	case HistoryBackendYAML:
	case HistoryBackendDynamo:
		if strings.TrimSpace(cfg.History.Table) == "" {
			errs = multierror.Append(errs, fmt.Errorf("history.table is required for the dynamodb backend"))
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown history backend %q", cfg.History.Backend))
	}

	if !cfg.Mirror.Enabled() && (cfg.Mirror.Prefix != "" || cfg.Mirror.Region != "" || cfg.Mirror.Endpoint != "") {
		errs = multierror.Append(errs, fmt.Errorf("mirror.bucket is required when mirror is configured"))
	}

	return errs.ErrorOrNil()
}

package cli

import (
	"log/slog"

	"github.com/vulpin/reopenwarn/internal/config"
	"github.com/vulpin/reopenwarn/internal/siteapi"
)

// newSiteClient builds a client for baseURL using the loaded config.
func newSiteClient(logger *slog.Logger, cfg *config.Config, baseURL string) (*siteapi.Client, error) {
	return siteapi.NewClient(logger, baseURL, siteapi.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Cookie:    cfg.Cookie,
	})
}

// boolFlag returns a pointer to value when the flag was set, nil otherwise.
func boolFlag(changed, value bool) *bool {
	if !changed {
		return nil
	}
	return &value
}

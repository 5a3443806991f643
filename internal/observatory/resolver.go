package observatory

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"TransientLoader/internal/config"
	"TransientLoader/internal/ports"
)

// ErrUnknownObservatory is returned when no configured observatory matches
// the report URL's host.
var ErrUnknownObservatory = errors.New("unknown observatory")

// Resolver maps report URLs to observatory identifiers by comparing the
// first DNS label of the URL host against the configured dnsName entries.
type Resolver struct {
	entries []config.ObservatoryConfig
}

var _ ports.ObservatoryResolver = (*Resolver)(nil)

// NewResolver keeps the configured observatory list.
func NewResolver(entries []config.ObservatoryConfig) *Resolver {
	return &Resolver{entries: entries}
}

// Resolve returns the obs_id whose dnsName shares the report host's first
// DNS label.
func (r *Resolver) Resolve(reportURL string) (string, error) {
	parsed, err := url.Parse(reportURL)
	if err != nil {
		return "", fmt.Errorf("parse report url: %w", err)
	}

	host := firstLabel(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("%w: report url %s has no host", ErrUnknownObservatory, reportURL)
	}

	for _, entry := range r.entries {
		if firstLabel(entry.DNSName) == host {
			return entry.ObsID, nil
		}
	}

	return "", fmt.Errorf("%w: no entry for host %s", ErrUnknownObservatory, host)
}

func firstLabel(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}
	return strings.Split(host, ".")[0]
}

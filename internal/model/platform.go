package model

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Platform identifies one of the supported review-hosting sites.
type Platform string

const (
	PlatformG2         Platform = "g2"
	PlatformCapterra   Platform = "capterra"
	PlatformTrustpilot Platform = "trustpilot"
)

// ErrUnsupportedPlatform marks a job URL that matches none of the supported
// platforms. The job is skipped without retry.
var ErrUnsupportedPlatform = eris.New("model: unsupported review platform")

var platformHosts = []struct {
	host     string
	platform Platform
}{
	{"g2.com", PlatformG2},
	{"capterra.com", PlatformCapterra},
	{"trustpilot.com", PlatformTrustpilot},
}

// DetectPlatform resolves a job URL to its platform once, up front.
// An unrecognized host is a first-class outcome, not a fallthrough.
func DetectPlatform(rawURL string) (Platform, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(ErrUnsupportedPlatform, "parse url %q", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	for _, ph := range platformHosts {
		if host == ph.host || strings.HasSuffix(host, "."+ph.host) {
			return ph.platform, nil
		}
	}
	return "", eris.Wrapf(ErrUnsupportedPlatform, "url %q", rawURL)
}

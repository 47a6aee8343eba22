// Package platform detects which applicant tracking system a page belongs to
// and provides the adapter that reads its application form.
package platform

import (
	"net/url"
	"strings"

	"github.com/jonathan/autofill-core/internal/selectors"
)

// DetectionRule maps a domain, and every subdomain under it, onto a platform.
type DetectionRule struct {
	Domain   string
	Platform selectors.PlatformID
}

// Matches reports whether host is the rule's domain or a subdomain of it.
// Matching stops at label boundaries, so clever.com is not lever.co's.
func (r DetectionRule) Matches(host string) bool {
	return host == r.Domain || strings.HasSuffix(host, "."+r.Domain)
}

// DetectionRules is evaluated top to bottom and the first match wins. Vendor
// hosting domains come before the vendor's corporate domain, and subdomains
// before the parents that also match them.
var DetectionRules = []DetectionRule{
	{"myworkdayjobs.com", selectors.Workday},
	{"myworkdaysite.com", selectors.Workday},
	{"job-boards.greenhouse.io", selectors.Greenhouse},
	{"boards.greenhouse.io", selectors.Greenhouse},
	{"greenhouse.io", selectors.Greenhouse},
	{"jobs.lever.co", selectors.Lever},
	{"lever.co", selectors.Lever},
	{"linkedin.com", selectors.LinkedIn},
	{"jobs.ashbyhq.com", selectors.Ashby},
	{"ashbyhq.com", selectors.Ashby},
	{"icims.com", selectors.ICIMS},
	{"smartrecruiters.com", selectors.SmartRecruiters},
	{"jobvite.com", selectors.Jobvite},
	{"workday.com", selectors.Workday},
}

// Detect identifies the platform from a page URL. Only the hostname is
// matched, so query strings and paths cannot trigger a rule. Unparseable or
// unrecognized URLs resolve to generic.
func Detect(rawURL string) selectors.PlatformID {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return selectors.Generic
	}

	host := strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")
	if host == "" {
		return selectors.Generic
	}

	for _, rule := range DetectionRules {
		if rule.Matches(host) {
			return rule.Platform
		}
	}
	return selectors.Generic
}

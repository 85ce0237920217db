package domain

import (
	"fmt"
	"strings"
)

// SiteType is the closed set of page archetypes a prototype can be rendered as.
type SiteType string

const (
	SiteLanding   SiteType = "landing"
	SiteDashboard SiteType = "dashboard"
	SiteEcommerce SiteType = "ecommerce"
	SiteBlog      SiteType = "blog"
)

// SiteTypes lists every archetype in a stable order.
var SiteTypes = []SiteType{SiteLanding, SiteDashboard, SiteEcommerce, SiteBlog}

// Valid reports whether s is one of the four archetypes.
func (s SiteType) Valid() bool {
	switch s {
	case SiteLanding, SiteDashboard, SiteEcommerce, SiteBlog:
		return true
	}
	return false
}

func (s SiteType) String() string { return string(s) }

// ParseSiteType converts raw input into a SiteType. Matching is exact after
// trimming; "Landing" is rejected just like "portfolio".
func ParseSiteType(raw string) (SiteType, error) {
	s := SiteType(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("unknown site type %q", raw)
	}
	return s, nil
}

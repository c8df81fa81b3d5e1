// Package classify guesses node kinds and target lanes from free text.
//
// Classification is an ordered list of [Matcher] values: the first matcher
// whose pattern hits wins, and [graph.KindApp] is the fallback. The list is
// plain data, so callers can prepend domain-specific rules without touching
// the layout engine, which only ever sees the resulting canonical graph.
package classify

import (
	"regexp"
	"strings"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// Matcher maps a pattern to a kind.
type Matcher struct {
	Kind    graph.Kind
	Pattern *regexp.Regexp
}

// Classifier assigns kinds by priority.
type Classifier struct {
	matchers []Matcher
	fallback graph.Kind
}

// New returns a classifier trying matchers in order.
func New(matchers ...Matcher) *Classifier {
	return &Classifier{matchers: matchers, fallback: graph.KindApp}
}

// Default returns the built-in classifier for industrial and IT
// architecture vocabulary.
func Default() *Classifier { return New(DefaultMatchers()...) }

// DefaultMatchers returns the built-in priority list. Earlier entries win.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{graph.KindDatabase, regexp.MustCompile(`(?i)\b(database|db|historian|analytics|rds|data\s*store|repository|sql|nosql|oracle|postgres|mysql|mongo|pi)\b`)},
		{graph.KindCloud, regexp.MustCompile(`(?i)\b(cloud|aws|azure|gcp|saas|paas|connect|hub|online|remote)\b`)},
		{graph.KindEdge, regexp.MustCompile(`(?i)\b(client|gateway|proxy|load\s*balancer|edge|engineering|workstation|desktop|mobile|app|frontend)\b`)},
		{graph.KindServer, regexp.MustCompile(`(?i)\b(server|backend|api|service|microservice|worker|processor|compute|vm|instance|io|rmc|lofs|cgss|rpop|lhfs)\b`)},
		{graph.KindNetwork, regexp.MustCompile(`(?i)\b(network|router|switch|firewall|dmz|vpn|safety)\b`)},
		{graph.KindStorage, regexp.MustCompile(`(?i)\b(storage|file\s*system|nas|san|s3|blob|disk|volume)\b`)},
		{graph.KindSecurity, regexp.MustCompile(`(?i)\b(security|auth|authentication|authorization|sso|ldap|active\s*directory|certificate|ssl|tls)\b`)},
		{graph.KindMonitoring, regexp.MustCompile(`(?i)\b(monitor|logging|metrics|alerts|observability|telemetry|dashboard)\b`)},
	}
}

// Matchers returns the classifier's priority list.
func (c *Classifier) Matchers() []Matcher { return c.matchers }

// Kind classifies the joined text. It returns the fallback kind when no
// matcher hits.
func (c *Classifier) Kind(text ...string) graph.Kind {
	s := strings.Join(text, " ")
	for _, m := range c.matchers {
		if m.Pattern.MatchString(s) {
			return m.Kind
		}
	}
	return c.fallback
}

// Match reports whether the matcher for kind hits s.
func (c *Classifier) Match(kind graph.Kind, s string) bool {
	for _, m := range c.matchers {
		if m.Kind == kind && m.Pattern.MatchString(s) {
			return true
		}
	}
	return false
}

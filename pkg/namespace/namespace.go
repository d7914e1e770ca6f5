// Package namespace composes account-scoped keys shared by the metric
// collaborators and the query cache.
package namespace

import (
	"regexp"
	"strconv"
	"strings"
)

const separator = ":"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_ ]{1,50}$`)

// ValidName reports whether a goal or property name is acceptable as a key
// part: letters, digits, underscores and spaces, at most 50 characters.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ForAccount builds a key of the form "account:<id>:<part>..." used to
// scope goals, properties, events and cached query results to one account.
func ForAccount(accountID int64, parts ...string) string {
	elems := make([]string, 0, len(parts)+2)
	elems = append(elems, "account", strconv.FormatInt(accountID, 10))
	elems = append(elems, parts...)
	return strings.Join(elems, separator)
}

// ForDay builds a key scoping a metric to a single calendar day,
// e.g. "mrr:day:2026-03-01".
func ForDay(metric, day string) string {
	return strings.Join([]string{metric, "day", day}, separator)
}

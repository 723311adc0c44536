package util

import (
	"net"
	"strconv"
	"strings"
)

// HasText reports whether s contains at least one non-whitespace character.
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ParseBool is a lenient boolean reader for attribute values: it returns
// true only for a case-insensitive "true" and false for everything else,
// including the empty string.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// ParseIntOr returns s as an int, or def when s is blank or not a number.
func ParseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// SplitAndTrim splits a comma separated list and drops blank entries.
func SplitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EnsurePort returns addr unchanged when it already carries a port and
// "addr:port" otherwise.
func EnsurePort(addr string, port int) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(port))
}

// StringSliceEquals reports whether a and b hold the same values in the
// same order.
func StringSliceEquals(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}

package project

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseMajor extracts the major version from an npm version spec. Specs like
// "^5.0.0", "~5.2.0", "v5", "workspace:^5.0.0" and "4.0.0-beta.1" all
// resolve; pure ranges like "workspace:*" do not.
func ParseMajor(spec string) (uint64, bool) {
	value := strings.TrimSpace(spec)
	for _, prefix := range []string{"workspace:", "file:"} {
		value = strings.TrimPrefix(value, prefix)
	}

	start := strings.IndexFunc(value, isDigit)
	if start < 0 {
		return 0, false
	}
	value = value[start:]

	if end := strings.IndexFunc(value, func(r rune) bool {
		return !isVersionRune(r)
	}); end >= 0 {
		value = value[:end]
	}

	version, err := semver.NewVersion(value)
	if err != nil {
		return 0, false
	}
	return version.Major(), true
}

// SpecSatisfies reports whether the installed version spec already covers the
// required spec. The installed spec is treated as a constraint matched
// against the minimal version the requirement admits, mirroring how package
// managers decide whether a dependency needs an upgrade.
func SpecSatisfies(installed, required string) bool {
	installedSpec := strings.TrimSpace(installed)
	requiredSpec := strings.TrimSpace(required)
	if installedSpec == "" || requiredSpec == "" {
		return false
	}
	if installedSpec == requiredSpec {
		return true
	}

	constraint, err := semver.NewConstraint(installedSpec)
	if err != nil {
		return false
	}
	minimal := minimalVersion(requiredSpec)
	if minimal == nil {
		return false
	}
	return constraint.Check(minimal)
}

// minimalVersion resolves the lowest concrete version a spec admits. Upper
// bounds contribute nothing, so they are skipped.
func minimalVersion(spec string) *semver.Version {
	tokens := strings.Fields(strings.ReplaceAll(spec, ",", " "))
	for _, token := range tokens {
		if token == "||" {
			continue
		}
		if token == "*" || token == "x" {
			return semver.New(0, 0, 0, "", "")
		}

		op := ""
		for _, candidate := range []string{">=", "<=", ">", "<", "^", "~", "=", "v"} {
			if strings.HasPrefix(token, candidate) {
				op = candidate
				token = strings.TrimPrefix(token, candidate)
				break
			}
		}
		if op == "<" || op == "<=" {
			continue
		}

		version, err := semver.NewVersion(token)
		if err != nil {
			continue
		}
		if op == ">" {
			bumped := version.IncPatch()
			return &bumped
		}
		return version
	}
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isVersionRune(r rune) bool {
	if isDigit(r) {
		return true
	}
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return r == '.' || r == '-' || r == '+'
}

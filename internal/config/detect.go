package config

import (
	"os"
	"regexp"
	"strconv"
)

var consumerCountRegex = regexp.MustCompile(`(?m)^\s*consumer_count\s*=\s*"?(\d+)"?`)

// DetectConsumerCount returns the first consumer_count assignment found in
// the given tfvars files, along with the file it came from. Unreadable files
// are skipped.
func DetectConsumerCount(paths []string) (int, string, bool) {
	for _, path := range paths {
		// #nosec G304
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if n, ok := parseConsumerCount(data); ok {
			return n, path, true
		}
	}
	return 0, "", false
}

func parseConsumerCount(data []byte) (int, bool) {
	m := consumerCountRegex.FindSubmatch(data)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

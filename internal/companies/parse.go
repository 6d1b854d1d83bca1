// Package companies parses the external company list.
//
// The list is a markdown table where each row looks like:
//
//	[Company Name](/company-profiles/company-name.md) | https://company.com | Region
//
// Headers, separator rows and blank lines are skipped.
package companies

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"jobscout/discovery-service/internal/model"
)

var namePattern = regexp.MustCompile(`^\[([^\]]+)\]`)

// ParseFile reads path and returns the companies in file order.
func ParseFile(path string) ([]model.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open company list: %w", err)
	}
	defer f.Close()

	var list []model.Company
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if c, ok := parseLine(scanner.Text()); ok {
			list = append(list, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read company list: %w", err)
	}
	return list, nil
}

// parseLine extracts one company from a table row, reporting ok=false for
// rows that are not company entries.
func parseLine(line string) (model.Company, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "---") || strings.HasPrefix(line, "Name |") {
		return model.Company{}, false
	}

	parts := strings.Split(line, " | ")
	if len(parts) < 2 {
		return model.Company{}, false
	}

	match := namePattern.FindStringSubmatch(strings.TrimSpace(parts[0]))
	if match == nil {
		return model.Company{}, false
	}

	url := strings.TrimSpace(parts[1])
	if url == "" {
		return model.Company{}, false
	}

	return model.Company{Name: match[1], URL: url}, true
}

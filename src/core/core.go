package core

import (
	"bufio"
	"os"
	"strings"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// LoadSeedURLs reads the input list: one URL per line, blank lines and
// #-comments skipped, duplicates dropped keeping the first occurrence.
// Task indexes follow the surviving input order.
func LoadSeedURLs(seedFilePath string) ([]entity.URLTask, error) {
	file, err := os.Open(seedFilePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	seen := make(map[string]struct{})
	var tasks []entity.URLTask

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		tasks = append(tasks, entity.URLTask{Index: len(tasks), Raw: line})
	}
	return tasks, scanner.Err()
}

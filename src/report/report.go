package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// WriteLists splits the results into the two plain-text URL lists consumed
// by downstream tooling: active (live or redirected) and inactive.
func WriteLists(activePath, inactivePath string, results []entity.CheckedResult) error {
	var active, inactive []string
	for _, r := range results {
		if r.Verdict.Kind.Active() {
			active = append(active, r.Task.Raw)
		} else {
			inactive = append(inactive, r.Task.Raw)
		}
	}
	if err := writeLines(activePath, active); err != nil {
		return fmt.Errorf("fail to write active list: %w", err)
	}
	if err := writeLines(inactivePath, inactive); err != nil {
		return fmt.Errorf("fail to write inactive list: %w", err)
	}
	return nil
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return nil
}

var csvHeader = []string{
	"url", "verdict", "status", "content_type", "final_url",
	"attempts", "elapsed_ms", "confidence", "detail",
	"download_path", "download_error",
}

// WriteCSV renders one row per input URL, in input order.
func WriteCSV(path string, results []entity.CheckedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		var dlPath, dlErr string
		if r.Download != nil {
			dlPath = r.Download.Path
			if !r.Download.Written() {
				dlErr = r.Download.Refusal.String()
				if r.Download.Detail != "" {
					dlErr = fmt.Sprintf("%s: %s", dlErr, r.Download.Detail)
				}
			}
		}
		row := []string{
			r.Task.Raw,
			r.Verdict.Kind.String(),
			strconv.Itoa(r.Verdict.StatusCode),
			r.Verdict.ContentType,
			r.Verdict.FinalURL,
			strconv.Itoa(r.Verdict.Attempts),
			strconv.FormatInt(r.Verdict.Elapsed.Milliseconds(), 10),
			r.Verdict.Confidence.String(),
			r.Verdict.Detail,
			dlPath,
			dlErr,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

package downloader

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
	"github.com/Iborrareddy/js-url-checker/src/util"
	"github.com/Iborrareddy/js-url-checker/src/verify"
)

type Options struct {
	Dir               string
	MaxBytes          int64
	IncludeRedirected bool // also persist live resources reached via redirects
}

// SimpleDownloader writes bodies the verifier already vouched for, with one
// final HTML sniff so a masked page can never land on disk as a .js file.
type SimpleDownloader struct {
	opts   Options
	logger *log.Logger
}

func NewSimpleDownloader(opts Options, logger *log.Logger) Downloader {
	return &SimpleDownloader{opts: opts, logger: logger}
}

func (d *SimpleDownloader) Download(task entity.URLTask, verdict entity.Verdict, body []byte) entity.DownloadOutcome {
	if !d.eligible(verdict.Kind) {
		return entity.DownloadOutcome{
			Refusal: enum.RefusalNotVerifiedJS,
			Detail:  fmt.Sprintf("verdict %s", verdict.Kind),
		}
	}
	if len(body) == 0 {
		return entity.DownloadOutcome{
			Refusal: enum.RefusalNotVerifiedJS,
			Detail:  "no body fetched",
		}
	}
	if verify.LooksLikeHTML(body) {
		return entity.DownloadOutcome{
			Refusal: enum.RefusalNotVerifiedJS,
			Detail:  "body looks like html",
		}
	}
	if d.opts.MaxBytes > 0 && int64(len(body)) > d.opts.MaxBytes {
		return entity.DownloadOutcome{
			Refusal: enum.RefusalTooLarge,
			Detail:  fmt.Sprintf("%d bytes exceeds cap %d", len(body), d.opts.MaxBytes),
		}
	}

	if err := os.MkdirAll(d.opts.Dir, 0o755); err != nil {
		return d.writeError(task, err)
	}

	name := util.FilenameFromURL(task.Raw)
	path := filepath.Join(d.opts.Dir, name)
	if _, err := os.Stat(path); err == nil {
		// same derived name from another URL: disambiguate with a url hash
		ext := filepath.Ext(name)
		name = fmt.Sprintf("%s_%s%s", name[:len(name)-len(ext)], util.ShortHash(task.Raw, 8), ext)
		path = filepath.Join(d.opts.Dir, name)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return d.writeError(task, err)
	}

	d.logger.WithField("url", task.Raw).WithField("path", path).
		WithField("bytes", len(body)).Debug("saved verified script")
	return entity.DownloadOutcome{Path: path, Size: int64(len(body))}
}

func (d *SimpleDownloader) eligible(kind enum.VerdictKind) bool {
	if kind == enum.VerdictLive {
		return true
	}
	return kind == enum.VerdictRedirected && d.opts.IncludeRedirected
}

func (d *SimpleDownloader) writeError(task entity.URLTask, err error) entity.DownloadOutcome {
	// disk trouble is reported per-file, never fatal to the run
	d.logger.WithError(err).WithField("url", task.Raw).Error("fail to write downloaded script")
	return entity.DownloadOutcome{Refusal: enum.RefusalWriteError, Detail: err.Error()}
}

package verify

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

var jsContentTypes = []string{
	"application/javascript",
	"text/javascript",
	"application/x-javascript",
	"application/ecmascript",
	"text/ecmascript",
}

var htmlSignatures = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<body"),
}

// Phrases that betray a masked error page. Only scanned when the declared
// content type is not JavaScript, so a genuine script containing one of
// these strings is never misclassified.
var errorPhrases = []string{
	"access denied",
	"403 forbidden",
	"404 not found",
	"page not found",
}

// SimpleVerifier classifies responses in two layers: headers first, body
// prefix second when headers alone are not enough.
type SimpleVerifier struct {
	strict bool
}

func NewSimpleVerifier(strict bool) Verifier {
	return &SimpleVerifier{strict: strict}
}

func (v *SimpleVerifier) Verify(a entity.ProbeAttempt) Result {
	if a.Failed() {
		return Result{Kind: enum.VerdictDead, Detail: a.ErrorKind.String()}
	}

	if a.Method == http.MethodHead &&
		(a.StatusCode == http.StatusMethodNotAllowed || a.StatusCode == http.StatusNotImplemented) {
		return Result{Kind: enum.VerdictAmbiguous, NeedsBody: true, Detail: "server rejects HEAD"}
	}

	if a.StatusCode >= 400 {
		return Result{
			Kind:       enum.VerdictDead,
			Confidence: enum.ConfidenceHeader,
			Detail:     fmt.Sprintf("http %d", a.StatusCode),
		}
	}
	if a.StatusCode >= 300 {
		// The prober follows redirects, so a 3xx here means the chain never
		// resolved within the hop limit.
		return Result{
			Kind:       enum.VerdictDead,
			Confidence: enum.ConfidenceHeader,
			Detail:     fmt.Sprintf("unresolved redirect (http %d)", a.StatusCode),
		}
	}
	if a.StatusCode < 200 {
		return Result{Kind: enum.VerdictAmbiguous, Detail: fmt.Sprintf("http %d", a.StatusCode)}
	}

	ctype := strings.ToLower(a.ContentType())
	js := looksLikeJS(ctype, a.FinalURL)

	if a.Method == http.MethodHead {
		if js {
			return Result{Kind: enum.VerdictLive, Confidence: enum.ConfidenceHeader}
		}
		return Result{
			Kind:      enum.VerdictAmbiguous,
			NeedsBody: true,
			Detail:    fmt.Sprintf("inconclusive content-type %q", ctype),
		}
	}

	if LooksLikeHTML(a.BodyPrefix) {
		detail := "html body"
		body := a.Body
		if len(body) == 0 {
			body = a.BodyPrefix
		}
		if title := HTMLTitle(body); title != "" {
			detail = title
		}
		return Result{Kind: enum.VerdictBlocked, Confidence: enum.ConfidenceBody, Detail: detail}
	}
	if !js {
		if phrase := errorPhrase(a.BodyPrefix); phrase != "" {
			return Result{Kind: enum.VerdictBlocked, Confidence: enum.ConfidenceBody, Detail: phrase}
		}
	}

	if v.strict && !js {
		if ctype == "" {
			return Result{Kind: enum.VerdictAmbiguous, Detail: "missing content-type"}
		}
		return Result{
			Kind:       enum.VerdictBlocked,
			Confidence: enum.ConfidenceHeader,
			Detail:     fmt.Sprintf("content-type %q is not javascript", ctype),
		}
	}

	if !js && len(a.BodyPrefix) == 0 {
		return Result{Kind: enum.VerdictAmbiguous, Detail: "empty body, unknown content-type"}
	}

	conf := enum.ConfidenceBody
	if len(a.BodyPrefix) == 0 {
		conf = enum.ConfidenceHeader
	} else if !js {
		conf = enum.ConfidenceHeuristic
	}
	return Result{Kind: enum.VerdictLive, Confidence: conf}
}

// looksLikeJS accepts a JavaScript content type outright; for missing or
// generic types (octet-stream, text/plain) it falls back to a .js path.
func looksLikeJS(ctype, rawURL string) bool {
	if isJSContentType(ctype) {
		return true
	}
	if ctype == "" || strings.Contains(ctype, "octet-stream") || strings.Contains(ctype, "text/plain") {
		return hasJSPath(rawURL)
	}
	return false
}

func isJSContentType(ctype string) bool {
	if ctype == "" {
		return false
	}
	for _, t := range jsContentTypes {
		if strings.Contains(ctype, t) {
			return true
		}
	}
	return strings.Contains(ctype, "javascript")
}

func hasJSPath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".js")
}

// LooksLikeHTML reports whether the body prefix starts with an HTML
// document signature. Shared with the downloader's final safety check.
func LooksLikeHTML(prefix []byte) bool {
	p := bytes.ToLower(bytes.TrimSpace(prefix))
	for _, sig := range htmlSignatures {
		if bytes.HasPrefix(p, sig) {
			return true
		}
	}
	return false
}

// HTMLTitle extracts the <title> of an HTML body, used as the human-readable
// detail for masked error pages ("404 Not Found", "Access Denied", ...).
func HTMLTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func errorPhrase(prefix []byte) string {
	p := bytes.ToLower(prefix)
	for _, phrase := range errorPhrases {
		if bytes.Contains(p, []byte(phrase)) {
			return phrase
		}
	}
	return ""
}

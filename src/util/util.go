package util

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

func ReadConfig(filePath string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // for nested structure
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := v.Unmarshal(&out); err != nil {
		return err
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w.\-]+`)

// SanitizeFilename keeps word characters, dots and dashes, and bounds the
// length so derived names stay valid on common filesystems.
func SanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "file.js"
	}
	if len(name) > 180 {
		name = name[:180]
	}
	return name
}

// FilenameFromURL derives a deterministic, collision-resistant filename for
// a downloaded script: the path basename with a .js suffix enforced, a short
// query hash appended when query parameters distinguish versions, and a URL
// hash when the path has no usable basename at all.
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Sprintf("script_%s.js", ShortHash(rawURL, 12))
	}

	base := path.Base(strings.TrimRight(u.Path, "/"))
	if base == "" || base == "." || base == "/" {
		base = fmt.Sprintf("script_%s.js", ShortHash(rawURL, 12))
	}
	if !strings.HasSuffix(strings.ToLower(base), ".js") {
		base += ".js"
	}
	if u.RawQuery != "" {
		ext := path.Ext(base)
		base = fmt.Sprintf("%s_%s%s", strings.TrimSuffix(base, ext), ShortHash(u.RawQuery, 6), ext)
	}
	return SanitizeFilename(base)
}

// ShortHash is the first n hex characters of the sha1 of s.
func ShortHash(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	h := hex.EncodeToString(sum[:])
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

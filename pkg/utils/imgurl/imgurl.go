// Package imgurl appends display transformation parameters to image URLs.
// Only URLs served from our own bucket are rewritten; third-party URLs
// pass through untouched.
package imgurl

import (
	"fmt"
	"net/url"
	"strings"
)

// Options are the responsive display parameters understood by the image
// CDN in front of the bucket.
type Options struct {
	Width   int
	Quality int
	Format  string // "webp", "jpeg"; empty keeps the original
}

// Transform appends the transformation query to rawURL when it belongs to
// hostSuffix (the bucket host). Unrecognized or unparsable URLs are
// returned unchanged.
func Transform(rawURL, hostSuffix string, opts Options) string {
	u, err := url.Parse(rawURL)
	if err != nil || hostSuffix == "" || !strings.HasSuffix(u.Host, hostSuffix) {
		return rawURL
	}

	q := u.Query()
	if opts.Width > 0 {
		q.Set("w", fmt.Sprintf("%d", opts.Width))
	}
	if opts.Quality > 0 {
		q.Set("q", fmt.Sprintf("%d", opts.Quality))
	}
	if opts.Format != "" {
		q.Set("fm", opts.Format)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

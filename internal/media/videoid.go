// Package media wraps the external yt-dlp and ffmpeg tools: canonical
// video-id extraction, caption retrieval, metadata lookup and audio
// download. Every subprocess call runs under a context timeout.
package media

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the canonical video id out of any of the URL
// shapes the platform uses: watch?v=, the youtu.be short link, and
// /shorts/ paths. Returns "" when no id can be found.
func ExtractVideoID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		// Short link: the id is the first path element.
		return firstPathElem(u.Path)
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			return firstPathElem("/" + rest)
		}
	}
	return ""
}

func firstPathElem(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}

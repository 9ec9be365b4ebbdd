package davheader

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/davkit/model"
)

// WebDAV request and response headers.
const (
	HeaderDepth       = "Depth"
	HeaderDestination = "Destination"
	HeaderOverwrite   = "Overwrite"
	HeaderIf          = "If"
	HeaderLockToken   = "Lock-Token"
	HeaderTimeout     = "Timeout"
	HeaderTranslate   = "Translate"
	HeaderDAV         = "DAV"
	HeaderAllow       = "Allow"
	HeaderContentType = "Content-Type"
	HeaderETag        = "ETag"
	HeaderLastMod     = "Last-Modified"
)

const (
	ContentTypeXML     = "application/xml; charset=utf-8"
	ContentTypeTextXML = "text/xml; charset=utf-8"
)

const (
	timeoutInfinite     = "Infinite"
	timeoutSecondPrefix = "Second-"
)

// Overwrite renders the Overwrite header value.
func Overwrite(v bool) string {
	if v {
		return "T"
	}
	return "F"
}

// IfToken renders an untagged If header list for one token. The token is
// wrapped as given, an already bracketed token ends up bracketed twice.
func IfToken(token string) string {
	return "(<" + token + ">)"
}

// TaggedIf renders one tagged list entry, `<uri> (<token>)`.
func TaggedIf(uri string, token string) string {
	return "<" + uri + "> " + IfToken(token)
}

// LockToken renders the bare coded-url form used by UNLOCK.
func LockToken(token string) string {
	return "<" + token + ">"
}

// ParseLockToken strips the coded-url brackets of a Lock-Token header.
func ParseLockToken(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "<")
	v = strings.TrimSuffix(v, ">")
	return v
}

// Timeout renders the Timeout header, ok is false when the header should
// not be sent at all.
func Timeout(t model.LockTimeout) (string, bool) {
	if t.IsServerDefault() {
		return "", false
	}
	if t.IsInfinite() {
		return timeoutInfinite, true
	}
	sec := int64(t.Duration() / time.Second)
	if sec <= 0 {
		sec = 1
	}
	return timeoutSecondPrefix + strconv.FormatInt(sec, 10), true
}

// ParseTimeout reads a Timeout value as found in a Timeout header or in an
// activelock. A comma separated list yields its first understood entry.
func ParseTimeout(v string) model.LockTimeout {
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if strings.EqualFold(item, timeoutInfinite) {
			return model.InfiniteLockTimeout
		}
		if len(item) <= len(timeoutSecondPrefix) || !strings.EqualFold(item[:len(timeoutSecondPrefix)], timeoutSecondPrefix) {
			continue
		}
		sec, err := strconv.ParseInt(item[len(timeoutSecondPrefix):], 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		if sec < 0 {
			continue
		}
		return model.LockTimeoutOf(secondsToDuration(sec))
	}
	return 0
}

// secondsToDuration saturates at the largest Duration. Second-0 reads as one
// second, the same floor Timeout applies, since a zero LockTimeout means
// server default.
func secondsToDuration(sec int64) time.Duration {
	if sec > maxTimeoutSeconds {
		sec = maxTimeoutSeconds
	}
	if sec == 0 {
		sec = 1
	}
	return time.Duration(sec) * time.Second
}

const maxTimeoutSeconds = int64(math.MaxInt64 / int64(time.Second))

// ParseStatusLine extracts the numeric code of "HTTP/1.1 200 OK". 0 is
// returned when the line can not be understood.
func ParseStatusLine(line string) int {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

// SplitList splits comma separated header values like DAV or Allow.
func SplitList(values []string) []string {
	rs := make([]string, 0, len(values))
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if len(item) == 0 {
				continue
			}
			rs = append(rs, item)
		}
	}
	return rs
}

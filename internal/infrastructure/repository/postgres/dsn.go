package postgres

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// DSN returns raw with disable_prepared_binary_result=yes appended when
// disableBinary is set and the caller did not pin a value. Keyword/value
// DSNs and unparsable URLs are returned as-is.
func DSN(raw string, disableBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disableBinary {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if q.Has(preparedBinaryParam) {
		return raw
	}
	q.Set(preparedBinaryParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// DatabaseName extracts the database from URL or keyword/value DSNs, for logs.
func DatabaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}

	for _, field := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

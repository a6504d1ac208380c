// Package pagination parses page size and cursor token query parameters.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize applies when the client does not specify one.
	DefaultPageSize = 50
	// MaxPageSize caps client-specified page sizes.
	MaxPageSize = 100
)

// Params carries validated paging inputs.
type Params struct {
	PageSize  int
	PageToken string
}

// Parse extracts pageSize and pageToken from query values.
func Parse(values url.Values) (Params, error) {
	params := Params{PageSize: DefaultPageSize}

	if raw := strings.TrimSpace(values.Get("pageSize")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Params{}, fmt.Errorf("pagination: invalid pageSize %q", raw)
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		params.PageSize = size
	}

	params.PageToken = strings.TrimSpace(values.Get("pageToken"))
	return params, nil
}

type cursor struct {
	Offset int `json:"o"`
}

// EncodeOffsetToken produces an opaque token for the given offset.
func EncodeOffsetToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	data, _ := json.Marshal(cursor{Offset: offset})
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeOffsetToken reverses EncodeOffsetToken. An empty token decodes to
// offset zero.
func DecodeOffsetToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("pagination: invalid pageToken: %w", err)
	}
	var c cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return 0, fmt.Errorf("pagination: invalid pageToken: %w", err)
	}
	if c.Offset < 0 {
		return 0, fmt.Errorf("pagination: invalid pageToken offset %d", c.Offset)
	}
	return c.Offset, nil
}

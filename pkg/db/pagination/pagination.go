// Package pagination implements cursor-based pagination for list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrInvalidPageToken = errors.New("invalid_page_token")

// Pagination carries the caller-supplied page parameters.
type Pagination struct {
	PageToken string `form:"page_token" json:"page_token"`
	PageSize  int    `form:"page_size" json:"page_size"`
}

// Limit normalizes the page size into the allowed range.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

// Cursor marks a position in a result set ordered by descending ID.
type Cursor struct {
	LastID string `json:"last_id"`
}

// EncodeCursor serializes a cursor into an opaque page token.
func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeCursor parses an opaque page token.
func DecodeCursor(token string) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidPageToken
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrInvalidPageToken
	}
	return c, nil
}

// BuildCursorPageInfo trims an over-fetched result page and derives the next
// token. Callers fetch limit+1 rows; key extracts the cursor key of a record.
func BuildCursorPageInfo[T any](items []T, pageSize int, key func(*T) string) ([]T, PageInfo) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if len(items) <= pageSize {
		return items, PageInfo{}
	}
	items = items[:pageSize]
	token, err := EncodeCursor(Cursor{LastID: key(&items[len(items)-1])})
	if err != nil {
		return items, PageInfo{HasMore: true}
	}
	return items, PageInfo{NextPageToken: token, HasMore: true}
}

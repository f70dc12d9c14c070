package storage

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/ytkg/orders/internal/domain"
)

// VisitorsKey is the fixed storage key for the visitor list.
const VisitorsKey = "bar_visitors"

const oneYearSeconds = 31536000

// DefaultAttributes are the retention attributes for the visitor blob.
func DefaultAttributes() Attributes {
	return Attributes{Path: "/", MaxAge: oneYearSeconds, SameSite: "lax"}
}

type visitorEnvelope struct {
	Version  int              `json:"version"`
	Visitors []domain.Visitor `json:"visitors"`
}

// EncodeVisitors serializes the visitor list as a URL-escaped, versioned
// JSON document. The full list is always written, never a diff.
func EncodeVisitors(visitors []domain.Visitor) string {
	if visitors == nil {
		visitors = []domain.Visitor{}
	}
	payload, _ := json.Marshal(visitorEnvelope{Version: 1, Visitors: visitors})
	return url.QueryEscape(string(payload))
}

// DecodeVisitors parses a stored blob defensively. Absent values, broken
// escaping, broken JSON and unrecognized shapes all decode to an empty
// list; a bare JSON array is accepted as the legacy pre-versioned format.
// The decoder never fails: untrusted entries are dropped, not reported.
func DecodeVisitors(raw string) []domain.Visitor {
	if raw == "" {
		return []domain.Visitor{}
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return []domain.Visitor{}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(decoded), &parsed); err != nil {
		return []domain.Visitor{}
	}

	switch value := parsed.(type) {
	case []interface{}:
		// Legacy format: a plain visitor array.
		return normalizeVisitors(value)
	case map[string]interface{}:
		if version, ok := value["version"].(float64); !ok || version != 1 {
			return []domain.Visitor{}
		}
		entries, _ := value["visitors"].([]interface{})
		return normalizeVisitors(entries)
	default:
		return []domain.Visitor{}
	}
}

// normalizeVisitors keeps record-shaped entries with non-empty trimmed id
// and name. The first occurrence of an id wins; later duplicates are
// dropped. Relative order is preserved.
func normalizeVisitors(entries []interface{}) []domain.Visitor {
	normalized := make([]domain.Visitor, 0, len(entries))
	seen := make(map[string]struct{})

	for _, entry := range entries {
		record, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		visitorID, _ := record["id"].(string)
		name, _ := record["name"].(string)
		visitorID = strings.TrimSpace(visitorID)
		name = strings.TrimSpace(name)

		if visitorID == "" || name == "" {
			continue
		}
		if _, dup := seen[visitorID]; dup {
			continue
		}

		seen[visitorID] = struct{}{}
		normalized = append(normalized, domain.Visitor{ID: visitorID, Name: name})
	}

	return normalized
}

// ReadVisitors hydrates the visitor list from the store. Store failures
// degrade to an empty list.
func ReadVisitors(ctx context.Context, store VisitorStore) []domain.Visitor {
	raw, err := store.Read(ctx, VisitorsKey)
	if err != nil {
		return []domain.Visitor{}
	}
	return DecodeVisitors(raw)
}

// WriteVisitors flushes the full visitor list through the store.
func WriteVisitors(ctx context.Context, store VisitorStore, visitors []domain.Visitor) error {
	return store.Write(ctx, VisitorsKey, EncodeVisitors(visitors), DefaultAttributes())
}

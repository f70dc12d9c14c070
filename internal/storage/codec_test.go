package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytkg/orders/internal/domain"
)

func escapeJSON(t *testing.T, value interface{}) string {
	t.Helper()
	payload, err := json.Marshal(value)
	require.NoError(t, err)
	return url.QueryEscape(string(payload))
}

func TestDecodeVisitors_EmptyValue(t *testing.T) {
	assert.Equal(t, []domain.Visitor{}, DecodeVisitors(""))
}

func TestDecodeVisitors_BrokenJSON(t *testing.T) {
	assert.Equal(t, []domain.Visitor{}, DecodeVisitors("invalid-json"))
	assert.Equal(t, []domain.Visitor{}, DecodeVisitors(url.QueryEscape("{not json")))
}

func TestDecodeVisitors_BrokenEscaping(t *testing.T) {
	assert.Equal(t, []domain.Visitor{}, DecodeVisitors("%zz"))
}

func TestDecodeVisitors_VersionedPayload(t *testing.T) {
	raw := escapeJSON(t, map[string]interface{}{
		"version": 1,
		"visitors": []map[string]string{
			{"id": "visitor-1", "name": "A卓"},
			{"id": "visitor-2", "name": "B卓"},
		},
	})

	assert.Equal(t, []domain.Visitor{
		{ID: "visitor-1", Name: "A卓"},
		{ID: "visitor-2", Name: "B卓"},
	}, DecodeVisitors(raw))
}

func TestDecodeVisitors_LegacyArrayPayload(t *testing.T) {
	raw := escapeJSON(t, []map[string]string{
		{"id": "v1", "name": "A卓"},
	})

	assert.Equal(t, []domain.Visitor{{ID: "v1", Name: "A卓"}}, DecodeVisitors(raw))
}

func TestDecodeVisitors_UnrecognizedShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
	}{
		{name: "unknown version", payload: map[string]interface{}{"version": 2, "visitors": []map[string]string{{"id": "v1", "name": "A卓"}}}},
		{name: "missing version", payload: map[string]interface{}{"visitors": []map[string]string{{"id": "v1", "name": "A卓"}}}},
		{name: "bare string", payload: "hello"},
		{name: "bare number", payload: 42},
		{name: "null", payload: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, []domain.Visitor{}, DecodeVisitors(escapeJSON(t, testCase.payload)))
		})
	}
}

func TestDecodeVisitors_NormalizationDropsUntrustedEntries(t *testing.T) {
	raw := escapeJSON(t, map[string]interface{}{
		"version": 1,
		"visitors": []interface{}{
			map[string]string{"id": "visitor-1", "name": "A卓"},
			map[string]string{"id": "", "name": "B卓"},
			map[string]string{"id": "visitor-1", "name": "重複ID"},
			map[string]string{"id": "visitor-3", "name": "   "},
			map[string]interface{}{"id": 7, "name": "数値ID"},
			"not-a-record",
		},
	})

	assert.Equal(t, []domain.Visitor{{ID: "visitor-1", Name: "A卓"}}, DecodeVisitors(raw))
}

func TestDecodeVisitors_TrimsAndPreservesOrder(t *testing.T) {
	raw := escapeJSON(t, map[string]interface{}{
		"version": 1,
		"visitors": []map[string]string{
			{"id": " visitor-2 ", "name": " B卓 "},
			{"id": "visitor-1", "name": "A卓"},
		},
	})

	assert.Equal(t, []domain.Visitor{
		{ID: "visitor-2", Name: "B卓"},
		{ID: "visitor-1", Name: "A卓"},
	}, DecodeVisitors(raw))
}

func TestEncodeVisitors_RoundTrip(t *testing.T) {
	visitors := []domain.Visitor{
		{ID: "visitor-1", Name: "A卓"},
		{ID: "visitor-2", Name: "B卓"},
	}

	assert.Equal(t, visitors, DecodeVisitors(EncodeVisitors(visitors)))
}

func TestEncodeVisitors_WritesVersionedEnvelope(t *testing.T) {
	encoded := EncodeVisitors([]domain.Visitor{{ID: "v1", Name: "A卓"}})

	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)

	var envelope struct {
		Version  int              `json:"version"`
		Visitors []domain.Visitor `json:"visitors"`
	}
	require.NoError(t, json.Unmarshal([]byte(decoded), &envelope))

	assert.Equal(t, 1, envelope.Version)
	assert.Equal(t, []domain.Visitor{{ID: "v1", Name: "A卓"}}, envelope.Visitors)
}

func TestEncodeVisitors_NilListEncodesEmptyArray(t *testing.T) {
	assert.Equal(t, []domain.Visitor{}, DecodeVisitors(EncodeVisitors(nil)))
}

type failingStore struct{}

func (failingStore) Read(ctx context.Context, key string) (string, error) {
	return "", errors.New("store unavailable")
}

func (failingStore) Write(ctx context.Context, key, value string, attrs Attributes) error {
	return errors.New("store unavailable")
}

func TestReadVisitors_StoreFailureDegradesToEmpty(t *testing.T) {
	assert.Equal(t, []domain.Visitor{}, ReadVisitors(context.Background(), failingStore{}))
}

func TestWriteThenReadVisitors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryVisitorStore()
	visitors := []domain.Visitor{{ID: "v1", Name: "A卓"}}

	require.NoError(t, WriteVisitors(ctx, store, visitors))
	assert.Equal(t, visitors, ReadVisitors(ctx, store))
}

func TestDefaultAttributes(t *testing.T) {
	attrs := DefaultAttributes()

	assert.Equal(t, "/", attrs.Path)
	assert.Equal(t, 31536000, attrs.MaxAge)
	assert.Equal(t, "lax", attrs.SameSite)
}

package httpapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	tests := []struct {
		name string
		body string

		want      payload
		wantError bool
	}{
		{
			name: "full payload",
			body: `{"title": "hello", "count": 3}`,
			want: payload{Title: "hello", Count: 3},
		},
		{
			name: "missing fields default to zero values",
			body: `{"title": "partial"}`,
			want: payload{Title: "partial"},
		},
		{
			name: "field matching is case-insensitive",
			body: `{"Title": "mixed", "COUNT": 7}`,
			want: payload{Title: "mixed", Count: 7},
		},
		{
			name: "unknown fields are ignored",
			body: `{"title": "extra", "unexpected": [1, 2]}`,
			want: payload{Title: "extra"},
		},
		{
			name:      "malformed payload",
			body:      `{"title": `,
			wantError: true,
		},
		{
			name:      "wrong root shape",
			body:      `[1, 2, 3]`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[payload]([]byte(tt.body))
			if tt.wantError {
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, len(tt.body), decodeErr.Size)
				assert.NotEmpty(t, decodeErr.Excerpt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeError_ExcerptIsBounded(t *testing.T) {
	body := []byte(`{"truncated": ` + strings.Repeat("x", 10_000))
	_, err := Decode[map[string]any](body)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, len(body), decodeErr.Size)
	assert.LessOrEqual(t, len(decodeErr.Excerpt), excerptLimit+len("..."))
}

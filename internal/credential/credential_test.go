package credential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name    string
		content *string
		want    string
		wantOK  bool
	}{
		{name: "missing file", content: nil, want: "", wantOK: false},
		{name: "empty file", content: ptr(""), want: "", wantOK: false},
		{name: "whitespace only", content: ptr("  \n\t \n"), want: "", wantOK: false},
		{name: "plain token", content: ptr("abc123"), want: "abc123", wantOK: true},
		{name: "trailing newline trimmed", content: ptr("  abc123\n"), want: "abc123", wantOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "quota_token")
			if tc.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.content), 0o600))
			}

			got, ok := Load(path)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unreadable path", func(t *testing.T) {
		_, ok := Load(t.TempDir())
		assert.False(t, ok)
	})
}

func ptr(s string) *string { return &s }

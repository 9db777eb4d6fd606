package fileurl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix, logical, want string
	}{
		{"", "/content/dam/emea/pim", "content/dam/emea/pim"},
		{"exports/", "/content/dam/emea/pim/", "exports/content/dam/emea/pim"},
		{"exports", "/", "exports"},
		{"", "/", ""},
		{"exports", "/content/../../etc", "exports/etc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectKey(tt.prefix, tt.logical), "%q + %q", tt.prefix, tt.logical)
	}
}

func TestDirKey(t *testing.T) {
	assert.Equal(t, "", DirKey("/"))
	assert.Equal(t, "exports/pim/", DirKey("exports/pim//"))
}

func TestCreatePathAndIsExist(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "database", "job.db")
	assert.False(t, IsExist(dst))

	require.NoError(t, CreatePath(dst, os.ModePerm))
	assert.True(t, IsExist(filepath.Dir(dst)))
	assert.False(t, IsExist(dst))
}

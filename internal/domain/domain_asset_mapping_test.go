package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseAssetURLMapping(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    AssetURLMapping
		wantErr bool
	}{
		{name: "empty", in: "", want: nil},
		{
			name: "two pairs",
			in:   "/content/dam/emea*https://cdn.example.com/emea|/content/dam/global*https://cdn.example.com/global",
			want: AssetURLMapping{
				{Source: "/content/dam/emea", Target: "https://cdn.example.com/emea"},
				{Source: "/content/dam/global", Target: "https://cdn.example.com/global"},
			},
		},
		{name: "trailing pipe", in: "a*b|", want: AssetURLMapping{{Source: "a", Target: "b"}}},
		{name: "missing target", in: "a*", wantErr: true},
		{name: "too many tokens", in: "a*b*c", wantErr: true},
		{name: "no separator", in: "ab", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssetURLMapping(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssetURLMapping_UnmarshalYAML(t *testing.T) {
	var legacy struct {
		Mapping AssetURLMapping `yaml:"asset-url-mapping"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`asset-url-mapping: "a*b|c*d"`), &legacy))
	assert.Equal(t, "a*b|c*d", legacy.Mapping.String())

	var list struct {
		Mapping AssetURLMapping `yaml:"asset-url-mapping"`
	}
	doc := `
asset-url-mapping:
  - source: /content/dam/emea
    target: https://cdn.example.com/emea
  - source: /content/dam/global
    target: https://cdn.example.com/global
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &list))
	require.Len(t, list.Mapping, 2)
	assert.Equal(t, "/content/dam/global", list.Mapping[1].Source)
	assert.Equal(t, "https://cdn.example.com/emea", list.Mapping.Map()["/content/dam/emea"])

	var bad struct {
		Mapping AssetURLMapping `yaml:"asset-url-mapping"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("asset-url-mapping:\n  - source: a\n"), &bad))
	assert.Error(t, yaml.Unmarshal([]byte("asset-url-mapping:\n  k: v\n"), &bad))
}

func TestFolderEntry_IsFolder(t *testing.T) {
	assert.True(t, (&FolderEntry{ResourceType: ResourceTypeFolder}).IsFolder())
	assert.True(t, (&FolderEntry{ResourceType: "sling:OrderedFolder"}).IsFolder())
	assert.True(t, (&FolderEntry{ResourceType: "nt:FOLDER"}).IsFolder())
	assert.False(t, (&FolderEntry{ResourceType: ResourceTypeAsset}).IsFolder())
	assert.False(t, (&FolderEntry{}).IsFolder())
}

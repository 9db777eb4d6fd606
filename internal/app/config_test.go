package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	c, err := ParseConfig([]byte("job: {}\n"))
	require.NoError(t, err)

	require.NotNil(t, c.Job)
	assert.True(t, c.Job.Disabled, "job stays disabled unless configured")
	assert.Equal(t, DefaultSchedulerExpression, c.Job.SchedulerExpression)
	assert.Equal(t, DefaultLanguagesListPath, c.Job.LanguagesGenericListPath)
	assert.Equal(t, 30, c.Job.NumberOfDaysPurge)
	assert.Equal(t, []string{DefaultPurgeRoot}, c.Job.DeniedPaths)
	assert.Equal(t, DefaultPurgeRoot, c.Job.PurgeRoot)
	assert.Equal(t, storage.LOCAL, c.Storage.Type)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "90d", c.Database.HistoryRetention)
	assert.Equal(t, domain.AssetURLMapping{
		{Source: "/content/dam/emea", Target: "https://assets.example.com/emea"},
	}, c.Job.AssetURLMapping)
}

func TestParseConfig_AssetURLMappingOverride(t *testing.T) {
	c, err := ParseConfig([]byte("job:\n  asset-url-mapping: /content/dam*https://cdn.example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.AssetURLMapping{{Source: "/content/dam", Target: "https://cdn.example.com"}}, c.Job.AssetURLMapping)

	c, err = ParseConfig([]byte("job:\n  asset-url-mapping: []\n"))
	require.NoError(t, err)
	assert.Empty(t, c.Job.AssetURLMapping)
}

func TestParseConfig_JobAbsent(t *testing.T) {
	for _, doc := range []string{"", "log:\n  level: debug\n", "job:\n"} {
		c, err := ParseConfig([]byte(doc))
		require.NoError(t, err)
		assert.Nil(t, c.Job, "doc %q", doc)
	}
}

func TestParseConfig_ZeroPurgeDays(t *testing.T) {
	c, err := ParseConfig([]byte("job:\n  number-of-days-purge: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, c.Job)
	assert.Equal(t, 0, c.Job.NumberOfDaysPurge)
}

func TestParseConfig_Enabled(t *testing.T) {
	doc := `
generator:
  endpoint: https://generator.internal/bin/emea-pim-csv
job:
  disabled: false
  number-of-days-purge: 7
  asset-url-mapping: "/content/dam/emea*https://cdn.example.com/emea|/content/dam*https://cdn.example.com"
  denied-paths: []
  time-zone: Europe/Rome
`
	c, err := ParseConfig([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, c.Job)
	assert.False(t, c.Job.Disabled)
	assert.Equal(t, 7, c.Job.NumberOfDaysPurge)
	assert.Empty(t, c.Job.DeniedPaths)
	assert.Equal(t, domain.AssetURLMapping{
		{Source: "/content/dam/emea", Target: "https://cdn.example.com/emea"},
		{Source: "/content/dam", Target: "https://cdn.example.com"},
	}, c.Job.AssetURLMapping)

	loc, err := c.Job.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Rome", loc.String())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad mapping":       "job:\n  asset-url-mapping: \"a*b|c\"\n",
		"negative days":     "job:\n  number-of-days-purge: -1\n",
		"bad schedule":      "job:\n  scheduler-expression: \"every day\"\n",
		"year field":        "job:\n  scheduler-expression: \"0 0 9 * * ? 2030\"\n",
		"relative root":     "job:\n  purge-root: content/dam\n",
		"bad time zone":     "job:\n  time-zone: Mars/Olympus\n",
		"missing generator": "job:\n  disabled: false\n",
		"bad storage":       "storage:\n  type: ftp\n",
		"s3 without bucket": "storage:\n  type: s3\n  region: eu-west-1\n",
		"bad log level":     "log:\n  level: loud\n",
		"bad generator url": "generator:\n  endpoint: not-a-url\n",
		"bad yaml":          "job: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_DefaultFile(t *testing.T) {
	c, path, err := LoadConfig(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	require.NotNil(t, c.Job)
	assert.True(t, c.Job.Disabled)
	assert.Len(t, c.Job.AssetURLMapping, 1)
}

func TestConfigSave(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("job:\n  number-of-days-purge: 10\n"), 0644))

	c, _, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	c.Job.NumberOfDaysPurge = 45
	c.Job.AssetURLMapping = domain.AssetURLMapping{{Source: "a", Target: "b"}}
	require.NoError(t, c.Save())

	reloaded, _, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 45, reloaded.Job.NumberOfDaysPurge)
	assert.Equal(t, c.Job.AssetURLMapping, reloaded.Job.AssetURLMapping)
	assert.True(t, reloaded.Job.Disabled)
}

func TestJobConfig_Clone(t *testing.T) {
	orig := &JobConfig{
		DeniedPaths:     []string{"/a"},
		AssetURLMapping: domain.AssetURLMapping{{Source: "s", Target: "t"}},
	}
	cp := orig.Clone()
	cp.DeniedPaths[0] = "/b"
	cp.AssetURLMapping[0].Target = "x"

	assert.Equal(t, "/a", orig.DeniedPaths[0])
	assert.Equal(t, "t", orig.AssetURLMapping[0].Target)
	assert.Nil(t, (*JobConfig)(nil).Clone())
}

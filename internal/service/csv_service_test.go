package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/AnushaPriya2003/anusha/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, handler http.HandlerFunc, mutate func(*GeneratorConfig)) CsvGenerationService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := GeneratorConfig{
		Endpoint:     srv.URL + "/bin/pim/emea-csv",
		Token:        "secret",
		Timeout:      "5s",
		VerifyOutput: true,
		ExportRoot:   testRoot,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	svc, err := NewRemoteCsvService(cfg, srv.Client(), nil)
	require.NoError(t, err)
	return svc
}

func TestRemoteCsvService_CreateEmeaPimCsv(t *testing.T) {
	var got generateRequest
	svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bin/pim/emea-csv", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, sonic.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"folder":"/content/dam/emea/pim/2024-03-15","files":["pim_en.csv","pim_de.csv"]}`))
	}, nil)

	res := &fakeResolver{entries: []domain.FolderEntry{entry("2024-03-15", domain.ResourceTypeFolder)}}
	mapping := domain.AssetURLMapping{{Source: "/content/dam", Target: "https://cdn.example.com"}}
	err := svc.CreateEmeaPimCsv(context.Background(), res, "/etc/languages/emea", []string{"/content/dam/emea/private"}, mapping)
	require.NoError(t, err)

	assert.Equal(t, "/etc/languages/emea", got.LanguagesListPath)
	assert.Equal(t, []string{"/content/dam/emea/private"}, got.DeniedPaths)
	assert.Equal(t, mapping, got.AssetURLMapping)
	assert.Equal(t, []string{testRoot}, res.listed)
}

func TestRemoteCsvService_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"languages list not found"}`))
		}, nil)
		err := svc.CreateEmeaPimCsv(context.Background(), &fakeResolver{}, "/etc/languages/emea", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.Contains(t, err.Error(), "languages list not found")
	})

	t.Run("plain text error", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}, nil)
		err := svc.CreateEmeaPimCsv(context.Background(), &fakeResolver{}, "/etc/languages/emea", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maintenance")
	})

	t.Run("error field on success status", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"folder":"/content/dam/emea/pim/2024-03-15","error":"partial export"}`))
		}, nil)
		res := &fakeResolver{entries: []domain.FolderEntry{entry("2024-03-15", domain.ResourceTypeFolder)}}
		err := svc.CreateEmeaPimCsv(context.Background(), res, "/etc/languages/emea", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "partial export")
		assert.Empty(t, res.listed)
	})

	t.Run("folder outside export root", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"folder":"/content/dam/other/2024-03-15"}`))
		}, nil)
		err := svc.CreateEmeaPimCsv(context.Background(), &fakeResolver{}, "/etc/languages/emea", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside")
	})

	t.Run("folder missing", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"folder":"/content/dam/emea/pim/2024-03-15"}`))
		}, nil)
		err := svc.CreateEmeaPimCsv(context.Background(), &fakeResolver{}, "/etc/languages/emea", nil, nil)
		require.Error(t, err)
	})

	t.Run("verification disabled", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"folder":"/content/dam/emea/pim/2024-03-15"}`))
		}, func(c *GeneratorConfig) { c.VerifyOutput = false })
		res := &fakeResolver{}
		require.NoError(t, svc.CreateEmeaPimCsv(context.Background(), res, "/etc/languages/emea", nil, nil))
		assert.Empty(t, res.listed)
	})

	t.Run("timeout", func(t *testing.T) {
		svc := newGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}, func(c *GeneratorConfig) { c.Timeout = "50ms" })
		err := svc.CreateEmeaPimCsv(context.Background(), &fakeResolver{}, "/etc/languages/emea", nil, nil)
		require.Error(t, err)
	})
}

func TestNewRemoteCsvService_Config(t *testing.T) {
	_, err := NewRemoteCsvService(GeneratorConfig{}, nil, nil)
	assert.Error(t, err)

	_, err = NewRemoteCsvService(GeneratorConfig{Endpoint: "http://localhost", Timeout: "soon"}, nil, nil)
	assert.Error(t, err)

	_, err = NewRemoteCsvService(GeneratorConfig{Endpoint: "http://localhost", Timeout: "1d"}, nil, nil)
	assert.NoError(t, err)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "empty response", snippet([]byte("  ")))
	assert.Equal(t, "short", snippet([]byte(" short\n")))

	// 255 个 ASCII 字节后跟多字节字符，截断不能落在字符中间
	long := strings.Repeat("a", maxErrorSnippet-1) + strings.Repeat("ü", 10)
	got := snippet([]byte(long))
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", maxErrorSnippet-1)+"...", got)
}

package webdav

import (
	"context"
	"errors"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/storage/object"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebdav "golang.org/x/net/webdav"
)

func newTestServer(t *testing.T) *WebDAV {
	t.Helper()
	srv := httptest.NewServer(&xwebdav.Handler{
		FileSystem: xwebdav.NewMemFS(),
		LockSystem: xwebdav.NewMemLS(),
	})
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{Endpoint: srv.URL, CustomPath: "dam"})
	require.NoError(t, err)
	return client
}

func TestWebDAV_ListAndDelete(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()
	now := time.Now()

	for _, key := range []string{
		"/content/dam/emea/pim/2024-02-10/pim.csv",
		"/content/dam/emea/pim/2024-02-20/pim.csv",
		"/content/dam/emea/pim/notes.txt",
	} {
		_, err := client.SendContent(ctx, key, []byte("data"), now)
		require.NoError(t, err)
	}

	objects, err := client.List(ctx, "/content/dam/emea/pim")
	require.NoError(t, err)

	var names []string
	dirs := map[string]bool{}
	for _, o := range objects {
		names = append(names, o.Name)
		dirs[o.Name] = o.IsDir
	}
	sort.Strings(names)
	assert.Equal(t, []string{"2024-02-10", "2024-02-20", "notes.txt"}, names)
	assert.True(t, dirs["2024-02-10"])
	assert.False(t, dirs["notes.txt"])

	require.NoError(t, client.Delete(ctx, "/content/dam/emea/pim/2024-02-10"))

	err = client.Delete(ctx, "/content/dam/emea/pim/2024-02-10")
	assert.True(t, errors.Is(err, object.ErrNotExist), "got %v", err)

	_, err = client.List(ctx, "/content/dam/missing")
	assert.True(t, errors.Is(err, object.ErrNotExist), "got %v", err)
}

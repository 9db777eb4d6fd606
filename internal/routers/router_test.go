package routers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/dao"
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/task"
	pkgapp "github.com/AnushaPriya2003/anusha/pkg/app"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type gateTask struct {
	name    string
	started chan struct{}
	release chan struct{}
}

func (g *gateTask) Name() string       { return g.name }
func (g *gateTask) Schedule() string   { return "0 0 9 1/1 * ? *" }
func (g *gateTask) IsStartupRun() bool { return false }

func (g *gateTask) Run(ctx context.Context) error {
	g.started <- struct{}{}
	<-g.release
	return nil
}

func newTestApp(t *testing.T, withDB bool, runMode string) *app.App {
	t.Helper()
	dir := t.TempDir()
	cfg, err := app.ParseConfig([]byte(fmt.Sprintf(`
server:
  run-mode: %s
storage:
  type: localfs
  save-path: %s
job:
  disabled: true
`, runMode, filepath.Join(dir, "repository"))))
	require.NoError(t, err)

	var db *gorm.DB
	if withDB {
		db, err = dao.NewDBEngine(dao.Config{Path: filepath.Join(dir, "job.db"), MaxIdleConns: 1, MaxOpenConns: 1})
		require.NoError(t, err)
	}
	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func newGateTask(name string) *gateTask {
	return &gateTask{name: name, started: make(chan struct{}, 1), release: make(chan struct{})}
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) pkgapp.Res {
	t.Helper()
	var res pkgapp.Res
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestPrivateRouter_Healthz(t *testing.T) {
	a := newTestApp(t, true, "release")
	s := task.NewScheduler(nil, time.UTC)
	require.NoError(t, s.AddTask(newGateTask("emea-pim-csv")))
	r := NewPrivateRouter(a, s)

	w := do(r, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode(t, w)
	assert.True(t, res.Status)

	body := w.Body.String()
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"database":"connected"`)
	assert.Contains(t, body, `"job":"disabled"`)
	assert.Contains(t, body, `"name":"emea-pim-csv"`)
	assert.Contains(t, body, `"schedule":"0 0 9 1/1 * ? *"`)
	assert.Equal(t, a.Version().Version, w.Header().Get("X-App-Version"))
}

func TestPrivateRouter_HealthzShuttingDown(t *testing.T) {
	a := newTestApp(t, false, "release")
	r := NewPrivateRouter(a, task.NewScheduler(nil, time.UTC))
	require.NoError(t, a.Shutdown(context.Background()))

	w := do(r, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disabled"`)
}

func TestPrivateRouter_Metrics(t *testing.T) {
	a := newTestApp(t, false, "release")
	a.Metrics.RecordRun("emea-pim-csv", "success", time.Second)
	s := task.NewScheduler(nil, time.UTC)
	require.NoError(t, s.AddTask(newGateTask("emea-pim-csv")))
	r := NewPrivateRouter(a, s)

	w := do(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, `pim_export_runs_total{result="success",task="emea-pim-csv"} 1`)

	w = do(r, http.MethodGet, "/debug/vars")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"memstats"`)
	assert.Contains(t, w.Body.String(), `"tasks":[{"name":"emea-pim-csv"`)
}

func TestPrivateRouter_NotFound(t *testing.T) {
	r := NewPrivateRouter(newTestApp(t, false, "release"), task.NewScheduler(nil, time.UTC))

	w := do(r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/tasks/emea-pim-csv/run")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPrivateRouter_RunTask(t *testing.T) {
	a := newTestApp(t, false, "release")
	s := task.NewScheduler(nil, time.UTC)
	gate := newGateTask("emea-pim-csv")
	require.NoError(t, s.AddTask(gate))
	r := NewPrivateRouter(a, s)

	w := do(r, http.MethodPost, "/tasks/missing/run")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/tasks/emea-pim-csv/run")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"trigger":"manual"`)
	<-gate.started

	w = do(r, http.MethodPost, "/tasks/emea-pim-csv/run")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodGet, "/tasks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":true`)

	close(gate.release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Start(ctx)
	require.NoError(t, s.Stop(ctx))
}

func TestPrivateRouter_History(t *testing.T) {
	a := newTestApp(t, true, "release")
	r := NewPrivateRouter(a, task.NewScheduler(nil, time.UTC))

	started := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	_, err := a.JobRunRepo.Create(context.Background(), &domain.JobRun{
		Task:       "emea-pim-csv",
		Trigger:    domain.TriggerSchedule,
		Status:     domain.RunStatusPartial,
		Error:      "iics unavailable",
		Purge:      domain.PurgeReport{Cutoff: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), Deleted: 2},
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
	})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/tasks/emea-pim-csv/history?limit=5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, `"status":"partial"`)
	assert.Contains(t, body, `"cutoff":"2024-02-14"`)
	assert.Contains(t, body, `"durationMs":90000`)

	w = do(r, http.MethodGet, "/tasks/emea-pim-csv/history?limit=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrivateRouter_HistoryDisabled(t *testing.T) {
	a := newTestApp(t, false, "release")
	r := NewPrivateRouter(a, task.NewScheduler(nil, time.UTC))

	w := do(r, http.MethodGet, "/tasks/emea-pim-csv/history")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPrivateRouter_PprofOnlyInDebug(t *testing.T) {
	release := NewPrivateRouter(newTestApp(t, false, "release"), task.NewScheduler(nil, time.UTC))
	w := do(release, http.MethodGet, DefaultPrefix+"/cmdline")
	assert.Equal(t, http.StatusNotFound, w.Code)

	debug := NewPrivateRouter(newTestApp(t, false, "debug"), task.NewScheduler(nil, time.UTC))
	w = do(debug, http.MethodGet, DefaultPrefix+"/cmdline")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), `"code":404`))
}

func TestNewPrivateServer(t *testing.T) {
	a := newTestApp(t, false, "release")
	srv := NewPrivateServer(a, task.NewScheduler(nil, time.UTC))

	assert.Equal(t, ":9001", srv.Addr)
	assert.Equal(t, 60*time.Second, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}

package api_router

import (
	"encoding/json"
	"expvar"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// VarsHandler expvar 运行时变量处理器
type VarsHandler struct {
	*Handler
}

// NewVarsHandler 创建 VarsHandler 实例
func NewVarsHandler(h *Handler) *VarsHandler {
	return &VarsHandler{Handler: h}
}

// Vars 输出 expvar 变量（cmdline、memstats 等），并在 tasks 键下附加调度器的任务状态
func (h *VarsHandler) Vars(c *gin.Context) {
	vars := make(map[string]any)
	expvar.Do(func(kv expvar.KeyValue) {
		vars[kv.Key] = json.RawMessage(kv.Value.String())
	})
	if h.Scheduler != nil {
		vars["tasks"] = h.Scheduler.Statuses()
	}

	body, err := sonic.Marshal(vars)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Metrics 以 Prometheus 文本格式导出 registry 中的指标
func Metrics(g prometheus.Gatherer) gin.HandlerFunc {
	h := promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
	return gin.WrapH(h)
}

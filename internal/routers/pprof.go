package routers

import (
	"net/http/pprof"
	rpprof "runtime/pprof"

	"github.com/gin-gonic/gin"
)

// DefaultPrefix url prefix of pprof
const DefaultPrefix = "/debug/pprof"

// registerPprof 注册 pprof 路由，只在 debug 模式下调用
// 命名 profile（heap、goroutine、allocs 等）取自 runtime/pprof 当前注册的列表
func registerPprof(r *gin.Engine) {
	p := r.Group(DefaultPrefix)
	p.GET("/", gin.WrapF(pprof.Index))
	p.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	p.GET("/profile", gin.WrapF(pprof.Profile))
	p.Match([]string{"GET", "POST"}, "/symbol", gin.WrapF(pprof.Symbol))
	p.GET("/trace", gin.WrapF(pprof.Trace))

	for _, profile := range rpprof.Profiles() {
		p.GET("/"+profile.Name(), gin.WrapH(pprof.Handler(profile.Name())))
	}
}

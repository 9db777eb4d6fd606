package code

import "net/http"

var (
	Success      = NewSuss(1, http.StatusOK, lang{en: "Success", zh_cn: "成功"})
	TaskAccepted = NewSuss(2, http.StatusAccepted, lang{en: "Task run accepted", zh_cn: "任务已开始执行"})

	Failed                = NewError(0, http.StatusOK, lang{en: "Failed", zh_cn: "失败"})
	ErrorInvalidParams    = NewError(400, http.StatusBadRequest, lang{en: "Invalid params", zh_cn: "参数错误"})
	ErrorNotFoundAPI      = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorMethodNotAllowed = NewError(405, http.StatusMethodNotAllowed, lang{en: "Method not allowed", zh_cn: "请求方法不允许"})
	ErrorServerInternal   = NewError(500, http.StatusInternalServerError, lang{en: "Server internal error", zh_cn: "服务器内部错误"})
	ErrorUnhealthy        = NewError(503, http.StatusServiceUnavailable, lang{en: "Service unhealthy", zh_cn: "服务不可用"})

	ErrorTaskNotFound    = NewError(4041, http.StatusNotFound, lang{en: "Task not found", zh_cn: "任务不存在"})
	ErrorTaskRunning     = NewError(4091, http.StatusConflict, lang{en: "Task is already running", zh_cn: "任务正在执行"})
	ErrorHistoryDisabled = NewError(4092, http.StatusConflict, lang{en: "Run history is not enabled", zh_cn: "未启用执行记录"})
)

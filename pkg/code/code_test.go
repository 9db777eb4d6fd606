package code

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDataDoesNotMutate(t *testing.T) {
	c := Success.WithData(map[string]int{"n": 1})

	assert.True(t, c.HaveData())
	assert.False(t, Success.HaveData())
	assert.Nil(t, Success.Data())
	assert.Equal(t, Success.Code(), c.Code())

	d := c.WithDetails("a", "b")
	assert.Equal(t, []string{"a", "b"}, d.Details())
	assert.True(t, d.HaveData())
	assert.False(t, c.HaveDetails())
}

func TestCode_StatusCode(t *testing.T) {
	assert.Equal(t, http.StatusAccepted, TaskAccepted.StatusCode())
	assert.Equal(t, http.StatusConflict, ErrorTaskRunning.StatusCode())
	assert.Equal(t, http.StatusOK, (&Code{}).StatusCode())
}

func TestLang(t *testing.T) {
	defer SetGlobalDefaultLang("en")

	assert.Equal(t, "Task not found", ErrorTaskNotFound.Msg())
	SetGlobalDefaultLang("zh_cn")
	assert.Equal(t, "任务不存在", ErrorTaskNotFound.Msg())
	SetGlobalDefaultLang("fr")
	assert.Equal(t, "Task not found", ErrorTaskNotFound.Error())
}

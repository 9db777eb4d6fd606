package task

import (
	"fmt"
	"sync"

	"github.com/AnushaPriya2003/anusha/internal/app"
)

// TaskFactory 任务工厂函数类型,用于创建任务实例
// 返回 nil 任务表示该任务未启用
type TaskFactory func(appContainer *app.App) (Task, error)

type registration struct {
	name    string
	factory TaskFactory
}

var (
	taskRegistry  []registration
	registryMutex sync.RWMutex
)

// RegisterWithApp 注册任务工厂函数，通常在任务文件的 init() 中调用
// 名称重复时 panic
func RegisterWithApp(name string, factory TaskFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	for _, r := range taskRegistry {
		if r.name == name {
			panic(fmt.Sprintf("task %s registered twice", name))
		}
	}
	taskRegistry = append(taskRegistry, registration{name: name, factory: factory})
}

// Names 按注册顺序返回任务名称
func Names() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := make([]string, 0, len(taskRegistry))
	for _, r := range taskRegistry {
		names = append(names, r.name)
	}
	return names
}

func registrations() []registration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	out := make([]registration, len(taskRegistry))
	copy(out, taskRegistry)
	return out
}

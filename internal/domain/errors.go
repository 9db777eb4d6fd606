package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationAbsent 任务未收到配置，不执行
	ErrConfigurationAbsent = errors.New("job configuration absent")
	// ErrDisabled 任务已禁用（非错误，仅用于提前返回）
	ErrDisabled = errors.New("job is disabled")
	// ErrResolverClosed 资源解析器已释放
	ErrResolverClosed = errors.New("resource resolver is closed")
	// ErrAlreadyRunning 同一任务正在执行
	ErrAlreadyRunning = errors.New("task is already running")
)

// DateParseError 目录名称无法解析为日期
type DateParseError struct {
	Path string
	Name string
	Err  error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("folder %s: name %q is not a YYYY-MM-DD date: %v", e.Path, e.Name, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// StoreDeletionError 删除过期目录失败
type StoreDeletionError struct {
	Path string
	Err  error
}

func (e *StoreDeletionError) Error() string {
	return fmt.Sprintf("failed to delete folder %s: %v", e.Path, e.Err)
}

func (e *StoreDeletionError) Unwrap() error {
	return e.Err
}

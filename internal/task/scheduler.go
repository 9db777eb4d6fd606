package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	// ErrTaskNotFound 任务未注册
	ErrTaskNotFound = errors.New("task not found")
	// ErrSchedulerStopping 调度器正在停止，不再接受异步触发
	ErrSchedulerStopping = errors.New("scheduler is stopping")
)

// TaskStatus 任务状态
type TaskStatus struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	Running  bool      `json:"running"`
	NextRun  time.Time `json:"nextRun,omitempty"`
}

type scheduledTask struct {
	task     Task
	id       cron.EntryID
	schedule cron.Schedule
	busy     atomic.Bool
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	loc    *time.Location
	cron   *cron.Cron

	mu      sync.Mutex
	tasks   map[string]*scheduledTask
	ctx      context.Context
	running  bool
	stopping bool

	// 手动和启动时触发的执行
	wg sync.WaitGroup
}

// NewScheduler 创建任务调度器
func NewScheduler(zl *zap.Logger, loc *time.Location) *Scheduler {
	if zl == nil {
		zl = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	cl := NewCronLogger(zl)
	return &Scheduler{
		logger: zl,
		loc:    loc,
		cron: cron.New(
			cron.WithParser(util.CronParser{}),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		tasks: make(map[string]*scheduledTask),
		ctx:   context.Background(),
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := task.Name()
	if _, ok := s.tasks[name]; ok {
		return fmt.Errorf("task %s already registered", name)
	}

	st := &scheduledTask{task: task}
	if spec := task.Schedule(); spec != "" {
		schedule, err := util.ParseCron(spec)
		if err != nil {
			return fmt.Errorf("task %s: invalid schedule %q: %w", name, spec, err)
		}
		st.schedule = schedule
		st.id = s.cron.Schedule(schedule, cron.FuncJob(func() {
			if err := s.acquire(st); err != nil {
				return
			}
			s.execute(s.baseContext(), st, domain.TriggerSchedule)
		}))
	}
	s.tasks[name] = st

	s.logger.Info("task registered",
		zap.String(logger.FieldTask, name),
		zap.String(logger.FieldSchedule, task.Schedule()),
		zap.Bool("startupRun", task.IsStartupRun()))
	return nil
}

// Start 启动调度，ctx 结束时停止
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.ctx = ctx
	s.running = true
	s.stopping = false
	tasks := s.sortedLocked()
	s.mu.Unlock()

	if len(tasks) == 0 {
		s.logger.Info("no tasks to schedule")
	} else {
		s.logger.Info("tasks starting", zap.Int("count", len(tasks)))
	}

	for _, st := range tasks {
		if st.task.IsStartupRun() {
			if err := s.Trigger(st.task.Name(), domain.TriggerStartup); err != nil {
				s.logger.Warn("task startup run skipped", zap.String(logger.FieldTask, st.task.Name()), zap.Error(err))
			}
		}
	}
	s.cron.Start()
}

// Stop 停止调度并等待正在执行的任务完成
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.stopping = true
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	manualDone := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(manualDone)
	}()

	for _, done := range []<-chan struct{}{cronDone.Done(), manualDone} {
		select {
		case <-done:
		case <-ctx.Done():
			s.logger.Warn("scheduler stop timeout, tasks still running")
			return ctx.Err()
		}
	}
	s.logger.Info("scheduler stopped")
	return nil
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunNow 同步执行任务，任务正在执行时返回 domain.ErrAlreadyRunning
func (s *Scheduler) RunNow(ctx context.Context, name string, trigger domain.RunTrigger) error {
	st, err := s.lookup(name)
	if err != nil {
		return err
	}
	if err := s.acquire(st); err != nil {
		return err
	}
	return s.execute(ctx, st, trigger)
}

// Trigger 异步执行任务，任务正在执行时返回 domain.ErrAlreadyRunning
// Stop 之后返回 ErrSchedulerStopping
func (s *Scheduler) Trigger(name string, trigger domain.RunTrigger) error {
	st, err := s.lookup(name)
	if err != nil {
		return err
	}

	// wg.Add 与 Stop 中的 wg.Wait 通过 mu 串行
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping {
		return ErrSchedulerStopping
	}
	if err := s.acquire(st); err != nil {
		return err
	}
	ctx := s.ctx
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.execute(ctx, st, trigger)
	}()
	return nil
}

// NextRun returns the next scheduled time of a task.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	st, err := s.lookup(name)
	if err != nil || st.schedule == nil {
		return time.Time{}, false
	}
	if e := s.cron.Entry(st.id); e.Valid() && !e.Next.IsZero() {
		return e.Next, true
	}
	return st.schedule.Next(time.Now().In(s.loc)), true
}

// Statuses 返回所有任务状态，按名称排序
func (s *Scheduler) Statuses() []TaskStatus {
	s.mu.Lock()
	tasks := s.sortedLocked()
	s.mu.Unlock()

	out := make([]TaskStatus, 0, len(tasks))
	for _, st := range tasks {
		status := TaskStatus{
			Name:     st.task.Name(),
			Schedule: st.task.Schedule(),
			Running:  st.busy.Load(),
		}
		if next, ok := s.NextRun(status.Name); ok {
			status.NextRun = next
		}
		out = append(out, status)
	}
	return out
}

func (s *Scheduler) lookup(name string) (*scheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	return st, nil
}

func (s *Scheduler) sortedLocked() []*scheduledTask {
	tasks := make([]*scheduledTask, 0, len(s.tasks))
	for _, st := range s.tasks {
		tasks = append(tasks, st)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].task.Name() < tasks[j].task.Name() })
	return tasks
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// acquire 同一任务同时只允许一次执行，重叠的触发被跳过
func (s *Scheduler) acquire(st *scheduledTask) error {
	if !st.busy.CompareAndSwap(false, true) {
		s.logger.Warn("task is still running, trigger skipped", zap.String(logger.FieldTask, st.task.Name()))
		return domain.ErrAlreadyRunning
	}
	return nil
}

// execute 执行已获取锁的任务
func (s *Scheduler) execute(ctx context.Context, st *scheduledTask, trigger domain.RunTrigger) (err error) {
	defer st.busy.Store(false)

	name := st.task.Name()
	log := s.logger.With(zap.String(logger.FieldTask, name), zap.String(logger.FieldTrigger, string(trigger)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("task panic", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("task %s panic: %v", name, r)
		}
	}()

	start := time.Now()
	log.Info("task running")
	err = st.task.Run(WithTrigger(ctx, trigger))

	switch {
	case err == nil:
		log.Info("task finished", zap.Duration(logger.FieldDuration, time.Since(start)))
	case errors.Is(err, domain.ErrDisabled):
		log.Info("task skipped, job disabled")
	case errors.Is(err, domain.ErrConfigurationAbsent):
		log.Warn("task skipped, configuration absent")
	default:
		log.Error("task running error", zap.Duration(logger.FieldDuration, time.Since(start)), zap.Error(err))
	}
	return err
}

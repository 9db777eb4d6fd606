package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	internalApp "github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/dao"
	"github.com/AnushaPriya2003/anusha/internal/routers"
	"github.com/AnushaPriya2003/anusha/internal/task"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Server struct {
	logger            *zap.Logger            // Logger // 日志对象
	config            *internalApp.AppConfig // App configuration // 应用配置
	db                *gorm.DB               // Run history database // 执行记录数据库
	privateHttpServer *http.Server
	app               *internalApp.App // App Container
	manager           *task.Manager

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	done    chan struct{}
	err     error
}

func NewServer(runEnv *runFlags) (*Server, error) {
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Determine run mode
	// 确定运行模式
	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}
	appConfig.Server.RunMode = runMode
	if len(runMode) > 0 {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if runEnv.listen != "" {
		appConfig.Server.PrivateHttpListen = runEnv.listen
	}

	s := &Server{
		config: appConfig,
		done:   make(chan struct{}),
	}

	lg, err := logger.NewLogger(appConfig.Log.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	s.logger = lg

	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	db, err := dao.NewDBEngine(appConfig.Database)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	s.manager = task.NewManager(app)
	if err := s.manager.RegisterTasks(); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to register tasks: %w", err)
	}

	s.logger.Info(fmt.Sprintf("%s v%s Git: %s BuildTime: %s", internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))
	s.logger.Info("config loaded", zap.String("path", configRealpath))
	if appConfig.Job == nil {
		s.logger.Warn("job section missing from config, the export job will not run")
	} else if appConfig.Job.Disabled {
		s.logger.Info("export job is disabled")
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = routers.NewPrivateServer(app, s.manager.Scheduler())
	}

	return s, nil
}

// Start starts the scheduler and the private HTTP server, Stop or a fatal server error ends them
// Start 启动调度器和私有 HTTP 服务
func (s *Server) Start(parent context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	g, gctx := errgroup.WithContext(ctx)

	s.manager.Start(gctx)

	if s.privateHttpServer != nil {
		g.Go(func() error {
			if err := s.privateHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("private api service err", zap.Error(err))
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout())
			defer cancel()

			// Stop HTTP server
			// 停止 HTTP 服务器
			if err := s.privateHttpServer.Shutdown(ctx); err != nil {
				s.logger.Error("private api service shutdown error", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout())
		defer cancel()

		if err := s.manager.Stop(ctx); err != nil {
			s.logger.Error("failed to stop scheduler", zap.Error(err))
		}
		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("failed to shutdown app container", zap.Error(err))
			return err
		}
		return nil
	})

	go func() {
		s.err = g.Wait()
		close(s.done)
	}()
}

// Done is closed once every component has stopped
// Done 所有组件停止后关闭
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Stop shuts everything down and waits
// Stop 关闭并等待完成
func (s *Server) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	stopped := s.stopped
	s.stopped = true
	s.mu.Unlock()

	if cancel == nil {
		// 未启动，只释放资源
		if !stopped {
			s.err = s.app.Close()
			close(s.done)
		}
		<-s.done
		return s.err
	}
	cancel()
	<-s.done
	_ = s.logger.Sync()
	return s.err
}

// initStorageWithConfig initializes storage directory
// initStorageWithConfig 初始化存储目录
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{
		filepath.Dir(cfg.Database.Path),
	}
	if cfg.Log.File != "" {
		dirs = append(dirs, filepath.Dir(cfg.Log.File))
	}
	if cfg.Storage.Type == storage.LOCAL {
		dirs = append(dirs, cfg.Storage.SavePath)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetApp gets App Container
// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig gets app configuration
// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}

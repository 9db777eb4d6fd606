package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	maxGeneratorResponse = 1 << 20
	maxErrorSnippet      = 256
)

// CsvGenerationService EMEA PIM CSV 生成服务接口
type CsvGenerationService interface {
	// CreateEmeaPimCsv 生成 CSV 导出，内容完全由生成服务决定
	CreateEmeaPimCsv(ctx context.Context, resolver domain.ResourceResolver, languagesListPath string, deniedPaths []string, mapper domain.AssetURLMapping) error
}

// GeneratorConfig remote generator settings
// GeneratorConfig 远程生成服务配置
type GeneratorConfig struct {
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"` // Generator URL // 生成服务地址
	Token    string `yaml:"token"`                             // Bearer token // 访问令牌
	// Timeout per call (supports 30s, 10m, 1d) // 单次调用超时（支持 30s、10m、1d）
	Timeout string `yaml:"timeout" default:"10m"`
	// VerifyOutput checks the reported folder exists under ExportRoot // 校验生成目录存在
	VerifyOutput bool   `yaml:"verify-output" default:"true"`
	ExportRoot   string `yaml:"export-root" default:"/content/dam/emea/pim"`
}

type generateRequest struct {
	LanguagesListPath string                 `json:"languagesListPath"`
	DeniedPaths       []string               `json:"deniedPaths"`
	AssetURLMapping   domain.AssetURLMapping `json:"assetUrlMapping"`
	RequestedAt       time.Time              `json:"requestedAt"`
}

type generateResponse struct {
	Folder string   `json:"folder"`
	Files  []string `json:"files"`
	Error  string   `json:"error,omitempty"`
}

type remoteCsvService struct {
	config  GeneratorConfig
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewRemoteCsvService 创建调用远程生成服务的 CsvGenerationService
func NewRemoteCsvService(cfg GeneratorConfig, client *http.Client, zl *zap.Logger) (CsvGenerationService, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("generator endpoint is empty")
	}
	var timeout time.Duration
	if cfg.Timeout != "" {
		d, err := util.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, errors.Wrapf(err, "generator timeout %q", cfg.Timeout)
		}
		timeout = d
	}
	if client == nil {
		client = &http.Client{}
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &remoteCsvService{
		config:  cfg,
		client:  client,
		timeout: timeout,
		logger:  zl.With(zap.String(logger.FieldEndpoint, cfg.Endpoint)),
	}, nil
}

func (s *remoteCsvService) CreateEmeaPimCsv(ctx context.Context, resolver domain.ResourceResolver, languagesListPath string, deniedPaths []string, mapper domain.AssetURLMapping) error {
	if mapper == nil {
		mapper = domain.AssetURLMapping{}
	}
	if deniedPaths == nil {
		deniedPaths = []string{}
	}
	body, err := sonic.Marshal(&generateRequest{
		LanguagesListPath: languagesListPath,
		DeniedPaths:       deniedPaths,
		AssetURLMapping:   mapper,
		RequestedAt:       time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "encode generator request")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build generator request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.Token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "call generator")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxGeneratorResponse))
	if err != nil {
		return errors.Wrap(err, "read generator response")
	}

	var out generateResponse
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := sonic.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return errors.Wrap(err, "decode generator response")
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Error
		if msg == "" {
			msg = snippet(raw)
		}
		return fmt.Errorf("generator returned %d: %s", resp.StatusCode, msg)
	}
	if out.Error != "" {
		return fmt.Errorf("generator reported failure: %s", snippet([]byte(out.Error)))
	}

	s.logger.Info("emea pim csv generated",
		zap.String(logger.FieldPath, out.Folder),
		zap.Int("files", len(out.Files)),
		zap.Duration(logger.FieldDuration, time.Since(start)),
	)

	if s.config.VerifyOutput && out.Folder != "" {
		return s.verify(ctx, resolver, out.Folder)
	}
	return nil
}

// verify 确认生成目录位于导出根目录之下且已存在
func (s *remoteCsvService) verify(ctx context.Context, resolver domain.ResourceResolver, folder string) error {
	folder = path.Clean("/" + folder)
	root := path.Clean("/" + s.config.ExportRoot)
	if !strings.HasPrefix(folder, root+"/") {
		return fmt.Errorf("generated folder %s is outside %s", folder, root)
	}
	parent, name := path.Dir(folder), path.Base(folder)
	entries, err := resolver.Children(ctx, parent)
	if err != nil {
		return errors.Wrapf(err, "verify generated folder %s", folder)
	}
	for _, e := range entries {
		if e.Name == name && e.IsFolder() {
			return nil
		}
	}
	return fmt.Errorf("generated folder %s not found", folder)
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorSnippet {
		cut := maxErrorSnippet
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	if s == "" {
		return "empty response"
	}
	return s
}

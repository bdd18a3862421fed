package di

import (
	"fmt"
	"time"

	"research-agent/internal/adapter/tool"
	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/application/service"
	"research-agent/internal/infrastructure/browser/rod"
	"research-agent/internal/infrastructure/llm/openrouter"
	"research-agent/internal/infrastructure/logger"
	"research-agent/internal/infrastructure/prompts"
	"research-agent/internal/usecase/researcher"
)

type Container struct {
	Browser    output.BrowserPort
	Oracle     output.OraclePort
	Tools      output.ToolRegistry
	Logger     output.LoggerPort
	Researcher input.Researcher
}

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	SystemPrompt     string
	LogLevel         string

	Headless   bool
	MaxSteps   int
	NavTimeout time.Duration
}

// NewContainer wires one research run: one session, one oracle, one registry,
// one loop. The session is not launched here; the oracle decides when via the
// launch tool.
func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.Headless
	if cfg.NavTimeout > 0 {
		browserCfg.NavTimeout = cfg.NavTimeout
	}
	browser := rod.NewSession(browserCfg, rod.DuckDuckGoProfile(), log.WithField("component", "browser"))

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompts.ResearchSystemPrompt
	}

	oracleCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	oracleCfg.SystemPrompt = systemPrompt
	oracleCfg.Logger = log.WithField("component", "oracle")
	oracle := openrouter.New(oracleCfg)

	registry := service.NewToolRegistry()
	if err := registerBrowserTools(registry, browser, log); err != nil {
		browser.Close()
		_ = log.Close()
		return nil, err
	}

	uc := researcher.New(oracle, registry, browser, log.WithField("component", "loop"), cfg.MaxSteps)

	return &Container{
		Browser:    browser,
		Oracle:     oracle,
		Tools:      registry,
		Logger:     log,
		Researcher: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}

func registerBrowserTools(registry output.ToolRegistry, browser output.BrowserPort, log output.LoggerPort) error {
	tools := []output.ToolPort{
		tool.NewLaunchTool(browser, log),
		tool.NewOpenSearchEngineTool(browser, log),
		tool.NewWebSearchTool(browser, log),
		tool.NewSearchResultsTool(browser, log),
		tool.NewPageFetchTool(browser, log),
		tool.NewScreenshotTool(browser, log),
	}
	for _, t := range tools {
		if err := registry.Register(t); err != nil {
			return fmt.Errorf("register tools: %w", err)
		}
	}
	return nil
}

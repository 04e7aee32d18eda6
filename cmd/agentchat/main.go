package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atinylittleshell/agentchat/internal/agentapi"
	"github.com/atinylittleshell/agentchat/internal/core"
	"github.com/atinylittleshell/agentchat/internal/environment"
	"github.com/atinylittleshell/agentchat/internal/repl"
	"github.com/atinylittleshell/agentchat/internal/repl/render"
)

var BUILD_VERSION = "dev"

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

// exitConfigError is returned when settings cannot be loaded.
const exitConfigError = 2

const helpText = `agentchat - chat with an agent service from your terminal

USAGE:
  agentchat [options] [agent-name]

  Without an agent name, the first agent listed by the service is used.
  Type 'exit' or press Ctrl+C to leave.

ENVIRONMENT:
  SERVER_URL            Agent service base URL (default http://localhost:3000)
  DEBUG                 Enable diagnostic output
  AGENTCHAT_LOG_LEVEL   Log level: debug, info, warn, error (default info)
  AGENTCHAT_CONFIG      Alternate config file (default ~/.agentchat/config.yaml)

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, err := environment.Load(environment.ConfigPath(os.Getenv, core.ConfigFile()), os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "agentchat: %v\n", err)
		os.Exit(exitConfigError)
	}

	// Initialize the logger
	logger, err := initializeLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "agentchat: failed to open log file %s: %v\n", core.LogFile(), err)
		logger = zap.NewNop()
	}

	logger.Info("-------- new agentchat session --------",
		zap.Any("args", os.Args),
		zap.String("version", BUILD_VERSION),
		zap.String("serverUrl", cfg.ServerURL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	code := run(ctx, runOptions{
		AgentName:   flag.Arg(0),
		Config:      cfg,
		Logger:      logger,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: interactive,
		TermWidth:   terminalWidth(interactive),
	})

	stop()
	_ = logger.Sync()
	os.Exit(code)
}

type runOptions struct {
	AgentName string
	Config    *environment.Config
	Logger    *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Interactive bool
	TermWidth   func() int
}

// run resolves the agent and drives the chat session, returning the process
// exit status.
func run(ctx context.Context, opts runOptions) int {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := agentapi.NewClient(agentapi.ClientConfig{
		BaseURL: opts.Config.ServerURL,
		Version: BUILD_VERSION,
		Logger:  logger,
	})
	defer client.CloseIdleConnections()
	logger.Debug("agent service", zap.String("baseUrl", client.BaseURL()))

	renderer := render.New(opts.Stdout, opts.Stderr, opts.TermWidth)
	renderer.SetInteractive(opts.Interactive)

	shutdown := repl.NewShutdown(renderer, logger)
	shutdown.OnShutdown(func() { _ = logger.Sync() })
	shutdown.OnShutdown(client.CloseIdleConnections)

	agent, err := repl.NewResolver(client, renderer, logger).Resolve(ctx, opts.AgentName)
	if err != nil {
		code := repl.ExitCode(err)
		if code != 0 {
			logger.Error("agent resolution failed", zap.Error(err))
			return code
		}
		if repl.IsInterrupted(err) {
			renderer.RenderInterrupted()
		}
		shutdown.Terminate()
		return code
	}

	logger.Info("chatting with agent", zap.String("agentName", agent.Name), zap.String("agentId", agent.ID))

	session := repl.NewSession(repl.Options{
		Service:  client,
		Agent:    agent,
		Input:    opts.Stdin,
		Renderer: renderer,
		Shutdown: shutdown,
		Logger:   logger,
	})

	err = session.Run(ctx)
	if err != nil {
		logger.Warn("session ended with error", zap.Error(err))
	}
	return repl.ExitCode(err)
}

func initializeLogger(cfg *environment.Config) (*zap.Logger, error) {
	if err := core.EnsureDataDir(); err != nil {
		return nil, err
	}

	logLevel := environment.GetLogLevel(cfg)

	// Initialize the logger
	loggerConfig := zap.NewProductionConfig()
	if cfg.Debug {
		// Diagnostics also go to stderr so they show up next to the chat
		loggerConfig = zap.NewDevelopmentConfig()
		loggerConfig.OutputPaths = []string{core.LogFile(), "stderr"}
	} else {
		loggerConfig.OutputPaths = []string{core.LogFile()}
	}
	loggerConfig.Level = logLevel
	loggerConfig.ErrorOutputPaths = []string{"stderr"}

	// Use `tail -f ~/.agentchat/agentchat.log` to monitor logs in real-time

	return loggerConfig.Build()
}

// terminalWidth returns a width probe for reply wrapping, or nil when stdout
// is not a terminal.
func terminalWidth(interactive bool) func() int {
	if !interactive {
		return nil
	}
	return func() int {
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0
		}
		return width
	}
}

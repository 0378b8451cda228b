package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cadence/internal/config"
	"cadence/internal/content"
	"cadence/internal/logging"
	"cadence/internal/session"
	"cadence/internal/workspace"
)

const (
	envUser     = "CADENCE_USER"
	envPassword = "CADENCE_PASSWORD"
)

var errAuthRequired = errors.New("authentication required: pass --user and --password or set CADENCE_USER and CADENCE_PASSWORD")

type commandContext struct {
	configFlag   *string
	userFlag     *string
	passwordFlag *string
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	wsOnce sync.Once
	ws     *workspace.Workspace
	wsErr  error
	logger *slog.Logger
}

func newCommandContext(configFlag, userFlag, passwordFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		userFlag:     userFlag,
		passwordFlag: passwordFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) workspace() (*workspace.Workspace, error) {
	c.wsOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.wsErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.wsErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logging.WithRunID(logger, uuid.NewString())
		ws, err := workspace.Open(context.Background(), cfg, c.logger)
		if err != nil {
			c.wsErr = err
			return
		}
		c.ws = ws
	})
	return c.ws, c.wsErr
}

func (c *commandContext) withWorkspace(fn func(*workspace.Workspace) error) error {
	ws, err := c.workspace()
	if err != nil {
		return err
	}
	if err := fn(ws); err != nil {
		return errors.Join(err, c.close())
	}
	return nil
}

func (c *commandContext) credentials() (string, string) {
	user, password := os.Getenv(envUser), os.Getenv(envPassword)
	if c.userFlag != nil && strings.TrimSpace(*c.userFlag) != "" {
		user = strings.TrimSpace(*c.userFlag)
	}
	if c.passwordFlag != nil && *c.passwordFlag != "" {
		password = *c.passwordFlag
	}
	return user, password
}

// requireSession is the route guard: the workspace surface is only reachable
// after a successful login in this invocation.
func (c *commandContext) requireSession() error {
	user, password := c.credentials()
	if user == "" && password == "" {
		return errAuthRequired
	}
	ws, err := c.workspace()
	if err != nil {
		return err
	}
	if err := ws.Login(user, password); err != nil {
		_ = c.close()
		if errors.Is(err, session.ErrInvalidCredentials) {
			return fmt.Errorf("%w: %v", errAuthRequired, err)
		}
		return err
	}
	return nil
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) close() error {
	if c.ws == nil {
		return nil
	}
	ws := c.ws
	c.ws = nil
	if err := ws.Close(); err != nil {
		return fmt.Errorf("write workspace: %w", err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// requiresSession reports the nearest requiresSession annotation, so a child
// command can opt out of a guarded parent.
func requiresSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if value, ok := c.Annotations["requiresSession"]; ok {
			return value == "true"
		}
	}
	return false
}

func guarded() map[string]string {
	return map[string]string{"requiresSession": "true"}
}

func unguarded() map[string]string {
	return map[string]string{"requiresSession": "false"}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errAuthRequired):
		return 3
	case content.Kind(err) != "":
		return 2
	default:
		return 1
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

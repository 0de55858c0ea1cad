package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider satisfies interfaces.LoggerProvider on top of a go-logger root.
// Child loggers share the root's sinks and level configuration.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root from cfg. The format defaults to
// JSON; "console" and "pretty" select the matching go-logger output types.
func NewProvider(cfg Config) (*Provider, error) {
	var options []glog.Option

	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)

	var focus []string
	for _, name := range cfg.Focus {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			focus = append(focus, trimmed)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

// GetLogger returns a child logger scoped to name, or the root when name is
// empty. A nil provider degrades to the no-op logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return bridge(p.root)
	}
	return bridge(p.root.GetLogger(name))
}

func bridge(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &glogBridge{inner: inner}
}

// glogBridge forwards the interfaces.Logger surface onto a go-logger child.
type glogBridge struct {
	inner glog.Logger
}

func (b *glogBridge) Trace(msg string, args ...any) { b.inner.Trace(msg, args...) }
func (b *glogBridge) Debug(msg string, args ...any) { b.inner.Debug(msg, args...) }
func (b *glogBridge) Info(msg string, args ...any)  { b.inner.Info(msg, args...) }
func (b *glogBridge) Warn(msg string, args ...any)  { b.inner.Warn(msg, args...) }
func (b *glogBridge) Error(msg string, args ...any) { b.inner.Error(msg, args...) }
func (b *glogBridge) Fatal(msg string, args ...any) { b.inner.Fatal(msg, args...) }

func (b *glogBridge) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return b
	}

	if with, ok := b.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return bridge(with.WithFields(copied))
	}

	// Fall back to With using sorted keys so output stays deterministic.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	if with, ok := b.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return bridge(with.With(args...))
	}
	return b
}

func (b *glogBridge) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return b
	}
	return bridge(b.inner.WithContext(ctx))
}

// Package js runs widget scripts against a dom.Document. Besides a small
// DOM binding it installs a global `Utils` object exposing the grid
// geometry, option and scroll helpers to scripts.
package js

import (
	"fmt"

	"gridkit/pkg/dom"
	"gridkit/pkg/scroll"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Engine executes JavaScript against a document.
type Engine struct {
	vm     *goja.Runtime
	logger *zap.Logger
	utils  *goja.Object

	dom    *domContext
	scroll *scroll.Coordinator
	sheets map[*dom.Element]*dom.Sheet
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes console output and scroll diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates a new JS engine with a fresh goja runtime. The document-free
// part of Utils is available immediately.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		sheets: make(map[*dom.Element]*dom.Sheet),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.vm = goja.New()

	c := &consoleAPI{logger: e.logger.Named("console")}
	c.register(e.vm)

	e.utils = e.vm.NewObject()
	registerGeometryUtils(e.vm, e.utils)
	registerOptionUtils(e.vm, e.utils)
	registerThrottleUtils(e.vm, e.utils)
	e.vm.Set("Utils", e.utils)

	return e
}

// Attach binds `document` and the DOM-dependent Utils helpers to doc.
// Attaching another document replaces the previous binding.
func (e *Engine) Attach(doc *dom.Document) {
	e.dom = registerDocument(e.vm, doc)
	e.scroll = scroll.New(doc, scroll.WithLogger(e.logger))
	e.sheets = make(map[*dom.Element]*dom.Sheet)
	e.registerDocumentUtils()
}

// Execute attaches doc and runs its scripts in document order. The first
// script error stops execution.
func (e *Engine) Execute(doc *dom.Document) error {
	e.Attach(doc)
	for i, script := range doc.Scripts() {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// RunString evaluates src in the engine's runtime.
func (e *Engine) RunString(src string) (goja.Value, error) {
	v, err := e.vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return v, nil
}

// Package graphql is a thin shim over the host application's GraphQL engine
// lifecycle. It exposes the hook points this daemon cares about: the
// data-generation window, option-read filters, and the routing table that
// rewrite-rule flushes regenerate.
package graphql

import (
	"net/http"
	"sort"
	"sync"

	"github.com/apex/log"

	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/settings"
)

// Option keys whose reads can be filtered during data generation.
const (
	OptionSiteURL = "siteurl"
	OptionHomeURL = "home"
)

// OptionFilter rewrites an option value while it is registered on the engine.
type OptionFilter func(value string) string

// LifecycleHook runs at a data-generation boundary for the request being
// processed.
type LifecycleHook func(e *Engine, req *http.Request)

type filterEntry struct {
	id int
	fn OptionFilter
}

// Engine models the host engine's lifecycle surface. Hooks are registered at
// boot; filters come and go per request.
type Engine struct {
	mu         sync.Mutex
	nextFilter int
	filters    map[string][]filterEntry
	beginHooks []LifecycleHook
	endHooks   []LifecycleHook
	routes     []string
}

// NewEngine creates an engine shim with no hooks or filters registered.
func NewEngine() *Engine {
	return &Engine{
		filters: make(map[string][]filterEntry),
	}
}

// OnDataGenerationBegin registers a hook fired when GraphQL data generation
// starts for a request.
func (e *Engine) OnDataGenerationBegin(fn LifecycleHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beginHooks = append(e.beginHooks, fn)
}

// OnDataGenerationEnd registers a hook fired when GraphQL data generation
// finishes for a request.
func (e *Engine) OnDataGenerationEnd(fn LifecycleHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endHooks = append(e.endHooks, fn)
}

// AddOptionFilter registers a filter over reads of the named option and
// returns a function that removes exactly that filter again.
func (e *Engine) AddOptionFilter(option string, fn OptionFilter) (remove func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextFilter++
	id := e.nextFilter
	e.filters[option] = append(e.filters[option], filterEntry{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		entries := e.filters[option]
		for i, entry := range entries {
			if entry.id == id {
				e.filters[option] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Option passes an option value through the filters currently registered for
// it, in registration order.
func (e *Engine) Option(option, value string) string {
	e.mu.Lock()
	entries := make([]filterEntry, len(e.filters[option]))
	copy(entries, e.filters[option])
	e.mu.Unlock()

	for _, entry := range entries {
		value = entry.fn(value)
	}
	return value
}

// GenerateData runs fn inside the data-generation window for req: begin hooks
// fire first, end hooks fire after fn returns, even if it panics.
func (e *Engine) GenerateData(req *http.Request, fn func(e *Engine)) {
	e.mu.Lock()
	begin := make([]LifecycleHook, len(e.beginHooks))
	copy(begin, e.beginHooks)
	end := make([]LifecycleHook, len(e.endHooks))
	copy(end, e.endHooks)
	e.mu.Unlock()

	for _, hook := range begin {
		hook(e, req)
	}
	defer func() {
		for _, hook := range end {
			hook(e, req)
		}
	}()
	fn(e)
}

// RebuildRoutes regenerates the routing table from the path-typed settings of
// all enabled modules. This is what a rewrite-rule flush executes.
func (e *Engine) RebuildRoutes(registry *modules.Registry, store *settings.Store) {
	var routes []string
	for _, d := range registry.List() {
		if !store.IsEnabled(d) {
			continue
		}
		for _, def := range d.EditableSettings() {
			if def.Type != modules.SettingTypePath {
				continue
			}
			if path, ok := store.Value(d.Key, def).(string); ok && path != "" {
				routes = append(routes, path)
			}
		}
	}
	sort.Strings(routes)

	e.mu.Lock()
	e.routes = routes
	e.mu.Unlock()
	log.WithField("routes", len(routes)).Info("rewrite rules flushed")
}

// Routes returns the currently generated routing table.
func (e *Engine) Routes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.routes))
	copy(out, e.routes)
	return out
}

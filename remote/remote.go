// Package remote bridges a table's pagination, sorting, and filtering
// intents to a remote data source. It owns the request lifecycle:
// at most one effective in-flight request per manager, automatic
// cancellation of superseded requests, trailing-edge debouncing for
// rapid-fire calls such as keystroke search, and a uniform
// loading/error/data state exposed through the same subscribe pattern
// as the table engine.
package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultSearchDebounce is the debounce window for FetchDataDebounced
// when the config does not set one.
const DefaultSearchDebounce = 300 * time.Millisecond

// Construction errors.
var (
	// ErrNoURL is returned when Config.URL is empty and no custom
	// provider is supplied.
	ErrNoURL = errors.New("remote: url is required")

	// ErrBadMethod is returned for methods other than GET or POST.
	ErrBadMethod = errors.New("remote: method must be GET or POST")

	// ErrNoProvider is returned by NewWithProvider for a nil provider.
	ErrNoProvider = errors.New("remote: provider is required")
)

// Result is what a provider returns for one page request.
type Result[T any] struct {
	// Data holds the page's rows.
	Data []T `json:"data"`
	// Total is the full row count matching the request's filter,
	// ignoring pagination.
	Total int `json:"total"`
}

// Provider fetches one page of data for a set of request parameters.
// Implementations must honor ctx cancellation: a canceled context means
// the request was superseded and its result will be discarded.
type Provider[T any] interface {
	FetchPage(ctx context.Context, params map[string]any) (Result[T], error)
}

// Config configures a Manager. The zero value of the Disable* toggles
// keeps the corresponding params enabled, matching the engine defaults.
type Config[T any] struct {
	// URL is the endpoint for the default HTTP provider.
	URL string

	// Method is GET (default) or POST. GET encodes params as a query
	// string; POST sends them as a JSON body.
	Method string

	// Headers are added to every outgoing HTTP request.
	Headers map[string]string

	// DisablePagination drops page/pageSize from outgoing requests.
	DisablePagination bool

	// DisableSorting drops sortBy/sortDirection from outgoing requests.
	DisableSorting bool

	// DisableFiltering drops search from outgoing requests.
	DisableFiltering bool

	// SearchDebounce is the quiet period FetchDataDebounced waits for.
	// Zero means DefaultSearchDebounce.
	SearchDebounce time.Duration

	// TransformRequest, when set, fully replaces the default parameter
	// construction. Nil-valued entries in its result are dropped.
	TransformRequest func(Params) map[string]any

	// TransformResponse, when set, maps the raw response body to a
	// Result. Without it the body must already be {"data": …, "total": …}.
	TransformResponse func(body []byte) (Result[T], error)

	// OnError is invoked exactly once per genuine (non-abort) failure.
	OnError func(error)

	// HTTPClient overrides http.DefaultClient for the default provider.
	HTTPClient *http.Client
}

func (c Config[T]) withDefaults() Config[T] {
	if c.Method == "" {
		c.Method = http.MethodGet
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	return c
}

// State is the observable fetch state. Loading and Err are never
// meaningful together: a successful completion clears Err, and entering
// the loading state clears it as well.
type State[T any] struct {
	Loading    bool
	Err        error
	Data       []T
	TotalRows  int
	LastParams *Params
}

// Manager coordinates the request lifecycle against a Provider. It is
// the one genuinely concurrent component: the network step runs on its
// own goroutine, so all internal state is mutex-guarded and Manager
// methods are safe to call from any goroutine.
type Manager[T any] struct {
	cfg      Config[T]
	provider Provider[T]

	mu        sync.Mutex
	state     State[T]
	seq       uint64
	cancel    context.CancelFunc
	timer     *time.Timer
	nextID    int
	listeners map[int]func(State[T])
	destroyed bool
}

// New creates a manager with the default HTTP provider built from cfg.
func New[T any](cfg Config[T]) (*Manager[T], error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	cfg = cfg.withDefaults()
	if cfg.Method != http.MethodGet && cfg.Method != http.MethodPost {
		return nil, ErrBadMethod
	}
	return &Manager[T]{
		cfg:       cfg,
		provider:  &httpProvider[T]{cfg: cfg},
		listeners: make(map[int]func(State[T])),
	}, nil
}

// NewWithProvider creates a manager over a custom provider, for data
// sources that are not plain HTTP (see PGProvider and MemoryProvider).
func NewWithProvider[T any](cfg Config[T], p Provider[T]) (*Manager[T], error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	return &Manager[T]{
		cfg:       cfg.withDefaults(),
		provider:  p,
		listeners: make(map[int]func(State[T])),
	}, nil
}

// FetchData starts a fetch for the given params. Any request still in
// flight is cancelled synchronously, before any I/O, so at most one
// request can ever commit its outcome; superseded requests resolve
// silently. The loading state (loading=true, error cleared, params
// recorded) is applied and published before this method returns.
func (m *Manager[T]) FetchData(params Params) {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	seq := m.seq

	p := params
	m.state.Loading = true
	m.state.Err = nil
	m.state.LastParams = &p
	snap := m.state
	fns := m.listenersLocked()
	m.mu.Unlock()

	notify(fns, snap)

	built := m.cfg.buildParams(params)
	go m.run(ctx, seq, built)
}

// run performs the network step and commits the outcome if, and only
// if, this request is still the current one.
func (m *Manager[T]) run(ctx context.Context, seq uint64, params map[string]any) {
	res, err := m.provider.FetchPage(ctx, params)

	m.mu.Lock()
	if m.destroyed || seq != m.seq || ctx.Err() != nil {
		// Superseded or cancelled: discard silently. An abort is not a
		// failure worth surfacing, so OnError stays quiet too.
		m.mu.Unlock()
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			m.mu.Unlock()
			return
		}
		m.state.Loading = false
		m.state.Err = err
		m.state.Data = nil
		m.state.TotalRows = 0
		snap := m.state
		fns := m.listenersLocked()
		onError := m.cfg.OnError
		m.mu.Unlock()

		slog.Debug("remote fetch failed", "error", err)
		if onError != nil {
			onError(err)
		}
		notify(fns, snap)
		return
	}

	m.state.Loading = false
	m.state.Err = nil
	m.state.Data = res.Data
	m.state.TotalRows = res.Total
	snap := m.state
	fns := m.listenersLocked()
	m.mu.Unlock()

	notify(fns, snap)
}

// FetchDataDebounced schedules a fetch after the configured quiet
// period, restarting the timer on every call so a burst of calls
// collapses into the single trailing one.
func (m *Manager[T]) FetchDataDebounced(params Params) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.cfg.SearchDebounce, func() {
		m.FetchData(params)
	})
}

// Cancel aborts any in-flight request and clears a pending debounce
// timer. It does not touch loading/data state beyond what the abort
// path naturally produces (the aborted request simply never commits).
func (m *Manager[T]) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
}

func (m *Manager[T]) cancelLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	// Invalidate any request whose goroutine has not observed the
	// context cancellation yet.
	m.seq++
}

// Destroy cancels outstanding work, clears all subscribers, and puts
// the manager in a terminal state where further calls are no-ops. It
// does not force Loading back to false; a request in flight at destroy
// time simply never resolves observably.
func (m *Manager[T]) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.listeners = make(map[int]func(State[T]))
	m.destroyed = true
}

// State returns a copy of the current fetch state.
func (m *Manager[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn for state changes and returns a disposer.
func (m *Manager[T]) Subscribe(fn func(State[T])) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fn == nil || m.destroyed {
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// listenersLocked snapshots the listener set; callers invoke the
// returned functions outside the lock.
func (m *Manager[T]) listenersLocked() []func(State[T]) {
	fns := make([]func(State[T]), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify[T any](fns []func(State[T]), s State[T]) {
	for _, fn := range fns {
		fn(s)
	}
}

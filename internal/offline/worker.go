package offline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"

	"routekeeper/internal/pkg/errs"
)

var (
	// ErrNetworkUnavailable is returned when an asset is neither cached nor
	// reachable.
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrNotIntercepted means the request must go to the network untouched.
	ErrNotIntercepted = errors.New("request not intercepted")
	// ErrNotInstalled is returned by Activate before a successful Install.
	ErrNotInstalled = errors.New("worker is not installed")
)

// MainDocument is served for navigations when the network is down.
const MainDocument = "/index.html"

// Manifest lists the application shell assets cached at install time.
var Manifest = []string{"./", "./index.html", "./manifest.json"}

// State is the lifecycle position of a Worker.
type State int

const (
	Parsed State = iota
	Installed
	Activated
)

var stateNames = map[State]string{
	Parsed:    "parsed",
	Installed: "installed",
	Activated: "activated",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Request is what Fetch needs to know about an incoming read.
type Request struct {
	Method string
	// Key is the request path, with the query string when present.
	Key string
	// Navigate marks top-level document loads.
	Navigate bool
}

// NewRequest describes r for Fetch.
func NewRequest(r *http.Request) Request {
	key := r.URL.Path
	if key == "" {
		key = "/"
	}
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	return Request{
		Method:   r.Method,
		Key:      key,
		Navigate: isNavigation(r),
	}
}

func isNavigation(r *http.Request) bool {
	if mode := r.Header.Get("Sec-Fetch-Mode"); mode != "" {
		return mode == "navigate"
	}
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}

// Worker serves one cache generation named "<prefix>-<version>".
type Worker struct {
	mu        sync.RWMutex
	storage   CacheStorage
	network   Network
	cacheName string
	scope     string
	state     State
	logger    *slog.Logger
}

// NewWorker validates version and prepares a worker in the Parsed state.
func NewWorker(storage CacheStorage, network Network, prefix, version string, logger *slog.Logger) (*Worker, error) {
	version = strings.TrimSpace(version)
	if version == "" || strings.ContainsAny(version, " /") {
		return nil, errs.NewVersionIsInvalidError("version")
	}
	if storage == nil {
		return nil, errs.NewValueIsRequiredError("storage")
	}
	if network == nil {
		return nil, errs.NewValueIsRequiredError("network")
	}
	if prefix == "" {
		prefix = "routekeeper"
	}
	if logger == nil {
		logger = slog.Default()
	}

	cacheName := prefix + "-" + version
	return &Worker{
		storage:   storage,
		network:   network,
		cacheName: cacheName,
		scope:     "/",
		state:     Parsed,
		logger:    logger.With("component", "offline_worker", "cache", cacheName),
	}, nil
}

func (w *Worker) CacheName() string {
	return w.cacheName
}

func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Install fetches every manifest asset and stores them in the worker's
// cache. Nothing is stored unless all assets return a 2xx status. The
// worker moves to Installed without waiting for older workers.
func (w *Worker) Install(ctx context.Context) error {
	entries := make(map[string]Response, len(Manifest))
	for _, asset := range Manifest {
		key := w.resolve(asset)
		resp, err := w.network.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("install %s: %w: %w", key, ErrNetworkUnavailable, err)
		}
		if resp.Status < 200 || resp.Status > 299 {
			return fmt.Errorf("install %s: unexpected status %d", key, resp.Status)
		}
		entries[key] = resp
	}

	if err := w.storage.PutAll(ctx, w.cacheName, entries); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	w.mu.Lock()
	w.state = Installed
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "installed", "assets", len(entries))
	return nil
}

// Activate deletes every cache but the worker's own and takes control of
// all requests.
func (w *Worker) Activate(ctx context.Context) error {
	if w.State() == Parsed {
		return ErrNotInstalled
	}

	names, err := w.storage.Keys(ctx)
	if err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	for _, name := range names {
		if name == w.cacheName {
			continue
		}
		if err := w.storage.Delete(ctx, name); err != nil {
			return fmt.Errorf("activate: %w", err)
		}
		w.logger.InfoContext(ctx, "deleted stale cache", "stale", name)
	}

	w.mu.Lock()
	w.state = Activated
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "activated")
	return nil
}

// Fetch answers a GET from the cache, then the network. When the network
// fails a navigation gets the cached main document; any other request
// gets ErrNetworkUnavailable. Requests that are not GET, or arrive before
// activation, return ErrNotIntercepted.
func (w *Worker) Fetch(ctx context.Context, req Request) (Response, error) {
	if req.Method != http.MethodGet || w.State() != Activated {
		return Response{}, ErrNotIntercepted
	}

	cached, ok, err := w.storage.Match(ctx, w.cacheName, req.Key)
	if err != nil {
		w.logger.WarnContext(ctx, "cache lookup failed", "key", req.Key, "error", err)
	}
	if ok {
		return cached, nil
	}

	resp, netErr := w.network.Get(ctx, req.Key)
	if netErr == nil {
		return resp, nil
	}

	if req.Navigate {
		fallback, ok, err := w.storage.Match(ctx, w.cacheName, MainDocument)
		if err == nil && ok {
			return fallback, nil
		}
	}
	return Response{}, fmt.Errorf("%w: %s: %w", ErrNetworkUnavailable, req.Key, netErr)
}

// resolve turns a manifest entry like "./index.html" into a request key.
func (w *Worker) resolve(asset string) string {
	key := path.Join(w.scope, asset)
	if strings.HasSuffix(asset, "/") && !strings.HasSuffix(key, "/") {
		key += "/"
	}
	return key
}

package httppo

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/atmatm9182/httppo-go/internal/arena"
	"github.com/atmatm9182/httppo-go/internal/filecache"
	"github.com/atmatm9182/httppo-go/internal/httpcodec"
	"github.com/atmatm9182/httppo-go/internal/pool"
	"github.com/atmatm9182/httppo-go/internal/strbuilder"
	"github.com/atmatm9182/httppo-go/internal/workerpool"
	"github.com/atmatm9182/httppo-go/log"
)

// Server listens on a TCP port, parses each connection's request with
// internal/httpcodec, resolves it against the working directory through
// internal/filecache, and dispatches the work to internal/workerpool.
type Server struct {
	cfg    Config
	cache  *filecache.Cache
	pool   *workerpool.Pool
	arenas *pool.Pool[*arena.Arena]
	bufs   *pool.BufferPool[[]byte]
	logger *log.Logger
}

// New creates a Server from cfg, clamping/zero-filling unset fields via
// Config.normalized.
func New(config ...Config) *Server {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg = cfg.normalized()

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewConsoleLogger(log.InfoLevel)
	}

	return &Server{
		cfg:    cfg,
		cache:  filecache.NewWithIdleThreshold(cfg.CacheIdleThreshold),
		pool:   workerpool.New(cfg.Threads),
		arenas: pool.New(func() *arena.Arena { return arena.New() }),
		bufs:   pool.NewBuffer(cfg.MaxRequestSize, func(size int) []byte { return make([]byte, 0, size) }),
		logger: logger,
	}
}

// ListenAndServe binds cfg.Port and serves it until Accept fails.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}
	defer ln.Close()
	return s.Serve(ln)
}

// Serve accepts connections on ln until Accept returns an unrecoverable
// error. Each accepted connection is handed to the worker pool as a job;
// there is no per-connection read/write deadline and no graceful
// in-flight drain, matching the server's non-goals. Exposed separately
// from ListenAndServe so tests can bind an ephemeral port via
// net.Listen("tcp", ":0") and learn the chosen address before serving.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info().Msgf("listening on %s with %d workers", ln.Addr(), s.cfg.Threads)

	stopSweep := make(chan struct{})
	go s.sweepLoop(stopSweep)
	defer close(stopSweep)

	httpcodec.MaxRequestSize = s.cfg.MaxRequestSize

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		s.pool.Schedule(func() { s.handle(conn) })
	}
}

func (s *Server) sweepLoop(stop <-chan struct{}) {
	t := time.NewTicker(s.cfg.IdleSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.cache.Sweep()
		case <-stop:
			return
		}
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	a := s.arenas.Get()
	defer func() {
		a.Reset()
		s.arenas.Put(a)
	}()

	buf := s.bufs.GetWithSize(s.cfg.MaxRequestSize)
	buf = buf[:cap(buf)]
	defer s.bufs.Put(buf[:0])

	n, err := conn.Read(buf)
	if err != nil {
		s.logger.Error().Err(err).Msg("read failed, dropping connection")
		return
	}

	b := strbuilder.Get()
	defer strbuilder.Release(b)

	req, err := httpcodec.Parse(buf[:n], a)
	if err != nil {
		httpcodec.Format(b, &httpcodec.Response{StatusCode: 400})
		s.write(conn, b)
		return
	}

	path, ok := resolvePath(req.Path)
	if !ok {
		httpcodec.Format(b, &httpcodec.Response{StatusCode: 404})
		s.write(conn, b)
		return
	}

	contents, ok := s.cache.Get(path)
	if !ok {
		httpcodec.Format(b, &httpcodec.Response{StatusCode: 404})
		s.write(conn, b)
		return
	}

	httpcodec.Format(b, &httpcodec.Response{StatusCode: 200, Body: contents})
	s.write(conn, b)
}

func (s *Server) write(conn net.Conn, b *strbuilder.Builder) {
	if _, err := conn.Write(b.Bytes()); err != nil {
		s.logger.Error().Err(err).Msg("write failed, dropping connection")
	}
}

// resolvePath maps a request target to a path relative to the working
// directory, rejecting any target with a ".." segment and anything that
// escapes it. "/" maps to
// "index.html". This traversal check is the one deliberate behavior
// change from the program this server was ported from, which had none.
func resolvePath(target string) (string, bool) {
	if target == "/" {
		return "index.html", true
	}

	rel := strings.TrimPrefix(target, "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, "../") || filepath.IsAbs(clean) {
		return "", false
	}
	return clean, true
}

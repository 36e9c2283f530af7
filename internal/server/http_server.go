package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"
)

// HttpServer exposes the codec over HTTP and websockets
type HttpServer struct {
	Address        string
	TLSConfig      *tls.Config
	MaxConnections int
	BufferSize     int
	Workers        int

	registry *prometheus.Registry
	observer *metrics.CodecObserver
	upgrader websocket.Upgrader
	server   *http.Server
	listener net.Listener
}

func NewHttpServer(address string) *HttpServer {
	registry := metrics.NewRegistry()
	return &HttpServer{
		Address:    address,
		BufferSize: codec.DefaultBufferSize,
		Workers:    runtime.NumCPU(),
		registry:   registry,
		observer:   metrics.NewCodecObserver(registry),
	}
}

func (ws *HttpServer) String() string {
	if ws.listener != nil {
		return ws.scheme() + "://" + ws.listener.Addr().String()
	}
	return ws.scheme() + "://" + ws.Address
}

func (ws *HttpServer) scheme() string {
	if ws.TLSConfig != nil {
		return "https"
	}
	return "http"
}

// Addr returns the address the server listens on, once started
func (ws *HttpServer) Addr() net.Addr {
	if ws.listener == nil {
		return nil
	}
	return ws.listener.Addr()
}

// Router builds the handler serving all the endpoints
func (ws *HttpServer) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(ws.Address),
		middleware.RedirectSlashes, // Redirect slashes to no slash URLs
		middleware.Recoverer,       // Recover from panics without crashing the server
	)

	router.Post("/encode/{engine}", ws.EncodeHandler)
	router.Post("/decode/{engine}", ws.DecodeHandler)
	router.Post("/batch/encode/{engine}", ws.BatchEncodeHandler)
	router.Post("/batch/decode/{engine}", ws.BatchDecodeHandler)
	router.Get("/ws/encode/{engine}", ws.WebsocketEncodeHandler)
	router.Get("/ws/decode/{engine}", ws.WebsocketDecodeHandler)
	router.Get("/alphabets", AlphabetsHandler)
	router.Get("/alphabets/{name}", AlphabetHandler)
	router.Get("/engines", EnginesHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler(ws.registry))

	return router
}

// Startup starts listening and serves the requests in the background
func (ws *HttpServer) Startup() error {
	ln, err := net.Listen("tcp", ws.Address)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", ws.Address)
	}
	if ws.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, ws.MaxConnections)
	}
	if ws.TLSConfig != nil {
		ln = tls.NewListener(ln, ws.TLSConfig)
	}
	ws.listener = ln

	ws.server = &http.Server{
		Handler: ws.Router(),
	}

	go func() {
		log.Infof("Starting server at %v", ws)
		if err := ws.server.Serve(ln); err != http.ErrServerClosed {
			err = errors.WithStack(err)
			log.WithError(err).Errorf("Could not start the server %v", err)
		}
	}()

	return nil
}

func (ws *HttpServer) Shutdown() error {
	if ws.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ws.server.Shutdown(ctx)
}

package serve

import (
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/logging"
	"github.com/bokysan/b64/internal/server"
	"github.com/bokysan/b64/internal/util/cert"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command runs the HTTP service
type Command struct {
	cert.ServerConfig `yaml:",inline"`

	Listen         string `yaml:"listen"          short:"L" long:"listen"          env:"LISTEN"          description:"Address to listen on" default:"127.0.0.1:8064"`
	MaxConnections int    `yaml:"max_connections"           long:"max-connections" env:"MAX_CONNECTIONS" description:"Maximum number of simultaneous connections. 0 for no limit" default:"0"`
	BufferSize     int    `yaml:"buffer_size"               long:"buffer-size"     env:"B64_BUFFER_SIZE" description:"Size of the stream buffers" default:"12288"`
	Workers        int    `yaml:"workers"                   long:"workers"         env:"WORKERS"         description:"Number of goroutines decoding a batch. 0 for the number of CPUs" default:"0"`

	server *server.HttpServer
}

func NewCommand() *Command {
	return &Command{
		Listen:     "127.0.0.1:8064",
		BufferSize: codec.DefaultBufferSize,
	}
}

// Startup configures and starts the server
func (s *Command) Startup() error {
	var errs error

	tlsConfig, err := s.GetTlsConfig()
	if err != nil {
		errs = multierror.Append(errs, errors.Wrapf(err, "Could not configure TLS"))
	}
	if s.MaxConnections < 0 {
		errs = multierror.Append(errs, errors.Errorf("Invalid number of connections: %d", s.MaxConnections))
	}
	if errs != nil {
		return errs
	}

	srv := server.NewHttpServer(s.Listen)
	srv.TLSConfig = tlsConfig
	srv.MaxConnections = s.MaxConnections
	if s.BufferSize > 0 {
		srv.BufferSize = s.BufferSize
	}
	srv.Workers = s.Workers
	if srv.Workers <= 0 {
		srv.Workers = runtime.NumCPU()
	}

	if err := srv.Startup(); err != nil {
		return err
	}
	s.server = srv
	return nil
}

// Addr returns the address the server listens on, once started
func (s *Command) Addr() net.Addr {
	if s.server == nil {
		return nil
	}
	return s.server.Addr()
}

func (s *Command) Shutdown() error {
	if s.server == nil {
		return nil
	}
	log.Infof("Graceful server shutdown...")
	if err := s.server.Shutdown(); err != nil {
		return errors.Wrapf(err, "Could not shutdown %v", s.server)
	}
	return nil
}

func (s *Command) Execute(args []string) error {
	logging.SetupLogging()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	if err := s.Startup(); err != nil {
		return err
	}

	<-interrupted
	return s.Shutdown()
}

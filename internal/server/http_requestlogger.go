package server

import (
	"net/http"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/logging"
	"github.com/go-chi/chi/middleware"
)

type NextHandlerFunc func(next http.Handler) http.Handler

// GetRequestLogger returns the request logging middleware matching the configured log format
func GetRequestLogger(address string) (logger NextHandlerFunc) {
	if args.General.LogFormat == "json" {
		logger = middleware.RequestLogger(
			&logging.JSONLogFormatter{
				ServerAddress: address,
			},
		)
	} else {
		logger = middleware.RequestLogger(
			&middleware.DefaultLogFormatter{
				Logger:  &logging.ChiLogWriter{},
				NoColor: logging.ColorDisabled(args.General.LogColor),
			},
		)
	}

	return
}

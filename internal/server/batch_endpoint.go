package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bokysan/b64/internal/codec"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// BatchEncodeRequest carries the raw positions of a batch. Raw bytes travel as standard base64
// JSON strings (the encoding/json form of a []byte), a null position is absent.
type BatchEncodeRequest struct {
	Items []codec.NullBytes `json:"items"`
}

// BatchEncodeResponse has exactly one encoded item for every requested position
type BatchEncodeResponse struct {
	Items  []codec.NullString `json:"items"`
	Errors []BatchItemError   `json:"errors"`
}

// BatchDecodeRequest carries the encoded positions of a batch. A null position is absent.
type BatchDecodeRequest struct {
	Items []codec.NullString `json:"items"`
}

// BatchDecodeResponse has exactly one item for every requested position. Decoded bytes are written
// as standard base64 JSON strings. Failed positions are null and listed in Errors.
type BatchDecodeResponse struct {
	Items  []codec.NullBytes `json:"items"`
	Errors []BatchItemError  `json:"errors"`
}

// BatchItemError describes a position which could not be decoded
type BatchItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

func readBatch(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrapf(errInvalidParameter, "could not parse the request: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// BatchEncodeHandler encodes every position
func (ws *HttpServer) BatchEncodeHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	engine, err := requestEngine(r)
	if err != nil {
		httpError(w, err)
		return
	}
	req := &BatchEncodeRequest{}
	if err := readBatch(r, req); err != nil {
		httpError(w, err)
		return
	}

	res := &BatchEncodeResponse{Items: engine.EncodeBatch(req.Items), Errors: []BatchItemError{}}

	var written int64
	valid := 0
	for _, item := range res.Items {
		if item.Valid {
			valid++
			written += int64(len(item.String))
		}
	}
	ws.observe("batch_encode", engine, batchStats{
		valid:   valid,
		absent:  len(res.Items) - valid,
		written: written,
	}, nil, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

// BatchDecodeHandler decodes every position
func (ws *HttpServer) BatchDecodeHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	engine, err := requestEngine(r)
	if err != nil {
		httpError(w, err)
		return
	}
	req := &BatchDecodeRequest{}
	if err := readBatch(r, req); err != nil {
		httpError(w, err)
		return
	}

	out, err := engine.DecodeBatchParallel(req.Items, ws.Workers)
	res := &BatchDecodeResponse{Items: out, Errors: []BatchItemError{}}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			var itemErr *codec.ItemError
			if errors.As(e, &itemErr) {
				res.Errors = append(res.Errors, BatchItemError{Index: itemErr.Index, Error: itemErr.Err.Error()})
			}
		}
	}

	var written int64
	valid := 0
	for _, item := range res.Items {
		if item.Valid {
			valid++
			written += int64(len(item.Bytes))
		}
	}
	ws.observe("batch_decode", engine, batchStats{
		valid:   valid,
		failed:  len(res.Errors),
		absent:  len(res.Items) - valid - len(res.Errors),
		written: written,
	}, err, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

type batchStats struct {
	valid, failed, absent int
	written               int64
}

func (ws *HttpServer) observe(op string, engine *codec.Engine, s batchStats, err error, d time.Duration) {
	ws.observer.Operation(op, engine.Name(), s.written, err, d)
	ws.observer.Items(op, s.valid, s.failed, s.absent)
}

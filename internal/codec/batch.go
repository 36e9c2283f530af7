package codec

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

// EncodeBatch encodes every valid position of the input. Absent positions stay absent.
func (e *Engine) EncodeBatch(in []NullBytes) []NullString {
	out := make([]NullString, len(in))
	for i, item := range in {
		if item.Valid {
			out[i] = String(e.Encode(item.Bytes))
		}
	}
	return out
}

// DecodeBatch decodes every valid position of the input. A position that fails to decode becomes
// absent in the output and does not stop the rest of the batch. The output is always complete;
// the error, if any, is a *multierror.Error with one *ItemError per failed position.
func (e *Engine) DecodeBatch(in []NullString) ([]NullBytes, error) {
	out := make([]NullBytes, len(in))
	var errs *multierror.Error
	for i, item := range in {
		if err := e.decodeItem(out, i, item); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return out, errs.ErrorOrNil()
}

// DecodeBatchParallel has the same contract as DecodeBatch, but decodes positions on up to
// `workers` goroutines.
func (e *Engine) DecodeBatchParallel(in []NullString, workers int) ([]NullBytes, error) {
	if workers <= 1 || len(in) < 2 {
		return e.DecodeBatch(in)
	}
	if workers > len(in) {
		workers = len(in)
	}

	out := make([]NullBytes, len(in))
	failed := make([]error, len(in))
	next := make(chan int)
	wg := &sync.WaitGroup{}
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				failed[i] = e.decodeItem(out, i, in[i])
			}
		}()
	}
	for i := range in {
		next <- i
	}
	close(next)
	wg.Wait()

	// Collect in input order so the result matches DecodeBatch
	var errs *multierror.Error
	for _, err := range failed {
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return out, errs.ErrorOrNil()
}

func (e *Engine) decodeItem(out []NullBytes, i int, item NullString) error {
	if !item.Valid {
		return nil
	}
	res, err := e.Decode(item.String)
	if err != nil {
		log.Debugf("[%v] Batch item %d could not be decoded: %v", e.name, i, err)
		return &ItemError{Index: i, Err: err}
	}
	out[i] = Bytes(res)
	return nil
}

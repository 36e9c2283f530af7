package streams

// Closed is an interface which defines if a method to check if a stream is closed or not
type Closed interface {
	Closed() bool
}

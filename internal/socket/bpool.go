package socket

import (
	"bytes"
	"sync"
)

// bpool is a synchronized bytes.Buffer pool used to avoid allocating a new
// buffer on every inbound text frame.
var bpool sync.Pool

func get() *bytes.Buffer {
	if b := bpool.Get(); b != nil {
		return b.(*bytes.Buffer)
	}

	return new(bytes.Buffer)
}

func put(b *bytes.Buffer) {
	b.Reset()
	bpool.Put(b)
}

package byteutil

import (
	"bytes"
	"sync"
)

// buffers grown past this size are left to the garbage collector
const maxPooledCap = 1 << 20

var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

// GetBytesBuf returns an empty buffer from the pool.
func GetBytesBuf() *bytes.Buffer {
	return bytesBuffer.Get().(*bytes.Buffer)
}

func PutBytesBuf(p *bytes.Buffer) {
	if p == nil || p.Cap() > maxPooledCap {
		return
	}
	p.Reset()
	bytesBuffer.Put(p)
}

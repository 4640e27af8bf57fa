package fpdf

import (
	"bytes"
	"compress/zlib"
	"sync"

	. "github.com/tinywasm/fmt"
)

// zpool recycles the buffers used to deflate page content and image samples.
var zpool = deflatePool{
	Pool: sync.Pool{
		New: func() any {
			return new(deflated)
		},
	},
}

type deflatePool struct{ sync.Pool }

func (pool *deflatePool) deflate(data []byte) *deflated {
	d := pool.Get().(*deflated)
	d.buf.Grow(len(data))

	zw, err := zlib.NewWriterLevel(&d.buf, zlib.BestSpeed)
	if err != nil {
		panic(Errf("could not create zlib writer: %s", err.Error()))
	}
	if _, err = zw.Write(data); err != nil {
		panic(Errf("could not zlib-compress slice: %s", err.Error()))
	}
	if err = zw.Close(); err != nil {
		panic(Errf("could not close zlib writer: %s", err.Error()))
	}
	return d
}

type deflated struct {
	buf bytes.Buffer
}

func (d *deflated) bytes() []byte { return d.buf.Bytes() }

// release hands the buffer back to the pool. bytes() is invalid afterwards.
func (d *deflated) release() {
	d.buf.Reset()
	zpool.Put(d)
}

// detach returns a private copy of the data and releases the buffer.
func (d *deflated) detach() []byte {
	out := bytes.Clone(d.buf.Bytes())
	d.release()
	return out
}

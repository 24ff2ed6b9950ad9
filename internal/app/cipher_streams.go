package app

import (
	"io"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
)

// cipherWriter transforms everything written to it before passing it on.
// Flush finalizes the transform and writes the tail.
type cipherWriter struct {
	w         io.Writer
	transform cryptoalg.CipherTransform
	op        cryptoalg.Operation
	config    cryptoalg.Configuration
	flushed   bool
}

func newCipherWriter(w io.Writer, transform cryptoalg.CipherTransform, op cryptoalg.Operation, config cryptoalg.Configuration) *cipherWriter {
	return &cipherWriter{w: w, transform: transform, op: op, config: config}
}

func (cw *cipherWriter) Write(p []byte) (int, error) {
	out, err := cw.transform.Update(p)
	if err != nil {
		return 0, cryptoalg.NewCipherError(cw.op, cw.config, "unable to process chunk", err)
	}
	if len(out) > 0 {
		if _, err := cw.w.Write(out); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush is idempotent.
func (cw *cipherWriter) Flush() error {
	if cw.flushed {
		return nil
	}
	cw.flushed = true

	tail, err := cw.transform.Finalize()
	if err != nil {
		return cryptoalg.NewCipherError(cw.op, cw.config, "unable to finalize cipher", err)
	}
	if len(tail) == 0 {
		return nil
	}
	_, err = cw.w.Write(tail)
	return err
}

// cipherReader transforms the bytes read from r. The transform is finalized
// once r reports io.EOF.
type cipherReader struct {
	r         io.Reader
	transform cryptoalg.CipherTransform
	op        cryptoalg.Operation
	config    cryptoalg.Configuration
	scratch   []byte
	ready     []byte
	eof       bool
}

func newCipherReader(r io.Reader, transform cryptoalg.CipherTransform, op cryptoalg.Operation, config cryptoalg.Configuration, bufSize int) *cipherReader {
	return &cipherReader{
		r:         r,
		transform: transform,
		op:        op,
		config:    config,
		scratch:   make([]byte, bufSize),
	}
}

func (cr *cipherReader) Read(p []byte) (int, error) {
	for len(cr.ready) == 0 {
		if cr.eof {
			return 0, io.EOF
		}
		if err := cr.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(p, cr.ready)
	cr.ready = cr.ready[n:]
	return n, nil
}

func (cr *cipherReader) fill() error {
	n, err := cr.r.Read(cr.scratch)
	if n > 0 {
		out, terr := cr.transform.Update(cr.scratch[:n])
		if terr != nil {
			return cryptoalg.NewCipherError(cr.op, cr.config, "unable to process chunk", terr)
		}
		cr.ready = out
	}

	switch {
	case err == io.EOF:
		tail, terr := cr.transform.Finalize()
		if terr != nil {
			return cryptoalg.NewCipherError(cr.op, cr.config, "unable to finalize cipher", terr)
		}
		cr.ready = append(cr.ready, tail...)
		cr.eof = true
		return nil
	case err != nil:
		return err
	default:
		return nil
	}
}

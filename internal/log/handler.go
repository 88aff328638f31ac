package log

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Handler defines where and how log records are written.
type Handler interface {
	Log(r *Record) error
}

// FuncHandler returns a Handler that logs records with the given function.
func FuncHandler(fn func(r *Record) error) Handler { return funcHandler(fn) }

type funcHandler func(r *Record) error

func (h funcHandler) Log(r *Record) error { return h(r) }

// StreamHandler writes formatted records to w. Writes are serialized.
func StreamHandler(w io.Writer, fmtr Format) Handler {
	var mu sync.Mutex
	return FuncHandler(func(r *Record) error {
		b := fmtr.Format(r)
		mu.Lock()
		defer mu.Unlock()
		_, err := w.Write(b)
		return err
	})
}

// LvlFilterHandler drops records above maxLvl.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

// DiscardHandler drops everything.
func DiscardHandler() Handler {
	return FuncHandler(func(r *Record) error { return nil })
}

// StderrHandler logs to stderr. On a terminal records use TerminalFormat,
// colored when color is wanted; otherwise they are written as logfmt.
func StderrHandler(maxLvl Lvl, color bool) Handler {
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !tty {
		return LvlFilterHandler(maxLvl, StreamHandler(os.Stderr, LogfmtFormat()))
	}
	var w io.Writer = os.Stderr
	if color {
		w = colorable.NewColorableStderr()
	}
	return LvlFilterHandler(maxLvl, StreamHandler(w, TerminalFormat(color)))
}

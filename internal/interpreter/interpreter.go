// Package interpreter wires the tokenizer, parser and evaluator into a single
// Execute call. An Interpreter owns one environment; successive Execute calls
// on the same Interpreter see each other's variables.
package interpreter

import (
	"io"
	"time"

	"educode-lang/impl/internal/evaluator"
	"educode-lang/impl/internal/lexer"
	"educode-lang/impl/internal/log"
	"educode-lang/impl/internal/parser"
)

// Config holds the interpreter settings loaded from the [Interpreter] table.
type Config struct {
	ExprCacheSize int  // parsed-expression LRU size; 0 disables caching
	Trace         bool // log every executed statement
}

// DefaultConfig contains the settings used when nothing else is configured.
var DefaultConfig = Config{
	ExprCacheSize: evaluator.DefaultCacheSize,
}

type Interpreter struct {
	env *evaluator.Env
	ev  *evaluator.Evaluator
	log log.Logger
}

// New creates an interpreter writing print output to out.
func New(out io.Writer, cfg Config) *Interpreter {
	logger := log.New("module", "interpreter")
	opts := []evaluator.Option{evaluator.WithCacheSize(cfg.ExprCacheSize)}
	if cfg.Trace {
		opts = append(opts, evaluator.WithLogger(logger))
	} else {
		opts = append(opts, evaluator.WithLogger(traceless{logger}))
	}
	env := evaluator.NewEnv()
	return &Interpreter{
		env: env,
		ev:  evaluator.New(out, env, opts...),
		log: logger,
	}
}

// Execute tokenizes, parses and runs src. The first error aborts the run;
// output already written and variables already bound are kept.
func (in *Interpreter) Execute(src string) error {
	start := time.Now()
	toks, err := lexer.Lex(src)
	if err != nil {
		return err
	}
	in.log.Debug("Tokenized source", "tokens", len(toks))

	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		return err
	}
	in.log.Debug("Parsed program", "statements", len(prog.Statements))

	if err := in.ev.Run(prog.Statements); err != nil {
		in.log.Debug("Execution failed", "err", err, "elapsed", time.Since(start))
		return err
	}
	in.log.Debug("Execution finished", "vars", in.env.Len(), "elapsed", time.Since(start))
	return nil
}

// Env exposes the interpreter's variables for inspection.
func (in *Interpreter) Env() *evaluator.Env { return in.env }

// traceless drops Trace records so statement tracing stays off unless asked
// for, whatever the handler's level.
type traceless struct{ log.Logger }

func (traceless) Trace(string, ...interface{}) {}

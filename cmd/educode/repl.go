package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"educode-lang/impl/internal/interpreter"
	"educode-lang/impl/internal/lexer"
)

var replCommand = cli.Command{
	Action:    startREPL,
	Name:      "repl",
	Usage:     "Start an interactive session",
	ArgsUsage: "",
	Description: `The repl command reads statements interactively. Variables persist
between inputs, blocks may span several lines, :vars lists the variables
and :quit leaves the session.`,
}

const (
	primaryPrompt  = "edu> "
	continuePrompt = "...> "
)

// session accumulates input until braces balance and then executes it. An
// if chain is held back one more line so that a senao or senaoSe typed on
// the next line still joins it.
type session struct {
	in        *interpreter.Interpreter
	errOut    io.Writer
	buf       strings.Builder
	awaitElse bool
}

func newSession(in *interpreter.Interpreter, errOut io.Writer) *session {
	return &session{in: in, errOut: errOut}
}

func (s *session) prompt() string {
	if s.buf.Len() > 0 {
		return continuePrompt
	}
	return primaryPrompt
}

// feed consumes one input line and reports whether the session should end.
func (s *session) feed(line string) bool {
	if s.awaitElse {
		s.awaitElse = false
		switch lexer.LeadingWord(strings.TrimSpace(line)) {
		case "senao", "senaoSe":
		default:
			s.flush()
			return s.feed(line)
		}
	}
	if s.buf.Len() == 0 {
		switch strings.TrimSpace(line) {
		case "":
			return false
		case ":quit", ":q":
			return true
		case ":vars":
			interpreter.WriteVars(s.errOut, s.in.Env())
			return false
		}
	}
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	src := s.buf.String()
	if lexer.BraceDepth(src) > 0 {
		return false
	}
	if endsIfArm(src) {
		s.awaitElse = true
		return false
	}
	s.flush()
	return false
}

// flush executes whatever input is pending.
func (s *session) flush() {
	src := s.buf.String()
	s.buf.Reset()
	s.awaitElse = false
	if strings.TrimSpace(src) == "" {
		return
	}
	if err := s.in.Execute(src); err != nil {
		color.New(color.FgRed).Fprintln(s.errOut, err)
	}
}

// endsIfArm reports whether src ends with the closing brace of a se or
// senaoSe arm, which a following senao or senaoSe may continue.
func endsIfArm(src string) bool {
	toks, err := lexer.Lex(src)
	if err != nil || len(toks) == 0 || toks[len(toks)-1].Type != lexer.BlockEnd {
		return false
	}
	var (
		depth int
		last  lexer.Type
	)
	for _, t := range toks {
		switch t.Type {
		case lexer.BlockStart:
			depth++
		case lexer.BlockEnd:
			depth--
		default:
			if depth == 0 {
				last = t.Type
			}
		}
	}
	return last == lexer.If || last == lexer.ElseIf
}

func startREPL(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	s := newSession(interpreter.New(os.Stdout, cfg.Interpreter), os.Stderr)

	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)

	fmt.Println("EduCode REPL. Digite :quit para sair.")
	for {
		line, err := term.Prompt(s.prompt())
		switch {
		case err == liner.ErrPromptAborted || err == io.EOF:
			s.flush()
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) != "" {
			term.AppendHistory(line)
		}
		if s.feed(line) {
			return nil
		}
	}
}

package parser

// Field order fixes the order of keys in the YAML dump.

// Program is the root AST node.
type Program struct {
	Statements []Statement `yaml:"statements"`
	Type       string      `yaml:"type"`
}

// Statement is a marker interface.
type Statement interface {
	isStatement()
	SourceLine() int
}

// VariableDeclaration binds Name to the value of Value, read as VarType.
type VariableDeclaration struct {
	Type    string `yaml:"type"`
	VarType string `yaml:"varType"`
	Name    string `yaml:"name"`
	Value   string `yaml:"value"`
	Line    int    `yaml:"line"`
}

func (VariableDeclaration) isStatement()      {}
func (s VariableDeclaration) SourceLine() int { return s.Line }

// Assignment is a bare "name = expr" that reached the parser on its own.
type Assignment struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
	Line  int    `yaml:"line"`
}

func (Assignment) isStatement()      {}
func (s Assignment) SourceLine() int { return s.Line }

type Reassignment struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
	Line  int    `yaml:"line"`
}

func (Reassignment) isStatement()      {}
func (s Reassignment) SourceLine() int { return s.Line }

type Print struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
	Line  int    `yaml:"line"`
}

func (Print) isStatement()      {}
func (s Print) SourceLine() int { return s.Line }

// Branch types
const (
	IfBranch     = "IfBranch"
	ElseIfBranch = "ElseIfBranch"
	ElseBranch   = "ElseBranch"
)

// Branch is one arm of an if chain. Condition is empty for ElseBranch.
type Branch struct {
	Type      string      `yaml:"type"`
	Condition string      `yaml:"condition,omitempty"`
	Body      []Statement `yaml:"body"`
	Line      int         `yaml:"line"`
}

type IfStatement struct {
	Type     string   `yaml:"type"`
	Branches []Branch `yaml:"branches"`
	Line     int      `yaml:"line"`
}

func (IfStatement) isStatement()      {}
func (s IfStatement) SourceLine() int { return s.Line }

type WhileStatement struct {
	Type      string      `yaml:"type"`
	Condition string      `yaml:"condition"`
	Body      []Statement `yaml:"body"`
	Line      int         `yaml:"line"`
}

func (WhileStatement) isStatement()      {}
func (s WhileStatement) SourceLine() int { return s.Line }

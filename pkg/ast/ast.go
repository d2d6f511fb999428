package ast

type NodeType string

const (
	NodeAssignStatement      NodeType = "AssignStatement"
	NodeAddStatement         NodeType = "AddStatement"
	NodeSubStatement         NodeType = "SubStatement"
	NodePrintNumberStatement NodeType = "PrintNumberStatement"
	NodePrintTextStatement   NodeType = "PrintTextStatement"
	NodeInputStatement       NodeType = "InputStatement"
	NodeExitStatement        NodeType = "ExitStatement"
	NodeGotoStatement        NodeType = "GotoStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeComment              NodeType = "Comment"
	NodeCondition            NodeType = "Condition"
	NodeBlock                NodeType = "Block"
	NodeProgram              NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Variable is a normalized variable name.
type Variable string

// Value is the raw text of a value slot: either a variable name or a poetic
// number literal, decided during lowering.
type Value string

// Normalized returns the name the value would have as a variable.
func (v Value) Normalized() Variable { return NormalizeName(string(v)) }

// Statements

type AssignStatement struct {
	nodeImpl
	statementMarker

	Target Variable `json:"target"`
	Value  Value    `json:"value"`
}

func NewAssignStatement(target Variable, value Value) *AssignStatement {
	return &AssignStatement{nodeImpl: newNodeImpl(NodeAssignStatement), Target: target, Value: value}
}

type AddStatement struct {
	nodeImpl
	statementMarker

	Target Variable `json:"target"`
	Value  Value    `json:"value"`
}

func NewAddStatement(target Variable, value Value) *AddStatement {
	return &AddStatement{nodeImpl: newNodeImpl(NodeAddStatement), Target: target, Value: value}
}

type SubStatement struct {
	nodeImpl
	statementMarker

	Target Variable `json:"target"`
	Value  Value    `json:"value"`
}

func NewSubStatement(target Variable, value Value) *SubStatement {
	return &SubStatement{nodeImpl: newNodeImpl(NodeSubStatement), Target: target, Value: value}
}

type PrintNumberStatement struct {
	nodeImpl
	statementMarker

	Target Variable `json:"target"`
}

func NewPrintNumberStatement(target Variable) *PrintNumberStatement {
	return &PrintNumberStatement{nodeImpl: newNodeImpl(NodePrintNumberStatement), Target: target}
}

type PrintTextStatement struct {
	nodeImpl
	statementMarker

	Target Variable `json:"target"`
}

func NewPrintTextStatement(target Variable) *PrintTextStatement {
	return &PrintTextStatement{nodeImpl: newNodeImpl(NodePrintTextStatement), Target: target}
}

type InputStatement struct {
	nodeImpl
	statementMarker

	Target Variable `json:"target"`
}

func NewInputStatement(target Variable) *InputStatement {
	return &InputStatement{nodeImpl: newNodeImpl(NodeInputStatement), Target: target}
}

type ExitStatement struct {
	nodeImpl
	statementMarker
}

func NewExitStatement() *ExitStatement {
	return &ExitStatement{nodeImpl: newNodeImpl(NodeExitStatement)}
}

type GotoStatement struct {
	nodeImpl
	statementMarker

	Destination Value `json:"destination"`
}

func NewGotoStatement(destination Value) *GotoStatement {
	return &GotoStatement{nodeImpl: newNodeImpl(NodeGotoStatement), Destination: destination}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  *Condition `json:"condition"`
	Consequent Statement  `json:"consequent"`
}

func NewIfStatement(condition *Condition, consequent Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Consequent: consequent}
}

type Comment struct {
	nodeImpl
	statementMarker
}

func NewComment() *Comment {
	return &Comment{nodeImpl: newNodeImpl(NodeComment)}
}

// Conditions

type ComparisonOperator string

const (
	EqualTo        ComparisonOperator = "EqualTo"
	NotEqualTo     ComparisonOperator = "NotEqualTo"
	GreaterThan    ComparisonOperator = "GreaterThan"
	LessThan       ComparisonOperator = "LessThan"
	GreaterOrEqual ComparisonOperator = "GreaterOrEqual"
	LessOrEqual    ComparisonOperator = "LessOrEqual"
)

type Condition struct {
	nodeImpl

	Operator ComparisonOperator `json:"operator"`
	Left     Value              `json:"left"`
	Right    Value              `json:"right"`
}

func NewCondition(op ComparisonOperator, left, right Value) *Condition {
	return &Condition{nodeImpl: newNodeImpl(NodeCondition), Operator: op, Left: left, Right: right}
}

// Program structure

type Block struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

type Program struct {
	nodeImpl

	Blocks []*Block `json:"blocks"`
}

func NewProgram(blocks []*Block) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Blocks: blocks}
}

package ast

import (
	"fmt"
	"strings"
)

// The String methods in this file print source text that parses back into
// a structurally identical tree. Operands that are not terms are wrapped in
// parentheses, so precedence never has to be reconstructed.

func isTerm(e Expr) bool {
	switch e.(type) {
	case *BinaryExpr, *UnaryExpr, *LambdaExpr:
		return false
	default:
		return true
	}
}

func formatTerm(e Expr) string {
	if isTerm(e) {
		return e.String()
	}
	return "(" + e.String() + ")"
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", formatTerm(b.Left), b.Op, formatTerm(b.Right))
}

func (u *UnaryExpr) String() string {
	if u.Op.IsPrefix() {
		return u.Op.String() + formatTerm(u.Expr)
	}
	return formatTerm(u.Expr) + u.Op.String()
}

func (c *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", formatTerm(c.Function), joinExprs(c.Args))
}

func (i *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", formatTerm(i.Array), i.Index)
}

func (r *ReferenceExpr) String() string {
	if r.TypeArgs == nil {
		return r.Path.String()
	}
	return fmt.Sprintf("%s::<%s>", r.Path, joinTypes(r.TypeArgs))
}

func (p *PublicReferenceExpr) String() string {
	return ":" + p.Name
}

func (n *NumberExpr) String() string {
	return n.Value.String()
}

func (s *StringExpr) String() string {
	return QuoteString(s.Value)
}

func (a *ArrayLiteralExpr) String() string {
	return "[" + joinExprs(a.Items) + "]"
}

func (t *TupleExpr) String() string {
	if len(t.Items) == 1 {
		return "(" + t.Items[0].String() + ",)"
	}
	return "(" + joinExprs(t.Items) + ")"
}

func (m *MatchExpr) String() string {
	arms := make([]string, len(m.Arms))
	for i, arm := range m.Arms {
		arms[i] = arm.String()
	}
	if len(arms) == 0 {
		return fmt.Sprintf("match %s { }", m.Scrutinee)
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(arms, ", "))
}

func (a MatchArm) String() string {
	return fmt.Sprintf("%s => %s", a.Pattern, a.Value)
}

func (i *IfExpr) String() string {
	return fmt.Sprintf("if %s %s else %s", i.Condition, i.Body, i.ElseBody)
}

func (b *BlockExpr) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString(b.Expr.String())
	sb.WriteString(" }")
	return sb.String()
}

func (l *LetInsideBlock) String() string {
	if l.Value == nil {
		return fmt.Sprintf("let %s;", l.Pattern)
	}
	return fmt.Sprintf("let %s = %s;", l.Pattern, l.Value)
}

func (e *ExprInsideBlock) String() string {
	return e.Expr.String() + ";"
}

func (l *LambdaExpr) String() string {
	prefix := ""
	if l.Kind != Pure {
		prefix = l.Kind.String() + " "
	}
	return fmt.Sprintf("%s|%s| %s", prefix, joinPatterns(l.Params), l.Body)
}

func (f *FreeInputExpr) String() string {
	return fmt.Sprintf("${ %s }", f.Expr)
}

// QuoteString renders s as a string literal using the escapes the scanner
// understands.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Patterns

func joinPatterns(patterns []Pattern) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func (*CatchAllPattern) String() string { return "_" }
func (*EllipsisPattern) String() string { return ".." }

func (n *NumberPattern) String() string { return n.Value.String() }
func (s *StringPattern) String() string { return QuoteString(s.Value) }

func (t *TuplePattern) String() string {
	return "(" + joinPatterns(t.Items) + ")"
}

func (a *ArrayPattern) String() string {
	return "[" + joinPatterns(a.Items) + "]"
}

func (e *EnumPattern) String() string {
	if e.Fields == nil {
		return e.Path.String()
	}
	return fmt.Sprintf("%s(%s)", e.Path, joinPatterns(e.Fields))
}

// Types

func formatTypeTerm(t Type) string {
	if _, ok := t.(*FunctionType); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func joinTypes(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = formatTypeTerm(t)
	}
	return strings.Join(parts, ", ")
}

func (f *FunctionType) String() string {
	if len(f.Params) == 0 {
		return "-> " + formatTypeTerm(f.Value)
	}
	return fmt.Sprintf("%s -> %s", joinTypes(f.Params), formatTypeTerm(f.Value))
}

func (n *NamedType) String() string {
	if n.Args == nil {
		return n.Path.String()
	}
	return fmt.Sprintf("%s<%s>", n.Path, joinTypes(n.Args))
}

func (a *ArrayType) String() string {
	if a.Length == nil {
		return formatTypeTerm(a.Base) + "[]"
	}
	return fmt.Sprintf("%s[%s]", formatTypeTerm(a.Base), a.Length)
}

func (t *TupleType) String() string {
	return "(" + joinTypes(t.Items) + ")"
}

func (v TypeVarBound) String() string {
	if len(v.Bounds) == 0 {
		return v.Name
	}
	return v.Name + ": " + strings.Join(v.Bounds, " + ")
}

func (b TypeVarBounds) String() string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func (s *TypeScheme) String() string {
	if len(s.Vars) == 0 {
		return s.Type.String()
	}
	return fmt.Sprintf("<%s> %s", s.Vars, s.Type)
}

// PIL statements

func (f *PILFile) String() string {
	var sb strings.Builder
	for _, s := range f.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *Include) String() string {
	return fmt.Sprintf("include %s;", QuoteString(s.Path))
}

func (s *Namespace) String() string {
	if s.Degree == nil {
		return fmt.Sprintf("namespace %s;", s.Name)
	}
	return fmt.Sprintf("namespace %s(%s);", s.Name, s.Degree)
}

func formatLet(name string, scheme *TypeScheme, value Expr) string {
	var sb strings.Builder
	sb.WriteString("let")
	if scheme != nil && len(scheme.Vars) > 0 {
		sb.WriteString("<" + scheme.Vars.String() + ">")
	}
	sb.WriteString(" " + name)
	if scheme != nil {
		sb.WriteString(": " + scheme.Type.String())
	}
	if value != nil {
		sb.WriteString(" = " + value.String())
	}
	sb.WriteString(";")
	return sb.String()
}

func (s *LetStatement) String() string {
	return formatLet(s.Name, s.TypeScheme, s.Value)
}

func (s *ConstantDefinition) String() string {
	return fmt.Sprintf("constant %s = %s;", s.Name, s.Value)
}

func (s *PolynomialDefinition) String() string {
	return fmt.Sprintf("pol %s = %s;", s.Name, s.Value)
}

func (s *PublicDeclaration) String() string {
	index := ""
	if s.Index != nil {
		index = "[" + s.Index.String() + "]"
	}
	return fmt.Sprintf("public %s = %s%s(%s);", s.Name, s.Polynomial.String(), index, s.Row)
}

func (n PolynomialName) String() string {
	if n.ArraySize == nil {
		return n.Name
	}
	return fmt.Sprintf("%s[%s]", n.Name, n.ArraySize)
}

func joinPolynomialNames(names []PolynomialName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

func (s *PolynomialConstantDeclaration) String() string {
	return fmt.Sprintf("pol constant %s;", joinPolynomialNames(s.Names))
}

func (s *PolynomialConstantDefinition) String() string {
	return fmt.Sprintf("pol constant %s %s;", s.Name, s.Definition)
}

func (s *PolynomialCommitDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString("pol commit ")
	if s.Stage != nil {
		sb.WriteString(fmt.Sprintf("stage(%d) ", *s.Stage))
	}
	sb.WriteString(joinPolynomialNames(s.Names))
	if s.Definition != nil {
		def := s.Definition.String()
		if !strings.HasPrefix(def, "(") {
			sb.WriteString(" ")
		}
		sb.WriteString(def)
	}
	sb.WriteString(";")
	return sb.String()
}

func (v EnumVariant) String() string {
	if v.Fields == nil {
		return v.Name
	}
	return fmt.Sprintf("%s(%s)", v.Name, joinTypes(v.Fields))
}

func (s *EnumDeclaration) String() string {
	variants := make([]string, len(s.Variants))
	for i, v := range s.Variants {
		variants[i] = v.String()
	}
	generics := ""
	if len(s.TypeVars) > 0 {
		generics = "<" + s.TypeVars.String() + ">"
	}
	if len(variants) == 0 {
		return fmt.Sprintf("enum %s%s { }", s.Name, generics)
	}
	return fmt.Sprintf("enum %s%s { %s }", s.Name, generics, strings.Join(variants, ", "))
}

// statementExpr prints e so that it cannot be mistaken for a braced
// expression list at the start of a statement.
func statementExpr(e Expr) string {
	text := e.String()
	if strings.HasPrefix(text, "{") {
		return "(" + text + ")"
	}
	return text
}

// definitionExpr wraps text that would otherwise read back as an array
// definition after "=".
func definitionExpr(e Expr) string {
	text := e.String()
	if strings.HasPrefix(text, "[") {
		return "(" + text + ")"
	}
	return text
}

func (s SelectedExpressions) String() string {
	if s.Selector == nil && len(s.Expressions) == 1 {
		return statementExpr(s.Expressions[0])
	}
	list := "{ " + joinExprs(s.Expressions) + " }"
	if s.Selector == nil {
		return list
	}
	return s.Selector.String() + " " + list
}

func (s *PlookupIdentity) String() string {
	return fmt.Sprintf("%s in %s;", s.Left, s.Right)
}

func (s *PermutationIdentity) String() string {
	return fmt.Sprintf("%s is %s;", s.Left, s.Right)
}

func (s *ConnectIdentity) String() string {
	return fmt.Sprintf("{ %s } connect { %s };", joinExprs(s.Left), joinExprs(s.Right))
}

func (s *ExpressionStatement) String() string {
	return statementExpr(s.Expr) + ";"
}

func (d *ArrayDefinition) String() string {
	return "= " + d.Value.String()
}

func (d *ExpressionDefinition) String() string {
	return "= " + definitionExpr(d.Expr)
}

func (d *QueryDefinition) String() string {
	if l, ok := d.Expr.(*LambdaExpr); ok && l.Kind == Query {
		return fmt.Sprintf("(%s) query %s", joinPatterns(l.Params), l.Body)
	}
	return "= " + definitionExpr(d.Expr)
}

func (a *ArrayValue) String() string {
	return "[" + joinExprs(a.Items) + "]"
}

func (a *RepeatedValue) String() string {
	return "[" + joinExprs(a.Items) + "]*"
}

func (a *ArrayConcat) String() string {
	return a.Left.String() + " + " + a.Right.String()
}

// Modules and machines

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}

func (m *ASMModule) String() string {
	var sb strings.Builder
	for _, s := range m.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (d *SymbolDefinition) String() string {
	switch v := d.Value.(type) {
	case *MachineDefinition:
		return v.format(d.Name)
	case *LocalModule:
		body := strings.TrimSuffix(v.Module.String(), "\n")
		if body == "" {
			return fmt.Sprintf("mod %s {\n}", d.Name)
		}
		return fmt.Sprintf("mod %s {\n%s\n}", d.Name, indent(body))
	case *ExternalModule:
		return fmt.Sprintf("mod %s;", d.Name)
	case *Import:
		if last := v.Path.Last(); !last.Super && last.Name == d.Name {
			return fmt.Sprintf("use %s;", v.Path)
		}
		return fmt.Sprintf("use %s as %s;", v.Path, d.Name)
	case *EnumDeclaration:
		return v.String()
	case *TypedExpression:
		return formatLet(d.Name, v.TypeScheme, v.Expr)
	default:
		return fmt.Sprintf("<unknown symbol %s>", d.Name)
	}
}

func (m *MachineDefinition) format(name string) string {
	var sb strings.Builder
	sb.WriteString("machine " + name)
	if len(m.Arguments.Args) > 0 {
		args := make([]string, len(m.Arguments.Args))
		for i, a := range m.Arguments.Args {
			args[i] = fmt.Sprintf("%s: %s", a.Name, a.Type)
		}
		sb.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	if !m.Properties.IsEmpty() {
		sb.WriteString(" with " + m.Properties.String())
	}
	sb.WriteString(" {\n")
	for _, s := range m.Statements {
		sb.WriteString(indent(s.String()))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (s *Submachine) String() string {
	return fmt.Sprintf("%s %s;", s.Type, s.Name)
}

func (s *RegisterDeclaration) String() string {
	if s.Flag == NoFlag {
		return fmt.Sprintf("reg %s;", s.Name)
	}
	return fmt.Sprintf("reg %s[%s];", s.Name, s.Flag)
}

func (p Param) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	if p.Index != nil {
		sb.WriteString("[" + p.Index.String() + "]")
	}
	if p.Type != nil {
		sb.WriteString(": " + p.Type.String())
	}
	return sb.String()
}

func joinParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func (p Params) String() string {
	if len(p.Outputs) == 0 {
		return joinParams(p.Inputs)
	}
	if len(p.Inputs) == 0 {
		return "-> " + joinParams(p.Outputs)
	}
	return joinParams(p.Inputs) + " -> " + joinParams(p.Outputs)
}

func (p CallableParams) String() string {
	if len(p.Outputs) == 0 {
		return joinExprs(p.Inputs)
	}
	if len(p.Inputs) == 0 {
		return "-> " + joinExprs(p.Outputs)
	}
	return joinExprs(p.Inputs) + " -> " + joinExprs(p.Outputs)
}

func (r CallableRef) String() string {
	params := r.Params.String()
	if params == "" {
		return fmt.Sprintf("%s.%s", r.Instance, r.Callable)
	}
	return fmt.Sprintf("%s.%s %s", r.Instance, r.Callable, params)
}

func (b *LocalInstructionBody) String() string {
	if len(b.Elements) == 0 {
		return "{}"
	}
	parts := make([]string, len(b.Elements))
	for i, e := range b.Elements {
		parts[i] = strings.TrimSuffix(e.String(), ";")
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (b *CallablePlookup) String() string {
	return "= " + b.Ref.String() + ";"
}

func (b *CallablePermutation) String() string {
	return "~ " + b.Ref.String() + ";"
}

func (i *Instruction) String() string {
	params := i.Params.String()
	if params == "" {
		return i.Body.String()
	}
	return params + " " + i.Body.String()
}

func (s *InstructionDeclaration) String() string {
	return fmt.Sprintf("instr %s %s", s.Name, s.Instruction.String())
}

func (s *LinkDeclaration) String() string {
	arrow := "=>"
	if s.IsPermutation {
		arrow = "~>"
	}
	return fmt.Sprintf("link %s %s %s;", s.Flag, arrow, s.Link)
}

func (s *Pil) String() string {
	return s.Statement.String()
}

func formatSignature(keyword, name, suffix string, params Params) string {
	sig := keyword + " " + name + suffix
	if p := params.String(); p != "" {
		sig += " " + p
	}
	return sig
}

func (s *FunctionDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(formatSignature("function", s.Name, "", s.Params))
	sb.WriteString(" {\n")
	for _, st := range s.Body {
		sb.WriteString(indent(st.String()))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (s *OperationDeclaration) String() string {
	id := ""
	if s.ID != nil {
		id = "<" + s.ID.String() + ">"
	}
	return formatSignature("operation", s.Name, id, s.Params) + ";"
}

func (s *AssignmentStatement) String() string {
	lhs := strings.Join(s.LHS, ", ")
	if s.Registers == nil {
		return fmt.Sprintf("%s <== %s;", lhs, s.RHS)
	}
	regs := make([]string, len(s.Registers))
	for i, r := range s.Registers {
		regs[i] = r.String()
	}
	return fmt.Sprintf("%s <= %s = %s;", lhs, strings.Join(regs, ", "), s.RHS)
}

func (s *LabelStatement) String() string {
	return s.Name + ":"
}

func (d *DebugFile) String() string {
	return fmt.Sprintf(".debug file %d %s %s;", d.ID, QuoteString(d.Directory), QuoteString(d.File))
}

func (d *DebugLoc) String() string {
	return fmt.Sprintf(".debug loc %d %d %d;", d.File, d.Line, d.Column)
}

func (d *DebugOriginalInstruction) String() string {
	return fmt.Sprintf(".debug insn %s;", QuoteString(d.Text))
}

func (s *DebugDirectiveStatement) String() string {
	return s.Directive.String()
}

func (s *ReturnStatement) String() string {
	if len(s.Values) == 0 {
		return "return;"
	}
	return "return " + joinExprs(s.Values) + ";"
}

func (s *InstructionStatement) String() string {
	if len(s.Inputs) == 0 {
		return s.Instruction + ";"
	}
	return s.Instruction + " " + joinExprs(s.Inputs) + ";"
}

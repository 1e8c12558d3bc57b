package parser

import (
	"vela/internal/ast"
	"vela/internal/scanner"
	"vela/internal/types"
)

// parseStruct parses `struct Name { fields...; fun methods()... }`. The
// struct's own name is registered against a placeholder type before its
// body is parsed so self-referential fields (`next &Node`) resolve; the
// placeholder is swapped for the canonical, sized type once every field is
// known. Fields and methods share one duplicate-name namespace.
func (p *Parser) parseStruct() *ast.StructDecl {
	tok := p.cur
	p.advance() // 'struct'
	nameTok := p.cur
	name := nameTok.Lexeme
	p.consume(scanner.IDENTIFIER, "expected a struct name")

	decl := &ast.StructDecl{Name: name}
	decl.StartPos = p.tokPos(tok)

	placeholder := &types.Type{Kind: types.Struct, Name: name}
	if prev, exists := p.pkgdefs[name]; exists {
		p.errorAtWithNote(nameTok, asNode(prev), "previously defined here", "redefinition of %q", name)
	}
	p.pkgdefs[name] = placeholder

	fields, methods, hasInit := p.parseStructBody(name, placeholder)
	decl.Fields = fields
	decl.Methods = methods

	var typeFields []types.Field
	for _, sf := range fields {
		typeFields = append(typeFields, types.Field{Name: p.interner.InternString(sf.Name), Type: sf.Type})
	}
	final := p.store.StructType(typeFields)
	final.Name = name
	final.HasInit = hasInit
	decl.Type = final
	p.pkgdefs[name] = final
	if ms, ok := p.methods[placeholder]; ok {
		p.methods[final] = ms
		delete(p.methods, placeholder)
	}
	for _, fn := range methods {
		fn.MethodOf = final
	}
	decl.Stop = p.tokPos(p.prev)
	return decl
}

// parseStructBody parses the colon-free `{ fields...; fun methods()... }`
// body shared by the `struct` keyword and a `type Name { ... }`
// struct-type expression: field groups (`a, b int`) alternate with `fun`
// method declarations, separated by ';'. name is used only for diagnostic
// text ("already defined on %q"); it may be empty for an anonymous body.
func (p *Parser) parseStructBody(name string, placeholder *types.Type) (fields []*ast.StructField, methods []*ast.Function, hasInit bool) {
	p.consume(scanner.LEFT_BRACE, "expected '{' to open a struct body")

	for !p.check(scanner.RIGHT_BRACE) && p.cur.Type != scanner.EOF {
		if p.cur.Type == scanner.SEMI {
			p.advance()
			continue
		}
		if p.check(scanner.FUN) {
			fn := p.parseFunction(placeholder)
			p.registerMethod(placeholder, name, &fields, &methods, fn)
			continue
		}

		group := p.parseFieldNameGroup()
		ftype := p.parseTypeExpr()

		var init ast.Expr
		if p.match(scanner.EQUAL) {
			p.pushTypectx(ftype)
			init = p.parseExpr(PrecComma + 1)
			p.popTypectx()
			hasInit = true
		}

		for _, nt := range group {
			if dup := fieldOrMethodNamed(fields, methods, nt.Lexeme); dup != nil {
				p.errorAtWithNote(nt, dup, "previously defined here", "%q is already defined on %q", nt.Lexeme, name)
				continue
			}
			sf := &ast.StructField{Name: nt.Lexeme, Type: ftype, Init: init}
			sf.StartPos = p.tokPos(nt)
			sf.Stop = p.tokPos(nt)
			fields = append(fields, sf)
			growPlaceholder(placeholder, ftype)
			placeholder.Fields = append(placeholder.Fields, types.Field{Name: p.interner.InternString(nt.Lexeme), Type: ftype})
		}
		if p.cur.Type == scanner.SEMI {
			p.advance()
		}
	}
	p.consume(scanner.RIGHT_BRACE, "expected '}' to close a struct body")
	return fields, methods, hasInit
}

// growPlaceholder folds one more field's layout into placeholder's running
// align/size, so a method declared partway through a struct body still sees
// an accurate receiver size-so-far when choosing this's small-receiver ABI.
func growPlaceholder(placeholder *types.Type, ftype *types.Type) {
	if ftype.Align > placeholder.Align {
		placeholder.Align = ftype.Align
	}
	placeholder.Size += ftype.Size
	if placeholder.Align > 0 {
		placeholder.Size = (placeholder.Size + placeholder.Align - 1) / placeholder.Align * placeholder.Align
	}
}

// finishStructBody parses an anonymous struct-type expression's body
// against placeholder and returns its canonicalized, sized type. Used by
// parseTypeExpr's LEFT_BRACE case, which has no ast.StructDecl to attach
// fields/methods to.
func (p *Parser) finishStructBody(placeholder *types.Type) *types.Type {
	fields, methods, hasInit := p.parseStructBody(placeholder.Name, placeholder)

	var typeFields []types.Field
	for _, sf := range fields {
		typeFields = append(typeFields, types.Field{Name: p.interner.InternString(sf.Name), Type: sf.Type})
	}
	final := p.store.StructType(typeFields)
	final.Name = placeholder.Name
	final.HasInit = hasInit
	if ms, ok := p.methods[placeholder]; ok {
		p.methods[final] = ms
		delete(p.methods, placeholder)
	}
	for _, fn := range methods {
		fn.MethodOf = final
	}
	return final
}

// parseFieldNameGroup collects the comma-separated names sharing one
// trailing type (`a, b int`).
func (p *Parser) parseFieldNameGroup() []scanner.Token {
	var names []scanner.Token
	first := p.cur
	p.consume(scanner.IDENTIFIER, "expected a field name")
	names = append(names, first)
	for p.check(scanner.COMMA) {
		save := p.cur
		p.advance()
		if !p.check(scanner.IDENTIFIER) {
			// Not another name in this group: rewind is unavailable with a
			// one-token scanner, so a bare trailing comma here is reported
			// rather than silently accepted.
			p.errorAt(save, "expected a field name after ','")
			break
		}
		nt := p.cur
		p.advance()
		names = append(names, nt)
	}
	return names
}

// fieldOrMethodNamed returns whichever of fields/methods already carries
// name, or nil.
func fieldOrMethodNamed(fields []*ast.StructField, methods []*ast.Function, name string) ast.Node {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	for _, m := range methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// registerMethod enforces the collision rule shared by fields and methods:
// a struct's fields and methods occupy one namespace, and a diagnostic note
// points back at whichever definition came first.
func (p *Parser) registerMethod(receiver *types.Type, name string, fields *[]*ast.StructField, methods *[]*ast.Function, fn *ast.Function) {
	if p.methods[receiver] == nil {
		p.methods[receiver] = make(map[string]*ast.Function)
	}
	if dup, exists := p.methods[receiver][fn.Name]; exists {
		p.errorAtWithNote(p.prev, dup, "previously defined here", "method %q already defined on %q", fn.Name, name)
		return
	}
	if dup := fieldOrMethodNamed(*fields, nil, fn.Name); dup != nil {
		p.errorAtWithNote(p.prev, dup, "previously defined here", "%q is already a field of %q", fn.Name, name)
		return
	}
	p.methods[receiver][fn.Name] = fn
	*methods = append(*methods, fn)
}

// parseStructLiteral parses `Name { field: value, ... }` once
// parseIdentPrimary has determined name resolves to a struct type.
func (p *Parser) parseStructLiteral(tok scanner.Token, name string) exprNode {
	p.advance() // '{'
	st, _ := p.pkgdefs[name].(*types.Type)

	var fields []*ast.StructLiteralField
	for !p.check(scanner.RIGHT_BRACE) && p.cur.Type != scanner.EOF {
		fnameTok := p.cur
		p.consume(scanner.IDENTIFIER, "expected a field name in a struct literal")

		var value ast.Expr
		if p.match(scanner.COLON) {
			ft := p.universe.Void
			if st != nil {
				for _, f := range st.Fields {
					if p.interner.String(f.Name) == fnameTok.Lexeme {
						ft = f.Type
					}
				}
			}
			p.pushTypectx(ft)
			value = p.parseExpr(PrecComma + 1)
			p.popTypectx()
		}
		lf := &ast.StructLiteralField{Name: fnameTok.Lexeme, Value: value}
		lf.StartPos = p.tokPos(fnameTok)
		lf.Stop = p.tokPos(p.prev)
		fields = append(fields, lf)
		if !p.match(scanner.COMMA) {
			break
		}
	}
	p.consume(scanner.RIGHT_BRACE, "expected '}' to close a struct literal")

	sl := &ast.StructLiteralExpr{Name: name, Fields: fields}
	sl.StartPos = p.tokPos(tok)
	sl.Stop = p.tokPos(p.prev)
	sl.SetRValue(true)
	if st != nil {
		sl.Type = st
	} else {
		p.errorAt(tok, "undeclared struct type %q", name)
		sl.Type = p.universe.Void
	}
	return sl
}

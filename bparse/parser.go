// Package bparse turns a lex.Event stream into a node.Dict, implementing
// the arity-driven node creation rules barser.c's bsParse encodes in its
// BS_GOT_BLOCK/BS_GOT_ENDVAL/BS_GOT_ARRAY/BS_END_ARRAY switch. It owns the
// token cache and the node stack; lex owns tokenization and node owns tree
// mutation.
package bparse

import (
	"bytes"

	"github.com/wowczarek/barser/bserr"
	"github.com/wowczarek/barser/chartable"
	"github.com/wowczarek/barser/lex"
	"github.com/wowczarek/barser/node"
)

// modifiers maps a statement-leading "name:" token to the inheritable flag
// it sets on the statement's top-most node. Only "inactive:" is specified
// initially; more can be added here without touching the arity logic.
var modifiers = map[string]node.Flags{
	"inactive": node.Inactive,
}

type cachedToken struct {
	text   []byte
	quoted bool
}

// Parser drives a node.Dict from a byte buffer. It is single-use: create
// one per parse.
type Parser struct {
	dict *node.Dict
	lx   *lex.Lexer

	head  *node.Node
	stack []*node.Node

	tokens    []cachedToken
	stmtFlags node.Flags

	sawModifier bool
}

// New returns a Parser that will build into dict from buf. dict should be
// freshly created (an empty root) — Parse does not clear any existing tree.
func New(dict *node.Dict, buf []byte) *Parser {
	return &Parser{
		dict: dict,
		lx:   lex.New(buf),
		head: dict.Root(),
	}
}

// Parse scans buf and builds its tree into dict, freezing dict on success
// (a no-op unless dict was created with node.ReadOnly). On error the
// dictionary is left exactly as far as parsing got: everything already
// inserted remains structurally valid.
func Parse(dict *node.Dict, buf []byte) error {
	if dict == nil {
		return bserr.New(bserr.Null, nil, "")
	}
	p := New(dict, buf)
	if err := p.run(); err != nil {
		return err
	}
	dict.Freeze()
	return nil
}

func (p *Parser) run() error {
	for {
		ev, err := p.lx.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case lex.EOF:
			return p.gotEOF(ev.Pos)
		case lex.Token:
			p.gotToken(ev)
		case lex.EndVal:
			if _, err := p.gotEndVal(ev.Pos, false); err != nil {
				return err
			}
		case lex.Block:
			if err := p.gotBlock(ev.Pos); err != nil {
				return err
			}
		case lex.EndBlock:
			if err := p.gotEndBlock(ev.Pos); err != nil {
				return err
			}
		case lex.Array:
			if err := p.gotArray(ev.Pos); err != nil {
				return err
			}
		case lex.EndArray:
			if err := p.gotEndArray(ev.Pos); err != nil {
				return err
			}
		}
	}
}

// gotToken appends a scanned token to the cache, absorbing it instead as a
// statement modifier (e.g. "inactive:") when it is the first token of the
// statement and matches a known modifier name.
func (p *Parser) gotToken(ev lex.Event) {
	if len(p.tokens) == 0 && !p.sawModifier && !ev.Quoted && bytes.HasSuffix(ev.Text, []byte{':'}) {
		name := string(ev.Text[:len(ev.Text)-1])
		if flag, ok := modifiers[name]; ok {
			p.stmtFlags |= flag
			p.sawModifier = true
			return
		}
	}
	p.tokens = append(p.tokens, cachedToken{text: ev.Text, quoted: ev.Quoted})
}

func (p *Parser) resetStatement() {
	p.tokens = p.tokens[:0]
	p.stmtFlags = 0
	p.sawModifier = false
}

func (p *Parser) push(n *node.Node) { p.stack = append(p.stack, n) }

func (p *Parser) pop() (*node.Node, bool) {
	if len(p.stack) == 0 {
		return nil, false
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return top, true
}

// create is the shared node-creation helper: it builds one node and ORs in
// the QUOTED_NAME/QUOTED_VALUE self flags for whichever of name/value came
// from a quoted token. It never overwrites inheritable flags that createNode
// already derived from the parent.
func (p *Parser) create(parent *node.Node, typ node.Type, name, value []byte, qName, qValue bool) (*node.Node, error) {
	n, err := p.dict.CreateNode(parent, typ, name, value)
	if err != nil {
		return nil, err
	}
	var f node.Flags
	if qName {
		f |= node.QuotedName
	}
	if qValue {
		f |= node.QuotedValue
	}
	if f != 0 {
		n.SetSelfFlags(f)
	}
	return n, nil
}

// getOrCreateInstance implements the "reuse (if not present)" rule shared by
// BLOCK_BEGIN and ARRAY_BEGIN: probe head for an existing child named
// tok, reuse it (updating only its QUOTED_NAME flag) or create a fresh
// INSTANCE, leaving its type and descendants untouched either way.
func (p *Parser) getOrCreateInstance(head *node.Node, tok cachedToken) (*node.Node, error) {
	if existing := p.dict.GetChild(head, tok.text); existing != nil {
		if tok.quoted {
			existing.SetSelfFlags(node.QuotedName)
		}
		return existing, nil
	}
	return p.create(head, node.Instance, tok.text, nil, tok.quoted, false)
}

func (p *Parser) flushArrayTokens(head *node.Node) error {
	for _, t := range p.tokens {
		if _, err := p.create(head, node.Leaf, nil, t.text, false, t.quoted); err != nil {
			return err
		}
	}
	return nil
}

// gotBlock handles BLOCK_BEGIN, §4.2's block-begin arity table.
func (p *Parser) gotBlock(pos lex.Pos) error {
	head := p.head
	defer p.resetStatement()

	if head.Type() == node.Array {
		if err := p.flushArrayTokens(head); err != nil {
			return err
		}
		p.push(head)
		nb, err := p.create(head, node.Branch, nil, nil, false, false)
		if err != nil {
			return err
		}
		p.head = nb
		return nil
	}

	toks := p.tokens
	switch len(toks) {
	case 0:
		if head != p.dict.Root() || len(p.stack) != 0 {
			return bserr.New(bserr.ExpID, pos, "")
		}
		p.push(head)
		// head stays ROOT: an "imaginary descent" that only balances the
		// matching BLOCK_END's pop.
		return nil

	case 1:
		p.push(head)
		nb, err := p.create(head, node.Branch, toks[0].text, nil, toks[0].quoted, false)
		if err != nil {
			return err
		}
		nb.SetInheritableFlags(p.stmtFlags)
		p.head = nb
		return nil

	case 2:
		inst, err := p.getOrCreateInstance(head, toks[0])
		if err != nil {
			return err
		}
		p.push(head)
		nb, err := p.create(inst, node.Branch, toks[1].text, nil, toks[1].quoted, false)
		if err != nil {
			return err
		}
		nb.SetInheritableFlags(p.stmtFlags)
		p.head = nb
		return nil

	case 3:
		inst0, err := p.getOrCreateInstance(head, toks[0])
		if err != nil {
			return err
		}
		inst1, err := p.getOrCreateInstance(inst0, toks[1])
		if err != nil {
			return err
		}
		p.push(head)
		nb, err := p.create(inst1, node.Branch, toks[2].text, nil, toks[2].quoted, false)
		if err != nil {
			return err
		}
		nb.SetInheritableFlags(p.stmtFlags)
		p.head = nb
		return nil

	default:
		return bserr.New(bserr.Tokens, pos, "too many consecutive identifiers before '{'")
	}
}

// gotEndBlock handles BLOCK_END: pending tokens fall through to the ENDVAL
// rules, then the stack is popped regardless.
func (p *Parser) gotEndBlock(pos lex.Pos) error {
	if len(p.tokens) > 0 {
		if _, err := p.gotEndVal(pos, true); err != nil {
			return err
		}
	}
	top, ok := p.pop()
	if !ok {
		return bserr.New(bserr.Level, pos, "unbalanced '}'")
	}
	p.head = top
	return nil
}

// gotEndVal handles ENDVAL (and, when fromBlockEnd, the BLOCK_END
// fallthrough), §4.2's endval arity table. It returns the statement's
// top-most created node (nil when nothing was created); run and
// gotEndBlock use only the error.
func (p *Parser) gotEndVal(pos lex.Pos, fromBlockEnd bool) (*node.Node, error) {
	head := p.head
	defer p.resetStatement()
	toks := p.tokens

	if head.Type() == node.Array {
		switch len(toks) {
		case 0:
			return nil, nil
		case 1:
			return p.create(head, node.Leaf, nil, toks[0].text, false, toks[0].quoted)
		case 2:
			return p.create(head, node.Leaf, nil, toks[1].text, false, toks[1].quoted)
		default:
			return nil, bserr.New(bserr.Tokens, pos, "too many tokens in array element")
		}
	}

	switch {
	case len(toks) == 0:
		return nil, nil

	case len(toks) == 1:
		n, err := p.create(head, node.Leaf, toks[0].text, nil, toks[0].quoted, false)
		if err != nil {
			return nil, err
		}
		n.SetInheritableFlags(p.stmtFlags)
		return n, nil

	case len(toks) == 2:
		n, err := p.create(head, node.Leaf, toks[0].text, toks[1].text, toks[0].quoted, toks[1].quoted)
		if err != nil {
			return nil, err
		}
		n.SetInheritableFlags(p.stmtFlags)
		return n, nil

	case len(toks) == 3:
		inst, err := p.create(head, node.Instance, toks[0].text, nil, toks[0].quoted, false)
		if err != nil {
			return nil, err
		}
		br, err := p.create(inst, node.Branch, toks[1].text, nil, toks[1].quoted, false)
		if err != nil {
			return nil, err
		}
		if _, err := p.create(br, node.Leaf, toks[2].text, nil, toks[2].quoted, false); err != nil {
			return nil, err
		}
		inst.SetInheritableFlags(p.stmtFlags)
		return inst, nil

	case len(toks) == 4:
		inst, err := p.create(head, node.Instance, toks[0].text, nil, toks[0].quoted, false)
		if err != nil {
			return nil, err
		}
		br, err := p.create(inst, node.Branch, toks[1].text, nil, toks[1].quoted, false)
		if err != nil {
			return nil, err
		}
		if _, err := p.create(br, node.Leaf, toks[2].text, toks[3].text, toks[2].quoted, toks[3].quoted); err != nil {
			return nil, err
		}
		inst.SetInheritableFlags(p.stmtFlags)
		return inst, nil

	case len(toks) > chartable.MaxTokens:
		return nil, bserr.New(bserr.Tokens, pos, "too many consecutive identifiers")

	default:
		br, err := p.create(head, node.Branch, toks[0].text, nil, toks[0].quoted, false)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(toks); i++ {
			name := toks[i]
			var value cachedToken
			haveValue := i+1 < len(toks)
			if haveValue {
				value = toks[i+1]
			}
			vtext, vquoted := []byte(nil), false
			if haveValue {
				vtext, vquoted = value.text, value.quoted
			}
			if _, err := p.create(br, node.Leaf, name.text, vtext, name.quoted, vquoted); err != nil {
				return nil, err
			}
			if haveValue {
				i++
			}
		}
		br.SetInheritableFlags(p.stmtFlags)
		return br, nil
	}
}

// gotArray handles ARRAY_BEGIN, mirroring gotBlock but creating ARRAY nodes
// and, unlike BLOCK_BEGIN, treating k=0 as an error rather than a root
// wrapper — there is no "anonymous top-level array" shorthand.
func (p *Parser) gotArray(pos lex.Pos) error {
	head := p.head
	defer p.resetStatement()

	if head.Type() == node.Array {
		if err := p.flushArrayTokens(head); err != nil {
			return err
		}
		p.push(head)
		na, err := p.create(head, node.Array, nil, nil, false, false)
		if err != nil {
			return err
		}
		p.head = na
		return nil
	}

	toks := p.tokens
	switch len(toks) {
	case 0:
		return bserr.New(bserr.ExpID, pos, "expected identifier before '['")

	case 1:
		p.push(head)
		na, err := p.create(head, node.Array, toks[0].text, nil, toks[0].quoted, false)
		if err != nil {
			return err
		}
		na.SetInheritableFlags(p.stmtFlags)
		p.head = na
		return nil

	case 2:
		inst, err := p.getOrCreateInstance(head, toks[0])
		if err != nil {
			return err
		}
		p.push(head)
		na, err := p.create(inst, node.Array, toks[1].text, nil, toks[1].quoted, false)
		if err != nil {
			return err
		}
		na.SetInheritableFlags(p.stmtFlags)
		p.head = na
		return nil

	case 3:
		inst0, err := p.getOrCreateInstance(head, toks[0])
		if err != nil {
			return err
		}
		inst1, err := p.getOrCreateInstance(inst0, toks[1])
		if err != nil {
			return err
		}
		p.push(head)
		na, err := p.create(inst1, node.Array, toks[2].text, nil, toks[2].quoted, false)
		if err != nil {
			return err
		}
		na.SetInheritableFlags(p.stmtFlags)
		p.head = na
		return nil

	default:
		return bserr.New(bserr.Tokens, pos, "too many consecutive identifiers before '['")
	}
}

// gotEndArray handles ARRAY_END: any pending tokens flush as anonymous
// LEAF values, then the stack pops. Hitting it outside an array is an
// error, since nothing pushed a matching ARRAY_BEGIN.
func (p *Parser) gotEndArray(pos lex.Pos) error {
	defer p.resetStatement()

	if p.head.Type() != node.Array {
		return bserr.New(bserr.Block, pos, "unexpected ']'")
	}
	if err := p.flushArrayTokens(p.head); err != nil {
		return err
	}
	top, ok := p.pop()
	if !ok {
		return bserr.New(bserr.Level, pos, "unbalanced ']'")
	}
	p.head = top
	return nil
}

// gotEOF implements §4.9's termination check: pending tokens are an EOF
// error; otherwise head must be back at ROOT with an empty stack.
func (p *Parser) gotEOF(pos lex.Pos) error {
	if len(p.tokens) > 0 {
		return bserr.New(bserr.EOF, pos, "unexpected end of input, statement not terminated")
	}
	if p.head != p.dict.Root() || len(p.stack) != 0 {
		return bserr.New(bserr.Level, pos, "unbalanced bracket(s) found")
	}
	return nil
}

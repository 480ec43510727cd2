package highlighter

import "github.com/yaklabco/gomdhl/pkg/tokentree"

type piece struct {
	scope string
	text  string
}

// group is a run of pieces rendered under one top-level scope.
type group struct {
	scope string
	parts []piece
}

func (g *group) add(p piece) {
	if n := len(g.parts); n > 0 && g.parts[n-1].scope == p.scope {
		g.parts[n-1].text += p.text
		return
	}
	g.parts = append(g.parts, p)
}

// groupPieces merges adjacent pieces with the same scope. Escapes and
// interpolations between two string pieces join the string's group.
func groupPieces(pieces []piece) []*group {
	var groups []*group
	var cur *group
	for i, p := range pieces {
		switch {
		case cur != nil && cur.scope == p.scope:
			cur.add(p)
		case cur != nil && cur.scope == "string" && nestsInString(p.scope) && nextScope(pieces, i) == "string":
			cur.add(p)
		default:
			cur = &group{scope: p.scope}
			cur.add(p)
			groups = append(groups, cur)
		}
	}
	return groups
}

// nextScope returns the scope of the first piece after i that is not itself
// nested in strings.
func nextScope(pieces []piece, i int) string {
	for _, p := range pieces[i+1:] {
		if !nestsInString(p.scope) {
			return p.scope
		}
	}
	return ""
}

func buildTree(pieces []piece) (*tokentree.Tree, error) {
	b := tokentree.NewBuilder()
	for _, g := range groupPieces(pieces) {
		if g.scope == "" {
			for _, p := range g.parts {
				b.AddText(p.text)
			}
			continue
		}
		b.Open(g.scope)
		for _, p := range g.parts {
			if p.scope == g.scope {
				b.AddText(p.text)
				continue
			}
			b.Open(p.scope).AddText(p.text).Close()
		}
		b.Close()
	}
	return b.Finish()
}

package term

import "fmt"

// Lambda is a binder λ(name : Domain). Body, with Body's de Bruijn index 0
// referring to the bound variable.
type Lambda struct {
	Name   string
	Info   BinderInfo
	Domain Term
	Body   Term
}

func (*Lambda) isTerm()          {}
func (l *Lambda) String() string { return fmt.Sprintf("λ(%s:%s).%s", l.Name, l.Domain, l.Body) }

// Pi is a dependent function type Π(name : Domain). Body.
type Pi struct {
	Name   string
	Info   BinderInfo
	Domain Term
	Body   Term
}

func (*Pi) isTerm()          {}
func (p *Pi) String() string { return fmt.Sprintf("Π(%s:%s).%s", p.Name, p.Domain, p.Body) }

// App is a unary application Fn Arg; n-ary application is represented as
// nested Apps (see UnfoldApp/FoldApp).
type App struct {
	Fn  Term
	Arg Term
}

func (*App) isTerm()          {}
func (a *App) String() string { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }

// UnfoldApp decomposes a (possibly nested) application into its head and
// its arguments in application order, i.e. t = head arg[0] arg[1] ... .
func UnfoldApp(t Term) (head Term, args []Term) {
	var rev []Term
	for {
		a, ok := t.(*App)
		if !ok {
			return t, reverseTerms(rev)
		}
		rev = append(rev, a.Arg)
		t = a.Fn
	}
}

func reverseTerms(ts []Term) []Term {
	for i, j := 0, len(ts)-1; i < j; i, j = i+1, j-1 {
		ts[i], ts[j] = ts[j], ts[i]
	}
	return ts
}

// FoldApp rebuilds head applied to args in order.
func FoldApp(head Term, args ...Term) Term {
	t := head
	for _, a := range args {
		t = &App{Fn: t, Arg: a}
	}
	return t
}

// Cons returns a list consisting of car as head and cdr as tail, using the
// macro node with tag "list.cons" — a convenience constructor, not a
// primitive the engine gives any meaning to.
func Cons(car, cdr Term) Term {
	return &Macro{Tag: "list.cons", Children: []Term{car, cdr}}
}

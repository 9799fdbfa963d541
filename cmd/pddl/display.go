package main

import (
	"fmt"
	"io"

	"github.com/pddl-lang/pddl/runtime/model"
)

// displaySummary prints a human-readable overview of the extracted model.
func displaySummary(w io.Writer, doc *document) {
	if doc.Domain != nil {
		displayDomainSummary(w, doc.Domain)
	}
	if doc.Problem != nil {
		displayProblemSummary(w, doc.Problem)
	}
}

func displayDomainSummary(w io.Writer, d *model.Domain) {
	fmt.Fprintf(w, "Domain: %s\n", orUntitled(d.Name()))

	if reqs := d.Requirements(); len(reqs) > 0 {
		fmt.Fprintf(w, "  Requirements: %d\n", len(reqs))
		for _, r := range reqs {
			fmt.Fprintf(w, "    %s\n", r)
		}
	}

	if types := d.Types(); len(types) > 0 {
		fmt.Fprintf(w, "  Types: %d\n", len(types))
		for _, e := range d.TypeGraph().Edges() {
			fmt.Fprintf(w, "    %s -> %s\n", e.Child, e.Parent)
		}
	}

	if consts := d.Constants().Names(); len(consts) > 0 {
		fmt.Fprintf(w, "  Constants: %d\n", len(consts))
	}

	if preds := d.Predicates(); len(preds) > 0 {
		fmt.Fprintf(w, "  Predicates: %d\n", len(preds))
		for _, p := range preds {
			fmt.Fprintf(w, "    %s\n", signatureLine(p))
		}
	}

	if funcs := d.Functions(); len(funcs) > 0 {
		fmt.Fprintf(w, "  Functions: %d\n", len(funcs))
		for _, f := range funcs {
			fmt.Fprintf(w, "    %s\n", signatureLine(f))
		}
	}

	if derived := d.Derived(); len(derived) > 0 {
		fmt.Fprintf(w, "  Derived predicates: %d\n", len(derived))
		for _, dv := range derived {
			fmt.Fprintf(w, "    %s\n", orUntitled(dv.Name))
		}
	}

	if actions := d.Actions(); len(actions) > 0 {
		fmt.Fprintf(w, "  Actions: %d\n", len(actions))
		for _, a := range actions {
			fmt.Fprintf(w, "    %s%s\n", orUntitled(a.Name), actionSuffix(a))
		}
	}

	for _, proc := range d.Processes() {
		fmt.Fprintf(w, "  Process: %s\n", orUntitled(proc.Name))
	}
	for _, ev := range d.Events() {
		fmt.Fprintf(w, "  Event: %s\n", orUntitled(ev.Name))
	}

	if cons := d.Constraints(); len(cons) > 0 {
		fmt.Fprintf(w, "  Constraints: %d\n", len(cons))
	}
}

func displayProblemSummary(w io.Writer, p *model.Problem) {
	fmt.Fprintf(w, "Problem: %s\n", orUntitled(p.Name()))
	if p.DomainName() != "" {
		fmt.Fprintf(w, "  Domain: %s\n", p.DomainName())
	}

	if reqs := p.Requirements(); len(reqs) > 0 {
		fmt.Fprintf(w, "  Requirements: %d\n", len(reqs))
	}
	if objs := p.Objects().Names(); len(objs) > 0 {
		fmt.Fprintf(w, "  Objects: %d\n", len(objs))
	}
	if p.Init() != nil {
		fmt.Fprintln(w, "  Init: present")
	}
	if p.Goal() != nil {
		fmt.Fprintln(w, "  Goal: present")
	}
	if p.Metric() != nil {
		fmt.Fprintln(w, "  Metric: present")
	}
	if cons := p.Constraints(); len(cons) > 0 {
		fmt.Fprintf(w, "  Constraints: %d\n", len(cons))
	}
}

// displayDiagnostics prints every recovered finding for one document and
// returns the count.
func displayDiagnostics(w io.Writer, doc *document) int {
	findings := 0

	for _, e := range doc.Tree.BracketErrors(doc.Index) {
		fmt.Fprintf(w, "%s: error: %s\n", doc.Path, e.Error())
		findings++
	}

	var warnings []model.Warning
	if doc.Domain != nil {
		warnings = doc.Domain.Warnings()
	}
	if doc.Problem != nil {
		warnings = doc.Problem.Warnings()
	}
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s:%d:%d: warning: %s\n",
			doc.Path, warn.Range.Start.Line, warn.Range.Start.Column, warn.Message)
		if warn.Suggestion != "" {
			fmt.Fprintf(w, "  hint: %s\n", warn.Suggestion)
		}
		findings++
	}

	if findings == 0 {
		fmt.Fprintf(w, "%s: ok\n", doc.Path)
	}
	return findings
}

func signatureLine(v model.Variable) string {
	line := orUntitled(v.Name)
	for _, p := range v.Parameters {
		if p.Type != "" {
			line += fmt.Sprintf(" ?%s:%s", p.Name, p.Type)
			continue
		}
		line += " ?" + p.Name
	}
	return line
}

func actionSuffix(a *model.Action) string {
	if a.Kind == model.ActionDurative {
		return " (durative)"
	}
	return ""
}

func orUntitled(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}

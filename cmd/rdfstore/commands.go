package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/rdfstore/internal/loader"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Insert a sample employee dataset and run a few queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout(), app)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <file.nq>",
	Short: "Load an N-Quads file, then optionally query it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		q := termQuery{}
		q.subject, _ = cmd.Flags().GetString("subject")
		q.predicate, _ = cmd.Flags().GetString("predicate")
		q.object, _ = cmd.Flags().GetString("object")
		q.graph, _ = cmd.Flags().GetString("graph")

		return runLoad(cmd.OutOrStdout(), app, f, q)
	},
}

func runDemo(w io.Writer, a *App) error {
	d := a.Datatypes
	var litErr error
	str := func(v string) rdf.Node {
		term, err := rdf.Serialize(d, v)
		litErr = errors.Join(litErr, err)
		return rdf.NewLiteralNode(term)
	}
	u64 := func(v uint64) rdf.Node {
		term, err := rdf.Serialize(d, v)
		litErr = errors.Join(litErr, err)
		return rdf.NewLiteralNode(term)
	}

	hasName := rdf.NewPredicate("iri://properties/name")
	department := rdf.NewPredicate("iri://properties/department")
	salary := rdf.NewPredicate("iri://properties/salary")

	emp001 := rdf.NewIRINode("iri://database/employees/001")
	emp002 := rdf.NewIRINode("iri://database/employees/002")
	emp003 := rdf.NewIRINode("iri://database/employees/003")
	engineering := rdf.NewIRINode("iri://database/departments/engineering")
	sales := rdf.NewIRINode("iri://database/departments/sales")

	statements := []store.Statement{
		{Subject: emp001, Predicate: hasName, Object: str("Amartya Datta Gupta")},
		{Subject: emp001, Predicate: department, Object: engineering},
		{Subject: emp001, Predicate: salary, Object: u64(100000)},
		{Subject: emp002, Predicate: hasName, Object: str("Bob Bob")},
		{Subject: emp002, Predicate: department, Object: sales},
		{Subject: emp002, Predicate: salary, Object: u64(80000)},
		{Subject: emp003, Predicate: hasName, Object: str("Hal Lah")},
		{Subject: emp003, Predicate: department, Object: engineering},
		{Subject: emp003, Predicate: salary, Object: u64(30000)},
	}
	if litErr != nil {
		return litErr
	}

	triples, err := a.Store.InsertTriples(statements)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s triples\n\n", color.GreenString("inserted"), color.CyanString("%d", len(triples)))

	emp := triples[0]
	dept := triples[1]
	queries := []struct {
		title  string
		filter store.QueryFilter
	}{
		{"everything about employee 001", store.QueryFilter{Subject: store.ID(emp.Subject)}},
		{"department of employee 001", store.QueryFilter{Subject: store.ID(emp.Subject), Predicate: store.ID(dept.Predicate)}},
		{"who works in engineering", store.QueryFilter{Predicate: store.ID(dept.Predicate), Object: store.ID(dept.Object)}},
		{"everything pointing at sales", store.QueryFilter{Object: store.ID(triples[4].Object)}},
	}
	for _, q := range queries {
		if err := printQuery(w, a, q.title, q.filter); err != nil {
			return err
		}
	}

	// A filter with only a predicate bound is rejected.
	_, err = a.Store.Query(store.QueryFilter{Predicate: store.ID(dept.Predicate)})
	fmt.Fprintf(w, "%s %v\n", color.YellowString("predicate-only query:"), err)
	return nil
}

// termQuery is a pattern given as IRIs; empty positions are unbound
type termQuery struct {
	subject, predicate, object, graph string
}

func (q termQuery) empty() bool {
	return q.subject == "" && q.predicate == "" && q.object == ""
}

var errUnknownTerm = errors.New("term not in store")

func runLoad(w io.Writer, a *App, r io.Reader, q termQuery) error {
	ns := loader.NewNamespaces()
	res, err := loader.Load(r, a.Store, ns, a.Datatypes)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s triples into %s namespaces\n\n",
		color.GreenString("loaded"),
		color.CyanString("%d", len(res.Triples)),
		color.CyanString("%d", len(ns.Labels())),
	)

	if q.empty() {
		return nil
	}

	filter, err := buildFilter(a.Store, ns, q)
	if errors.Is(err, errUnknownTerm) {
		fmt.Fprintf(w, "%s %v\n", color.YellowString("no results:"), err)
		return nil
	}
	if err != nil {
		return err
	}
	return printQuery(w, a, "query", filter)
}

func buildFilter(st *store.QuadStore, ns *loader.Namespaces, q termQuery) (store.QueryFilter, error) {
	var filter store.QueryFilter

	namespace, ok := ns.Lookup(q.graph)
	if !ok {
		return filter, fmt.Errorf("%w: graph %s", errUnknownTerm, q.graph)
	}
	filter.Namespace = namespace

	node := func(iri string) (*uint64, error) {
		if iri == "" {
			return nil, nil
		}
		id, found, err := st.LookupNode(rdf.NewIRINode(iri))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: <%s>", errUnknownTerm, iri)
		}
		return store.ID(id), nil
	}

	var err error
	if filter.Subject, err = node(q.subject); err != nil {
		return filter, err
	}
	if filter.Object, err = node(q.object); err != nil {
		return filter, err
	}
	if q.predicate != "" {
		id, found, err := st.LookupPredicate(rdf.NewPredicate(q.predicate))
		if err != nil {
			return filter, err
		}
		if !found {
			return filter, fmt.Errorf("%w: <%s>", errUnknownTerm, q.predicate)
		}
		filter.Predicate = store.ID(id)
	}
	return filter, nil
}

func printQuery(w io.Writer, a *App, title string, filter store.QueryFilter) error {
	fmt.Fprintf(w, "%s %s\n\n", color.CyanString("## %s", title), color.New(color.Faint).Sprintf("(%s)", filter.Pattern()))

	triples, err := a.Store.Query(filter)
	if err != nil {
		return err
	}
	out, err := formatTriples(a, triples)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

// formatTriples resolves triples back to terms and renders them as a markdown table
func formatTriples(a *App, triples []store.Triple) (string, error) {
	if len(triples) == 0 {
		return "_No rows_\n", nil
	}

	var sb strings.Builder
	table := tablewriter.NewTable(&sb,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"namespace", "subject", "predicate", "object"})

	for _, t := range triples {
		s, p, o, err := a.Store.Resolve(t)
		if err != nil {
			return "", err
		}
		if err := table.Append([]string{
			strconv.FormatUint(t.Namespace, 10),
			formatNode(a.Datatypes, s),
			p.String(),
			formatNode(a.Datatypes, o),
		}); err != nil {
			return "", err
		}
	}
	if err := table.Render(); err != nil {
		return "", err
	}

	fmt.Fprintf(&sb, "\n_%d rows_\n", len(triples))
	return sb.String(), nil
}

// formatNode writes literals in N-Triples form when their datatype is known
func formatNode(d *rdf.Datatypes, n rdf.Node) string {
	lit, ok := n.Literal()
	if !ok {
		return n.String()
	}
	iri, lexical, err := d.FormatLexical(lit)
	if err != nil || iri == "" {
		return n.String()
	}
	return fmt.Sprintf("%s^^<%s>", strconv.Quote(lexical), iri)
}

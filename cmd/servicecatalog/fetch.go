package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolbeans/servicecatalog/pkg/fetch"
	"github.com/coolbeans/servicecatalog/pkg/rdf"
	"github.com/coolbeans/servicecatalog/pkg/vocabulary"
)

// fetchProfiles are the option sets the fetch command can apply.
var fetchProfiles = map[string]func() fetch.Options{
	"concept":           fetch.ConceptOptions,
	"concept-snapshot":  fetch.ConceptSnapshotOptions,
	"instance":          fetch.InstanceOptions,
	"instance-snapshot": fetch.InstanceSnapshotOptions,
	"none":              func() fetch.Options { return fetch.Options{} },
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print the closure of a set of roots in a graph",
		Long: `Fetch loads everything reachable from the given roots in one graph and
prints it as Turtle or N-Quads.

Examples:
  servicecatalog fetch --graph http://mu.semte.ch/graphs/public \
    --root https://ipdc.tni-vlaanderen.be/id/concept/1502 --profile concept
  servicecatalog fetch --graph http://example.org/g --root http://example.org/s --format nquads --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, _ := cmd.Flags().GetString("graph")
			roots, _ := cmd.Flags().GetStringArray("root")
			profile, _ := cmd.Flags().GetString("profile")
			stopAt, _ := cmd.Flags().GetStringArray("stop-at")
			format, _ := cmd.Flags().GetString("format")
			showStats, _ := cmd.Flags().GetBool("stats")

			if graph == "" {
				return fmt.Errorf("--graph is required")
			}
			if len(roots) == 0 {
				return fmt.Errorf("at least one --root is required")
			}
			newOptions, ok := fetchProfiles[profile]
			if !ok {
				return fmt.Errorf("unknown profile %q", profile)
			}
			if format != "turtle" && format != "nquads" {
				return fmt.Errorf("unknown format %q (expected turtle or nquads)", format)
			}

			application, err := newApp(cmd)
			if err != nil {
				return err
			}

			options := newOptions()
			options.StopAt = append(options.StopAt, stopAt...)
			rootTerms := make([]rdf.Term, 0, len(roots))
			for _, root := range roots {
				rootTerms = append(rootTerms, rdf.IRI(root))
			}

			quads, report, err := application.fetcher.FetchWithReport(cmd.Context(), graph, rootTerms, options)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", graph, err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "nquads":
				fmt.Fprint(out, rdf.NQuads(quads))
			default:
				serializer := rdf.NewTurtleSerializer(rdf.WithPrefixes(vocabulary.Prefixes()))
				fmt.Fprint(out, serializer.Serialize(quads))
			}
			if showStats {
				fmt.Fprint(cmd.ErrOrStderr(), report.String())
			}
			return nil
		},
	}

	cmd.Flags().StringP("graph", "g", "", "Graph to fetch from")
	cmd.Flags().StringArrayP("root", "r", nil, "Root IRI (repeatable)")
	cmd.Flags().StringP("profile", "p", "none", "Fetch profile: concept, concept-snapshot, instance, instance-snapshot, none")
	cmd.Flags().StringArray("stop-at", nil, "Extra predicate whose objects are not expanded (repeatable)")
	cmd.Flags().StringP("format", "f", "turtle", "Output format: turtle, nquads")
	cmd.Flags().Bool("stats", false, "Print a fetch report to stderr")

	return cmd
}

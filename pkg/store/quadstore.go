package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/coolbeans/servicecatalog/pkg/rdf"
)

// ErrInvalidQuad is returned when a quad without subject, predicate or object
// is written.
var ErrInvalidQuad = errors.New("quad components cannot be empty")

// ErrGraphRequired is returned when a graph-scoped operation is called
// without a graph.
var ErrGraphRequired = errors.New("graph is required")

// graphIndex holds the three indexes of one named graph.
type graphIndex struct {
	spo map[rdf.Term]map[string]map[rdf.Term]bool
	pos map[string]map[rdf.Term]map[rdf.Term]bool
	osp map[rdf.Term]map[rdf.Term]map[string]bool
}

func newGraphIndex() *graphIndex {
	return &graphIndex{
		spo: make(map[rdf.Term]map[string]map[rdf.Term]bool),
		pos: make(map[string]map[rdf.Term]map[rdf.Term]bool),
		osp: make(map[rdf.Term]map[rdf.Term]map[string]bool),
	}
}

// QuadStore is an in-memory quad store with SPO/POS/OSP indexes per graph.
// It implements Client and is safe for concurrent use.
type QuadStore struct {
	mu     sync.RWMutex
	graphs map[string]*graphIndex
	count  int
}

var _ Client = (*QuadStore)(nil)

// NewQuadStore creates an empty in-memory quad store.
func NewQuadStore(quads ...rdf.Quad) *QuadStore {
	quadStore := &QuadStore{
		graphs: make(map[string]*graphIndex),
	}
	_ = quadStore.BulkAdd(quads)
	return quadStore
}

// Add inserts a quad. Adding an existing quad is a no-op.
func (quadStore *QuadStore) Add(quad rdf.Quad) error {
	if !quad.IsValid() || quad.Graph == "" {
		return fmt.Errorf("%w: %s", ErrInvalidQuad, quad)
	}

	quadStore.mu.Lock()
	defer quadStore.mu.Unlock()

	quadStore.addUnsafe(quad)
	return nil
}

// BulkAdd inserts multiple quads while holding the write lock once.
// Returns an error naming the first invalid quad; valid quads before it are kept.
func (quadStore *QuadStore) BulkAdd(quads []rdf.Quad) error {
	quadStore.mu.Lock()
	defer quadStore.mu.Unlock()

	for _, quad := range quads {
		if !quad.IsValid() || quad.Graph == "" {
			return fmt.Errorf("%w: %s", ErrInvalidQuad, quad)
		}
		quadStore.addUnsafe(quad)
	}
	return nil
}

// Count returns the total number of quads in the store.
func (quadStore *QuadStore) Count() int {
	quadStore.mu.RLock()
	defer quadStore.mu.RUnlock()
	return quadStore.count
}

// Graphs returns the names of all non-empty graphs, sorted.
func (quadStore *QuadStore) Graphs() []string {
	quadStore.mu.RLock()
	defer quadStore.mu.RUnlock()

	graphs := make([]string, 0, len(quadStore.graphs))
	for graph, index := range quadStore.graphs {
		if len(index.spo) > 0 {
			graphs = append(graphs, graph)
		}
	}
	sort.Strings(graphs)
	return graphs
}

// All returns every quad in the store.
func (quadStore *QuadStore) All() []rdf.Quad {
	quadStore.mu.RLock()
	defer quadStore.mu.RUnlock()
	return quadStore.findUnsafe(rdf.Pattern{})
}

// Find queries quads matching the pattern.
func (quadStore *QuadStore) Find(ctx context.Context, pattern rdf.Pattern) ([]rdf.Quad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quadStore.mu.RLock()
	defer quadStore.mu.RUnlock()
	return quadStore.findUnsafe(pattern), nil
}

// FindBySubjects returns all quads of the given subjects in one graph,
// excluding quads whose predicate is listed in excludedPredicates.
func (quadStore *QuadStore) FindBySubjects(
	ctx context.Context,
	graph string,
	subjects []rdf.Term,
	excludedPredicates []string,
) ([]rdf.Quad, error) {
	if graph == "" {
		return nil, ErrGraphRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excludedPredicates))
	for _, predicate := range excludedPredicates {
		excluded[predicate] = true
	}

	quadStore.mu.RLock()
	defer quadStore.mu.RUnlock()

	index, ok := quadStore.graphs[graph]
	if !ok {
		return nil, nil
	}

	var results []rdf.Quad
	for _, subject := range subjects {
		for predicate, objects := range index.spo[subject] {
			if excluded[predicate] {
				continue
			}
			for object := range objects {
				results = append(results, rdf.NewQuad(subject, predicate, object, graph))
			}
		}
	}
	return results, nil
}

// Ask reports whether any quad in the pattern's graph matches.
func (quadStore *QuadStore) Ask(ctx context.Context, pattern rdf.Pattern) (bool, error) {
	if pattern.Graph == "" {
		return false, ErrGraphRequired
	}
	quads, err := quadStore.Find(ctx, pattern)
	if err != nil {
		return false, err
	}
	return len(quads) > 0, nil
}

// Insert adds quads to graph.
func (quadStore *QuadStore) Insert(ctx context.Context, graph string, quads []rdf.Quad) error {
	return quadStore.Update(ctx, graph, nil, quads)
}

// Delete removes quads from graph.
func (quadStore *QuadStore) Delete(ctx context.Context, graph string, quads []rdf.Quad) error {
	return quadStore.Update(ctx, graph, quads, nil)
}

// Update deletes and inserts quads in graph atomically. The quads' own graph
// is replaced by graph.
func (quadStore *QuadStore) Update(ctx context.Context, graph string, deletes, inserts []rdf.Quad) error {
	if graph == "" {
		return ErrGraphRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, quad := range inserts {
		if !quad.IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidQuad, quad)
		}
	}

	quadStore.mu.Lock()
	defer quadStore.mu.Unlock()

	for _, quad := range deletes {
		quadStore.deleteUnsafe(quad.InGraph(graph))
	}
	for _, quad := range inserts {
		quadStore.addUnsafe(quad.InGraph(graph))
	}
	return nil
}

// UpdateIf applies Update when precondition matches, holding the write lock
// for both the check and the write.
func (quadStore *QuadStore) UpdateIf(
	ctx context.Context,
	graph string,
	precondition rdf.Pattern,
	deletes, inserts []rdf.Quad,
) (bool, error) {
	if graph == "" {
		return false, ErrGraphRequired
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for _, quad := range inserts {
		if !quad.IsValid() {
			return false, fmt.Errorf("%w: %s", ErrInvalidQuad, quad)
		}
	}

	quadStore.mu.Lock()
	defer quadStore.mu.Unlock()

	precondition.Graph = graph
	if len(quadStore.findUnsafe(precondition)) == 0 {
		return false, nil
	}
	for _, quad := range deletes {
		quadStore.deleteUnsafe(quad.InGraph(graph))
	}
	for _, quad := range inserts {
		quadStore.addUnsafe(quad.InGraph(graph))
	}
	return true, nil
}

// addUnsafe adds a quad without locking.
func (quadStore *QuadStore) addUnsafe(quad rdf.Quad) {
	index, ok := quadStore.graphs[quad.Graph]
	if !ok {
		index = newGraphIndex()
		quadStore.graphs[quad.Graph] = index
	}

	subject, predicate, object := quad.Subject, quad.Predicate, quad.Object
	if index.spo[subject][predicate][object] {
		return
	}

	if index.spo[subject] == nil {
		index.spo[subject] = make(map[string]map[rdf.Term]bool)
	}
	if index.spo[subject][predicate] == nil {
		index.spo[subject][predicate] = make(map[rdf.Term]bool)
	}
	index.spo[subject][predicate][object] = true

	if index.pos[predicate] == nil {
		index.pos[predicate] = make(map[rdf.Term]map[rdf.Term]bool)
	}
	if index.pos[predicate][object] == nil {
		index.pos[predicate][object] = make(map[rdf.Term]bool)
	}
	index.pos[predicate][object][subject] = true

	if index.osp[object] == nil {
		index.osp[object] = make(map[rdf.Term]map[string]bool)
	}
	if index.osp[object][subject] == nil {
		index.osp[object][subject] = make(map[string]bool)
	}
	index.osp[object][subject][predicate] = true

	quadStore.count++
}

// deleteUnsafe removes a quad without locking.
func (quadStore *QuadStore) deleteUnsafe(quad rdf.Quad) {
	index, ok := quadStore.graphs[quad.Graph]
	if !ok {
		return
	}

	subject, predicate, object := quad.Subject, quad.Predicate, quad.Object
	if !index.spo[subject][predicate][object] {
		return
	}

	delete(index.spo[subject][predicate], object)
	if len(index.spo[subject][predicate]) == 0 {
		delete(index.spo[subject], predicate)
	}
	if len(index.spo[subject]) == 0 {
		delete(index.spo, subject)
	}

	delete(index.pos[predicate][object], subject)
	if len(index.pos[predicate][object]) == 0 {
		delete(index.pos[predicate], object)
	}
	if len(index.pos[predicate]) == 0 {
		delete(index.pos, predicate)
	}

	delete(index.osp[object][subject], predicate)
	if len(index.osp[object][subject]) == 0 {
		delete(index.osp[object], subject)
	}
	if len(index.osp[object]) == 0 {
		delete(index.osp, object)
	}

	quadStore.count--
}

// findUnsafe finds quads without locking.
func (quadStore *QuadStore) findUnsafe(pattern rdf.Pattern) []rdf.Quad {
	var results []rdf.Quad

	if pattern.Graph != "" {
		if index, ok := quadStore.graphs[pattern.Graph]; ok {
			results = index.find(pattern.Graph, pattern)
		}
		return results
	}

	for graph, index := range quadStore.graphs {
		results = append(results, index.find(graph, pattern)...)
	}
	return results
}

// find uses the most specific index for the bound pattern positions.
func (index *graphIndex) find(graph string, pattern rdf.Pattern) []rdf.Quad {
	var results []rdf.Quad
	subject, predicate, object := pattern.Subject, pattern.Predicate, pattern.Object

	switch {
	case !subject.IsZero():
		for p, objects := range index.spo[subject] {
			if predicate != "" && p != predicate {
				continue
			}
			for o := range objects {
				if !object.IsZero() && o != object {
					continue
				}
				results = append(results, rdf.NewQuad(subject, p, o, graph))
			}
		}
	case predicate != "":
		for o, subjects := range index.pos[predicate] {
			if !object.IsZero() && o != object {
				continue
			}
			for s := range subjects {
				results = append(results, rdf.NewQuad(s, predicate, o, graph))
			}
		}
	case !object.IsZero():
		for s, predicates := range index.osp[object] {
			for p := range predicates {
				results = append(results, rdf.NewQuad(s, p, object, graph))
			}
		}
	default:
		for s, predicates := range index.spo {
			for p, objects := range predicates {
				for o := range objects {
					results = append(results, rdf.NewQuad(s, p, o, graph))
				}
			}
		}
	}

	return results
}

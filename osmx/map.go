package osmx

import (
	"io"
	"sort"
	"strconv"

	"github.com/bsm/platecut/cookiecut"
	osm "github.com/glaslos/go-osm"
	"github.com/pkg/errors"
)

// Map wraps osm.Map with indexed nodes and ways.
type Map struct {
	*osm.Map
}

// Decode decodes OSM XML data.
func Decode(r io.Reader) (*Map, error) {
	parent, err := osm.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "osmx: decode")
	}
	return WrapMap(parent)
}

// WrapMap wraps a parent map and sorts its nodes and ways by ID.
func WrapMap(parent *osm.Map) (*Map, error) {
	if len(parent.Relations) == 0 {
		return nil, errors.New("osmx: map contains no relations")
	}

	sort.Slice(parent.Nodes, func(i, j int) bool { return parent.Nodes[i].ID < parent.Nodes[j].ID })
	sort.Slice(parent.Ways, func(i, j int) bool { return parent.Ways[i].ID < parent.Ways[j].ID })
	return &Map{Map: parent}, nil
}

// FindNode finds a node by its ID.
func (m *Map) FindNode(id int64) (*osm.Node, error) {
	if pos := sort.Search(len(m.Nodes), func(i int) bool { return m.Nodes[i].ID >= id }); pos < len(m.Nodes) && m.Nodes[pos].ID == id {
		return &m.Nodes[pos], nil
	}
	return nil, errors.Errorf("osmx: node #%d not found", id)
}

// FindWay finds a way by its ID.
func (m *Map) FindWay(id int64) (*osm.Way, error) {
	if pos := sort.Search(len(m.Ways), func(i int) bool { return m.Ways[i].ID >= id }); pos < len(m.Ways) && m.Ways[pos].ID == id {
		if way := &m.Ways[pos]; len(way.Nds) != 0 {
			return way, nil
		}
	}
	return nil, errors.Errorf("osmx: way #%d not found", id)
}

// SourceOptions configure the conversion of relations into sources.
type SourceOptions struct {
	// The kind of sources without blocks. Default: cookiecut.StaticPolygon.
	Kind cookiecut.Kind

	// The tag holding the owner. Relations without it are owned by their ID.
	// Default: "name".
	OwnerTag string

	// The tag holding the depth in the plate hierarchy. Default: "depth".
	DepthTag string
}

func (o *SourceOptions) norm() *SourceOptions {
	var oo SourceOptions
	if o != nil {
		oo = *o
	}

	if oo.Kind == 0 {
		oo.Kind = cookiecut.StaticPolygon
	}
	if oo.OwnerTag == "" {
		oo.OwnerTag = "name"
	}
	if oo.DepthTag == "" {
		oo.DepthTag = "depth"
	}
	return &oo
}

// Sources converts all relations with way members into partitioning
// sources, one per outer ring. Relations with blocks become resolved
// networks and must have a single outer ring.
func (m *Map) Sources(o *SourceOptions) ([]cookiecut.Source, error) {
	o = o.norm()

	var res []cookiecut.Source
	for i := range m.Relations {
		rel := &m.Relations[i]

		paths, err := m.relationPaths(rel)
		if err != nil {
			return nil, errors.Wrapf(err, "osmx: relation #%d", rel.ID)
		} else if len(paths) == 0 {
			continue
		}

		srcs, err := m.relationSources(rel, paths, o)
		if err != nil {
			return nil, errors.Wrapf(err, "osmx: relation #%d", rel.ID)
		}
		res = append(res, srcs...)
	}
	return res, nil
}

func (m *Map) relationPaths(rel *osm.Relation) (pathSlice, error) {
	var paths pathSlice
	for _, mem := range rel.Members {
		if mem.Type != "way" {
			continue
		}

		way, err := m.FindWay(mem.Ref)
		if err != nil {
			return nil, err
		}

		p := &path{Role: mem.Role, Nodes: make([]*osm.Node, 0, len(way.Nds))}
		for _, nd := range way.Nds {
			node, err := m.FindNode(nd.ID)
			if err != nil {
				return nil, err
			}
			p.Nodes = append(p.Nodes, node)
		}

		if p.IsValid() {
			paths = append(paths, p)
		}
	}
	return paths.Reduce(), nil
}

func (m *Map) relationSources(rel *osm.Relation, paths pathSlice, o *SourceOptions) ([]cookiecut.Source, error) {
	var owner interface{} = rel.ID
	if v, ok := tagValue(rel.Tags, o.OwnerTag); ok {
		owner = v
	}

	var depth int
	if v, ok := tagValue(rel.Tags, o.DepthTag); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s tag", o.DepthTag)
		}
		depth = n
	}

	var srcs []cookiecut.Source
	var blocks []cookiecut.Block
	for _, p := range paths {
		ring, err := p.Ring()
		if err != nil {
			return nil, err
		}

		switch p.Role {
		case RoleOuter:
			srcs = append(srcs, cookiecut.Source{Kind: o.Kind, Owner: owner, Boundary: ring, Depth: depth})
		case RoleBlock:
			blocks = append(blocks, cookiecut.Block{Owner: owner, Ring: ring})
		case RoleInner:
			return nil, errors.New("osmx: inner rings are not supported")
		}
	}

	if len(blocks) != 0 {
		if len(srcs) != 1 {
			return nil, errors.Errorf("osmx: network requires a single outer ring, found %d", len(srcs))
		}
		srcs[0].Kind = cookiecut.ResolvedNetwork
		srcs[0].Interiors = blocks
	}
	return srcs, nil
}

func tagValue(tags []osm.Tag, key string) (string, bool) {
	for _, tag := range tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

package orbx

import (
	"github.com/bsm/platecut/cookiecut"
	"github.com/bsm/platecut/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// FeatureOptions configure the conversion of GeoJSON features into sources.
type FeatureOptions struct {
	// The property holding the owner. Features without it are owned by
	// their ID. Default: "name".
	OwnerKey string

	// The property holding the depth. Default: "depth".
	DepthKey string

	// The property holding the kind, one of the cookiecut.Kind names.
	// Default: "kind".
	KindKey string
}

func (o *FeatureOptions) norm() *FeatureOptions {
	var oo FeatureOptions
	if o != nil {
		oo = *o
	}

	if oo.OwnerKey == "" {
		oo.OwnerKey = "name"
	}
	if oo.DepthKey == "" {
		oo.DepthKey = "depth"
	}
	if oo.KindKey == "" {
		oo.KindKey = "kind"
	}
	return &oo
}

// DecodeSources parses a GeoJSON feature collection into sources.
func DecodeSources(data []byte, o *FeatureOptions) ([]cookiecut.Source, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "orbx: decode")
	}
	return Sources(fc, o)
}

// Sources converts polygon features into sources. Each polygon of a
// multi-polygon becomes a separate source, except for resolved networks
// where the first polygon is the boundary and all others are interior
// blocks.
func Sources(fc *geojson.FeatureCollection, o *FeatureOptions) ([]cookiecut.Source, error) {
	o = o.norm()

	var res []cookiecut.Source
	for i, f := range fc.Features {
		srcs, err := featureSources(f, o)
		if err != nil {
			return nil, errors.Wrapf(err, "orbx: feature %d", i)
		}
		res = append(res, srcs...)
	}
	return res, nil
}

func featureSources(f *geojson.Feature, o *FeatureOptions) ([]cookiecut.Source, error) {
	owner := f.ID
	if v, ok := f.Properties[o.OwnerKey]; ok {
		owner = v
	}

	var depth int
	if v, ok := f.Properties[o.DepthKey]; ok {
		n, ok := v.(float64)
		if !ok {
			return nil, errors.Errorf("orbx: invalid %s property %v", o.DepthKey, v)
		}
		depth = int(n)
	}

	kind := cookiecut.StaticPolygon
	if v, ok := f.Properties[o.KindKey]; ok {
		var err error
		if kind, err = parseKind(v); err != nil {
			return nil, err
		}
	}

	var polys []orb.Polygon
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{g}
	case orb.MultiPolygon:
		polys = g
	default:
		return nil, errors.Errorf("orbx: unsupported geometry type %s", geometryType(f.Geometry))
	}

	rings := make([]*geo.Ring, 0, len(polys))
	for _, poly := range polys {
		g, err := FromOrb(poly)
		if err != nil {
			return nil, err
		}
		rings = append(rings, g.(*geo.Ring))
	}
	if len(rings) == 0 {
		return nil, nil
	}

	if kind == cookiecut.ResolvedNetwork {
		src := cookiecut.Source{Kind: kind, Owner: owner, Boundary: rings[0], Depth: depth}
		for _, r := range rings[1:] {
			src.Interiors = append(src.Interiors, cookiecut.Block{Owner: owner, Ring: r})
		}
		return []cookiecut.Source{src}, nil
	}

	srcs := make([]cookiecut.Source, 0, len(rings))
	for _, r := range rings {
		srcs = append(srcs, cookiecut.Source{Kind: kind, Owner: owner, Boundary: r, Depth: depth})
	}
	return srcs, nil
}

func parseKind(v interface{}) (cookiecut.Kind, error) {
	if s, ok := v.(string); ok {
		for _, k := range []cookiecut.Kind{cookiecut.StaticPolygon, cookiecut.ResolvedBoundary, cookiecut.ResolvedNetwork} {
			if k.String() == s {
				return k, nil
			}
		}
	}
	return 0, errors.Errorf("orbx: unknown kind %v", v)
}

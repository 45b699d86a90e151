// File: load.go
// Role: read the four on-disk graph files (nodes, segments, ways,
// relations) produced by the external database builder into a View.
// AI-HINT (file):
//   - Each file starts with a fixed Header; an unrecognised Version is
//     fatal and is never retried or repaired.

package graph

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Magic is the expected leading 4 bytes of every graph file.
const Magic uint32 = 0x524f5554 // "ROUT"

// Version is the file-format version this build understands.
const Version uint32 = 2

// Header is the fixed-size preamble shared by every graph file.
type Header struct {
	Magic   uint32
	Version uint32
	Count   uint32
	_       uint32 // reserved, keeps the header 16 bytes wide
}

func readHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("graph: reading header: %w", err)
	}
	if h.Magic != Magic {
		return Header{}, ErrBadHeader
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, h.Version, Version)
	}
	return h, nil
}

// Load reads nodes/segments/ways/relations from dir, each file named
// prefix + a fixed suffix (".nodes", ".segments", ".ways", ".relations"),
// and returns a compiled, immutable View.
//
// Load rejects any file whose header version it does not recognise; there
// is no partial-load fallback.
func Load(dir, prefix string) (*View, error) {
	nodes, err := loadNodes(dir + "/" + prefix + ".nodes")
	if err != nil {
		return nil, err
	}
	segments, err := loadSegments(dir + "/" + prefix + ".segments")
	if err != nil {
		return nil, err
	}
	ways, err := loadWays(dir + "/" + prefix + ".ways")
	if err != nil {
		return nil, err
	}
	relations, err := loadRelations(dir + "/" + prefix + ".relations")
	if err != nil {
		return nil, err
	}

	return Compile(nodes, segments, ways, relations)
}

func loadNodes(path string) ([]Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: opening %s: %w", path, err)
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, h.Count)
	for i := range nodes {
		var rec struct {
			Lat, Lon float64
			Flags    uint8
			_        [7]byte
		}
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("graph: reading node %d: %w", i, err)
		}
		nodes[i] = Node{Index: NodeIndex(i), Lat: rec.Lat, Lon: rec.Lon, Flags: NodeFlags(rec.Flags)}
	}
	return nodes, nil
}

func loadSegments(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: opening %s: %w", path, err)
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return nil, err
	}

	segs := make([]Segment, h.Count)
	for i := range segs {
		var rec struct {
			Node1, Node2 uint32
			Way          uint32
			Distance     uint32
			Flags        uint8
			_            [3]byte
		}
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("graph: reading segment %d: %w", i, err)
		}
		segs[i] = Segment{
			Index:    SegmentIndex(i),
			Node1:    NodeIndex(rec.Node1),
			Node2:    NodeIndex(rec.Node2),
			Way:      WayIndex(rec.Way),
			Distance: rec.Distance,
			Flags:    SegmentFlags(rec.Flags),
		}
	}
	return segs, nil
}

func loadWays(path string) ([]Way, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: opening %s: %w", path, err)
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return nil, err
	}

	ways := make([]Way, h.Count)
	for i := range ways {
		var rec struct {
			Highway    uint8
			Oneway     uint8
			Roundabout uint8
			_          uint8
			NameIndex  uint32
			Allow      uint16
			_          uint16
			Weight     float64
			Height     float64
			Width      float64
			Length     float64
		}
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("graph: reading way %d: %w", i, err)
		}
		ways[i] = Way{
			Index:      WayIndex(i),
			Highway:    HighwayClass(rec.Highway),
			NameIndex:  rec.NameIndex,
			Allow:      TransportMask(rec.Allow),
			Oneway:     rec.Oneway != 0,
			Roundabout: rec.Roundabout != 0,
			Weight:     limitFromFloat(rec.Weight),
			Height:     limitFromFloat(rec.Height),
			Width:      limitFromFloat(rec.Width),
			Length:     limitFromFloat(rec.Length),
		}
	}
	return ways, nil
}

func limitFromFloat(v float64) Limit {
	if v <= 0 {
		return Limit{Unlimited: true}
	}
	return Limit{Value: v}
}

func loadRelations(path string) ([]Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: opening %s: %w", path, err)
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return nil, err
	}

	rels := make([]Relation, h.Count)
	for i := range rels {
		var rec struct {
			From, To uint32
			Via      uint32
			Kind     uint8
			_        [3]byte
		}
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("graph: reading relation %d: %w", i, err)
		}
		rels[i] = Relation{
			From: SegmentIndex(rec.From),
			Via:  NodeIndex(rec.Via),
			To:   SegmentIndex(rec.To),
			Kind: RelationKind(rec.Kind),
		}
	}
	return rels, nil
}

// Compile assembles raw node/segment/way/relation tables into an immutable
// View: it builds the flattened per-node adjacency table, the via-node
// relation index, and flags every node that has at least one relation or
// that is marked super by an incident super-segment.
//
// Compile is also the entry point used by graphbuild.Builder.Compile and by
// tests that construct small fixture graphs directly.
func Compile(nodes []Node, segments []Segment, ways []Way, relations []Relation) (*View, error) {
	counts := make([]uint32, len(nodes))
	for _, s := range segments {
		if int(s.Node1) >= len(nodes) || int(s.Node2) >= len(nodes) {
			return nil, fmt.Errorf("graph: segment %d references out-of-range node", s.Index)
		}
		counts[s.Node1]++
		if s.Node1 != s.Node2 {
			counts[s.Node2]++
		}
	}

	offsets := make([]uint32, len(nodes))
	var total uint32
	for i, c := range counts {
		offsets[i] = total
		nodes[i].SegOffset = total
		nodes[i].SegCount = c
		total += c
	}

	adjacency := make([]SegmentIndex, total)
	cursor := append([]uint32(nil), offsets...)
	for _, s := range segments {
		adjacency[cursor[s.Node1]] = s.Index
		cursor[s.Node1]++
		if s.Node1 != s.Node2 {
			adjacency[cursor[s.Node2]] = s.Index
			cursor[s.Node2]++
		}
		if s.IsSuper() {
			nodes[s.Node1].Flags |= NodeSuper
			nodes[s.Node2].Flags |= NodeSuper
		}
	}

	relByVia := make(map[NodeIndex][]int, len(relations))
	for i, r := range relations {
		relByVia[r.Via] = append(relByVia[r.Via], i)
		nodes[r.Via].Flags |= NodeTurnRestricted
	}

	superCount := 0
	for _, n := range nodes {
		if n.IsSuper() {
			superCount++
		}
	}

	return &View{
		nodes:      nodes,
		segments:   segments,
		ways:       ways,
		relations:  relations,
		adjacency:  adjacency,
		relByVia:   relByVia,
		superCount: superCount,
	}, nil
}

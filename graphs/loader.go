package graphs

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
)

type jsonNode struct {
	ID interface{} `json:"id"`
	X  float64     `json:"x"`
	Y  float64     `json:"y"`
}

type jsonLink struct {
	Source interface{} `json:"source"`
	Target interface{} `json:"target"`
}

type jsonGraph struct {
	Graph struct {
		Nodes []jsonNode `json:"nodes"`
		Links []jsonLink `json:"links"`
	} `json:"graph"`
}

// parseID normalizes the id formats found in node-link exports.
func parseID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// LoadGraphFromJSON reads a node-link document ({"graph": {"nodes": [...],
// "links": [...]}}) where x is longitude and y latitude. Links are treated
// as undirected.
func LoadGraphFromJSON(data []byte) (*Graph, error) {
	var wrapped jsonGraph
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	g := NewGraph()
	for _, n := range wrapped.Graph.Nodes {
		g.AddNode(geo.Coordinate{Lat: n.Y, Lng: n.X}, parseID(n.ID))
	}
	for _, l := range wrapped.Graph.Links {
		g.AddEdge(parseID(l.Source), parseID(l.Target))
	}

	return g, nil
}

// WriteJSON writes g in the node-link format read by LoadGraphFromJSON.
func (g *Graph) WriteJSON(w io.Writer) error {
	var out jsonGraph
	seen := make(map[[2]string]bool)
	for _, node := range g.Nodes() {
		out.Graph.Nodes = append(out.Graph.Nodes, jsonNode{ID: node.ID, X: node.Position.Lng, Y: node.Position.Lat})
		for _, nb := range node.neighbors {
			key := [2]string{nb.ID, node.ID}
			if seen[key] {
				continue
			}
			seen[[2]string{node.ID, nb.ID}] = true
			out.Graph.Links = append(out.Graph.Links, jsonLink{Source: node.ID, Target: nb.ID})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}

type gobNode struct {
	ID        string
	Lat       float64
	Lng       float64
	Neighbors []string
}

type gobGraph struct {
	Nodes []gobNode
}

// WriteGob stores g as a gob snapshot that keeps adjacency order.
func (g *Graph) WriteGob(w io.Writer) error {
	snapshot := gobGraph{Nodes: make([]gobNode, 0, g.Len())}
	for _, node := range g.Nodes() {
		gn := gobNode{ID: node.ID, Lat: node.Position.Lat, Lng: node.Position.Lng}
		for _, nb := range node.neighbors {
			gn.Neighbors = append(gn.Neighbors, nb.ID)
		}
		snapshot.Nodes = append(snapshot.Nodes, gn)
	}
	return gob.NewEncoder(w).Encode(&snapshot)
}

// ReadGob restores a graph written by WriteGob.
func ReadGob(r io.Reader) (*Graph, error) {
	var snapshot gobGraph
	if err := gob.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("could not decode graph snapshot: %w", err)
	}

	g := NewGraph()
	for _, n := range snapshot.Nodes {
		g.AddNode(geo.Coordinate{Lat: n.Lat, Lng: n.Lng}, n.ID)
	}
	for _, n := range snapshot.Nodes {
		node := g.nodes[n.ID]
		for _, id := range n.Neighbors {
			nb, ok := g.nodes[id]
			if !ok {
				return nil, fmt.Errorf("graph snapshot: node %q references unknown neighbor %q", n.ID, id)
			}
			node.neighbors = append(node.neighbors, nb)
		}
	}
	return g, nil
}

// LoadGraphFromFile picks the decoder from the file extension: .gob for
// snapshots, anything else is read as node-link JSON.
func LoadGraphFromFile(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open graph file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".gob") {
		return ReadGob(file)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read graph file: %w", err)
	}
	return LoadGraphFromJSON(data)
}

// SaveGraphToFile is the inverse of LoadGraphFromFile.
func SaveGraphToFile(g *Graph, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create graph file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".gob") {
		err = g.WriteGob(file)
	} else {
		err = g.WriteJSON(file)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("could not write graph file: %w", err)
	}
	return file.Close()
}

package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/netvalue/pkg/network"
	"github.com/matzehuels/netvalue/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := network.New(nil)
	_ = g.AddNode(network.Node{ID: "a"})
	_ = g.AddNode(network.Node{ID: "b"})
	_ = g.AddEdge(network.Edge{From: "a", To: "b"})

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{}))
	// Output:
	// graph G {
	//   layout=neato;
	//   bgcolor="transparent";
	//   overlap=false;
	//   node [shape=circle, style=filled, colorscheme=set312, fillcolor=white, fontsize=14];
	//
	//   "a" [label="a"];
	//   "b" [label="b"];
	//
	//   "a" -- "b";
	// }
}

func ExampleRenderSVG() {
	g := network.New(nil)
	_ = g.AddNode(network.Node{ID: "web"})
	_ = g.AddNode(network.Node{ID: "db"})
	_ = g.AddEdge(network.Edge{From: "web", To: "db"})

	svg, err := nodelink.RenderSVG(nodelink.ToDOT(g, nodelink.Options{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz version
}

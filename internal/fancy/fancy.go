// Package fancy renders route tables for terminal output.
package fancy

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/vitalvas/waypoint/mux"
)

var (
	ColorBlue     = lipgloss.Color("39")
	ColorGreen    = lipgloss.Color("82")
	ColorYellow   = lipgloss.Color("228")
	ColorOrange   = lipgloss.Color("208")
	ColorGray     = lipgloss.Color("250")
	ColorDarkGray = lipgloss.Color("240")
)

var (
	RootStyle   = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	MethodStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	PathStyle   = lipgloss.NewStyle().Foreground(ColorYellow)
	NameStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
	BranchStyle = lipgloss.NewStyle().Foreground(ColorDarkGray)
)

// Tree returns a new tree with the common styling applied.
func Tree() *tree.Tree {
	t := tree.New()
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)
	return t
}

// RouteTree renders routes in match order. Each route shows its methods
// and template, with its name, handler, constraints and middleware counts
// as children.
func RouteTree(routes []*mux.Route) *tree.Tree {
	root := Tree().Root(RootStyle.Render("routes") + " " + InfoStyle.Render(fmt.Sprintf("(%d)", len(routes))))

	for _, route := range routes {
		node := tree.New().Root(RouteLine(route))

		if name := route.GetName(); name != "" {
			node.Child("name: " + NameStyle.Render(name))
		}
		node.Child("handler: " + route.GetHandler().String())

		constraints := route.GetConstraints()
		for _, key := range slices.Sorted(maps.Keys(constraints)) {
			node.Child(InfoStyle.Render(fmt.Sprintf("where %s = %s", key, constraints[key])))
		}

		before, after := route.GetMiddlewares()
		if len(before)+len(after) > 0 {
			node.Child(InfoStyle.Render(fmt.Sprintf("middleware: %d before, %d after", len(before), len(after))))
		}

		root.Child(node)
	}

	return root
}

// RouteLine renders "METHODS template" for a single route.
func RouteLine(route *mux.Route) string {
	return MethodStyle.Render(strings.Join(route.GetMethods(), ",")) + " " + PathStyle.Render(route.GetPathTemplate())
}

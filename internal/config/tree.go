package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ccswitch/ccswitch/internal/fancy"
)

// String returns a fancy tree representation of the unified config, used by
// `ccswitch config show --tree`.
func (c *Config) String() string {
	root := fancy.Tree().Root(fancy.RootStyle.Render("ccswitch config"))

	for _, app := range AllApps() {
		ac := c.Apps[app]
		if ac == nil {
			ac = NewAppConfig()
		}
		appNode := fancy.BranchNode(app.DisplayName(),
			fmt.Sprintf("(%d providers)", len(ac.Providers)))
		ids := make([]string, 0, len(ac.Providers))
		for id := range ac.Providers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			p := ac.Providers[id]
			label := fancy.ProviderText(id)
			if p != nil && p.Name != "" && p.Name != id {
				label += " " + fancy.InfoStyle.Render(p.Name)
			}
			if id == ac.CurrentProviderID {
				label += " " + fancy.CurrentStyle.Render("(current)")
			}
			appNode.Child(label)
		}
		root.Child(appNode)
	}

	mcpNode := fancy.BranchNode("MCP Servers",
		fmt.Sprintf("(%d)", len(c.Mcp.Servers)))
	for _, id := range c.Mcp.ServerIDs() {
		srv := c.Mcp.Servers[id]
		label := fancy.ServerText(id)
		if apps := srv.Apps.EnabledApps(); len(apps) > 0 {
			names := make([]string, len(apps))
			for i, app := range apps {
				names[i] = app.DisplayName()
			}
			label += " " + fancy.AppText(strings.Join(names, ", "))
		}
		if len(srv.Tags) > 0 {
			label += " " + fancy.TagText("["+strings.Join(srv.Tags, ", ")+"]")
		}
		mcpNode.Child(label)
	}
	root.Child(mcpNode)

	return root.String()
}

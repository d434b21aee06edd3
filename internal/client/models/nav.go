package models

// NavItem is one entry of a role's dashboard navigation menu.
type NavItem struct {
	Href  string
	Label string
}

var adminNavItems = []NavItem{
	{Href: "/dashboard/admin", Label: "Dashboard"},
	{Href: "/dashboard/admin/users", Label: "Users"},
	{Href: "/dashboard/admin/subscriptions", Label: "Subscriptions"},
	{Href: "/dashboard/admin/map-requests", Label: "Map Requests"},
	{Href: "/dashboard/admin/gis-datasets", Label: "GIS Datasets"},
	{Href: "/dashboard/admin/settings", Label: "Settings"},
}

var developerNavItems = []NavItem{
	{Href: "/dashboard/developer", Label: "Dashboard"},
	{Href: "/dashboard/developer/projects", Label: "Projects"},
	{Href: "/dashboard/developer/subscription", Label: "Subscription"},
	{Href: "/dashboard/developer/settings", Label: "Settings"},
}

// NavItems returns a copy of the role's menu.
func (r Role) NavItems() []NavItem {
	src := developerNavItems
	if r == RoleAdmin {
		src = adminNavItems
	}
	out := make([]NavItem, len(src))
	copy(out, src)
	return out
}

// Package servers holds the HTTP contract of the route service: the OpenAPI
// document, its request and response types, and the interface the HTTP
// adapter implements.
package servers

// Defines values for PackageStatus.
const (
	PackageStatusPending   PackageStatus = "pending"
	PackageStatusDelivered PackageStatus = "delivered"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PackageStatus defines model for Package.Status.
type PackageStatus string

// Package defines model for Package. Timestamp is epoch milliseconds.
type Package struct {
	Id        string        `json:"id"`
	Address   string        `json:"address"`
	Recipient string        `json:"recipient"`
	Status    PackageStatus `json:"status"`
	Timestamp int64         `json:"timestamp"`
}

// NewPackage defines model for NewPackage.
type NewPackage struct {
	Address   string  `json:"address"`
	Recipient *string `json:"recipient,omitempty"`
}

// Scan defines model for Scan. Image is a base64 payload, optionally a data URL.
type Scan struct {
	Image string `json:"image"`
}

// RouteState defines model for RouteState.
type RouteState struct {
	Generation uint64    `json:"generation"`
	Packages   []Package `json:"packages"`
}

// Stop defines model for Stop.
type Stop struct {
	Position             int       `json:"position"`
	Address              string    `json:"address"`
	Street               string    `json:"street"`
	SameStreetAsPrevious bool      `json:"sameStreetAsPrevious"`
	Packages             []Package `json:"packages"`
}

// OptimizeResult defines model for OptimizeResult.
type OptimizeResult struct {
	Applied bool       `json:"applied"`
	Route   RouteState `json:"route"`
}

// PruneResult defines model for PruneResult.
type PruneResult struct {
	Pruned int        `json:"pruned"`
	Route  RouteState `json:"route"`
}

// Stats defines model for Stats.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Stops     int `json:"stops"`
	Progress  int `json:"progress"`
}

// NavigationLink defines model for NavigationLink.
type NavigationLink struct {
	Provider string `json:"provider"`
	Url      string `json:"url"`
}

// Onboarding defines model for Onboarding.
type Onboarding struct {
	Completed bool `json:"completed"`
}

// GetPackagesParams defines parameters for GetPackages.
type GetPackagesParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// RemoveStopParams defines parameters for RemoveStop.
type RemoveStopParams struct {
	Address string `form:"address" json:"address"`
	Confirm *bool  `form:"confirm,omitempty" json:"confirm,omitempty"`
}

// ClearRouteParams defines parameters for ClearRoute.
type ClearRouteParams struct {
	Confirm *bool `form:"confirm,omitempty" json:"confirm,omitempty"`
}

// GetNavigationLinkParams defines parameters for GetNavigationLink.
type GetNavigationLinkParams struct {
	Address  string  `form:"address" json:"address"`
	Provider *string `form:"provider,omitempty" json:"provider,omitempty"`
}

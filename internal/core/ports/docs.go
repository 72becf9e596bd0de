// Package ports declares the interfaces the application core needs from the
// outside world: persistence of the route and preferences, the key-value
// slot underneath them, and the reordering and label-reading collaborators.
package ports

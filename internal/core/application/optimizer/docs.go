// Package optimizer wraps the external route reordering collaborator with
// the precondition and merge policy that keep the route intact whatever
// the collaborator answers.
package optimizer

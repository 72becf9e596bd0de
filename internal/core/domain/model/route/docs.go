// Package route provides the Route aggregate: the ordered set of packages a
// driver carries during one working day.
//
// Key business rules:
//   - duplicates (same normalized address and recipient) are rejected on Add
//   - removal works per normalized address, covering every package of a stop
//   - external reorderings only ever permute the pending packages
//   - delivered packages are pruned once they outlive the retention window
package route

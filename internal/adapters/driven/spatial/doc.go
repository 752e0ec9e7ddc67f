// Package spatial provides fixed-radius neighbour indexes over atom
// coordinates: an all-pairs baseline and a uniform grid.
package spatial

// Package logic holds the deterministic building blocks used by the analysis
// and render steps: price comparison, ingredient set comparison and small
// text transformations. Every function is pure and total.
package logic

// Package types defines the core types and interfaces shared by the icon
// engine: the Entry interface queried by the resolver, the Icon payload a
// rule carries, and the names of the boolean facts conditions can test.
package types

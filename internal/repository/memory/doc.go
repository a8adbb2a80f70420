// Package memory provides concurrent in-memory implementations of the
// repositories. Each store guards its map with a RWMutex and assigns ids from
// its own atomic sequence. Stored values are copied on the way in and out.
package memory

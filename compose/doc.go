// Package compose composites layers onto float image buffers.
//
// It is the caller side of layermode: a Layer resolves its kernel once per
// mode or linear-flag change and the Compositor runs that kernel over each
// row the layer covers. A Stack provides push/pop nesting where every pop
// composites the top layer onto its parent.
package compose

// Package highlight computes syntax-highlighting decorations for code blocks
// in an mdast document and keeps them positioned while the document is edited.
//
// Decorations are flat [From, To) ranges in document coordinates, each with
// the CSS classes of every scope active in it. A position-keyed Cache holds
// the ranges of each block; on every change the cache is reconciled against
// the change's position mapping so that only blocks whose content changed are
// highlighted again. Plugin ties the pieces together as a state machine
// driven by one change at a time.
package highlight

// Package layout implements grid packing of nested vertices.
//
// A parent's children are placed in a near-square grid: the column count is
// ceil(sqrt(n)) and every cell has the average size of the children. The
// parent is then resized to the grid footprint plus padding on every side.
// Parents with a texture reserve one extra slot, drawn as a dedicated row
// above the grid and represented by a synthetic child with id "texture".
//
// Child positions are relative to the parent's center, with +y pointing up:
// the texture row sits at the top, followed by grid row 0.
//
// [Apply] lays out a whole document, innermost parents first, so a nested
// parent's fitted size contributes to its own parent's average. Cells are
// never smaller than a nested parent's fitted size, which keeps every
// vertex inside its parent at every level.
package layout

/*
Package cellstore contains a "write-once, read-only" store of cell claims.

Each stored s2 cell maps to a list of claims; a claim references a
partitioning entry by index and records whether the cell lies entirely in
the interior of the entry's ring or merely touches its boundary.

Cells are stored in an sntable block table, keyed by their numeric cell ID.
The value of a cell is the series of its claims, each encoded as
uvarint(entry << 1 | interior), in ascending entry order.

    +-------------------+-------------------+-------+
    | claim 1 (varint)  | claim 2 (varint)  |  ...  |
    +-------------------+-------------------+-------+

*/
package cellstore

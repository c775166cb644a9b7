// Package gamedata loads villain boards and card sets.
//
// Boards live in boards/<villain>_board.json and card sets in
// cards/<villain>_villain.json and cards/<villain>_fate.json. The JSON field
// names are the interchange contract and do not follow the in-memory model.
//
// Loading fails softly: a missing or malformed file yields an empty result
// and is logged. Callers treat an empty board as "no board available".
package gamedata

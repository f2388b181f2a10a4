// Package lua implements the dynamic value model of an embedded Lua-style
// runtime: a closed set of six value tags plus the allocation context that
// owns string and table storage.
//
// # Values
//
// Every runtime value satisfies the Value interface. The concrete types are:
//
//	NilType   -- nil (the Nil constant)
//	Bool      -- boolean (the True and False constants)
//	Integer   -- 64-bit signed integer
//	Number    -- 64-bit float
//	String    -- immutable text
//	*Table    -- hybrid array/hash container
//
// There is no distinct array type: a Table holds both a contiguous 1-based
// sequential part and an associative part keyed by arbitrary non-nil values.
// Len reports the border, the count of the contiguous run of non-nil integer
// keys starting at 1. Assigning Nil to a key removes it, so nil reads as
// absence everywhere.
//
// # Key normalization
//
// Number keys with an integral value normalize to Integer keys on both Get
// and Set, so t[1.0] and t[1] alias the same slot (Lua 5.3 semantics).
// Nil and NaN keys are rejected by Set and read as absent by Get.
//
// # Allocation
//
// Strings and tables are created through a Runtime, which enforces
// configurable Limits. Allocation is fallible; exceeding a limit returns a
// structured allocation error rather than growing without bound.
//
// # Thread safety
//
// A Runtime and the tables it owns are not safe for concurrent use. Use one
// Runtime per goroutine, or provide external synchronization. Iterators
// must not outlive mutation of the table they walk.
package lua

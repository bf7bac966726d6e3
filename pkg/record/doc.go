// Package record converts rows of tabular input into sparse records.
//
// A [Row] is one line of a table: an ordered schema of field names and the
// values in the same order. [Project] turns a row into a [Record] holding
// only the fields whose values are present, in schema order. Missing values
// never reach the tree builders as zero values or empty strings; a builder
// asks [Record.Has] or [Record.Get] and decides what absence means for it.
//
// # Values
//
// [Value] is a small tagged scalar: missing, string, or number.
//
//	v := record.Number(42)
//	s := record.String("1st")
//	m := record.Missing()
//
//	f, ok := v.Float() // 42, true
//	_, ok = m.Float()  // ok == false
//
// Numeric strings are accepted by [Value.Float] so CSV cells such as "12.5"
// can feed a "sum" statistic regardless of how the reader typed them.
package record

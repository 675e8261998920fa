// Package progress defines the fixed-width record a worker sends to its monitor
// and the helpers that build those records from completed work steps.
//
// Wire layout, little-endian, RecordSize (24) bytes, no length or type prefix:
//
//	offset  width  field        encoding
//	0       4      WorkerID     int32, two's complement
//	4       4      Percentage   float32, IEEE-754 binary32
//	8       4      SendTime     float32, IEEE-754 binary32
//	12      4      ReceiveTime  float32, IEEE-754 binary32
//	16      4      DelayPass    float32, IEEE-754 binary32
//	20      4      ScatterPass  float32, IEEE-754 binary32
//
// A Percentage of DonePercentage (-1) tells the monitor the worker finished.
// Unused timing fields are sent as zero.
package progress

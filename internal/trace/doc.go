// Package trace decodes text CAN bus traces.
//
// A trace is a text log with one observed frame per line, in the shape
// written by candump -l and similar bus loggers:
//
//	(1700000000.123456) can0 123#DEADBEEF
//	1700000000.223456 can1 1FFFFFFF#
//
// # Line Classification
//
// Every physical line is classified as exactly one of:
//   - Ignored: empty after trimming, or starting with '#'
//   - Invalid: anything that fails to decode (see Reason)
//   - Valid: decoded into a Frame
//
// Line numbers are 1-based and count every line, including ignored and
// invalid ones, so a Frame can always be traced back to its source line.
//
// # Frame Decoding
//
// The decoder accepts:
//   - Timestamp: decimal float, '(' and ')' trimmed from both ends, must be finite
//   - Interface: any token, taken verbatim
//   - Identifier: hex, optional lowercase "0x" prefix, at most 0x1FFFFFFF
//   - Payload: 0-16 hex characters, even count (0-8 bytes, classic CAN only)
//
// # Error Handling
//
// The package distinguishes between:
//   - Line errors (*LineError): recoverable, the line is counted as invalid
//     and recorded in Result.Rejects
//   - File errors (*FileError): fatal, the file could not be opened, read,
//     or is not valid UTF-8; no partial result is returned
//
// # Usage Example
//
//	res, err := trace.ClassifyFile("capture.log", runtime.NumCPU())
//	if err != nil {
//	    var fe *trace.FileError
//	    if errors.As(err, &fe) && fe.Kind == trace.KindNotFound {
//	        // ...
//	    }
//	    return err
//	}
//	fmt.Printf("valid=%d invalid=%d ignored=%d\n", res.Valid, res.Invalid, res.Ignored)
//	for _, f := range res.Frames {
//	    fmt.Println(f)
//	}
//
// # Thread Safety
//
// All functions are pure with respect to their inputs and safe for
// concurrent use. ClassifyParallel shards one input across goroutines and
// merges the results in line order.
package trace

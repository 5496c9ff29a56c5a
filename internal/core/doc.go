// Package core provides the application logic around the CSV-to-JSON converter.
//
// The converter in package convert is a pure function. This package adds
// what the HTTP server and CLI share, independent of any transport:
//
//   - Service: size limit, bounded concurrency, optional UI delay,
//     highlighting and metrics around each conversion.
//   - Decoding: uploaded bytes become UTF-8 text (BOM stripping, charset
//     detection via chardet, x/text decoders).
//   - Error mapping: [MapError] turns any error into a [UserMessage] with a
//     support code.
//
// # Conversion Flow
//
//  1. Adapter reads text (request body, multipart file, stdin).
//  2. [Service.ConvertUpload] checks the file against the size limit and
//     normalises its bytes to UTF-8; [Service.Convert] checks pasted text.
//  3. The conversion acquires a slot, parses, renders and highlights.
//  4. Adapter renders the [Result] or the mapped error and clears stale output.
package core

// Package compress provides compression and decompression codecs for jwire
// wire payloads.
//
// Compression in jwire is opt-in and orthogonal to the value codec: the
// codec package always produces an uncompressed, self-describing byte
// encoding, and a caller may wrap a CONTAINER (LIST/DICT) payload in a
// compression envelope before it leaves the process, and the frameref
// frame codec may compress a SERIES/DATAFRAME column block. Either layer
// picks an algorithm through the Codec interface so swapping one out never
// touches the wire format itself.
//
// # Supported algorithms
//
//   - None: no compression, for already-small or already-compressed payloads.
//   - Zstd: best ratio, moderate speed. Good for cold/bulk transfers.
//   - S2: balanced ratio and speed, Snappy-compatible.
//   - LZ4: fastest decompression, moderate ratio. Good for hot-path replies.
//
// # Selection
//
// Sessions decide from local/remote connection context whether frames are
// compressed (see the session package's locality heuristic, which disables
// compression for loopback peers by default); the algorithm is the one the
// frameref codec was built with (frameref.NewCodec). frameref compresses
// the whole column block of a frame as one payload when asked to.
//
// All codec implementations are safe for concurrent use by multiple
// goroutines.
package compress

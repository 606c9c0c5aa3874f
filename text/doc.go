/*

The text package provides the Buffer type which holds both the source text
being scanned by the macro processor and the output it accumulates. A Buffer
owns its bytes; copies are made explicitly with Clone or Tail.

The length and substring operations that work in characters rather than
bytes expect UTF-8 but will not fail on badly formed sequences: a byte that
does not start a well formed sequence is counted as a single character. This
means that Latin-1 and similar encodings will usually do the right thing.

*/
package text

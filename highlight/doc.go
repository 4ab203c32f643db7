// Package highlight keeps per-line highlighting state for a document and
// recomputes only what an edit invalidates.
//
// Every line stores the BlockState it started in, the BlockState it ended in,
// and its spans. When lines change they are re-tokenized, and the outgoing
// state is carried forward line by line until a recomputed line ends in the
// same state it ended in before. Lines past that point are untouched.
package highlight

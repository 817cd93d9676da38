package flowed

// ChunkScanner provides lazy iteration over a sequence of chunks, in the
// style of bufio.Scanner. The sequence is finite and single-pass: once Scan
// returns false the scanner is exhausted and cannot be rewound. Restart by
// calling Decode or ParseText again. The buffer backing the scan must
// outlive the scanner.
//
// Typical use:
//
//	sc := flowed.NewDecoder().Decode(body)
//	for sc.Scan() {
//		c := sc.Chunk()
//		// ...
//	}
//	if err := sc.Err(); err != nil {
//		// ...
//	}
//
// A ChunkScanner is not safe for concurrent use.
type ChunkScanner struct {
	next func() (Chunk, bool, error)
	cur  Chunk
	err  error
	done bool
}

// Scan advances to the next chunk, which is then available through Chunk. It
// returns false when the sequence is exhausted or an error occurred.
func (s *ChunkScanner) Scan() bool {
	if s.done {
		return false
	}

	c, ok, err := s.next()
	if err != nil {
		s.err = err
		s.done = true
		return false
	}
	if !ok {
		s.done = true
		return false
	}

	s.cur = c
	return true
}

// Chunk returns the chunk most recently produced by Scan.
func (s *ChunkScanner) Chunk() Chunk {
	return s.cur
}

// Err returns the first error encountered while scanning, if any.
func (s *ChunkScanner) Err() error {
	return s.err
}

// collect drains the scanner into a slice.
func (s *ChunkScanner) collect() ([]Chunk, error) {
	var chunks []Chunk
	for s.Scan() {
		chunks = append(chunks, s.Chunk())
	}
	return chunks, s.Err()
}

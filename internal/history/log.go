package history

import "sync"

// Log is an append-only, most-recent-last sequence of records. It is safe
// for concurrent use.
type Log struct {
	mu      sync.RWMutex
	records []Record
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds r to the end of the log.
func (l *Log) Append(r Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r.clone())
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Records returns a copy of every record in order.
func (l *Log) Records() []Record {
	return l.filter(func(Record) bool { return true })
}

// BySubject returns the records whose subject equals subject.
func (l *Log) BySubject(subject string) []Record {
	return l.filter(func(r Record) bool { return r.Subject == subject })
}

// BySubjectConcept returns the records matching both subject and concept
// exactly.
func (l *Log) BySubjectConcept(subject, concept string) []Record {
	return l.filter(func(r Record) bool {
		return r.Subject == subject && r.Concept == concept
	})
}

func (l *Log) filter(keep func(Record) bool) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

// Last returns the final n records of records, or all of them when there
// are fewer than n. A non-positive n yields nil.
func Last(records []Record, n int) []Record {
	if n <= 0 {
		return nil
	}
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

package core

// Record is the ordered argument list captured for a single invocation.
// Getter reads record an empty Record, setter writes a single value, and
// function calls the full positional argument list.
type Record []any

// Table maps a member name to its call records, in invocation order.
type Table map[string][]Record

// TrackCall appends record to table[name], creating the slot first if it is absent.
// Installers always create the slot at setup time, so the creation path only matters
// when tracking runs before setup.
func TrackCall(table Table, name string, record Record) {
	if _, ok := table[name]; !ok {
		table[name] = []Record{}
	}

	table[name] = append(table[name], record)
}

// resetSlot (re)initializes the slot for name to an empty list, discarding prior records.
func resetSlot(table Table, name string) {
	table[name] = []Record{}
}

// trackFunctionCall records the full argument list. The list is copied so later
// mutation of the caller's slice cannot rewrite history.
func trackFunctionCall(table Table, name string, args []any) {
	TrackCall(table, name, append(Record{}, args...))
}

func trackGetterCall(table Table, name string) {
	TrackCall(table, name, Record{})
}

func trackSetterCall(table Table, name string, value any) {
	TrackCall(table, name, Record{value})
}

package runtime

// Coerce checks whether source may be assigned into a location currently
// holding target (or, for a fresh DECLARE, a zero value of the declared
// kind), per the type-compatibility rule: exact kind match, or the single
// allowed widening INTEGER -> REAL. Arrays and records additionally
// require their element kind / type name to agree. On success it returns
// the value to actually store (widened and/or deep-copied as needed).
func Coerce(target, source Value) (Value, bool) {
	if target.Kind() == source.Kind() {
		switch t := target.(type) {
		case Record:
			s, ok := source.(Record)
			if !ok || s.TypeName != t.TypeName {
				return nil, false
			}
			return s.Clone(), true
		case Array:
			s, ok := source.(Array)
			if !ok || s.Element != t.Element {
				return nil, false
			}
			return s.Clone(), true
		default:
			return source, true
		}
	}

	if target.Kind() == KindReal && source.Kind() == KindInteger {
		return Real(source.(Integer).Float()), true
	}

	return nil, false
}

package tuple

// Match reports whether t matches p: t has no formals, t's key set
// equals p's key set, and for every key either p's field is the
// wildcard Any, a predicate that accepts t's value, or a concrete
// value equal to (and of the same dynamic type as) t's value. Field
// order is irrelevant.
//
// Calling Match with a tuple-role argument that carries formal fields
// is a contract violation reported as IllegalTemplateUse; a *Tuple
// constructed via New can never trigger this, since New rejects
// formals, but the check is kept here because it is the single place
// the invariant can be verified against the raw field map the store
// shares between tuples and templates internally.
func Match(t *Tuple, p *Template) (bool, error) {
	return matchFields(t.fields, p.fields)
}

func matchFields(fact map[string]interface{}, pattern map[string]interface{}) (bool, error) {
	if hasFormal(fact) {
		return false, IllegalTemplateUse
	}
	if len(fact) != len(pattern) {
		return false, nil
	}
	for k, pv := range pattern {
		fv, ok := fact[k]
		if !ok {
			return false, nil
		}
		switch pvv := pv.(type) {
		case wildcard:
			continue
		case PredicateFunc:
			ok, err := pvv(fv)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		default:
			if !valuesEqual(pv, fv) {
				return false, nil
			}
		}
	}
	return true, nil
}

func hasFormal(fields map[string]interface{}) bool {
	for _, v := range fields {
		switch v.(type) {
		case wildcard, PredicateFunc:
			return true
		}
	}
	return false
}

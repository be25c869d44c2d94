package libdiff

// Reverse returns the changes turning the "to" tree of a diff back into its
// "from" tree.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		r := Change{Path: c.Path, From: c.To, To: c.From}
		switch c.Kind {
		case InsertKind:
			r.Kind = DeleteKind
		case DeleteKind:
			r.Kind = InsertKind
		case EditKind:
			r.Kind = EditKind
			fs, _ := c.From.Data.(string)
			ts, _ := c.To.Data.(string)
			r.Patch = stringPatch(ts, fs)
		default:
			r.Kind = c.Kind
		}
		res[i] = r
	}
	return res
}

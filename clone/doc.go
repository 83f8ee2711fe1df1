// Package clone deep-copies value graphs.
//
// [Clone] copies an [object.Object] graph: every distinct node is copied once
// (cycles and shared references come out the same shape), each copy keeps
// the kind, internal slot, prototype, property attributes and extensibility
// of its source, and a [Policy] decides what to do with functions,
// accessors, attributes, extensibility and symbol keys.
//
//	dup, err := clone.Clone(o)
//	dup, err := clone.Clone(o, clone.Policy{AllowFunctions: true, IgnoreSymbols: true})
//
// Failures carry the route to the offending node:
//
//	var pe *clone.PathError
//	if errors.As(err, &pe) {
//	    fmt.Println(pe.Path) // profile.onSave
//	}
//
// [Native] does the same for ordinary Go values through reflection, and
// [Into] copies between different Go types.
package clone

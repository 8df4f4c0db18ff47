package zone

// ComputeLabels derives the display label of every zone. It requires the
// hierarchy to be finalized: a label is the zone's name, suffixed by the
// name of the nearest disambiguating ancestor when another zone in the
// collection shares the same name. Composition order across zones is
// irrelevant since a zone only ever reads its ancestors.
func ComputeLabels(zones []Zone) {
	nameCount := make(map[string]int, len(zones))
	for i := range zones {
		nameCount[zones[i].Name]++
	}

	for i := range zones {
		z, rest := Split(zones, Index(i))
		z.computeLabel(rest, nameCount[z.Name] > 1)
	}
}

// computeLabel writes z.Label. rest must be the split view excluding z
// itself; the ancestor chain is read exclusively through it.
func (z *Zone) computeLabel(rest View, ambiguous bool) {
	z.Label = z.Name
	if !ambiguous || z.Parent == nil {
		return
	}

	// Walk outward and take the closest ancestor whose name actually
	// distinguishes the label. The walk is bounded by the collection
	// size as a guard against malformed links.
	next := z.Parent
	for steps := 0; next != nil && steps < rest.Len(); steps++ {
		ancestor := rest.At(*next)
		if ancestor.Name != "" && ancestor.Name != z.Name {
			z.Label = z.Name + " (" + ancestor.Name + ")"
			return
		}
		next = ancestor.Parent
	}
}

package dialogue

// Group is a named run of lines in document order
type Group struct {
	Key   string
	Lines []Line
}

// Texts returns the text of every line of g
func (g Group) Texts() []string {
	texts := make([]string, len(g.Lines))
	for i, l := range g.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Grouping holds the three independent views of a dialogue
type Grouping struct {
	Sections []Group // Ordered by first appearance
	Roles    []Group // Ordered by first appearance
	All      []Line
}

// GroupLines buckets lines by section and by role. Each bucket keeps
// document order and buckets appear in the order their key was first seen.
func GroupLines(lines []Line) Grouping {
	return Grouping{
		Sections: bucket(lines, func(l Line) string { return l.Section }),
		Roles:    bucket(lines, func(l Line) string { return l.Role }),
		All:      append([]Line(nil), lines...),
	}
}

func bucket(lines []Line, key func(Line) string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, l := range lines {
		k := key(l)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}
	return groups
}

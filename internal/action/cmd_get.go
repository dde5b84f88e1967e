package action

import "sort"

// doCmdGetProjects emits every distinct project name in the full store,
// one per line, sorted -- the read-only `_cmd get projects` verb.
func doCmdGetProjects(ctx Context, printer Printer) (Context, error) {
	seen := map[string]bool{}
	var names []string
	for _, t := range ctx.Data.Tasks {
		name := t.ProjectName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	for _, n := range names {
		printer.PrintMessage(n)
	}
	return ctx, nil
}

// doCmdGetTags emits every distinct tag in the full store, one per line,
// sorted -- the read-only `_cmd get tags` verb.
func doCmdGetTags(ctx Context, printer Printer) (Context, error) {
	seen := map[string]bool{}
	var tags []string
	for _, t := range ctx.Data.Tasks {
		for _, tag := range t.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	for _, tg := range tags {
		printer.PrintMessage(tg)
	}
	return ctx, nil
}

package goresolve

import "strconv"

// pathStack tracks the current position in the schema/value tree. push returns
// the matching pop so call sites stay balanced on every exit path:
//
//	defer r.path.push(name)()
type pathStack struct {
	segs []string
}

func (p *pathStack) push(seg string) func() {
	p.segs = append(p.segs, seg)
	return p.pop
}

func (p *pathStack) pushIndex(i int) func() {
	return p.push(strconv.Itoa(i))
}

func (p *pathStack) pop() {
	p.segs = p.segs[:len(p.segs)-1]
}

func itoaIndex(i int) string { return strconv.Itoa(i) }

// snapshot copies the current path for storing on an Issue.
func (p *pathStack) snapshot() []string {
	if len(p.segs) == 0 {
		return nil
	}
	out := make([]string, len(p.segs))
	copy(out, p.segs)
	return out
}

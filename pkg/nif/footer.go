package nif

import "io"

// Footer terminates the block stream. From the release that introduced
// counted streams it lists the root blocks as owning references; legacy
// streams flag their roots inline instead and carry no footer fields.
type Footer struct {
	Roots RefList[Block]
}

func (f *Footer) read(r io.Reader, c *Context) error {
	if !c.Version.HasFooterRoots() {
		return nil
	}
	return f.Roots.Read(r, c)
}

func (f *Footer) write(w io.Writer, c *Context) error {
	if !c.Version.HasFooterRoots() {
		return nil
	}
	return f.Roots.Write(w, c)
}

func (f *Footer) fixLinks(c *Context) error {
	if !c.Version.HasFooterRoots() {
		return nil
	}
	return f.Roots.fixLinks(c)
}

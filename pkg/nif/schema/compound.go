package schema

import (
	"io"

	"github.com/matzehuels/nifstream/pkg/nif"
)

// Vector3 is a three-component float vector, stored X then Y then Z.
type Vector3 struct {
	X, Y, Z nif.Float
}

func (v *Vector3) parts() []nif.Value { return []nif.Value{&v.X, &v.Y, &v.Z} }

func (v *Vector3) Size(*nif.Context) int { return 12 }

func (v *Vector3) Read(r io.Reader, c *nif.Context) error {
	for _, p := range v.parts() {
		if err := p.Read(r, c); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vector3) Write(w io.Writer, c *nif.Context) error {
	for _, p := range v.parts() {
		if err := p.Write(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vector3) Hash(c *nif.Context) (uint64, bool) {
	return nif.HashValues(c, "vec3", v.parts()...)
}

// Matrix33 is a 3x3 rotation matrix stored row-major, M[row][col].
type Matrix33 struct {
	M [3][3]nif.Float
}

// SetIdentity resets the matrix to the identity rotation.
func (m *Matrix33) SetIdentity() {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				m.M[i][j] = 1
			} else {
				m.M[i][j] = 0
			}
		}
	}
}

// IsIdentity reports whether the matrix is exactly the identity rotation.
func (m *Matrix33) IsIdentity() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := nif.Float(0)
			if i == j {
				want = 1
			}
			if m.M[i][j] != want {
				return false
			}
		}
	}
	return true
}

func (m *Matrix33) parts() []nif.Value {
	out := make([]nif.Value, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out = append(out, &m.M[i][j])
		}
	}
	return out
}

func (m *Matrix33) Size(*nif.Context) int { return 36 }

func (m *Matrix33) Read(r io.Reader, c *nif.Context) error {
	for _, p := range m.parts() {
		if err := p.Read(r, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Matrix33) Write(w io.Writer, c *nif.Context) error {
	for _, p := range m.parts() {
		if err := p.Write(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Matrix33) Hash(c *nif.Context) (uint64, bool) {
	return nif.HashValues(c, "mat33", m.parts()...)
}
